package handlers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRemovalRequest(t *testing.T) {
	_, router := newTestServer(t)

	w := performRequest(router, http.MethodPost, "/v1/api/removal-request", map[string]interface{}{
		"business_name": "Rossi & Partners",
		"contact_name":  "Marco Rossi",
		"email":         "marco@example.com",
		"reason":        "We no longer offer services to foreign buyers.",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeJSON(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["id"])

	w = performRequest(router, http.MethodGet, "/v1/api/removal-request", nil)
	require.Equal(t, http.StatusOK, w.Code)

	listing := decodeJSON(t, w)
	assert.Equal(t, float64(1), listing["count"])
	requests := listing["requests"].([]interface{})
	require.Len(t, requests, 1)
	assert.Equal(t, "pending", requests[0].(map[string]interface{})["status"])
}

func TestCreateRemovalRequestValidation(t *testing.T) {
	_, router := newTestServer(t)

	w := performRequest(router, http.MethodPost, "/v1/api/removal-request", map[string]interface{}{
		"business_name": "Rossi & Partners",
		"contact_name":  "Marco Rossi",
		"email":         "marco@example.com",
		"reason":        "too short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeJSON(t, w)
	assert.Equal(t, "Invalid form data", body["error"])
	assert.Contains(t, detailFields(t, body), "reason")
}

func TestUpdateRemovalRequestStatus(t *testing.T) {
	db, router := newTestServer(t)

	w := performRequest(router, http.MethodPost, "/v1/api/removal-request", map[string]interface{}{
		"business_name": "Rossi & Partners",
		"contact_name":  "Marco Rossi",
		"email":         "marco@example.com",
		"reason":        "We no longer offer services to foreign buyers.",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	requestID := decodeJSON(t, w)["id"].(string)

	w = performRequest(router, http.MethodPatch, "/v1/admin/removal-requests/"+requestID+"/status",
		map[string]interface{}{"status": "completed", "admin_notes": "Listing removed."})
	require.Equal(t, http.StatusOK, w.Code)

	var status, notes string
	require.NoError(t, db.QueryRow(
		"SELECT status, admin_notes FROM removal_requests WHERE id = ?", requestID).
		Scan(&status, &notes))
	assert.Equal(t, "completed", status)
	assert.Equal(t, "Listing removed.", notes)
}

func TestUpdateRemovalRequestStatusUnknownRequest(t *testing.T) {
	_, router := newTestServer(t)

	w := performRequest(router, http.MethodPatch, "/v1/admin/removal-requests/"+uuid.NewString()+"/status",
		map[string]interface{}{"status": "approved"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateRemovalRequestStatusRejectsUnknownStatus(t *testing.T) {
	_, router := newTestServer(t)

	w := performRequest(router, http.MethodPatch, "/v1/admin/removal-requests/"+uuid.NewString()+"/status",
		map[string]interface{}{"status": "ignored"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
