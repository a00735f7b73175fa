package handlers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleProfessionalFlagTwiceRestoresOriginal(t *testing.T) {
	db, router := newTestServer(t)
	insertCategory(t, db, "lawyer")
	id := insertProfessional(t, db, testProfessional{Verified: true})

	isVerified := func() bool {
		var v bool
		require.NoError(t, db.QueryRow("SELECT is_verified FROM professionals WHERE id = ?", id).Scan(&v))
		return v
	}

	w := performRequest(router, http.MethodPatch, "/v1/admin/professionals/"+id+"/toggle",
		map[string]interface{}{"field": "verified"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, isVerified())

	w = performRequest(router, http.MethodPatch, "/v1/admin/professionals/"+id+"/toggle",
		map[string]interface{}{"field": "verified"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, isVerified())
}

func TestToggleProfessionalFlagRejectsUnknownField(t *testing.T) {
	db, router := newTestServer(t)
	insertCategory(t, db, "lawyer")
	id := insertProfessional(t, db, testProfessional{})

	w := performRequest(router, http.MethodPatch, "/v1/admin/professionals/"+id+"/toggle",
		map[string]interface{}{"field": "view_count"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, detailFields(t, decodeJSON(t, w)), "field")
}

func TestToggleProfessionalFlagUnknownProfessional(t *testing.T) {
	_, router := newTestServer(t)

	w := performRequest(router, http.MethodPatch, "/v1/admin/professionals/"+uuid.NewString()+"/toggle",
		map[string]interface{}{"field": "premium"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetDashboardStats(t *testing.T) {
	db, router := newTestServer(t)
	insertCategory(t, db, "lawyer")

	verified := insertProfessional(t, db, testProfessional{Verified: true})
	insertProfessional(t, db, testProfessional{Premium: true})

	insertLead(t, db, verified, "new")
	insertLead(t, db, verified, "contacted")
	insertReview(t, db, verified, 5, "pending")
	insertReview(t, db, verified, 4, "approved")

	w := performRequest(router, http.MethodGet, "/v1/admin/dashboard-stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeJSON(t, w)
	stats := body["stats"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["professionals"])
	assert.Equal(t, float64(1), stats["verified"])
	assert.Equal(t, float64(1), stats["premium"])
	assert.Equal(t, float64(2), stats["leads"])
	assert.Equal(t, float64(1), stats["new_leads"])
	assert.Equal(t, float64(2), stats["reviews"])
	assert.Equal(t, float64(1), stats["pending_reviews"])

	assert.Len(t, body["recent_leads"], 2)
	assert.Len(t, body["top_professionals"], 2)
}

func TestCreateProfessionalGeneratesUniqueSlugs(t *testing.T) {
	db, router := newTestServer(t)
	insertCategory(t, db, "lawyer")

	payload := map[string]interface{}{
		"name":        "Rossi & Partners",
		"category":    "lawyer",
		"regions":     []string{"toscana"},
		"languages":   []string{"english"},
		"description": "Property law for foreign buyers.",
	}

	w := performRequest(router, http.MethodPost, "/v1/admin/professionals", payload)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "rossi-partners", decodeJSON(t, w)["slug"])

	w = performRequest(router, http.MethodPost, "/v1/admin/professionals", payload)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "rossi-partners-2", decodeJSON(t, w)["slug"])

	w = performRequest(router, http.MethodPost, "/v1/admin/professionals", payload)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "rossi-partners-3", decodeJSON(t, w)["slug"])
}

func TestCreateProfessionalStartsWithZeroedCountersAndFlags(t *testing.T) {
	db, router := newTestServer(t)
	insertCategory(t, db, "lawyer")

	w := performRequest(router, http.MethodPost, "/v1/admin/professionals", map[string]interface{}{
		"name":        "New Listing",
		"category":    "lawyer",
		"regions":     []string{"all"},
		"languages":   []string{"english", "italian"},
		"description": "Freshly added.",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeJSON(t, w)["id"].(string)

	var verified, featured, premium bool
	var views, leads, reviews int
	var avg float64
	require.NoError(t, db.QueryRow(`
		SELECT is_verified, is_featured, is_premium, view_count, lead_count, review_count, avg_rating
		FROM professionals WHERE id = ?`, id).
		Scan(&verified, &featured, &premium, &views, &leads, &reviews, &avg))

	assert.False(t, verified)
	assert.False(t, featured)
	assert.False(t, premium)
	assert.Zero(t, views)
	assert.Zero(t, leads)
	assert.Zero(t, reviews)
	assert.Zero(t, avg)
}

func TestCreateProfessionalRejectsUnknownCategory(t *testing.T) {
	_, router := newTestServer(t)

	w := performRequest(router, http.MethodPost, "/v1/admin/professionals", map[string]interface{}{
		"name":        "New Listing",
		"category":    "plumber",
		"regions":     []string{"all"},
		"languages":   []string{"english"},
		"description": "Freshly added.",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProfessionalValidation(t *testing.T) {
	db, router := newTestServer(t)
	insertCategory(t, db, "lawyer")

	w := performRequest(router, http.MethodPost, "/v1/admin/professionals", map[string]interface{}{
		"name":        "X",
		"category":    "lawyer",
		"regions":     []string{},
		"languages":   []string{"english"},
		"description": "Freshly added.",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	fields := detailFields(t, decodeJSON(t, w))
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "regions")
}
