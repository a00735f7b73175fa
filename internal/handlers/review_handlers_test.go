package handlers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/italypros/directory-api/internal/handlers"
)

func TestCreateReviewStartsPendingAndLeavesAggregateAlone(t *testing.T) {
	db, router := newTestServer(t)
	insertCategory(t, db, "lawyer")
	id := insertProfessional(t, db, testProfessional{})

	w := performRequest(router, http.MethodPost, "/v1/api/reviews", map[string]interface{}{
		"professional_id": id,
		"rating":          5,
		"content":         "Excellent service from start to finish, highly recommended.",
		"author_name":     "Jane",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeJSON(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["review_id"])

	var status string
	require.NoError(t, db.QueryRow("SELECT status FROM reviews WHERE id = ?", body["review_id"]).Scan(&status))
	assert.Equal(t, "pending", status)

	avg, count := professionalAggregates(t, db, id)
	assert.Zero(t, avg)
	assert.Zero(t, count)

	// Pending reviews are invisible on the public endpoint.
	w = performRequest(router, http.MethodGet, "/v1/api/reviews?professional_id="+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeJSON(t, w)["reviews"])
}

func TestCreateReviewValidationNamesJSONFields(t *testing.T) {
	db, router := newTestServer(t)
	insertCategory(t, db, "lawyer")
	id := insertProfessional(t, db, testProfessional{})

	w := performRequest(router, http.MethodPost, "/v1/api/reviews", map[string]interface{}{
		"professional_id": id,
		"rating":          5,
		"content":         "too short",
		"author_name":     "Jane",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeJSON(t, w)
	assert.Equal(t, "Invalid form data", body["error"])
	assert.Contains(t, detailFields(t, body), "content")
}

func TestCreateReviewRatingOutOfRange(t *testing.T) {
	db, router := newTestServer(t)
	insertCategory(t, db, "lawyer")
	id := insertProfessional(t, db, testProfessional{})

	w := performRequest(router, http.MethodPost, "/v1/api/reviews", map[string]interface{}{
		"professional_id": id,
		"rating":          6,
		"content":         "Long enough content to pass the minimum length check.",
		"author_name":     "Jane",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, detailFields(t, decodeJSON(t, w)), "rating")
}

func TestCreateReviewUnknownProfessional(t *testing.T) {
	_, router := newTestServer(t)

	w := performRequest(router, http.MethodPost, "/v1/api/reviews", map[string]interface{}{
		"professional_id": uuid.NewString(),
		"rating":          4,
		"content":         "Long enough content to pass the minimum length check.",
		"author_name":     "Jane",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetApprovedReviewsRequiresProfessionalID(t *testing.T) {
	_, router := newTestServer(t)

	w := performRequest(router, http.MethodGet, "/v1/api/reviews", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestModerationRecomputesAggregate(t *testing.T) {
	db, router := newTestServer(t)
	insertCategory(t, db, "lawyer")
	id := insertProfessional(t, db, testProfessional{})

	five := insertReview(t, db, id, 5, "pending")
	four := insertReview(t, db, id, 4, "pending")
	three := insertReview(t, db, id, 3, "pending")

	for _, reviewID := range []string{five, four, three} {
		w := performRequest(router, http.MethodPatch, "/v1/admin/reviews/"+reviewID+"/status",
			map[string]interface{}{"status": "approved"})
		require.Equal(t, http.StatusOK, w.Code)
	}

	avg, count := professionalAggregates(t, db, id)
	assert.Equal(t, 4.0, avg)
	assert.Equal(t, 3, count)

	// Rejecting an approved review shrinks the aggregate set.
	w := performRequest(router, http.MethodPatch, "/v1/admin/reviews/"+three+"/status",
		map[string]interface{}{"status": "rejected"})
	require.Equal(t, http.StatusOK, w.Code)

	avg, count = professionalAggregates(t, db, id)
	assert.Equal(t, 4.5, avg)
	assert.Equal(t, 2, count)
}

func TestModerationRejectingLastReviewZeroesAggregate(t *testing.T) {
	db, router := newTestServer(t)
	insertCategory(t, db, "lawyer")
	id := insertProfessional(t, db, testProfessional{})
	reviewID := insertReview(t, db, id, 5, "pending")

	w := performRequest(router, http.MethodPatch, "/v1/admin/reviews/"+reviewID+"/status",
		map[string]interface{}{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodPatch, "/v1/admin/reviews/"+reviewID+"/status",
		map[string]interface{}{"status": "rejected"})
	require.Equal(t, http.StatusOK, w.Code)

	avg, count := professionalAggregates(t, db, id)
	assert.Zero(t, avg)
	assert.Zero(t, count)
}

func TestModerationCannotReturnToPending(t *testing.T) {
	db, router := newTestServer(t)
	insertCategory(t, db, "lawyer")
	id := insertProfessional(t, db, testProfessional{})
	reviewID := insertReview(t, db, id, 5, "approved")

	w := performRequest(router, http.MethodPatch, "/v1/admin/reviews/"+reviewID+"/status",
		map[string]interface{}{"status": "pending"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, detailFields(t, decodeJSON(t, w)), "status")
}

func TestModerationUnknownReview(t *testing.T) {
	_, router := newTestServer(t)

	w := performRequest(router, http.MethodPatch, "/v1/admin/reviews/"+uuid.NewString()+"/status",
		map[string]interface{}{"status": "approved"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestModerationListStatusFilter(t *testing.T) {
	db, router := newTestServer(t)
	insertCategory(t, db, "lawyer")
	id := insertProfessional(t, db, testProfessional{})

	insertReview(t, db, id, 5, "pending")
	insertReview(t, db, id, 4, "approved")
	insertReview(t, db, id, 1, "rejected")

	w := performRequest(router, http.MethodGet, "/v1/admin/reviews?status=pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeJSON(t, w)["reviews"], 1)

	w = performRequest(router, http.MethodGet, "/v1/admin/reviews", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeJSON(t, w)["reviews"], 3)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	db, _ := newTestServer(t)
	insertCategory(t, db, "lawyer")
	id := insertProfessional(t, db, testProfessional{})

	insertReview(t, db, id, 5, "approved")
	insertReview(t, db, id, 2, "approved")

	app := &handlers.Handlers{DB: db}
	require.NoError(t, app.RecomputeProfessionalRating(id))
	require.NoError(t, app.RecomputeProfessionalRating(id))

	avg, count := professionalAggregates(t, db, id)
	assert.Equal(t, 3.5, avg)
	assert.Equal(t, 2, count)
}

func TestRecomputeMissingProfessionalIsNotAnError(t *testing.T) {
	db, _ := newTestServer(t)

	app := &handlers.Handlers{DB: db}
	assert.NoError(t, app.RecomputeProfessionalRating(uuid.NewString()))
}
