package handlers

import (
	"database/sql"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/italypros/directory-api/internal/models"
)

// CreateReviewInput is the JSON body for POST /v1/api/reviews
type CreateReviewInput struct {
	ProfessionalID string  `json:"professional_id" binding:"required,uuid4"`
	Rating         int     `json:"rating" binding:"required,min=1,max=5"`
	Title          *string `json:"title"`
	Content        string  `json:"content" binding:"required,min=20"`
	AuthorName     string  `json:"author_name" binding:"required,min=2"`
	AuthorCountry  *string `json:"author_country"`
	ServiceUsed    *string `json:"service_used"`
}

// CreateReview is the handler for POST /v1/api/reviews
// New reviews always start as pending and never carry the verified-purchase
// mark; both are admin-only decisions. The professional's aggregate is not
// touched until moderation approves the review.
func (h *Handlers) CreateReview(c *gin.Context) {
	var input CreateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	var exists int
	err := h.DB.QueryRow("SELECT 1 FROM professionals WHERE id = ?", input.ProfessionalID).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Professional not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	reviewID := uuid.NewString()
	query := `
		INSERT INTO reviews
		(id, professional_id, author_name, author_country, rating, title, content,
		service_used, is_verified_purchase, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, 'pending', ?)`

	_, err = h.DB.Exec(query,
		reviewID, input.ProfessionalID, input.AuthorName, input.AuthorCountry,
		input.Rating, input.Title, input.Content, input.ServiceUsed, time.Now())
	if err != nil {
		log.Printf("review insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save review"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"review_id": reviewID,
		"message":   "Review submitted successfully. It will be visible after moderation.",
	})
}

const reviewColumns = `
	id, professional_id, user_id, author_name, author_country, rating, title,
	content, service_used, is_verified_purchase, status, admin_notes, created_at`

func scanReview(row rowScanner) (*models.Review, error) {
	var r models.Review
	var professionalID, userID, authorCountry, title, serviceUsed, adminNotes sql.NullString

	if err := row.Scan(
		&r.ID, &professionalID, &userID, &r.AuthorName, &authorCountry,
		&r.Rating, &title, &r.Content, &serviceUsed,
		&r.IsVerifiedPurchase, &r.Status, &adminNotes, &r.CreatedAt,
	); err != nil {
		return nil, err
	}

	if professionalID.Valid {
		r.ProfessionalID = &professionalID.String
	}
	if userID.Valid {
		r.UserID = &userID.String
	}
	if authorCountry.Valid {
		r.AuthorCountry = &authorCountry.String
	}
	if title.Valid {
		r.Title = &title.String
	}
	if serviceUsed.Valid {
		r.ServiceUsed = &serviceUsed.String
	}
	if adminNotes.Valid {
		r.AdminNotes = &adminNotes.String
	}

	return &r, nil
}

// approvedReviews returns a professional's approved reviews, newest first.
func (h *Handlers) approvedReviews(professionalID string) ([]*models.Review, error) {
	query := "SELECT" + reviewColumns + ` FROM reviews
		WHERE professional_id = ? AND status = 'approved'
		ORDER BY created_at DESC`

	rows, err := h.DB.Query(query, professionalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []*models.Review{}
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// GetApprovedReviews is the handler for GET /v1/api/reviews?professional_id=
func (h *Handlers) GetApprovedReviews(c *gin.Context) {
	professionalID := c.Query("professional_id")
	if professionalID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Professional ID is required"})
		return
	}

	reviews, err := h.approvedReviews(professionalID)
	if err != nil {
		log.Printf("approved reviews query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

//
// --- Admin: Review Moderation ---
//

// GetReviewsForModeration is the handler for GET /v1/admin/reviews
// Optional ?status= narrows the listing; everything comes back newest first
// with the owning professional's name attached for context.
func (h *Handlers) GetReviewsForModeration(c *gin.Context) {
	statusFilter := c.Query("status")

	query := `
		SELECT
			r.id, r.professional_id, r.user_id, r.author_name, r.author_country,
			r.rating, r.title, r.content, r.service_used, r.is_verified_purchase,
			r.status, r.admin_notes, r.created_at,
			p.name, p.slug
		FROM reviews r
		LEFT JOIN professionals p ON r.professional_id = p.id`

	args := []interface{}{}
	if statusFilter != "" {
		query += " WHERE r.status = ?"
		args = append(args, statusFilter)
	}
	query += " ORDER BY r.created_at DESC"

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	reviews := []*models.Review{}
	for rows.Next() {
		var r models.Review
		var professionalID, userID, authorCountry, title, serviceUsed, adminNotes sql.NullString
		var professionalName, professionalSlug sql.NullString

		if err := rows.Scan(
			&r.ID, &professionalID, &userID, &r.AuthorName, &authorCountry,
			&r.Rating, &title, &r.Content, &serviceUsed, &r.IsVerifiedPurchase,
			&r.Status, &adminNotes, &r.CreatedAt,
			&professionalName, &professionalSlug,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan review row"})
			return
		}

		if professionalID.Valid {
			r.ProfessionalID = &professionalID.String
		}
		if userID.Valid {
			r.UserID = &userID.String
		}
		if authorCountry.Valid {
			r.AuthorCountry = &authorCountry.String
		}
		if title.Valid {
			r.Title = &title.String
		}
		if serviceUsed.Valid {
			r.ServiceUsed = &serviceUsed.String
		}
		if adminNotes.Valid {
			r.AdminNotes = &adminNotes.String
		}
		if professionalName.Valid {
			r.ProfessionalName = &professionalName.String
		}
		if professionalSlug.Valid {
			r.ProfessionalSlug = &professionalSlug.String
		}

		reviews = append(reviews, &r)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating review rows"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// UpdateReviewStatusInput is the JSON body for the moderation decision.
// "pending" is deliberately not accepted: once a review has been decided, the
// only reachable transitions are approved <-> rejected.
type UpdateReviewStatusInput struct {
	Status     string  `json:"status" binding:"required,oneof=approved rejected"`
	AdminNotes *string `json:"admin_notes"`
}

// UpdateReviewStatus is the handler for PATCH /v1/admin/reviews/:id/status
// After the status write, the owning professional's rating aggregate is
// recomputed from the approved-review set. The status write is authoritative:
// a recompute failure (or an already-deleted professional) is logged, not
// surfaced, and the next recompute self-heals any drift.
func (h *Handlers) UpdateReviewStatus(c *gin.Context) {
	reviewID := c.Param("id")

	var input UpdateReviewStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	var professionalID sql.NullString
	err := h.DB.QueryRow("SELECT professional_id FROM reviews WHERE id = ?", reviewID).
		Scan(&professionalID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	querySet := "status = ?"
	queryArgs := []interface{}{input.Status}
	if input.AdminNotes != nil {
		querySet += ", admin_notes = ?"
		queryArgs = append(queryArgs, *input.AdminNotes)
	}
	queryArgs = append(queryArgs, reviewID)

	if _, err := h.DB.Exec("UPDATE reviews SET "+querySet+" WHERE id = ?", queryArgs...); err != nil {
		log.Printf("review status update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review status"})
		return
	}

	if professionalID.Valid {
		if err := h.RecomputeProfessionalRating(professionalID.String); err != nil {
			log.Printf("rating recompute failed for %s: %v", professionalID.String, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Review " + input.Status,
	})
}

// RecomputeProfessionalRating rebuilds a professional's (avg_rating,
// review_count) pair from its approved reviews. It is a pure function of the
// current approved-review set, so it is idempotent and can be re-run at any
// time to correct drift. The average is rounded to one decimal; with no
// approved reviews both fields go to zero. Updating a professional that no
// longer exists affects zero rows and is not an error.
func (h *Handlers) RecomputeProfessionalRating(professionalID string) error {
	var count int
	var avg float64
	err := h.DB.QueryRow(`
		SELECT COUNT(*), COALESCE(AVG(rating), 0)
		FROM reviews
		WHERE professional_id = ? AND status = 'approved'`,
		professionalID).Scan(&count, &avg)
	if err != nil {
		return err
	}

	avg = math.Round(avg*10) / 10

	_, err = h.DB.Exec(`
		UPDATE professionals
		SET avg_rating = ?, review_count = ?, updated_at = ?
		WHERE id = ?`,
		avg, count, time.Now(), professionalID)
	return err
}
