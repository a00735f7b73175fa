package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/italypros/directory-api/internal/models"
)

// CreateRemovalRequestInput is the JSON body for POST /v1/api/removal-request
type CreateRemovalRequestInput struct {
	BusinessName string  `json:"business_name" binding:"required,min=2"`
	ContactName  string  `json:"contact_name" binding:"required,min=2"`
	Email        string  `json:"email" binding:"required,email"`
	Phone        *string `json:"phone"`
	ListingURL   *string `json:"listing_url"`
	Reason       string  `json:"reason" binding:"required,min=10"`
}

// CreateRemovalRequest is the handler for POST /v1/api/removal-request
func (h *Handlers) CreateRemovalRequest(c *gin.Context) {
	var input CreateRemovalRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	requestID := uuid.NewString()
	query := `
		INSERT INTO removal_requests
		(id, business_name, contact_name, email, phone, listing_url, reason, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 'pending', ?)`

	_, err := h.DB.Exec(query,
		requestID, input.BusinessName, input.ContactName, input.Email,
		input.Phone, input.ListingURL, input.Reason, time.Now())
	if err != nil {
		log.Printf("removal request insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save removal request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"id":      requestID,
	})
}

// GetRemovalRequests is the handler for GET /v1/api/removal-request
// All requests, newest first. No filters: the volume at this scale does not
// warrant them.
func (h *Handlers) GetRemovalRequests(c *gin.Context) {
	query := `
		SELECT id, business_name, contact_name, email, phone, listing_url,
			reason, status, admin_notes, created_at
		FROM removal_requests
		ORDER BY created_at DESC`

	rows, err := h.DB.Query(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	requests := []*models.RemovalRequest{}
	for rows.Next() {
		var r models.RemovalRequest
		var phone, listingURL, adminNotes sql.NullString

		if err := rows.Scan(
			&r.ID, &r.BusinessName, &r.ContactName, &r.Email, &phone,
			&listingURL, &r.Reason, &r.Status, &adminNotes, &r.CreatedAt,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan removal request row"})
			return
		}

		if phone.Valid {
			r.Phone = &phone.String
		}
		if listingURL.Valid {
			r.ListingURL = &listingURL.String
		}
		if adminNotes.Valid {
			r.AdminNotes = &adminNotes.String
		}

		requests = append(requests, &r)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating removal request rows"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(requests),
		"requests": requests,
	})
}

// UpdateRemovalRequestStatusInput is the JSON body for the admin decision.
type UpdateRemovalRequestStatusInput struct {
	Status     string  `json:"status" binding:"required,oneof=pending approved rejected completed"`
	AdminNotes *string `json:"admin_notes"`
}

// UpdateRemovalRequestStatus is the handler for
// PATCH /v1/admin/removal-requests/:id/status
func (h *Handlers) UpdateRemovalRequestStatus(c *gin.Context) {
	requestID := c.Param("id")

	var input UpdateRemovalRequestStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	querySet := "status = ?"
	queryArgs := []interface{}{input.Status}
	if input.AdminNotes != nil {
		querySet += ", admin_notes = ?"
		queryArgs = append(queryArgs, *input.AdminNotes)
	}
	queryArgs = append(queryArgs, requestID)

	result, err := h.DB.Exec("UPDATE removal_requests SET "+querySet+" WHERE id = ?", queryArgs...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update removal request"})
		return
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check affected rows"})
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Removal request not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Removal request updated"})
}
