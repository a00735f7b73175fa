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

// CreateLeadInput is the JSON body for POST /v1/api/contact
type CreateLeadInput struct {
	ProfessionalID string  `json:"professional_id" binding:"required,uuid4"`
	Name           string  `json:"name" binding:"required,min=2"`
	Email          string  `json:"email" binding:"required,email"`
	Phone          *string `json:"phone"`
	Country        *string `json:"country"`
	Message        string  `json:"message" binding:"required,min=10"`
	PropertyType   *string `json:"property_type"`
	BudgetRange    *string `json:"budget_range"`
	Timeline       *string `json:"timeline"`
}

// CreateLead is the handler for POST /v1/api/contact
// The lead insert is the authoritative write; the professional's lead counter
// is bumped afterwards with an atomic UPDATE. A counter failure is logged and
// does not fail the submission.
func (h *Handlers) CreateLead(c *gin.Context) {
	var input CreateLeadInput
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

	leadID := uuid.NewString()
	query := `
		INSERT INTO leads
		(id, professional_id, name, email, phone, country, message,
		property_type, budget_range, timeline, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'new', ?)`

	_, err = h.DB.Exec(query,
		leadID, input.ProfessionalID, input.Name, input.Email, input.Phone,
		input.Country, input.Message, input.PropertyType, input.BudgetRange,
		input.Timeline, time.Now())
	if err != nil {
		log.Printf("lead insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save enquiry"})
		return
	}

	if _, err := h.DB.Exec("UPDATE professionals SET lead_count = lead_count + 1 WHERE id = ?", input.ProfessionalID); err != nil {
		log.Printf("lead count increment failed for %s: %v", input.ProfessionalID, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"lead_id": leadID,
	})
}

//
// --- Admin: Lead Management ---
//

// GetLeads is the handler for GET /v1/admin/leads
// Returns all leads newest first, optionally narrowed by ?status=, with the
// target professional's name and slug joined in.
func (h *Handlers) GetLeads(c *gin.Context) {
	statusFilter := c.Query("status")

	query := `
		SELECT
			l.id, l.professional_id, l.name, l.email, l.phone, l.country,
			l.message, l.property_type, l.budget_range, l.timeline, l.status,
			l.created_at,
			p.name, p.slug
		FROM leads l
		LEFT JOIN professionals p ON l.professional_id = p.id`

	args := []interface{}{}
	if statusFilter != "" {
		query += " WHERE l.status = ?"
		args = append(args, statusFilter)
	}
	query += " ORDER BY l.created_at DESC"

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	leads := []*models.Lead{}
	for rows.Next() {
		var l models.Lead
		var professionalID, phone, country, propertyType, budgetRange, timeline sql.NullString
		var professionalName, professionalSlug sql.NullString

		if err := rows.Scan(
			&l.ID, &professionalID, &l.Name, &l.Email, &phone, &country,
			&l.Message, &propertyType, &budgetRange, &timeline, &l.Status,
			&l.CreatedAt,
			&professionalName, &professionalSlug,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan lead row"})
			return
		}

		if professionalID.Valid {
			l.ProfessionalID = &professionalID.String
		}
		if phone.Valid {
			l.Phone = &phone.String
		}
		if country.Valid {
			l.Country = &country.String
		}
		if propertyType.Valid {
			l.PropertyType = &propertyType.String
		}
		if budgetRange.Valid {
			l.BudgetRange = &budgetRange.String
		}
		if timeline.Valid {
			l.Timeline = &timeline.String
		}
		if professionalName.Valid {
			l.ProfessionalName = &professionalName.String
		}
		if professionalSlug.Valid {
			l.ProfessionalSlug = &professionalSlug.String
		}

		leads = append(leads, &l)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating lead rows"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leads": leads})
}

// UpdateLeadStatusInput is the JSON body for the lead status update.
type UpdateLeadStatusInput struct {
	Status string `json:"status" binding:"required,oneof=new contacted converted archived"`
}

// UpdateLeadStatus is the handler for PATCH /v1/admin/leads/:id/status
func (h *Handlers) UpdateLeadStatus(c *gin.Context) {
	leadID := c.Param("id")

	var input UpdateLeadStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	result, err := h.DB.Exec("UPDATE leads SET status = ? WHERE id = ?", input.Status, leadID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lead status"})
		return
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check affected rows"})
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Lead status updated"})
}
