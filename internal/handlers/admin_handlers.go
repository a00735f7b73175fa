package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/italypros/directory-api/internal/models"
)

//
// --- Admin: Dashboard Stats ---
//

// DashboardStats is the KPI block for the admin overview page.
type DashboardStats struct {
	Professionals  int `json:"professionals"`
	Verified       int `json:"verified"`
	Premium        int `json:"premium"`
	Leads          int `json:"leads"`
	NewLeads       int `json:"new_leads"`
	Reviews        int `json:"reviews"`
	PendingReviews int `json:"pending_reviews"`
}

// leadSummary is a trimmed lead row for the "recent activity" panel.
type leadSummary struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Status           string  `json:"status"`
	ProfessionalName *string `json:"professional_name,omitempty"`
	ProfessionalSlug *string `json:"professional_slug,omitempty"`
}

// professionalSummary is a trimmed professional row for the "top listings" panel.
type professionalSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int     `json:"review_count"`
	LeadCount   int     `json:"lead_count"`
	ViewCount   int     `json:"view_count"`
}

// GetDashboardStats is the handler for GET /v1/admin/dashboard-stats
func (h *Handlers) GetDashboardStats(c *gin.Context) {
	stats := DashboardStats{}

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM professionals", &stats.Professionals},
		{"SELECT COUNT(*) FROM professionals WHERE is_verified = 1", &stats.Verified},
		{"SELECT COUNT(*) FROM professionals WHERE is_premium = 1", &stats.Premium},
		{"SELECT COUNT(*) FROM leads", &stats.Leads},
		{"SELECT COUNT(*) FROM leads WHERE status = 'new'", &stats.NewLeads},
		{"SELECT COUNT(*) FROM reviews", &stats.Reviews},
		{"SELECT COUNT(*) FROM reviews WHERE status = 'pending'", &stats.PendingReviews},
	}
	for _, count := range counts {
		if err := h.DB.QueryRow(count.query).Scan(count.dest); err != nil {
			log.Printf("dashboard count failed (%s): %v", count.query, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
			return
		}
	}

	recentLeads, err := h.recentLeads(5)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	topProfessionals, err := h.topProfessionalsByLeads(5)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":             stats,
		"recent_leads":      recentLeads,
		"top_professionals": topProfessionals,
	})
}

func (h *Handlers) recentLeads(limit int) ([]leadSummary, error) {
	query := `
		SELECT l.id, l.name, l.email, l.status, p.name, p.slug
		FROM leads l
		LEFT JOIN professionals p ON l.professional_id = p.id
		ORDER BY l.created_at DESC
		LIMIT ?`

	rows, err := h.DB.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []leadSummary{}
	for rows.Next() {
		var l leadSummary
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Status, &l.ProfessionalName, &l.ProfessionalSlug); err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func (h *Handlers) topProfessionalsByLeads(limit int) ([]professionalSummary, error) {
	query := `
		SELECT id, name, slug, avg_rating, review_count, lead_count, view_count
		FROM professionals
		ORDER BY lead_count DESC
		LIMIT ?`

	rows, err := h.DB.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	professionals := []professionalSummary{}
	for rows.Next() {
		var p professionalSummary
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.AvgRating, &p.ReviewCount, &p.LeadCount, &p.ViewCount); err != nil {
			return nil, err
		}
		professionals = append(professionals, p)
	}
	return professionals, rows.Err()
}

//
// --- Admin: Flag Toggle ---
//

// ToggleProfessionalFlagInput names one of the three recognized flags. The
// oneof binding keeps open-ended field names out of the SQL layer entirely.
type ToggleProfessionalFlagInput struct {
	Field string `json:"field" binding:"required,oneof=verified premium featured"`
}

// ToggleProfessionalFlag is the handler for
// PATCH /v1/admin/professionals/:id/toggle
// It flips the named boolean to its logical negation in a single UPDATE.
func (h *Handlers) ToggleProfessionalFlag(c *gin.Context) {
	professionalID := c.Param("id")

	var input ToggleProfessionalFlagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	column, ok := models.ProfessionalFlag(input.Field).Column()
	if !ok {
		// Unreachable past the oneof binding; kept as a loud guard.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unrecognized flag"})
		return
	}

	query := fmt.Sprintf("UPDATE professionals SET %s = NOT %s, updated_at = ? WHERE id = ?", column, column)
	result, err := h.DB.Exec(query, time.Now(), professionalID)
	if err != nil {
		log.Printf("flag toggle failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle flag"})
		return
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check affected rows"})
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Professional not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Flag toggled"})
}

//
// --- Admin: Professional Creation ---
//

// CreateProfessionalInput is the JSON body for POST /v1/admin/professionals
type CreateProfessionalInput struct {
	Name          string   `json:"name" binding:"required,min=2"`
	ContactPerson *string  `json:"contact_person"`
	Category      string   `json:"category" binding:"required"`
	Regions       []string `json:"regions" binding:"required,min=1"`
	Cities        []string `json:"cities"`
	Languages     []string `json:"languages" binding:"required,min=1"`
	Website       *string  `json:"website"`
	Email         *string  `json:"email" binding:"omitempty,email"`
	Phone         *string  `json:"phone"`
	Description   string   `json:"description" binding:"required"`
	Services      []string `json:"services"`
	Highlights    []string `json:"highlights"`
}

// CreateProfessional is the handler for POST /v1/admin/professionals
// The URL slug is derived from the name and is immutable afterwards; a numeric
// suffix resolves collisions. New listings start unverified with zeroed
// counters and aggregate.
func (h *Handlers) CreateProfessional(c *gin.Context) {
	var input CreateProfessionalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	var categoryExists int
	err := h.DB.QueryRow("SELECT COUNT(*) FROM categories WHERE id = ?", input.Category).Scan(&categoryExists)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	if categoryExists == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category: " + input.Category})
		return
	}

	professionalSlug, err := h.uniqueSlug(input.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	professionalID := uuid.NewString()
	now := time.Now()
	query := `
		INSERT INTO professionals
		(id, slug, name, contact_person, category, regions, cities, languages,
		website, email, phone, description, services, highlights,
		is_verified, is_featured, is_premium,
		view_count, lead_count, avg_rating, review_count,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 0, 0, 0, 0, 0, 0, ?, ?)`

	_, err = h.DB.Exec(query,
		professionalID, professionalSlug, input.Name, input.ContactPerson, input.Category,
		marshalStringList(input.Regions), marshalStringList(input.Cities), marshalStringList(input.Languages),
		input.Website, input.Email, input.Phone, input.Description,
		marshalStringList(input.Services), marshalStringList(input.Highlights),
		now, now)
	if err != nil {
		log.Printf("professional insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create professional"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"id":      professionalID,
		"slug":    professionalSlug,
	})
}

// uniqueSlug slugifies the name and appends -2, -3, ... until no existing
// listing claims it.
func (h *Handlers) uniqueSlug(name string) (string, error) {
	base := slug.Make(name)
	candidate := base
	for i := 2; ; i++ {
		var taken int
		if err := h.DB.QueryRow("SELECT COUNT(*) FROM professionals WHERE slug = ?", candidate).Scan(&taken); err != nil {
			return "", err
		}
		if taken == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
