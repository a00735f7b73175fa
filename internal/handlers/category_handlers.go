package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/italypros/directory-api/internal/models"
)

const categoryColumns = `
	id, name_en, name_it, plural_en, description, why_needed,
	typical_fees, icon, display_order, created_at`

func scanCategory(row rowScanner) (*models.Category, error) {
	var cat models.Category
	var description, whyNeeded, typicalFees, icon sql.NullString

	if err := row.Scan(
		&cat.ID, &cat.NameEN, &cat.NameIT, &cat.PluralEN,
		&description, &whyNeeded, &typicalFees, &icon,
		&cat.DisplayOrder, &cat.CreatedAt,
	); err != nil {
		return nil, err
	}

	if description.Valid {
		cat.Description = &description.String
	}
	if whyNeeded.Valid {
		cat.WhyNeeded = &whyNeeded.String
	}
	if typicalFees.Valid {
		cat.TypicalFees = &typicalFees.String
	}
	if icon.Valid {
		cat.Icon = &icon.String
	}

	return &cat, nil
}

func (h *Handlers) getCategory(id string) (*models.Category, error) {
	row := h.DB.QueryRow("SELECT"+categoryColumns+" FROM categories WHERE id = ?", id)
	return scanCategory(row)
}

// GetAllCategories is the handler for GET /v1/categories
func (h *Handlers) GetAllCategories(c *gin.Context) {
	rows, err := h.DB.Query("SELECT" + categoryColumns + " FROM categories ORDER BY display_order ASC")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan category row"})
			return
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating category rows"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
