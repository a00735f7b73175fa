package handlers

import (
	"database/sql"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/italypros/directory-api/internal/models"
)

// professionalsPerPage is the fixed page size of the public listing.
const professionalsPerPage = 12

const professionalColumns = `
	id, slug, name, contact_person, category,
	regions, cities, languages,
	website, email, phone, description, services, highlights,
	is_verified, is_featured, is_premium, premium_until,
	view_count, lead_count, avg_rating, review_count,
	created_at, updated_at`

// professionalFilter is the listing filter/sort/page selection, rebuilt from
// the request's query parameters on every request. All dimensions combine with
// AND; the values inside the region and language dimensions combine with OR.
type professionalFilter struct {
	Category  string
	Verified  bool
	Premium   bool
	Regions   []string
	Languages []string
	Search    string
	Sort      string
	Page      int
}

func professionalFilterFromQuery(c *gin.Context) professionalFilter {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	return professionalFilter{
		Category:  c.Query("category"),
		Verified:  c.Query("verified") == "true",
		Premium:   c.Query("premium") == "true",
		Regions:   c.QueryArray("region"),
		Languages: c.QueryArray("language"),
		Search:    c.Query("search"),
		Sort:      c.DefaultQuery("sort", "rating"),
		Page:      page,
	}
}

// jsonToken builds a LIKE pattern matching one quoted element of a JSON
// string array, e.g. %"toscana"%. The stored values are lowercase slugs, so
// the surrounding quotes make the match token-exact.
func jsonToken(value string) string {
	return `%"` + value + `"%`
}

// whereClause renders the filter's predicate. The same clause backs both the
// COUNT query and the page query so the total always matches the page set.
func (f professionalFilter) whereClause() (string, []interface{}) {
	var b strings.Builder
	var args []interface{}

	b.WriteString(" WHERE 1=1")

	if f.Category != "" {
		b.WriteString(" AND category = ?")
		args = append(args, f.Category)
	}
	if f.Verified {
		b.WriteString(" AND is_verified = 1")
	}
	if f.Premium {
		b.WriteString(" AND is_premium = 1")
	}

	if len(f.Regions) > 0 {
		// Match any requested region, or the "all" sentinel.
		parts := make([]string, 0, len(f.Regions)+1)
		for _, region := range f.Regions {
			parts = append(parts, "regions LIKE ?")
			args = append(args, jsonToken(region))
		}
		parts = append(parts, "regions LIKE ?")
		args = append(args, jsonToken(models.RegionAll))
		b.WriteString(" AND (" + strings.Join(parts, " OR ") + ")")
	}

	if len(f.Languages) > 0 {
		parts := make([]string, 0, len(f.Languages))
		for _, language := range f.Languages {
			parts = append(parts, "languages LIKE ?")
			args = append(args, jsonToken(language))
		}
		b.WriteString(" AND (" + strings.Join(parts, " OR ") + ")")
	}

	if f.Search != "" {
		term := "%" + strings.ToLower(f.Search) + "%"
		b.WriteString(" AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)")
		args = append(args, term, term)
	}

	return b.String(), args
}

func (f professionalFilter) orderClause() string {
	switch f.Sort {
	case "reviews":
		return " ORDER BY review_count DESC"
	case "name":
		return " ORDER BY name ASC"
	case "newest":
		return " ORDER BY created_at DESC"
	}
	// Default "rating": paid placement first, then featured, then rating.
	return " ORDER BY is_premium DESC, is_featured DESC, avg_rating DESC"
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfessional(row rowScanner) (*models.Professional, error) {
	var p models.Professional
	var contactPerson, website, email, phone, description sql.NullString
	var regions, cities, languages, services, highlights []byte
	var premiumUntil sql.NullTime

	if err := row.Scan(
		&p.ID, &p.Slug, &p.Name, &contactPerson, &p.Category,
		&regions, &cities, &languages,
		&website, &email, &phone, &description, &services, &highlights,
		&p.IsVerified, &p.IsFeatured, &p.IsPremium, &premiumUntil,
		&p.ViewCount, &p.LeadCount, &p.AvgRating, &p.ReviewCount,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.Regions = unmarshalStringList(regions)
	p.Cities = unmarshalStringList(cities)
	p.Languages = unmarshalStringList(languages)
	p.Services = unmarshalStringList(services)
	p.Highlights = unmarshalStringList(highlights)

	if contactPerson.Valid {
		p.ContactPerson = &contactPerson.String
	}
	if website.Valid {
		p.Website = &website.String
	}
	if email.Valid {
		p.Email = &email.String
	}
	if phone.Valid {
		p.Phone = &phone.String
	}
	if description.Valid {
		p.Description = &description.String
	}
	if premiumUntil.Valid {
		p.PremiumUntil = &premiumUntil.Time
	}

	return &p, nil
}

// ListProfessionals is the handler for GET /v1/professionals
// It returns one page of the filtered listing plus the total count for the
// same predicate.
func (h *Handlers) ListProfessionals(c *gin.Context) {
	filter := professionalFilterFromQuery(c)
	where, args := filter.whereClause()

	// 1. --- Total count for this predicate ---
	var total int
	if err := h.DB.QueryRow("SELECT COUNT(*) FROM professionals"+where, args...).Scan(&total); err != nil {
		log.Printf("professional count query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	// 2. --- Page of results ---
	query := "SELECT" + professionalColumns + " FROM professionals" + where +
		filter.orderClause() + " LIMIT ? OFFSET ?"
	pageArgs := append(args, professionalsPerPage, (filter.Page-1)*professionalsPerPage)

	rows, err := h.DB.Query(query, pageArgs...)
	if err != nil {
		log.Printf("professional listing query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	professionals := []*models.Professional{}
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			log.Printf("professional scan failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan professional row"})
			return
		}
		professionals = append(professionals, p)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating professional rows"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"professionals": professionals,
		"total":         total,
		"page":          filter.Page,
		"per_page":      professionalsPerPage,
		"total_pages":   int(math.Ceil(float64(total) / float64(professionalsPerPage))),
	})
}

// GetProfessionalBySlug is the handler for GET /v1/professionals/:slug
// A successful lookup bumps the listing's view counter as a side effect. The
// counter is an approximate analytics figure, so the increment is atomic in
// SQL but fire-and-forget with respect to the response.
func (h *Handlers) GetProfessionalBySlug(c *gin.Context) {
	slugParam := c.Param("slug")

	row := h.DB.QueryRow("SELECT"+professionalColumns+" FROM professionals WHERE slug = ?", slugParam)
	professional, err := scanProfessional(row)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Professional not found"})
			return
		}
		log.Printf("professional lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	if _, err := h.DB.Exec("UPDATE professionals SET view_count = view_count + 1 WHERE id = ?", professional.ID); err != nil {
		log.Printf("view count increment failed for %s: %v", professional.ID, err)
	}

	category, err := h.getCategory(professional.Category)
	if err != nil && err != sql.ErrNoRows {
		log.Printf("category lookup failed: %v", err)
	}

	reviews, err := h.approvedReviews(professional.ID)
	if err != nil {
		log.Printf("approved reviews query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	similar, err := h.similarProfessionals(professional)
	if err != nil {
		log.Printf("similar professionals query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"professional": professional,
		"category":     category,
		"reviews":      reviews,
		"similar":      similar,
	})
}

// similarProfessionals returns up to 3 other professionals in the same
// category, best rated first.
func (h *Handlers) similarProfessionals(p *models.Professional) ([]*models.Professional, error) {
	query := "SELECT" + professionalColumns + ` FROM professionals
		WHERE category = ? AND id <> ?
		ORDER BY avg_rating DESC
		LIMIT 3`

	rows, err := h.DB.Query(query, p.Category, p.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	similar := []*models.Professional{}
	for rows.Next() {
		other, err := scanProfessional(rows)
		if err != nil {
			return nil, err
		}
		similar = append(similar, other)
	}
	return similar, rows.Err()
}

// ExpirePremiumListings clears the premium flag on listings whose paid period
// has lapsed. It runs on a schedule from main.
func (h *Handlers) ExpirePremiumListings() {
	now := time.Now()
	result, err := h.DB.Exec(`
		UPDATE professionals
		SET is_premium = 0, updated_at = ?
		WHERE is_premium = 1 AND premium_until IS NOT NULL AND premium_until < ?`,
		now, now)
	if err != nil {
		log.Printf("premium expiry sweep failed: %v", err)
		return
	}
	if expired, err := result.RowsAffected(); err == nil && expired > 0 {
		log.Printf("premium expiry sweep: cleared %d listing(s)", expired)
	}
}
