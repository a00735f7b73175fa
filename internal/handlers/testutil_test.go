package handlers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/italypros/directory-api/internal/database"
	"github.com/italypros/directory-api/internal/handlers"
	"github.com/italypros/directory-api/internal/routes"
)

// newTestServer wires the full router against an in-memory SQLite database.
// The schema sticks to the SQL subset both engines accept, so the handlers run
// unmodified against it.
func newTestServer(t *testing.T) (*sql.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// One connection keeps every query on the same in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db))

	app := &handlers.Handlers{DB: db}
	return db, routes.SetupRouter(app)
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

// detailFields extracts the offending field names from a validation 400 body.
func detailFields(t *testing.T, body map[string]interface{}) []string {
	t.Helper()
	details, ok := body["details"].([]interface{})
	require.True(t, ok, "expected details list, got: %v", body)
	fields := make([]string, 0, len(details))
	for _, d := range details {
		fields = append(fields, d.(map[string]interface{})["field"].(string))
	}
	return fields
}

func jsonList(values []string) string {
	if values == nil {
		values = []string{}
	}
	raw, _ := json.Marshal(values)
	return string(raw)
}

func insertCategory(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO categories (id, name_en, name_it, plural_en, display_order, created_at)
		VALUES (?, ?, ?, ?, 0, ?)`,
		id, id, id, id+"s", time.Now())
	require.NoError(t, err)
}

// testProfessional carries the columns a test cares about; everything else
// gets a sensible default.
type testProfessional struct {
	Name         string
	Slug         string
	Category     string
	Regions      []string
	Languages    []string
	Description  string
	Verified     bool
	Featured     bool
	Premium      bool
	PremiumUntil *time.Time
	LeadCount    int
	AvgRating    float64
	ReviewCount  int
	CreatedAt    time.Time
}

func insertProfessional(t *testing.T, db *sql.DB, p testProfessional) string {
	t.Helper()
	if p.Name == "" {
		p.Name = "Test Professional"
	}
	if p.Slug == "" {
		p.Slug = uuid.NewString()
	}
	if p.Category == "" {
		p.Category = "lawyer"
	}
	if len(p.Regions) == 0 {
		p.Regions = []string{"toscana"}
	}
	if len(p.Languages) == 0 {
		p.Languages = []string{"english"}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO professionals
		(id, slug, name, category, regions, cities, languages, description,
		is_verified, is_featured, is_premium, premium_until,
		view_count, lead_count, avg_rating, review_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?, ?, ?)`,
		id, p.Slug, p.Name, p.Category,
		jsonList(p.Regions), jsonList(nil), jsonList(p.Languages), p.Description,
		p.Verified, p.Featured, p.Premium, p.PremiumUntil,
		p.LeadCount, p.AvgRating, p.ReviewCount, p.CreatedAt, p.CreatedAt)
	require.NoError(t, err)
	return id
}

func insertReview(t *testing.T, db *sql.DB, professionalID string, rating int, status string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO reviews
		(id, professional_id, author_name, rating, content, is_verified_purchase, status, created_at)
		VALUES (?, ?, 'Test Author', ?, 'Detailed enough review content for the checks.', 0, ?, ?)`,
		id, professionalID, rating, status, time.Now())
	require.NoError(t, err)
	return id
}

func insertLead(t *testing.T, db *sql.DB, professionalID, status string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO leads (id, professional_id, name, email, message, status, created_at)
		VALUES (?, ?, 'Test Buyer', 'buyer@example.com', 'Looking for help with a purchase.', ?, ?)`,
		id, professionalID, status, time.Now())
	require.NoError(t, err)
	return id
}

func professionalAggregates(t *testing.T, db *sql.DB, id string) (avg float64, count int) {
	t.Helper()
	err := db.QueryRow("SELECT avg_rating, review_count FROM professionals WHERE id = ?", id).
		Scan(&avg, &count)
	require.NoError(t, err)
	return avg, count
}

func professionalCounter(t *testing.T, db *sql.DB, id, column string) int {
	t.Helper()
	var value int
	err := db.QueryRow("SELECT "+column+" FROM professionals WHERE id = ?", id).Scan(&value)
	require.NoError(t, err)
	return value
}
