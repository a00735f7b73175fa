package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers holds the shared dependencies for all HTTP handlers.
type Handlers struct {
	DB *sql.DB
}

// HealthCheck is the handler for GET /v1/health
func (h *Handlers) HealthCheck(c *gin.Context) {
	dbStatus := "ok"
	if err := h.DB.Ping(); err != nil {
		dbStatus = "unreachable"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": dbStatus,
	})
}

// --- JSON string-set helpers ---
// regions, cities, languages, services and highlights are stored as JSON
// arrays of strings in TEXT columns.

func unmarshalStringList(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

func marshalStringList(values []string) string {
	if values == nil {
		values = []string{}
	}
	raw, _ := json.Marshal(values)
	return string(raw)
}
