package routes

import (
	"net/http"
	"os"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/italypros/directory-api/internal/handlers"
)

// CORSMiddleware allows the frontend origin to call the API. The origin is
// configurable so staging and production can lock it down; the default is
// permissive for local development.
func CORSMiddleware() gin.HandlerFunc {
	allowOrigin := os.Getenv("CORS_ALLOW_ORIGIN")
	if allowOrigin == "" {
		allowOrigin = "*"
	}

	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Cache-Control, X-Requested-With, accept, origin")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Preflight OPTIONS requests get an empty 204.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// useJSONFieldNames makes validator errors report the JSON field name instead
// of the Go struct field name, so clients see "message" rather than "Message".
func useJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(CORSMiddleware())
	useJSONFieldNames()

	v1 := router.Group("/v1")
	{
		v1.GET("/health", h.HealthCheck)

		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Public Directory Routes ---
		v1.GET("/categories", h.GetAllCategories)
		v1.GET("/professionals", h.ListProfessionals)
		v1.GET("/professionals/:slug", h.GetProfessionalBySlug)

		// --- Public Form & Tool Routes ---
		api := v1.Group("/api")
		{
			api.POST("/contact", h.CreateLead)

			api.GET("/reviews", h.GetApprovedReviews)
			api.POST("/reviews", h.CreateReview)

			api.POST("/removal-request", h.CreateRemovalRequest)
			api.GET("/removal-request", h.GetRemovalRequests)

			api.POST("/calculate", h.Calculate)
			api.GET("/tax-rates", h.GetTaxRates)
			api.GET("/rates", h.GetExchangeRates)
		}

		// --- Admin Routes ---
		// TODO: add an auth middleware on this group before exposing the API
		// publicly; every route below mutates or reads back-office data.
		admin := v1.Group("/admin")
		{
			admin.GET("/dashboard-stats", h.GetDashboardStats)

			admin.POST("/professionals", h.CreateProfessional)
			admin.PATCH("/professionals/:id/toggle", h.ToggleProfessionalFlag)

			admin.GET("/reviews", h.GetReviewsForModeration)
			admin.PATCH("/reviews/:id/status", h.UpdateReviewStatus)

			admin.GET("/leads", h.GetLeads)
			admin.PATCH("/leads/:id/status", h.UpdateLeadStatus)

			admin.PATCH("/removal-requests/:id/status", h.UpdateRemovalRequestStatus)
		}
	}

	return router
}
