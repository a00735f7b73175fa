package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/italypros/directory-api/internal/database"
	"github.com/italypros/directory-api/internal/handlers"
	"github.com/italypros/directory-api/internal/routes"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	// 1. --- Database Connection ---
	db, err := database.OpenDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// 2. --- Application Setup ---
	app := &handlers.Handlers{DB: db}

	// 3. --- Background Workers (Cron) ---
	// Expired premium listings are demoted once an hour. Reads during the hour
	// may still see is_premium = true past the expiry instant; that staleness
	// is acceptable.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@hourly", app.ExpirePremiumListings); err != nil {
		log.Fatalf("Failed to register premium expiry job: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// 4. --- Router Setup ---
	router := routes.SetupRouter(app)

	// 5. --- Start Server ---
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting directory API server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
