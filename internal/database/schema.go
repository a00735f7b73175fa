package database

import (
	"database/sql"
)

// The DDL sticks to the SQL subset that both MySQL (production) and SQLite
// (handler tests) accept: VARCHAR/TEXT/INT/DECIMAL/DATETIME, no engine-specific
// column options. Row ids are application-generated UUIDs, so no auto-increment
// is needed anywhere.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id VARCHAR(64) PRIMARY KEY,
		name_en VARCHAR(120) NOT NULL,
		name_it VARCHAR(120) NOT NULL,
		plural_en VARCHAR(120) NOT NULL,
		description TEXT,
		why_needed TEXT,
		typical_fees VARCHAR(255),
		icon VARCHAR(64),
		display_order INT NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS professionals (
		id VARCHAR(36) PRIMARY KEY,
		slug VARCHAR(160) NOT NULL UNIQUE,
		name VARCHAR(160) NOT NULL,
		contact_person VARCHAR(160),
		category VARCHAR(64) NOT NULL,
		regions TEXT NOT NULL,
		cities TEXT,
		languages TEXT NOT NULL,
		website VARCHAR(255),
		email VARCHAR(255),
		phone VARCHAR(64),
		description TEXT,
		services TEXT,
		highlights TEXT,
		is_verified BOOLEAN NOT NULL DEFAULT 0,
		is_featured BOOLEAN NOT NULL DEFAULT 0,
		is_premium BOOLEAN NOT NULL DEFAULT 0,
		premium_until DATETIME,
		view_count INT NOT NULL DEFAULT 0,
		lead_count INT NOT NULL DEFAULT 0,
		avg_rating DECIMAL(2,1) NOT NULL DEFAULT 0,
		review_count INT NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		FOREIGN KEY (category) REFERENCES categories(id)
	)`,

	`CREATE TABLE IF NOT EXISTS leads (
		id VARCHAR(36) PRIMARY KEY,
		professional_id VARCHAR(36),
		name VARCHAR(160) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(64),
		country VARCHAR(64),
		message TEXT NOT NULL,
		property_type VARCHAR(64),
		budget_range VARCHAR(64),
		timeline VARCHAR(64),
		status VARCHAR(32) NOT NULL DEFAULT 'new',
		created_at DATETIME NOT NULL,
		FOREIGN KEY (professional_id) REFERENCES professionals(id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS reviews (
		id VARCHAR(36) PRIMARY KEY,
		professional_id VARCHAR(36),
		user_id VARCHAR(36),
		author_name VARCHAR(160) NOT NULL,
		author_country VARCHAR(64),
		rating INT NOT NULL,
		title VARCHAR(255),
		content TEXT NOT NULL,
		service_used VARCHAR(120),
		is_verified_purchase BOOLEAN NOT NULL DEFAULT 0,
		status VARCHAR(32) NOT NULL DEFAULT 'pending',
		admin_notes TEXT,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (professional_id) REFERENCES professionals(id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS removal_requests (
		id VARCHAR(36) PRIMARY KEY,
		business_name VARCHAR(160) NOT NULL,
		contact_name VARCHAR(160) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(64),
		listing_url VARCHAR(255),
		reason TEXT NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'pending',
		admin_notes TEXT,
		created_at DATETIME NOT NULL
	)`,
}

// Migrate creates the five application tables if they do not exist yet.
func Migrate(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
