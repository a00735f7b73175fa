package models

import (
	"time"
)

// Professional is the model for the 'professionals' table.
// Pointers are used for nullable columns so they serialize as null/absent
// instead of zero values. The string-set columns (regions, cities, languages,
// services, highlights) are stored as JSON arrays in TEXT columns.
type Professional struct {
	ID            string  `json:"id" db:"id"`
	Slug          string  `json:"slug" db:"slug"`
	Name          string  `json:"name" db:"name"`
	ContactPerson *string `json:"contact_person,omitempty" db:"contact_person"`
	Category      string  `json:"category" db:"category"`

	Regions   []string `json:"regions"`
	Cities    []string `json:"cities"`
	Languages []string `json:"languages"`

	Website     *string `json:"website,omitempty" db:"website"`
	Email       *string `json:"email,omitempty" db:"email"`
	Phone       *string `json:"phone,omitempty" db:"phone"`
	Description *string `json:"description,omitempty" db:"description"`

	Services   []string `json:"services"`
	Highlights []string `json:"highlights"`

	// --- Commercial flags ---
	IsVerified   bool       `json:"is_verified" db:"is_verified"`
	IsFeatured   bool       `json:"is_featured" db:"is_featured"`
	IsPremium    bool       `json:"is_premium" db:"is_premium"`
	PremiumUntil *time.Time `json:"premium_until,omitempty" db:"premium_until"`

	// --- Stats ---
	// avg_rating and review_count are derived from approved reviews only and
	// are written exclusively by the rating recompute.
	ViewCount   int     `json:"view_count" db:"view_count"`
	LeadCount   int     `json:"lead_count" db:"lead_count"`
	AvgRating   float64 `json:"avg_rating" db:"avg_rating"`
	ReviewCount int     `json:"review_count" db:"review_count"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// RegionAll is the sentinel region value meaning "covers all of Italy".
// A professional whose regions contain it matches every region filter.
const RegionAll = "all"

// ProfessionalFlag identifies one of the three admin-togglable listing flags.
// Keeping this a closed set means an unrecognized flag name cannot reach the
// SQL layer.
type ProfessionalFlag string

const (
	FlagVerified ProfessionalFlag = "verified"
	FlagPremium  ProfessionalFlag = "premium"
	FlagFeatured ProfessionalFlag = "featured"
)

// Column returns the database column backing the flag. The boolean reports
// whether the flag is one of the three recognized values.
func (f ProfessionalFlag) Column() (string, bool) {
	switch f {
	case FlagVerified:
		return "is_verified", true
	case FlagPremium:
		return "is_premium", true
	case FlagFeatured:
		return "is_featured", true
	}
	return "", false
}
