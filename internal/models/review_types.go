package models

import (
	"time"
)

// Review statuses. A review starts as pending; an admin decides approved or
// rejected, and may later flip between those two, but never back to pending.
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// Review is the model for the 'reviews' table.
type Review struct {
	ID                 string  `json:"id" db:"id"`
	ProfessionalID     *string `json:"professional_id,omitempty" db:"professional_id"`
	UserID             *string `json:"user_id,omitempty" db:"user_id"`
	AuthorName         string  `json:"author_name" db:"author_name"`
	AuthorCountry      *string `json:"author_country,omitempty" db:"author_country"`
	Rating             int     `json:"rating" db:"rating"`
	Title              *string `json:"title,omitempty" db:"title"`
	Content            string  `json:"content" db:"content"`
	ServiceUsed        *string `json:"service_used,omitempty" db:"service_used"`
	IsVerifiedPurchase bool    `json:"is_verified_purchase" db:"is_verified_purchase"`
	Status             string  `json:"status" db:"status"`
	AdminNotes         *string `json:"admin_notes,omitempty" db:"admin_notes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Joined from professionals for the moderation listing
	ProfessionalName *string `json:"professional_name,omitempty" db:"-"`
	ProfessionalSlug *string `json:"professional_slug,omitempty" db:"-"`
}
