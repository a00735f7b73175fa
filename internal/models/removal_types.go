package models

import (
	"time"
)

// Removal request statuses.
const (
	RemovalStatusPending   = "pending"
	RemovalStatusApproved  = "approved"
	RemovalStatusRejected  = "rejected"
	RemovalStatusCompleted = "completed"
)

// RemovalRequest is the model for the 'removal_requests' table. It is filed by
// a listed business asking to be taken off the directory.
type RemovalRequest struct {
	ID           string  `json:"id" db:"id"`
	BusinessName string  `json:"business_name" db:"business_name"`
	ContactName  string  `json:"contact_name" db:"contact_name"`
	Email        string  `json:"email" db:"email"`
	Phone        *string `json:"phone,omitempty" db:"phone"`
	ListingURL   *string `json:"listing_url,omitempty" db:"listing_url"`
	Reason       string  `json:"reason" db:"reason"`
	Status       string  `json:"status" db:"status"`
	AdminNotes   *string `json:"admin_notes,omitempty" db:"admin_notes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
