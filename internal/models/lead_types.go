package models

import (
	"time"
)

// Lead statuses. A lead is immutable after creation except for this field.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusConverted = "converted"
	LeadStatusArchived  = "archived"
)

// Lead is the model for the 'leads' table.
type Lead struct {
	ID             string  `json:"id" db:"id"`
	ProfessionalID *string `json:"professional_id,omitempty" db:"professional_id"`
	Name           string  `json:"name" db:"name"`
	Email          string  `json:"email" db:"email"`
	Phone          *string `json:"phone,omitempty" db:"phone"`
	Country        *string `json:"country,omitempty" db:"country"`
	Message        string  `json:"message" db:"message"`
	PropertyType   *string `json:"property_type,omitempty" db:"property_type"`
	BudgetRange    *string `json:"budget_range,omitempty" db:"budget_range"`
	Timeline       *string `json:"timeline,omitempty" db:"timeline"`
	Status         string  `json:"status" db:"status"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Joined from professionals for the admin listing (not table columns)
	ProfessionalName *string `json:"professional_name,omitempty" db:"-"`
	ProfessionalSlug *string `json:"professional_slug,omitempty" db:"-"`
}
