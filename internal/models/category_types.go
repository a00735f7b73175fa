package models

import (
	"time"
)

// Category is the model for the 'categories' table.
// Static reference data: rows are seeded once and rarely change.
type Category struct {
	ID           string    `json:"id" db:"id"`
	NameEN       string    `json:"name_en" db:"name_en"`
	NameIT       string    `json:"name_it" db:"name_it"`
	PluralEN     string    `json:"plural_en" db:"plural_en"`
	Description  *string   `json:"description,omitempty" db:"description"`
	WhyNeeded    *string   `json:"why_needed,omitempty" db:"why_needed"`
	TypicalFees  *string   `json:"typical_fees,omitempty" db:"typical_fees"`
	Icon         *string   `json:"icon,omitempty" db:"icon"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
