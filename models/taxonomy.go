package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a top-level dress category row.
type Category struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// SubCategory belongs to one Category.
type SubCategory struct {
	ID          int     `json:"id"`
	CategoryID  int     `json:"category_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// CategoryTree is a category with its sub-categories nested, as
// returned by the nested-read query.
type CategoryTree struct {
	ID            int           `json:"id"`
	Name          string        `json:"name"`
	Description   *string       `json:"description,omitempty"`
	SubCategories []SubCategory `json:"sub_categories"`
}

// ColourFamily is a named colour grouping used by dress taxonomy.
type ColourFamily struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	HexCodes  []string  `json:"hex_codes"`
	CreatedAt time.Time `json:"created_at"`
}

// Occasion is an event name dresses can be tagged with
// (e.g. "Wedding Guest"). Names are unique.
type Occasion struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Feature is a credit-billed capability (e.g. stylist analysis).
type Feature struct {
	ID          int       `json:"id"`
	FeatureCode string    `json:"feature_code"`
	Name        string    `json:"name"`
	CreditCost  int       `json:"credit_cost"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
