package models

import (
	"time"

	"github.com/google/uuid"
)

// Reserved wardrobe names. Every user owns one wardrobe with each of
// these names from signup onward; they cannot be renamed or deleted.
const (
	WardrobeNameDresses   = "Your Dresses"
	WardrobeNameOutfits   = "Your Outfits"
	WardrobeNameFavorites = "Your Favorites"
)

// Wardrobe represents a wardrobe row in Postgres, owned by one user.
type Wardrobe struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	Intent       *string   `json:"intent,omitempty"`
	Lifestyle    *string   `json:"lifestyle,omitempty"`
	NegativePref *string   `json:"negative_pref,omitempty"`
	Position     int       `json:"position"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsReserved reports whether the wardrobe carries one of the three
// protected default names.
func (w *Wardrobe) IsReserved() bool {
	switch w.Name {
	case WardrobeNameDresses, WardrobeNameOutfits, WardrobeNameFavorites:
		return true
	}
	return false
}

// WardrobeUpdate holds the mutable wardrobe fields. Nil fields are left
// untouched.
type WardrobeUpdate struct {
	Name         *string `json:"name,omitempty"`
	Intent       *string `json:"intent,omitempty"`
	Lifestyle    *string `json:"lifestyle,omitempty"`
	NegativePref *string `json:"negative_pref,omitempty"`
}

// Fields returns the set column names and values for a dynamic UPDATE.
func (u WardrobeUpdate) Fields() ([]string, []interface{}) {
	var cols []string
	var vals []interface{}
	if u.Name != nil {
		cols = append(cols, "name")
		vals = append(vals, u.Name)
	}
	if u.Intent != nil {
		cols = append(cols, "intent")
		vals = append(vals, u.Intent)
	}
	if u.Lifestyle != nil {
		cols = append(cols, "lifestyle")
		vals = append(vals, u.Lifestyle)
	}
	if u.NegativePref != nil {
		cols = append(cols, "negative_pref")
		vals = append(vals, u.NegativePref)
	}
	return cols, vals
}

// WardrobeDressLink is a join row between a wardrobe and a dress
// document id. The (wardrobe_id, dress_id_mongo) pair is unique.
type WardrobeDressLink struct {
	ID         int64     `json:"id"`
	WardrobeID uuid.UUID `json:"wardrobe_id"`
	DressID    string    `json:"dress_id_mongo"`
	CreatedAt  time.Time `json:"created_at"`
}

// WardrobeOutfitLink is a join row between a wardrobe and an outfit
// document id. The (wardrobe_id, outfit_id_mongo) pair is unique.
type WardrobeOutfitLink struct {
	ID         int64     `json:"id"`
	WardrobeID uuid.UUID `json:"wardrobe_id"`
	OutfitID   string    `json:"outfit_id_mongo"`
	CreatedAt  time.Time `json:"created_at"`
}
