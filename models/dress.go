package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ColorSwatch describes one colour present in a dress image.
type ColorSwatch struct {
	Name     string  `bson:"name" json:"name"`
	Hex      string  `bson:"hex" json:"hex"`
	Coverage float64 `bson:"coverage" json:"coverage"` // fraction 0-1
}

// AIFeatures holds analytical fields produced by the stylist service.
type AIFeatures struct {
	ClarityScore     float64   `bson:"clarity_score,omitempty" json:"clarity_score,omitempty"`
	CompositionScore float64   `bson:"composition_score,omitempty" json:"composition_score,omitempty"`
	Embedding        []float64 `bson:"embedding,omitempty" json:"embedding,omitempty"`
	GeneratedTags    []string  `bson:"generated_tags,omitempty" json:"generated_tags,omitempty"`
}

// UserContext carries per-user annotations on a dress.
type UserContext struct {
	PersonalRating int    `bson:"personal_rating,omitempty" json:"personal_rating,omitempty"`
	Notes          string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// MediaAssets lists stored media for a dress.
type MediaAssets struct {
	ImageURLs []string `bson:"image_urls" json:"image_urls"`
	VideoURL  *string  `bson:"video_url,omitempty" json:"video_url,omitempty"`
}

// Dress is a document in MongoDB. Ownership (UserID) and the taxonomy
// ids reference Postgres rows; that consistency is maintained by the
// application, not by the stores.
type Dress struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Brand       *string            `bson:"brand,omitempty" json:"brand,omitempty"`
	Size        *string            `bson:"size,omitempty" json:"size,omitempty"`

	DressTypeID int `bson:"dress_type_id" json:"dress_type_id"`
	CategoryID  int `bson:"category_id" json:"category_id"`

	StyleTags        []string      `bson:"style_tags" json:"style_tags"`
	Material         []string      `bson:"material,omitempty" json:"material,omitempty"`
	Pattern          *string       `bson:"pattern,omitempty" json:"pattern,omitempty"`
	ColorPalette     []ColorSwatch `bson:"color_palette,omitempty" json:"color_palette,omitempty"`
	DominantColorHex *string       `bson:"dominant_color_hex,omitempty" json:"dominant_color_hex,omitempty"`
	AIFeatures       AIFeatures    `bson:"ai_features,omitempty" json:"ai_features,omitempty"`

	SeasonSuitability   []string `bson:"season_suitability" json:"season_suitability"`
	OccasionSuitability []string `bson:"occasion_suitability" json:"occasion_suitability"`

	UserContext UserContext `bson:"user_context,omitempty" json:"user_context,omitempty"`
	IsFavorite  bool        `bson:"is_favorite" json:"is_favorite"`

	MediaAssets MediaAssets `bson:"media_assets" json:"media_assets"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}
