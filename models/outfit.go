package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DressComponent names one dress inside an outfit, along with the
// taxonomy ids recorded at composition time. The referenced dress
// document is never validated to exist.
type DressComponent struct {
	DressID     string `bson:"dress_id" json:"dress_id"`
	DressTypeID int    `bson:"dress_type_id" json:"dress_type_id"`
	CategoryID  int    `bson:"category_id" json:"category_id"`
}

// Outfit is a document in MongoDB: an ordered set of dress references
// owned by one user.
type Outfit struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"user_id" json:"user_id"`
	Name            string             `bson:"name" json:"name"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	DressComponents []DressComponent   `bson:"dress_components" json:"dress_components"`
	Occasion        *string            `bson:"occasion,omitempty" json:"occasion,omitempty"`
	IsFavorite      bool               `bson:"is_favorite" json:"is_favorite"`
	CreatedAt       time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updated_at"`
}
