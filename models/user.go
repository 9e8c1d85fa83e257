package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user row in Postgres. Rows are soft-deleted by
// flipping IsActive; hard deletes go through an explicit admin path.
type User struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	PhoneNumber   *string    `json:"phone_number,omitempty"`
	EmailID       string     `json:"email_id"`
	Password      string     `json:"-"` // bcrypt hash, never serialized
	Gender        *string    `json:"gender,omitempty"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	ColourTone    *string    `json:"colour_tone,omitempty"`
	Undertone     *string    `json:"undertone,omitempty"`
	BodyType      *string    `json:"body_type,omitempty"`
	HeightRange   *string    `json:"height_range,omitempty"`
	WeightRange   *string    `json:"weight_range,omitempty"`
	TopSize       *string    `json:"top_size,omitempty"`
	BottomSize    *string    `json:"bottom_size,omitempty"`
	CreditBalance int        `json:"credit_balance"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ProfileUpdate holds the optional profile fields a user may change
// after signup. Nil fields are left untouched.
type ProfileUpdate struct {
	Name        *string    `json:"name,omitempty"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	Gender      *string    `json:"gender,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	ColourTone  *string    `json:"colour_tone,omitempty"`
	Undertone   *string    `json:"undertone,omitempty"`
	BodyType    *string    `json:"body_type,omitempty"`
	HeightRange *string    `json:"height_range,omitempty"`
	WeightRange *string    `json:"weight_range,omitempty"`
	TopSize     *string    `json:"top_size,omitempty"`
	BottomSize  *string    `json:"bottom_size,omitempty"`
}

// Fields returns the set column names and values in a stable order,
// ready for a dynamic UPDATE.
func (p ProfileUpdate) Fields() ([]string, []interface{}) {
	var cols []string
	var vals []interface{}
	add := func(col string, v interface{}, set bool) {
		if set {
			cols = append(cols, col)
			vals = append(vals, v)
		}
	}
	add("name", p.Name, p.Name != nil)
	add("phone_number", p.PhoneNumber, p.PhoneNumber != nil)
	add("gender", p.Gender, p.Gender != nil)
	add("date_of_birth", p.DateOfBirth, p.DateOfBirth != nil)
	add("colour_tone", p.ColourTone, p.ColourTone != nil)
	add("undertone", p.Undertone, p.Undertone != nil)
	add("body_type", p.BodyType, p.BodyType != nil)
	add("height_range", p.HeightRange, p.HeightRange != nil)
	add("weight_range", p.WeightRange, p.WeightRange != nil)
	add("top_size", p.TopSize, p.TopSize != nil)
	add("bottom_size", p.BottomSize, p.BottomSize != nil)
	return cols, vals
}
