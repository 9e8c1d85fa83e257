package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ActivityStatus is the resolution recorded for a logged action.
type ActivityStatus string

const (
	ActivitySuccess ActivityStatus = "SUCCESS"
	ActivityFailure ActivityStatus = "FAILURE"
)

// ActivityMeta is free-form context stored as JSONB.
type ActivityMeta map[string]interface{}

// Value implements driver.Valuer for JSONB.
func (m ActivityMeta) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for JSONB.
func (m *ActivityMeta) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, m)
}

// ActivityLog is an append-only row in user_actions_log. TargetEntityID
// is free text: it may reference a row in either store, with no foreign
// key. UserID uuid.Nil is stored as NULL (actor unknown).
type ActivityLog struct {
	ID               uuid.UUID      `json:"id"`
	UserID           uuid.UUID      `json:"user_id"`
	ActionType       string         `json:"action_type"`
	SourceFeature    string         `json:"source_feature,omitempty"`
	TargetEntityType string         `json:"target_entity_type,omitempty"`
	TargetEntityID   string         `json:"target_entity_id,omitempty"`
	Status           ActivityStatus `json:"status"`
	Metadata         ActivityMeta   `json:"metadata,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}
