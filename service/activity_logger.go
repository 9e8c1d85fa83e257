package service

import (
	"context"
	"log"

	"hoku-backend/models"
)

// ActivityStore is the persistence surface the logger writes to.
type ActivityStore interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
}

// ActivityLogger writes domain activity entries. Logging is
// fire-and-forget: a failed write is reported to the operational log and
// never propagated, so no workflow fails because its audit entry did.
type ActivityLogger struct {
	store ActivityStore
}

// NewActivityLogger creates an activity logger over the given store.
func NewActivityLogger(store ActivityStore) *ActivityLogger {
	return &ActivityLogger{store: store}
}

// Log persists one activity entry, swallowing any store error.
func (l *ActivityLogger) Log(ctx context.Context, entry *models.ActivityLog) {
	if l == nil || l.store == nil {
		return
	}
	if err := l.store.Create(ctx, entry); err != nil {
		log.Printf("[activity] failed to record %s/%s: %v", entry.ActionType, entry.Status, err)
	}
}
