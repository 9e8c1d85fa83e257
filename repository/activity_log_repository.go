package repository

import (
	"context"
	"errors"

	"hoku-backend/apperr"
	"hoku-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const activityColumns = `id, user_id, action_type, source_feature, target_entity_type,
	target_entity_id, status, metadata, created_at`

// ActivityLogRepository handles the append-only user_actions_log table.
type ActivityLogRepository struct {
	db *pgxpool.Pool
}

// NewActivityLogRepository creates a new activity log repository.
func NewActivityLogRepository(db *pgxpool.Pool) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

func scanActivity(row pgx.Row) (*models.ActivityLog, error) {
	entry := &models.ActivityLog{}
	var userID *uuid.UUID
	var sourceFeature, targetType, targetID *string
	err := row.Scan(
		&entry.ID, &userID, &entry.ActionType, &sourceFeature, &targetType,
		&targetID, &entry.Status, &entry.Metadata, &entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if userID != nil {
		entry.UserID = *userID
	}
	if sourceFeature != nil {
		entry.SourceFeature = *sourceFeature
	}
	if targetType != nil {
		entry.TargetEntityType = *targetType
	}
	if targetID != nil {
		entry.TargetEntityID = *targetID
	}
	return entry, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create appends one log entry. A uuid.Nil user is stored as NULL.
func (r *ActivityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	query := `
		INSERT INTO user_actions_log (
			user_id, action_type, source_feature, target_entity_type,
			target_entity_id, status, metadata
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	var userID *uuid.UUID
	if entry.UserID != uuid.Nil {
		userID = &entry.UserID
	}

	return r.db.QueryRow(
		ctx, query,
		userID,
		entry.ActionType,
		nullable(entry.SourceFeature),
		nullable(entry.TargetEntityType),
		nullable(entry.TargetEntityID),
		entry.Status,
		entry.Metadata,
	).Scan(&entry.ID, &entry.CreatedAt)
}

// List retrieves all log entries, newest first.
func (r *ActivityLogRepository) List(ctx context.Context) ([]*models.ActivityLog, error) {
	return r.list(ctx, `SELECT `+activityColumns+` FROM user_actions_log ORDER BY created_at DESC`)
}

// ListByUserID retrieves all log entries for a user, newest first.
func (r *ActivityLogRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.ActivityLog, error) {
	return r.list(ctx,
		`SELECT `+activityColumns+` FROM user_actions_log WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
}

func (r *ActivityLogRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.ActivityLog, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.ActivityLog
	for rows.Next() {
		entry, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// GetByID retrieves a single log entry.
func (r *ActivityLogRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ActivityLog, error) {
	entry, err := scanActivity(r.db.QueryRow(ctx,
		`SELECT `+activityColumns+` FROM user_actions_log WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("LOG_NOT_FOUND", "activity log entry not found")
	}
	return entry, err
}

// DeleteByID removes one entry. Administrative use.
func (r *ActivityLogRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM user_actions_log WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("LOG_NOT_FOUND", "activity log entry not found")
	}
	return nil
}

// DeleteAll purges the table and returns the number of rows removed.
// Administrative use.
func (r *ActivityLogRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM user_actions_log`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
