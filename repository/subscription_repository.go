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

const subscriptionColumns = `id, user_id, plan_id, gateway_subscription_id, status,
	current_period_start, current_period_end, trial_ends_at, created_at, updated_at`

// SubscriptionRepository handles database operations for subscriptions.
type SubscriptionRepository struct {
	db *pgxpool.Pool
}

// NewSubscriptionRepository creates a new subscription repository.
func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func scanSubscription(row pgx.Row) (*models.Subscription, error) {
	s := &models.Subscription{}
	err := row.Scan(
		&s.ID, &s.UserID, &s.PlanID, &s.GatewaySubscriptionID, &s.Status,
		&s.CurrentPeriodStart, &s.CurrentPeriodEnd, &s.TrialEndsAt,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a new subscription.
func (r *SubscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	query := `
		INSERT INTO subscriptions (
			user_id, plan_id, gateway_subscription_id, status,
			current_period_start, current_period_end, trial_ends_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRow(
		ctx, query,
		sub.UserID,
		sub.PlanID,
		sub.GatewaySubscriptionID,
		sub.Status,
		sub.CurrentPeriodStart,
		sub.CurrentPeriodEnd,
		sub.TrialEndsAt,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
}

// GetByID retrieves one subscription.
func (r *SubscriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	s, err := scanSubscription(r.db.QueryRow(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("SUBSCRIPTION_NOT_FOUND", "subscription not found")
	}
	return s, err
}

// List retrieves subscriptions, optionally filtered to one user.
func (r *SubscriptionRepository) List(ctx context.Context, userID *uuid.UUID) ([]*models.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions`
	args := []interface{}{}
	if userID != nil {
		query += ` WHERE user_id = $1`
		args = append(args, *userID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*models.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// UpdateStatus moves a subscription to a new status.
func (r *SubscriptionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Subscription, error) {
	s, err := scanSubscription(r.db.QueryRow(ctx, `
		UPDATE subscriptions SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+subscriptionColumns, id, status))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("SUBSCRIPTION_NOT_FOUND", "subscription not found")
	}
	return s, err
}
