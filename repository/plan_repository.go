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

const planColumns = `id, product_id, gateway_plan_id, name, type, price, currency,
	billing_interval, interval_count, credits_granted, is_active, created_at, updated_at`

// PlanRepository handles database operations for plans.
type PlanRepository struct {
	db *pgxpool.Pool
}

// NewPlanRepository creates a new plan repository.
func NewPlanRepository(db *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{db: db}
}

func scanPlan(row pgx.Row) (*models.Plan, error) {
	p := &models.Plan{}
	err := row.Scan(
		&p.ID, &p.ProductID, &p.GatewayPlanID, &p.Name, &p.Type, &p.Price, &p.Currency,
		&p.BillingInterval, &p.IntervalCount, &p.CreditsGranted, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new plan.
func (r *PlanRepository) Create(ctx context.Context, plan *models.Plan) error {
	query := `
		INSERT INTO plans (
			product_id, gateway_plan_id, name, type, price, currency,
			billing_interval, interval_count, credits_granted
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, is_active, created_at, updated_at`

	return r.db.QueryRow(
		ctx, query,
		plan.ProductID,
		plan.GatewayPlanID,
		plan.Name,
		plan.Type,
		plan.Price,
		plan.Currency,
		plan.BillingInterval,
		plan.IntervalCount,
		plan.CreditsGranted,
	).Scan(&plan.ID, &plan.IsActive, &plan.CreatedAt, &plan.UpdatedAt)
}

// GetByID retrieves an active plan.
func (r *PlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	plan, err := scanPlan(r.db.QueryRow(ctx,
		`SELECT `+planColumns+` FROM plans WHERE id = $1 AND is_active = TRUE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("PLAN_NOT_FOUND", "plan not found")
	}
	return plan, err
}

// List retrieves active plans, optionally scoped to one product.
func (r *PlanRepository) List(ctx context.Context, productID *uuid.UUID) ([]*models.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE is_active = TRUE`
	args := []interface{}{}
	if productID != nil {
		query += ` AND product_id = $1`
		args = append(args, *productID)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*models.Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

// Deactivate soft-deletes a plan.
func (r *PlanRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE plans SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active = TRUE`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("PLAN_NOT_FOUND", "plan not found")
	}
	return nil
}
