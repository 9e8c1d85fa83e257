package repository

import (
	"context"
	"errors"

	"hoku-backend/apperr"
	"hoku-backend/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FeatureRepository handles credit-billed feature definitions.
type FeatureRepository struct {
	db *pgxpool.Pool
}

// NewFeatureRepository creates a new feature repository.
func NewFeatureRepository(db *pgxpool.Pool) *FeatureRepository {
	return &FeatureRepository{db: db}
}

// Create inserts a feature definition.
func (r *FeatureRepository) Create(ctx context.Context, feature *models.Feature) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO features (feature_code, name, credit_cost)
		 VALUES ($1, $2, $3)
		 RETURNING id, is_active, created_at`,
		feature.FeatureCode, feature.Name, feature.CreditCost).
		Scan(&feature.ID, &feature.IsActive, &feature.CreatedAt)
}

// GetByCode retrieves an active feature by its stable code.
func (r *FeatureRepository) GetByCode(ctx context.Context, code string) (*models.Feature, error) {
	f := &models.Feature{}
	err := r.db.QueryRow(ctx,
		`SELECT id, feature_code, name, credit_cost, is_active, created_at
		 FROM features WHERE feature_code = $1 AND is_active = TRUE`, code).
		Scan(&f.ID, &f.FeatureCode, &f.Name, &f.CreditCost, &f.IsActive, &f.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("FEATURE_NOT_FOUND", "feature not found")
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// List retrieves all active features.
func (r *FeatureRepository) List(ctx context.Context) ([]*models.Feature, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, feature_code, name, credit_cost, is_active, created_at
		 FROM features WHERE is_active = TRUE ORDER BY feature_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var features []*models.Feature
	for rows.Next() {
		f := &models.Feature{}
		if err := rows.Scan(&f.ID, &f.FeatureCode, &f.Name, &f.CreditCost, &f.IsActive, &f.CreatedAt); err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	return features, rows.Err()
}
