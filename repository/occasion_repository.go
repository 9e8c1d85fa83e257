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

// OccasionRepository handles event-name taxonomy rows.
type OccasionRepository struct {
	db *pgxpool.Pool
}

// NewOccasionRepository creates a new occasion repository.
func NewOccasionRepository(db *pgxpool.Pool) *OccasionRepository {
	return &OccasionRepository{db: db}
}

// Create inserts an occasion. Names are unique.
func (r *OccasionRepository) Create(ctx context.Context, occasion *models.Occasion) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO function_occasion (name) VALUES ($1) RETURNING id, created_at`,
		occasion.Name).Scan(&occasion.ID, &occasion.CreatedAt)
	if isUniqueViolation(err) {
		return apperr.Conflict("DUPLICATE_OCCASION_NAME", "an event with this name already exists").
			WithMeta("name", occasion.Name)
	}
	return err
}

// List retrieves all occasions alphabetically.
func (r *OccasionRepository) List(ctx context.Context) ([]*models.Occasion, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, created_at FROM function_occasion ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var occasions []*models.Occasion
	for rows.Next() {
		o := &models.Occasion{}
		if err := rows.Scan(&o.ID, &o.Name, &o.CreatedAt); err != nil {
			return nil, err
		}
		occasions = append(occasions, o)
	}
	return occasions, rows.Err()
}

// Delete removes an occasion row and returns it.
func (r *OccasionRepository) Delete(ctx context.Context, id uuid.UUID) (*models.Occasion, error) {
	o := &models.Occasion{}
	err := r.db.QueryRow(ctx,
		`DELETE FROM function_occasion WHERE id = $1 RETURNING id, name, created_at`, id).
		Scan(&o.ID, &o.Name, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("OCCASION_NOT_FOUND", "occasion not found")
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}
