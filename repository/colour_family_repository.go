package repository

import (
	"context"
	"errors"

	"hoku-backend/apperr"
	"hoku-backend/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ColourFamilyRepository handles colour family taxonomy rows.
type ColourFamilyRepository struct {
	db *pgxpool.Pool
}

// NewColourFamilyRepository creates a new colour family repository.
func NewColourFamilyRepository(db *pgxpool.Pool) *ColourFamilyRepository {
	return &ColourFamilyRepository{db: db}
}

// Create inserts a colour family.
func (r *ColourFamilyRepository) Create(ctx context.Context, family *models.ColourFamily) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO colour_families (name, hex_codes) VALUES ($1, $2) RETURNING id, created_at`,
		family.Name, family.HexCodes).Scan(&family.ID, &family.CreatedAt)
}

// GetByID retrieves one colour family.
func (r *ColourFamilyRepository) GetByID(ctx context.Context, id int) (*models.ColourFamily, error) {
	f := &models.ColourFamily{}
	err := r.db.QueryRow(ctx,
		`SELECT id, name, hex_codes, created_at FROM colour_families WHERE id = $1`, id).
		Scan(&f.ID, &f.Name, &f.HexCodes, &f.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("COLOUR_FAMILY_NOT_FOUND", "colour family not found")
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// List retrieves all colour families.
func (r *ColourFamilyRepository) List(ctx context.Context) ([]*models.ColourFamily, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, hex_codes, created_at FROM colour_families ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var families []*models.ColourFamily
	for rows.Next() {
		f := &models.ColourFamily{}
		if err := rows.Scan(&f.ID, &f.Name, &f.HexCodes, &f.CreatedAt); err != nil {
			return nil, err
		}
		families = append(families, f)
	}
	return families, rows.Err()
}
