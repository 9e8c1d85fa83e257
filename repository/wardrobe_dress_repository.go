package repository

import (
	"context"
	"errors"

	"hoku-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WardrobeDressRepository handles the wardrobe_dresses join table:
// which dress documents live in which wardrobes. The
// (wardrobe_id, dress_id_mongo) pair is unique.
type WardrobeDressRepository struct {
	db *pgxpool.Pool
}

// NewWardrobeDressRepository creates a new wardrobe-dress link repository.
func NewWardrobeDressRepository(db *pgxpool.Pool) *WardrobeDressRepository {
	return &WardrobeDressRepository{db: db}
}

// Link creates a link row. When the pair already exists, no row is
// created and created is false; the existing link is left untouched.
func (r *WardrobeDressRepository) Link(ctx context.Context, wardrobeID uuid.UUID, dressID string) (*models.WardrobeDressLink, bool, error) {
	query := `
		INSERT INTO wardrobe_dresses (wardrobe_id, dress_id_mongo)
		VALUES ($1, $2)
		ON CONFLICT (wardrobe_id, dress_id_mongo) DO NOTHING
		RETURNING id, wardrobe_id, dress_id_mongo, created_at`

	link := &models.WardrobeDressLink{}
	err := r.db.QueryRow(ctx, query, wardrobeID, dressID).
		Scan(&link.ID, &link.WardrobeID, &link.DressID, &link.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Conflict path: the insert was skipped.
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return link, true, nil
}

// Exists reports whether the dress is already linked to the wardrobe.
func (r *WardrobeDressRepository) Exists(ctx context.Context, wardrobeID uuid.UUID, dressID string) (bool, error) {
	var one int
	err := r.db.QueryRow(ctx,
		`SELECT 1 FROM wardrobe_dresses WHERE wardrobe_id = $1 AND dress_id_mongo = $2`,
		wardrobeID, dressID,
	).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// DressIDsByWardrobe returns the dress document ids linked to a wardrobe.
func (r *WardrobeDressRepository) DressIDsByWardrobe(ctx context.Context, wardrobeID uuid.UUID) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT dress_id_mongo FROM wardrobe_dresses WHERE wardrobe_id = $1 ORDER BY created_at`,
		wardrobeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Unlink removes one link. Idempotent: removing an absent link returns
// false with no error.
func (r *WardrobeDressRepository) Unlink(ctx context.Context, wardrobeID uuid.UUID, dressID string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM wardrobe_dresses WHERE wardrobe_id = $1 AND dress_id_mongo = $2`,
		wardrobeID, dressID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UnlinkAll removes every link referencing the dress, across all
// wardrobes. Cleanup step for permanent dress deletion.
func (r *WardrobeDressRepository) UnlinkAll(ctx context.Context, dressID string) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM wardrobe_dresses WHERE dress_id_mongo = $1`,
		dressID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
