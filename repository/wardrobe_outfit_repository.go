package repository

import (
	"context"
	"errors"

	"hoku-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WardrobeOutfitRepository handles the wardrobe_outfits join table.
// Same contract as the dress links: unique (wardrobe_id, outfit_id_mongo)
// pair, idempotent unlink, bulk cleanup on outfit deletion.
type WardrobeOutfitRepository struct {
	db *pgxpool.Pool
}

// NewWardrobeOutfitRepository creates a new wardrobe-outfit link repository.
func NewWardrobeOutfitRepository(db *pgxpool.Pool) *WardrobeOutfitRepository {
	return &WardrobeOutfitRepository{db: db}
}

// Link creates a link row; created is false when the pair already exists.
func (r *WardrobeOutfitRepository) Link(ctx context.Context, wardrobeID uuid.UUID, outfitID string) (*models.WardrobeOutfitLink, bool, error) {
	query := `
		INSERT INTO wardrobe_outfits (wardrobe_id, outfit_id_mongo)
		VALUES ($1, $2)
		ON CONFLICT (wardrobe_id, outfit_id_mongo) DO NOTHING
		RETURNING id, wardrobe_id, outfit_id_mongo, created_at`

	link := &models.WardrobeOutfitLink{}
	err := r.db.QueryRow(ctx, query, wardrobeID, outfitID).
		Scan(&link.ID, &link.WardrobeID, &link.OutfitID, &link.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return link, true, nil
}

// Exists reports whether the outfit is already linked to the wardrobe.
func (r *WardrobeOutfitRepository) Exists(ctx context.Context, wardrobeID uuid.UUID, outfitID string) (bool, error) {
	var one int
	err := r.db.QueryRow(ctx,
		`SELECT 1 FROM wardrobe_outfits WHERE wardrobe_id = $1 AND outfit_id_mongo = $2 LIMIT 1`,
		wardrobeID, outfitID,
	).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// OutfitIDsByWardrobe returns the outfit document ids linked to a wardrobe.
func (r *WardrobeOutfitRepository) OutfitIDsByWardrobe(ctx context.Context, wardrobeID uuid.UUID) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT outfit_id_mongo FROM wardrobe_outfits WHERE wardrobe_id = $1 ORDER BY created_at`,
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

// Unlink removes one link; false when it did not exist.
func (r *WardrobeOutfitRepository) Unlink(ctx context.Context, wardrobeID uuid.UUID, outfitID string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM wardrobe_outfits WHERE wardrobe_id = $1 AND outfit_id_mongo = $2`,
		wardrobeID, outfitID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UnlinkAll removes every link referencing the outfit.
func (r *WardrobeOutfitRepository) UnlinkAll(ctx context.Context, outfitID string) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM wardrobe_outfits WHERE outfit_id_mongo = $1`,
		outfitID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
