package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hoku-backend/apperr"
	"hoku-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const wardrobeColumns = `id, user_id, name, intent, lifestyle, negative_pref, position, created_at, updated_at`

// WardrobeRepository handles database operations for wardrobes.
type WardrobeRepository struct {
	db *pgxpool.Pool
}

// NewWardrobeRepository creates a new wardrobe repository.
func NewWardrobeRepository(db *pgxpool.Pool) *WardrobeRepository {
	return &WardrobeRepository{db: db}
}

func scanWardrobe(row pgx.Row) (*models.Wardrobe, error) {
	w := &models.Wardrobe{}
	err := row.Scan(
		&w.ID, &w.UserID, &w.Name, &w.Intent, &w.Lifestyle, &w.NegativePref,
		&w.Position, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Create inserts a wardrobe at the end of the owner's ordering.
func (r *WardrobeRepository) Create(ctx context.Context, wardrobe *models.Wardrobe) error {
	query := `
		INSERT INTO wardrobes (user_id, name, intent, lifestyle, negative_pref, position)
		VALUES ($1, $2, $3, $4, $5,
			(SELECT COALESCE(MAX(position) + 1, 0) FROM wardrobes WHERE user_id = $1))
		RETURNING id, position, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		wardrobe.UserID,
		wardrobe.Name,
		wardrobe.Intent,
		wardrobe.Lifestyle,
		wardrobe.NegativePref,
	).Scan(&wardrobe.ID, &wardrobe.Position, &wardrobe.CreatedAt, &wardrobe.UpdatedAt)
	if isUniqueViolation(err) {
		return apperr.Conflict("DUPLICATE_WARDROBE_NAME", "a wardrobe with this name already exists for this user").
			WithMeta("name", wardrobe.Name)
	}
	return err
}

// GetByID retrieves a wardrobe by ID.
func (r *WardrobeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Wardrobe, error) {
	query := `SELECT ` + wardrobeColumns + ` FROM wardrobes WHERE id = $1`
	w, err := scanWardrobe(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("WARDROBE_NOT_FOUND", "wardrobe not found")
	}
	return w, err
}

// ListByUserID retrieves all wardrobes for a user in display order.
func (r *WardrobeRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Wardrobe, error) {
	query := `SELECT ` + wardrobeColumns + ` FROM wardrobes WHERE user_id = $1 ORDER BY position, created_at`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wardrobes []*models.Wardrobe
	for rows.Next() {
		w, err := scanWardrobe(rows)
		if err != nil {
			return nil, err
		}
		wardrobes = append(wardrobes, w)
	}
	return wardrobes, rows.Err()
}

// List retrieves every wardrobe.
func (r *WardrobeRepository) List(ctx context.Context) ([]*models.Wardrobe, error) {
	query := `SELECT ` + wardrobeColumns + ` FROM wardrobes ORDER BY user_id, position`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wardrobes []*models.Wardrobe
	for rows.Next() {
		w, err := scanWardrobe(rows)
		if err != nil {
			return nil, err
		}
		wardrobes = append(wardrobes, w)
	}
	return wardrobes, rows.Err()
}

// FindByUserIDAndName retrieves one wardrobe of a user by exact name,
// or NotFound.
func (r *WardrobeRepository) FindByUserIDAndName(ctx context.Context, userID uuid.UUID, name string) (*models.Wardrobe, error) {
	query := `SELECT ` + wardrobeColumns + ` FROM wardrobes WHERE user_id = $1 AND name = $2 LIMIT 1`
	w, err := scanWardrobe(r.db.QueryRow(ctx, query, userID, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("WARDROBE_NOT_FOUND", "wardrobe not found").
			WithMeta("name", name)
	}
	return w, err
}

// FindDefaultByUserID retrieves the user's "Your Dresses" wardrobe.
func (r *WardrobeRepository) FindDefaultByUserID(ctx context.Context, userID uuid.UUID) (*models.Wardrobe, error) {
	return r.FindByUserIDAndName(ctx, userID, models.WardrobeNameDresses)
}

// Update applies the set fields of an update and returns the updated row.
func (r *WardrobeRepository) Update(ctx context.Context, id uuid.UUID, update models.WardrobeUpdate) (*models.Wardrobe, error) {
	cols, vals := update.Fields()
	if len(cols) == 0 {
		return r.GetByID(ctx, id)
	}

	setParts := make([]string, len(cols))
	for i, col := range cols {
		setParts[i] = fmt.Sprintf("%s = $%d", col, i+2)
	}

	query := fmt.Sprintf(`
		UPDATE wardrobes
		SET %s, updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, strings.Join(setParts, ", "), wardrobeColumns)

	args := append([]interface{}{id}, vals...)
	w, err := scanWardrobe(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("WARDROBE_NOT_FOUND", "wardrobe not found")
	}
	return w, err
}

// Delete removes a wardrobe row and returns it.
func (r *WardrobeRepository) Delete(ctx context.Context, id uuid.UUID) (*models.Wardrobe, error) {
	query := `DELETE FROM wardrobes WHERE id = $1 RETURNING ` + wardrobeColumns
	w, err := scanWardrobe(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("WARDROBE_NOT_FOUND", "wardrobe not found")
	}
	return w, err
}

// Reorder rewrites the position of every listed wardrobe inside one
// transaction. Any failing update rolls back all of them.
func (r *WardrobeRepository) Reorder(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for position, id := range orderedIDs {
		tag, err := tx.Exec(ctx,
			`UPDATE wardrobes SET position = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3`,
			position, id, userID,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("WARDROBE_NOT_FOUND", "wardrobe not found for this user").
				WithMeta("wardrobe_id", id.String())
		}
	}

	return tx.Commit(ctx)
}
