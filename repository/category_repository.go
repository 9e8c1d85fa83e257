package repository

import (
	"context"
	"encoding/json"
	"errors"

	"hoku-backend/apperr"
	"hoku-backend/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CategoryRepository handles the dress category taxonomy.
type CategoryRepository struct {
	db *pgxpool.Pool
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a top-level category.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO dress_categories (name, description) VALUES ($1, $2) RETURNING id`,
		category.Name, category.Description).Scan(&category.ID)
}

// CreateSubCategory inserts a sub-category under an existing category.
func (r *CategoryRepository) CreateSubCategory(ctx context.Context, sub *models.SubCategory) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO dress_sub_categories (category_id, name, description) VALUES ($1, $2, $3) RETURNING id`,
		sub.CategoryID, sub.Name, sub.Description).Scan(&sub.ID)
}

// GetByID retrieves one category.
func (r *CategoryRepository) GetByID(ctx context.Context, id int) (*models.Category, error) {
	c := &models.Category{}
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description FROM dress_categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("CATEGORY_NOT_FOUND", "category not found")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListTree retrieves all categories with their sub-categories nested,
// aggregated in a single query.
func (r *CategoryRepository) ListTree(ctx context.Context) ([]*models.CategoryTree, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			c.id,
			c.name,
			c.description,
			COALESCE(
				json_agg(
					json_build_object(
						'id', sc.id,
						'category_id', sc.category_id,
						'name', sc.name,
						'description', sc.description
					) ORDER BY sc.name
				) FILTER (WHERE sc.id IS NOT NULL),
				'[]'
			) AS sub_categories
		FROM dress_categories c
		LEFT JOIN dress_sub_categories sc ON sc.category_id = c.id
		GROUP BY c.id, c.name, c.description
		ORDER BY c.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tree []*models.CategoryTree
	for rows.Next() {
		node := &models.CategoryTree{}
		var subsJSON []byte
		if err := rows.Scan(&node.ID, &node.Name, &node.Description, &subsJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(subsJSON, &node.SubCategories); err != nil {
			return nil, err
		}
		tree = append(tree, node)
	}
	return tree, rows.Err()
}

// ListSubCategories retrieves the sub-categories of one category.
func (r *CategoryRepository) ListSubCategories(ctx context.Context, categoryID int) ([]*models.SubCategory, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, category_id, name, description
		 FROM dress_sub_categories WHERE category_id = $1 ORDER BY name`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*models.SubCategory
	for rows.Next() {
		s := &models.SubCategory{}
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.Description); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
