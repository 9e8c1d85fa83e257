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

// ProductRepository handles database operations for products.
type ProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, description)
		VALUES ($1, $2)
		RETURNING id, is_active, created_at, updated_at`

	return r.db.QueryRow(ctx, query, product.Name, product.Description).
		Scan(&product.ID, &product.IsActive, &product.CreatedAt, &product.UpdatedAt)
}

// GetByID retrieves an active product.
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p := &models.Product{}
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description, is_active, created_at, updated_at
		 FROM products WHERE id = $1 AND is_active = TRUE`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("PRODUCT_NOT_FOUND", "product not found")
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List retrieves all active products.
func (r *ProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, is_active, created_at, updated_at
		 FROM products WHERE is_active = TRUE ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p := &models.Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Deactivate soft-deletes a product.
func (r *ProductRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active = TRUE`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("PRODUCT_NOT_FOUND", "product not found")
	}
	return nil
}
