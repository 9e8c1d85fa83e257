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

const userColumns = `id, name, phone_number, email_id, password, gender, date_of_birth,
	colour_tone, undertone, body_type, height_range, weight_range, top_size, bottom_size,
	credit_balance, is_active, created_at, updated_at`

// UserRepository handles database operations for users.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Name, &u.PhoneNumber, &u.EmailID, &u.Password, &u.Gender, &u.DateOfBirth,
		&u.ColourTone, &u.Undertone, &u.BodyType, &u.HeightRange, &u.WeightRange,
		&u.TopSize, &u.BottomSize, &u.CreditBalance, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts a new user row. A duplicate email is reported as a
// Conflict with reason DUPLICATE_EMAIL.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (
			name, phone_number, email_id, password, gender, date_of_birth,
			colour_tone, undertone, body_type, height_range, weight_range, top_size, bottom_size
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, credit_balance, is_active, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		user.Name,
		user.PhoneNumber,
		user.EmailID,
		user.Password,
		user.Gender,
		user.DateOfBirth,
		user.ColourTone,
		user.Undertone,
		user.BodyType,
		user.HeightRange,
		user.WeightRange,
		user.TopSize,
		user.BottomSize,
	).Scan(&user.ID, &user.CreditBalance, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)

	if isUniqueViolation(err) {
		return apperr.Conflict("DUPLICATE_EMAIL", "a user with this email already exists").
			WithMeta("email_id", user.EmailID)
	}
	return err
}

// GetByID retrieves an active user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND is_active = TRUE`
	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("USER_NOT_FOUND", "user not found")
	}
	return user, err
}

// GetByEmail retrieves an active user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email_id = $1 AND is_active = TRUE`
	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("USER_NOT_FOUND", "user not found")
	}
	return user, err
}

// FindByEmailForAuth retrieves a user by email regardless of active
// flag, including the password hash.
func (r *UserRepository) FindByEmailForAuth(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email_id = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("USER_NOT_FOUND", "user not found")
	}
	return user, err
}

// List retrieves all active users.
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE is_active = TRUE ORDER BY created_at`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdateProfile applies the set fields of a profile update to an active
// user and returns the updated row.
func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update models.ProfileUpdate) (*models.User, error) {
	cols, vals := update.Fields()
	if len(cols) == 0 {
		return r.GetByID(ctx, id)
	}

	setParts := make([]string, len(cols))
	for i, col := range cols {
		setParts[i] = fmt.Sprintf("%s = $%d", col, i+2)
	}

	query := fmt.Sprintf(`
		UPDATE users
		SET %s, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE
		RETURNING %s`, strings.Join(setParts, ", "), userColumns)

	args := append([]interface{}{id}, vals...)
	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("USER_NOT_FOUND", "user not found")
	}
	return user, err
}

// AddCredits adjusts an active user's credit balance by delta (which
// may be negative) and returns the new balance.
func (r *UserRepository) AddCredits(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	query := `
		UPDATE users
		SET credit_balance = credit_balance + $2, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE
		RETURNING credit_balance`

	var balance int
	err := r.db.QueryRow(ctx, query, id, delta).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, apperr.NotFound("USER_NOT_FOUND", "user not found")
	}
	return balance, err
}

// SoftDelete flips is_active off. Idempotent on already-deleted rows
// only in the sense that they report NotFound.
func (r *UserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE users
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("USER_NOT_FOUND", "user not found")
	}
	return nil
}

// HardDelete removes the row permanently. Admin path only.
func (r *UserRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("USER_NOT_FOUND", "user not found")
	}
	return nil
}
