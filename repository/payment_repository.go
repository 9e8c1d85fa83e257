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

const paymentColumns = `id, user_id, plan_id, gateway_order_id, gateway_payment_id,
	amount, currency, status, created_at, updated_at`

// PaymentRepository handles database operations for payment orders.
type PaymentRepository struct {
	db *pgxpool.Pool
}

// NewPaymentRepository creates a new payment repository.
func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	p := &models.Payment{}
	err := row.Scan(
		&p.ID, &p.UserID, &p.PlanID, &p.GatewayOrderID, &p.GatewayPaymentID,
		&p.Amount, &p.Currency, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// SaveOrder persists a freshly created gateway order.
func (r *PaymentRepository) SaveOrder(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (user_id, plan_id, gateway_order_id, amount, currency, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRow(
		ctx, query,
		payment.UserID,
		payment.PlanID,
		payment.GatewayOrderID,
		payment.Amount,
		payment.Currency,
		payment.Status,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
}

// MarkPaid records a verified gateway payment against its order.
func (r *PaymentRepository) MarkPaid(ctx context.Context, gatewayOrderID, gatewayPaymentID string) (*models.Payment, error) {
	query := `
		UPDATE payments
		SET gateway_payment_id = $2, status = 'paid', updated_at = NOW()
		WHERE gateway_order_id = $1
		RETURNING ` + paymentColumns

	p, err := scanPayment(r.db.QueryRow(ctx, query, gatewayOrderID, gatewayPaymentID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("PAYMENT_NOT_FOUND", "payment not found for this order")
	}
	return p, err
}

// GetByOrderID retrieves a payment by its gateway order id.
func (r *PaymentRepository) GetByOrderID(ctx context.Context, gatewayOrderID string) (*models.Payment, error) {
	p, err := scanPayment(r.db.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE gateway_order_id = $1`, gatewayOrderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("PAYMENT_NOT_FOUND", "payment not found for this order")
	}
	return p, err
}

// ListByUserID retrieves a user's payments, newest first.
func (r *PaymentRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Payment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
