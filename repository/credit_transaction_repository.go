package repository

import (
	"context"

	"hoku-backend/apperr"
	"hoku-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CreditTransactionRepository handles the credit ledger. A partial
// unique index on related_payment_id guarantees a payment is credited
// at most once: a duplicate insert fails closed.
type CreditTransactionRepository struct {
	db *pgxpool.Pool
}

// NewCreditTransactionRepository creates a new credit transaction repository.
func NewCreditTransactionRepository(db *pgxpool.Pool) *CreditTransactionRepository {
	return &CreditTransactionRepository{db: db}
}

// Create inserts one ledger entry. A second purchase entry for the same
// payment id is reported as Conflict PAYMENT_ALREADY_CREDITED.
func (r *CreditTransactionRepository) Create(ctx context.Context, tx *models.CreditTransaction) error {
	query := `
		INSERT INTO credit_transactions (
			user_id, transaction_type, amount, related_payment_id, related_feature_code, description
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		tx.UserID,
		tx.TransactionType,
		tx.Amount,
		tx.RelatedPaymentID,
		tx.RelatedFeatureCode,
		tx.Description,
	).Scan(&tx.ID, &tx.CreatedAt)

	if isUniqueViolation(err) {
		conflict := apperr.Conflict("PAYMENT_ALREADY_CREDITED", "this payment has already been credited")
		if tx.RelatedPaymentID != nil {
			conflict.WithMeta("related_payment_id", tx.RelatedPaymentID.String())
		}
		return conflict
	}
	return err
}

// ListByUserID retrieves a user's ledger entries, newest first.
func (r *CreditTransactionRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.CreditTransaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, transaction_type, amount, related_payment_id,
			related_feature_code, description, created_at
		FROM credit_transactions WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.CreditTransaction
	for rows.Next() {
		tx := &models.CreditTransaction{}
		err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.TransactionType, &tx.Amount,
			&tx.RelatedPaymentID, &tx.RelatedFeatureCode, &tx.Description, &tx.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, tx)
	}
	return entries, rows.Err()
}

// LedgerByPlan joins transactions with payments and plans for the
// billing report.
func (r *CreditTransactionRepository) LedgerByPlan(ctx context.Context) ([]*models.PlanLedgerRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			p.name AS plan_name,
			p.price,
			p.credits_granted,
			ct.transaction_type,
			ct.amount,
			ct.description,
			ct.created_at AS transaction_date,
			pm.status AS payment_status,
			pm.amount AS payment_amount,
			pm.currency AS payment_currency
		FROM credit_transactions ct
		JOIN payments pm ON ct.related_payment_id = pm.id
		JOIN plans p ON pm.plan_id = p.id
		ORDER BY p.name, ct.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ledger []*models.PlanLedgerRow
	for rows.Next() {
		row := &models.PlanLedgerRow{}
		err := rows.Scan(
			&row.PlanName, &row.Price, &row.CreditsGranted, &row.TransactionType,
			&row.Amount, &row.Description, &row.TransactionDate,
			&row.PaymentStatus, &row.PaymentAmount, &row.PaymentCurrency,
		)
		if err != nil {
			return nil, err
		}
		ledger = append(ledger, row)
	}
	return ledger, rows.Err()
}
