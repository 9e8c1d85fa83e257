package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a sellable product grouping one or more plans.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Plan is a purchasable plan; a successful payment for it grants
// CreditsGranted credits to the buyer.
type Plan struct {
	ID              uuid.UUID `json:"id"`
	ProductID       uuid.UUID `json:"product_id"`
	GatewayPlanID   *string   `json:"gateway_plan_id,omitempty"`
	Name            string    `json:"name"`
	Type            string    `json:"type"` // one_time or recurring
	Price           float64   `json:"price"`
	Currency        string    `json:"currency"`
	BillingInterval *string   `json:"billing_interval,omitempty"`
	IntervalCount   *int      `json:"interval_count,omitempty"`
	CreditsGranted  int       `json:"credits_granted"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PaymentStatus tracks a payment order through the gateway flow.
type PaymentStatus string

const (
	PaymentCreated PaymentStatus = "created"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Payment is one gateway order and its resolution. Amount is in minor
// currency units, matching what the gateway order was created for.
type Payment struct {
	ID               uuid.UUID     `json:"id"`
	UserID           uuid.UUID     `json:"user_id"`
	PlanID           uuid.UUID     `json:"plan_id"`
	GatewayOrderID   string        `json:"gateway_order_id"`
	GatewayPaymentID *string       `json:"gateway_payment_id,omitempty"`
	Amount           int64         `json:"amount"`
	Currency         string        `json:"currency"`
	Status           PaymentStatus `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// Subscription is a recurring plan membership.
type Subscription struct {
	ID                    uuid.UUID  `json:"id"`
	UserID                uuid.UUID  `json:"user_id"`
	PlanID                uuid.UUID  `json:"plan_id"`
	GatewaySubscriptionID *string    `json:"gateway_subscription_id,omitempty"`
	Status                string     `json:"status"`
	CurrentPeriodStart    *time.Time `json:"current_period_start,omitempty"`
	CurrentPeriodEnd      *time.Time `json:"current_period_end,omitempty"`
	TrialEndsAt           *time.Time `json:"trial_ends_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// CreditTransactionType distinguishes ledger entries.
type CreditTransactionType string

const (
	CreditPurchase    CreditTransactionType = "purchase"
	CreditConsumption CreditTransactionType = "consumption"
)

// CreditTransaction is one entry in the credit ledger. For purchases,
// RelatedPaymentID is set and unique: a payment can be credited at most
// once.
type CreditTransaction struct {
	ID                 uuid.UUID             `json:"id"`
	UserID             uuid.UUID             `json:"user_id"`
	TransactionType    CreditTransactionType `json:"transaction_type"`
	Amount             int                   `json:"amount"`
	RelatedPaymentID   *uuid.UUID            `json:"related_payment_id,omitempty"`
	RelatedFeatureCode *string               `json:"related_feature_code,omitempty"`
	Description        *string               `json:"description,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
}

// PlanLedgerRow is the joined view of transactions, payments and plans
// used by the billing report endpoint.
type PlanLedgerRow struct {
	PlanName        string                `json:"plan_name"`
	Price           float64               `json:"price"`
	CreditsGranted  int                   `json:"credits_granted"`
	TransactionType CreditTransactionType `json:"transaction_type"`
	Amount          int                   `json:"amount"`
	Description     *string               `json:"description,omitempty"`
	TransactionDate time.Time             `json:"transaction_date"`
	PaymentStatus   PaymentStatus         `json:"payment_status"`
	PaymentAmount   int64                 `json:"payment_amount"`
	PaymentCurrency string                `json:"payment_currency"`
}
