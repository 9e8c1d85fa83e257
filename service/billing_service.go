package service

import (
	"context"
	"errors"
	"math"

	"hoku-backend/apperr"
	"hoku-backend/models"
	"hoku-backend/payments"

	"github.com/google/uuid"
)

// BillingPlanStore resolves and manages plans.
type BillingPlanStore interface {
	Create(ctx context.Context, plan *models.Plan) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Plan, error)
	List(ctx context.Context, productID *uuid.UUID) ([]*models.Plan, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// BillingPaymentStore persists payment orders and their resolutions.
type BillingPaymentStore interface {
	SaveOrder(ctx context.Context, payment *models.Payment) error
	MarkPaid(ctx context.Context, gatewayOrderID, gatewayPaymentID string) (*models.Payment, error)
	GetByOrderID(ctx context.Context, gatewayOrderID string) (*models.Payment, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Payment, error)
}

// BillingCreditStore is the credit ledger.
type BillingCreditStore interface {
	Create(ctx context.Context, tx *models.CreditTransaction) error
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.CreditTransaction, error)
	LedgerByPlan(ctx context.Context) ([]*models.PlanLedgerRow, error)
}

// BillingUserStore adjusts user credit balances.
type BillingUserStore interface {
	AddCredits(ctx context.Context, id uuid.UUID, delta int) (int, error)
}

// PaymentGateway is the external gateway surface billing depends on.
// Implemented by payments.Client.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*payments.Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// BillingService handles the purchase flow: gateway orders, payment
// verification, and the credit ledger behind user balances.
type BillingService struct {
	planStore    BillingPlanStore
	paymentStore BillingPaymentStore
	creditStore  BillingCreditStore
	userStore    BillingUserStore
	gateway      PaymentGateway
	logger       *ActivityLogger
}

// BillingServiceOption is a functional option for BillingService
type BillingServiceOption func(*BillingService)

// BillingWithPlanStore sets the plan store
func BillingWithPlanStore(store BillingPlanStore) BillingServiceOption {
	return func(s *BillingService) {
		s.planStore = store
	}
}

// BillingWithPaymentStore sets the payment store
func BillingWithPaymentStore(store BillingPaymentStore) BillingServiceOption {
	return func(s *BillingService) {
		s.paymentStore = store
	}
}

// BillingWithCreditStore sets the credit ledger store
func BillingWithCreditStore(store BillingCreditStore) BillingServiceOption {
	return func(s *BillingService) {
		s.creditStore = store
	}
}

// BillingWithUserStore sets the user balance store
func BillingWithUserStore(store BillingUserStore) BillingServiceOption {
	return func(s *BillingService) {
		s.userStore = store
	}
}

// BillingWithGateway sets the payment gateway client
func BillingWithGateway(gateway PaymentGateway) BillingServiceOption {
	return func(s *BillingService) {
		s.gateway = gateway
	}
}

// BillingWithActivityLogger sets the activity logger
func BillingWithActivityLogger(logger *ActivityLogger) BillingServiceOption {
	return func(s *BillingService) {
		s.logger = logger
	}
}

// NewBillingService creates a new billing service
func NewBillingService(opts ...BillingServiceOption) *BillingService {
	s := &BillingService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateOrderRequest represents a request to start a purchase
type CreateOrderRequest struct {
	UserID uuid.UUID
	PlanID uuid.UUID
}

// CreateOrderResult carries the persisted payment row; its
// GatewayOrderID is what the client hands to the checkout widget.
type CreateOrderResult struct {
	Payment *models.Payment
}

// CreateOrder resolves the plan, creates the gateway order in minor
// currency units, and persists the pending payment row.
func (s *BillingService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResult, error) {
	if s.planStore == nil || s.paymentStore == nil || s.gateway == nil {
		return nil, errors.New("billing stores not set")
	}

	plan, err := s.planStore.GetByID(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}

	amountMinor := int64(math.Round(plan.Price * 100))
	receipt := uuid.NewString()
	order, err := s.gateway.CreateOrder(ctx, amountMinor, plan.Currency, receipt)
	if err != nil {
		return nil, apperr.Storage("failed to create gateway order", err)
	}

	payment := &models.Payment{
		UserID:         req.UserID,
		PlanID:         plan.ID,
		GatewayOrderID: order.ID,
		Amount:         amountMinor,
		Currency:       plan.Currency,
		Status:         models.PaymentCreated,
	}
	if err := s.paymentStore.SaveOrder(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Log(ctx, &models.ActivityLog{
		UserID:           req.UserID,
		ActionType:       "ORDER_CREATED",
		SourceFeature:    "billing",
		TargetEntityType: "payment",
		TargetEntityID:   payment.ID.String(),
		Status:           models.ActivitySuccess,
		Metadata:         models.ActivityMeta{"plan_id": plan.ID.String(), "gateway_order_id": order.ID},
	})

	return &CreateOrderResult{Payment: payment}, nil
}

// VerifyPaymentRequest carries the checkout callback parameters
type VerifyPaymentRequest struct {
	UserID    uuid.UUID
	OrderID   string
	PaymentID string
	Signature string
}

// VerifyPaymentResult represents a verified, credited payment
type VerifyPaymentResult struct {
	Payment    *models.Payment
	NewBalance int
}

// VerifyPayment checks the gateway signature, marks the payment paid,
// and credits the plan's grant. The ledger entry is written before the
// balance update: its unique payment index makes a duplicate delivery
// fail closed before any credits move.
func (s *BillingService) VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (*VerifyPaymentResult, error) {
	if s.planStore == nil || s.paymentStore == nil || s.creditStore == nil || s.userStore == nil || s.gateway == nil {
		return nil, errors.New("billing stores not set")
	}

	if !s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		s.logger.Log(ctx, &models.ActivityLog{
			UserID:        req.UserID,
			ActionType:    "PAYMENT_VERIFIED",
			SourceFeature: "billing",
			Status:        models.ActivityFailure,
			Metadata:      models.ActivityMeta{"gateway_order_id": req.OrderID, "reason": "invalid signature"},
		})
		return nil, apperr.Conflict("INVALID_SIGNATURE", "payment signature verification failed")
	}

	payment, err := s.paymentStore.MarkPaid(ctx, req.OrderID, req.PaymentID)
	if err != nil {
		return nil, err
	}

	plan, err := s.planStore.GetByID(ctx, payment.PlanID)
	if err != nil {
		return nil, err
	}

	description := "credits for plan " + plan.Name
	entry := &models.CreditTransaction{
		UserID:           payment.UserID,
		TransactionType:  models.CreditPurchase,
		Amount:           plan.CreditsGranted,
		RelatedPaymentID: &payment.ID,
		Description:      &description,
	}
	if err := s.creditStore.Create(ctx, entry); err != nil {
		return nil, err
	}

	balance, err := s.userStore.AddCredits(ctx, payment.UserID, plan.CreditsGranted)
	if err != nil {
		return nil, err
	}

	s.logger.Log(ctx, &models.ActivityLog{
		UserID:           payment.UserID,
		ActionType:       "PAYMENT_VERIFIED",
		SourceFeature:    "billing",
		TargetEntityType: "payment",
		TargetEntityID:   payment.ID.String(),
		Status:           models.ActivitySuccess,
		Metadata:         models.ActivityMeta{"credits_granted": plan.CreditsGranted},
	})

	return &VerifyPaymentResult{Payment: payment, NewBalance: balance}, nil
}

// ListPaymentsRequest represents a payment history read
type ListPaymentsRequest struct {
	UserID uuid.UUID
}

// ListPaymentsResult represents a payment history
type ListPaymentsResult struct {
	Payments []*models.Payment
}

// ListPayments retrieves a user's payment history
func (s *BillingService) ListPayments(ctx context.Context, req ListPaymentsRequest) (*ListPaymentsResult, error) {
	if s.paymentStore == nil {
		return nil, errors.New("payment store not set")
	}
	list, err := s.paymentStore.ListByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	return &ListPaymentsResult{Payments: list}, nil
}

// ListCreditsRequest represents a credit ledger read
type ListCreditsRequest struct {
	UserID uuid.UUID
}

// ListCreditsResult represents a user's credit ledger
type ListCreditsResult struct {
	Transactions []*models.CreditTransaction
}

// ListCredits retrieves a user's credit ledger entries
func (s *BillingService) ListCredits(ctx context.Context, req ListCreditsRequest) (*ListCreditsResult, error) {
	if s.creditStore == nil {
		return nil, errors.New("credit store not set")
	}
	list, err := s.creditStore.ListByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	return &ListCreditsResult{Transactions: list}, nil
}

// LedgerReportResult is the admin billing report grouped by plan
type LedgerReportResult struct {
	Rows []*models.PlanLedgerRow
}

// LedgerReport retrieves the joined transaction/payment/plan report
func (s *BillingService) LedgerReport(ctx context.Context) (*LedgerReportResult, error) {
	if s.creditStore == nil {
		return nil, errors.New("credit store not set")
	}
	rows, err := s.creditStore.LedgerByPlan(ctx)
	if err != nil {
		return nil, err
	}
	return &LedgerReportResult{Rows: rows}, nil
}
