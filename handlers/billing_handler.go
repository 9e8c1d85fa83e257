package handlers

import (
	"net/http"

	"hoku-backend/models"
	"hoku-backend/repository"
	"hoku-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BillingHandler handles HTTP requests for products, plans,
// subscriptions and the purchase flow.
type BillingHandler struct {
	billingService   *service.BillingService
	productRepo      *repository.ProductRepository
	planRepo         *repository.PlanRepository
	subscriptionRepo *repository.SubscriptionRepository
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(
	billingService *service.BillingService,
	productRepo *repository.ProductRepository,
	planRepo *repository.PlanRepository,
	subscriptionRepo *repository.SubscriptionRepository,
) *BillingHandler {
	return &BillingHandler{
		billingService:   billingService,
		productRepo:      productRepo,
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

// CreateProduct handles POST /api/products
func (h *BillingHandler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		respondBadRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	if err := h.productRepo.Create(c.Request.Context(), &product); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, product)
}

// ListProducts handles GET /api/products
func (h *BillingHandler) ListProducts(c *gin.Context) {
	products, err := h.productRepo.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, products)
}

// DeactivateProduct handles DELETE /api/products/:id
func (h *BillingHandler) DeactivateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_PRODUCT_ID", "Invalid product id format")
		return
	}
	if err := h.productRepo.Deactivate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deactivated": true})
}

// CreatePlan handles POST /api/plans
func (h *BillingHandler) CreatePlan(c *gin.Context) {
	var plan models.Plan
	if err := c.ShouldBindJSON(&plan); err != nil {
		respondBadRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	if err := h.planRepo.Create(c.Request.Context(), &plan); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, plan)
}

// ListPlans handles GET /api/plans?product_id=
func (h *BillingHandler) ListPlans(c *gin.Context) {
	var productID *uuid.UUID
	if raw := c.Query("product_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondBadRequest(c, "INVALID_PRODUCT_ID", "Invalid product_id format")
			return
		}
		productID = &id
	}

	plans, err := h.planRepo.List(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, plans)
}

// DeactivatePlan handles DELETE /api/plans/:id
func (h *BillingHandler) DeactivatePlan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_PLAN_ID", "Invalid plan id format")
		return
	}
	if err := h.planRepo.Deactivate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deactivated": true})
}

// CreateOrderRequest represents the request body for starting a purchase
type CreateOrderRequest struct {
	UserID string `json:"user_id" binding:"required"`
	PlanID string `json:"plan_id" binding:"required"`
}

// CreateOrder handles POST /api/payments/order
func (h *BillingHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		respondBadRequest(c, "INVALID_USER_ID", "Invalid user_id format")
		return
	}
	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		respondBadRequest(c, "INVALID_PLAN_ID", "Invalid plan_id format")
		return
	}

	result, err := h.billingService.CreateOrder(c.Request.Context(), service.CreateOrderRequest{
		UserID: userID,
		PlanID: planID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, result.Payment)
}

// VerifyPaymentRequest represents the checkout callback body
type VerifyPaymentRequest struct {
	UserID    string `json:"user_id"`
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// VerifyPayment handles POST /api/payments/verify. A duplicate delivery
// of the same payment is a 409: credits are granted at most once.
func (h *BillingHandler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	userID, _ := parseOptionalUserID(req.UserID)
	result, err := h.billingService.VerifyPayment(c.Request.Context(), service.VerifyPaymentRequest{
		UserID:    userID,
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"payment":     result.Payment,
		"new_balance": result.NewBalance,
	})
}

// ListPayments handles GET /api/users/:id/payments
func (h *BillingHandler) ListPayments(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_USER_ID", "Invalid user id format")
		return
	}

	result, err := h.billingService.ListPayments(c.Request.Context(), service.ListPaymentsRequest{UserID: userID})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result.Payments)
}

// ListCredits handles GET /api/users/:id/credits
func (h *BillingHandler) ListCredits(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_USER_ID", "Invalid user id format")
		return
	}

	result, err := h.billingService.ListCredits(c.Request.Context(), service.ListCreditsRequest{UserID: userID})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result.Transactions)
}

// LedgerReport handles GET /api/billing/ledger (admin)
func (h *BillingHandler) LedgerReport(c *gin.Context) {
	result, err := h.billingService.LedgerReport(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result.Rows)
}

// CreateSubscription handles POST /api/subscriptions
func (h *BillingHandler) CreateSubscription(c *gin.Context) {
	var sub models.Subscription
	if err := c.ShouldBindJSON(&sub); err != nil {
		respondBadRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	if err := h.subscriptionRepo.Create(c.Request.Context(), &sub); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, sub)
}

// ListSubscriptions handles GET /api/subscriptions?user_id=
func (h *BillingHandler) ListSubscriptions(c *gin.Context) {
	var userID *uuid.UUID
	if raw := c.Query("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondBadRequest(c, "INVALID_USER_ID", "Invalid user_id format")
			return
		}
		userID = &id
	}

	subs, err := h.subscriptionRepo.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, subs)
}

// UpdateSubscriptionStatus handles PUT /api/subscriptions/:id/status
func (h *BillingHandler) UpdateSubscriptionStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_SUBSCRIPTION_ID", "Invalid subscription id format")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	sub, err := h.subscriptionRepo.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, sub)
}
