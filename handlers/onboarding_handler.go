package handlers

import (
	"net/http"

	"hoku-backend/models"
	"hoku-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OnboardingHandler handles HTTP requests for signup and onboarding
type OnboardingHandler struct {
	onboardingService *service.OnboardingService
}

// NewOnboardingHandler creates a new onboarding handler
func NewOnboardingHandler(onboardingService *service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: onboardingService}
}

// SignupRequest represents the request body for signup
type SignupRequest struct {
	Name        string  `json:"name" binding:"required"`
	EmailID     string  `json:"email_id" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8"`
	PhoneNumber *string `json:"phone_number"`
}

// Signup handles POST /api/auth/signup
func (h *OnboardingHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.onboardingService.Signup(c.Request.Context(), service.SignupRequest{
		Name:        req.Name,
		EmailID:     req.EmailID,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{
		"user_id":               result.UserID,
		"dresses_wardrobe_id":   result.DressesWardrobeID,
		"outfits_wardrobe_id":   result.OutfitsWardrobeID,
		"favorites_wardrobe_id": result.FavoritesWardrobeID,
	})
}

// OnboardingRequest represents the request body for completing or
// updating onboarding
type OnboardingRequest struct {
	Profile *models.ProfileUpdate `json:"profile"`
	Dresses []*models.Dress       `json:"dresses"`
}

// CompleteOnboarding handles POST /api/onboarding/:userId/complete
func (h *OnboardingHandler) CompleteOnboarding(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		respondBadRequest(c, "INVALID_USER_ID", "Invalid user id format")
		return
	}

	var req OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.onboardingService.CompleteOnboarding(c.Request.Context(), service.CompleteOnboardingRequest{
		UserID:  userID,
		Profile: req.Profile,
		Dresses: req.Dresses,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, result)
}

// UpdateOnboarding handles PUT /api/onboarding/:userId
func (h *OnboardingHandler) UpdateOnboarding(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		respondBadRequest(c, "INVALID_USER_ID", "Invalid user id format")
		return
	}

	var req OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.onboardingService.UpdateOnboarding(c.Request.Context(), service.UpdateOnboardingRequest{
		UserID:  userID,
		Profile: req.Profile,
		Dresses: req.Dresses,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, result)
}
