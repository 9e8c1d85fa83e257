package handlers

import (
	"net/http"

	"hoku-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StylistHandler handles HTTP requests for stylist analysis
type StylistHandler struct {
	stylistService *service.StylistService
}

// NewStylistHandler creates a new stylist handler
func NewStylistHandler(stylistService *service.StylistService) *StylistHandler {
	return &StylistHandler{stylistService: stylistService}
}

// AnalyzeDressRequest represents the request body for stylist analysis
type AnalyzeDressRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// AnalyzeDress handles POST /api/dresses/:id/analyze
func (h *StylistHandler) AnalyzeDress(c *gin.Context) {
	var req AnalyzeDressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		respondBadRequest(c, "INVALID_USER_ID", "Invalid user_id format")
		return
	}

	result, err := h.stylistService.AnalyzeDress(c.Request.Context(), service.AnalyzeDressRequest{
		UserID:  userID,
		DressID: c.Param("id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"dress":       result.Dress,
		"tags":        result.Tags,
		"new_balance": result.NewBalance,
	})
}
