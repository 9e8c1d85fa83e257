package handlers

import (
	"net/http"

	"hoku-backend/models"
	"hoku-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WardrobeHandler handles HTTP requests for wardrobes
type WardrobeHandler struct {
	wardrobeService *service.WardrobeService
	dressService    *service.DressService
	outfitService   *service.OutfitService
}

// NewWardrobeHandler creates a new wardrobe handler
func NewWardrobeHandler(
	wardrobeService *service.WardrobeService,
	dressService *service.DressService,
	outfitService *service.OutfitService,
) *WardrobeHandler {
	return &WardrobeHandler{
		wardrobeService: wardrobeService,
		dressService:    dressService,
		outfitService:   outfitService,
	}
}

// CreateWardrobeRequest represents the request body for creating a wardrobe
type CreateWardrobeRequest struct {
	UserID       string  `json:"user_id" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Intent       *string `json:"intent"`
	Lifestyle    *string `json:"lifestyle"`
	NegativePref *string `json:"negative_pref"`
}

// CreateWardrobe handles POST /api/wardrobes
func (h *WardrobeHandler) CreateWardrobe(c *gin.Context) {
	var req CreateWardrobeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		respondBadRequest(c, "INVALID_USER_ID", "Invalid user_id format")
		return
	}

	result, err := h.wardrobeService.CreateWardrobe(c.Request.Context(), service.CreateWardrobeRequest{
		UserID:       userID,
		Name:         req.Name,
		Intent:       req.Intent,
		Lifestyle:    req.Lifestyle,
		NegativePref: req.NegativePref,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, result.Wardrobe)
}

// GetWardrobe handles GET /api/wardrobes/:id
func (h *WardrobeHandler) GetWardrobe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_WARDROBE_ID", "Invalid wardrobe id format")
		return
	}

	result, err := h.wardrobeService.GetWardrobe(c.Request.Context(), service.GetWardrobeRequest{WardrobeID: id})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result.Wardrobe)
}

// ListByUser handles GET /api/users/:id/wardrobes
func (h *WardrobeHandler) ListByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_USER_ID", "Invalid user id format")
		return
	}

	result, err := h.wardrobeService.ListByUser(c.Request.Context(), service.ListWardrobesRequest{UserID: userID})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result.Wardrobes)
}

// ListAll handles GET /api/wardrobes
func (h *WardrobeHandler) ListAll(c *gin.Context) {
	result, err := h.wardrobeService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result.Wardrobes)
}

// UpdateWardrobe handles PUT /api/wardrobes/:id
func (h *WardrobeHandler) UpdateWardrobe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_WARDROBE_ID", "Invalid wardrobe id format")
		return
	}

	var update models.WardrobeUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondBadRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.wardrobeService.UpdateWardrobe(c.Request.Context(), service.UpdateWardrobeRequest{
		WardrobeID: id,
		Update:     update,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result.Wardrobe)
}

// DeleteWardrobe handles DELETE /api/wardrobes/:id
func (h *WardrobeHandler) DeleteWardrobe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_WARDROBE_ID", "Invalid wardrobe id format")
		return
	}

	result, err := h.wardrobeService.DeleteWardrobe(c.Request.Context(), service.DeleteWardrobeRequest{WardrobeID: id})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result.Wardrobe)
}

// ReorderRequest represents the request body for reordering wardrobes
type ReorderRequest struct {
	UserID     string   `json:"user_id" binding:"required"`
	OrderedIDs []string `json:"ordered_ids" binding:"required"`
}

// Reorder handles PUT /api/wardrobes/reorder
func (h *WardrobeHandler) Reorder(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		respondBadRequest(c, "INVALID_USER_ID", "Invalid user_id format")
		return
	}

	orderedIDs := make([]uuid.UUID, 0, len(req.OrderedIDs))
	for _, raw := range req.OrderedIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondBadRequest(c, "INVALID_WARDROBE_ID", "Invalid wardrobe id in ordering: "+raw)
			return
		}
		orderedIDs = append(orderedIDs, id)
	}

	if _, err := h.wardrobeService.Reorder(c.Request.Context(), service.ReorderRequest{
		UserID:     userID,
		OrderedIDs: orderedIDs,
	}); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"reordered": len(orderedIDs)})
}

// ListDresses handles GET /api/wardrobes/:id/dresses. Stale links are
// skipped, so the list may be shorter than the wardrobe's link count.
func (h *WardrobeHandler) ListDresses(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_WARDROBE_ID", "Invalid wardrobe id format")
		return
	}

	result, err := h.dressService.DressesByWardrobe(c.Request.Context(), service.DressesByWardrobeRequest{WardrobeID: id})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result.Dresses)
}

// ListOutfits handles GET /api/wardrobes/:id/outfits
func (h *WardrobeHandler) ListOutfits(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_WARDROBE_ID", "Invalid wardrobe id format")
		return
	}

	result, err := h.outfitService.OutfitsByWardrobe(c.Request.Context(), service.OutfitsByWardrobeRequest{WardrobeID: id})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result.Outfits)
}
