package handlers

import (
	"net/http"

	"hoku-backend/models"
	"hoku-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// OutfitHandler handles HTTP requests for outfits
type OutfitHandler struct {
	outfitService *service.OutfitService
}

// NewOutfitHandler creates a new outfit handler
func NewOutfitHandler(outfitService *service.OutfitService) *OutfitHandler {
	return &OutfitHandler{outfitService: outfitService}
}

// CreateOutfitRequest represents the request body for creating an outfit
type CreateOutfitRequest struct {
	UserID     string         `json:"user_id" binding:"required"`
	WardrobeID *string        `json:"wardrobe_id"`
	Outfit     *models.Outfit `json:"outfit" binding:"required"`
}

// CreateOutfit handles POST /api/outfits with the same
// success-with-warning link semantics as AddDress.
func (h *OutfitHandler) CreateOutfit(c *gin.Context) {
	var req CreateOutfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		respondBadRequest(c, "INVALID_USER_ID", "Invalid user_id format")
		return
	}

	serviceReq := service.CreateOutfitRequest{UserID: userID, Outfit: req.Outfit}
	if req.WardrobeID != nil {
		wID, err := uuid.Parse(*req.WardrobeID)
		if err != nil {
			respondBadRequest(c, "INVALID_WARDROBE_ID", "Invalid wardrobe_id format")
			return
		}
		serviceReq.WardrobeID = &wID
	}

	result, err := h.outfitService.CreateOutfit(c.Request.Context(), serviceReq)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"data":        result.Outfit,
		"link_status": result.LinkStatus,
	})
}

// GetOutfit handles GET /api/outfits/:id
func (h *OutfitHandler) GetOutfit(c *gin.Context) {
	result, err := h.outfitService.GetOutfit(c.Request.Context(), service.GetOutfitRequest{OutfitID: c.Param("id")})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result.Outfit)
}

// ListByUser handles GET /api/users/:id/outfits
func (h *OutfitHandler) ListByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_USER_ID", "Invalid user id format")
		return
	}

	result, err := h.outfitService.ListOutfits(c.Request.Context(), service.ListOutfitsRequest{UserID: userID})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result.Outfits)
}

// ListUsingDress handles GET /api/dresses/:id/outfits
func (h *OutfitHandler) ListUsingDress(c *gin.Context) {
	result, err := h.outfitService.OutfitsUsingDress(c.Request.Context(), service.OutfitsUsingDressRequest{DressID: c.Param("id")})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result.Outfits)
}

// UpdateOutfit handles PUT /api/outfits/:id with a partial document
func (h *OutfitHandler) UpdateOutfit(c *gin.Context) {
	var fields bson.M
	if err := c.ShouldBindJSON(&fields); err != nil {
		respondBadRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	delete(fields, "_id")
	delete(fields, "user_id")
	delete(fields, "createdAt")

	result, err := h.outfitService.UpdateOutfit(c.Request.Context(), service.UpdateOutfitRequest{
		OutfitID: c.Param("id"),
		Fields:   fields,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result.Outfit)
}

// DeleteOutfit handles DELETE /api/outfits/:id
func (h *OutfitHandler) DeleteOutfit(c *gin.Context) {
	userID, _ := parseOptionalUserID(c.Query("user_id"))

	result, err := h.outfitService.DeleteOutfit(c.Request.Context(), service.DeleteOutfitRequest{
		UserID:   userID,
		OutfitID: c.Param("id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{
		"outfit":        result.Outfit,
		"links_removed": result.LinksRemoved,
	})
}

// LinkOutfit handles POST /api/wardrobes/:id/outfits/:outfitId
func (h *OutfitHandler) LinkOutfit(c *gin.Context) {
	wardrobeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_WARDROBE_ID", "Invalid wardrobe id format")
		return
	}

	result, err := h.outfitService.LinkOutfit(c.Request.Context(), service.LinkOutfitRequest{
		WardrobeID: wardrobeID,
		OutfitID:   c.Param("outfitId"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, result.Link)
}

// UnlinkOutfit handles DELETE /api/wardrobes/:id/outfits/:outfitId
func (h *OutfitHandler) UnlinkOutfit(c *gin.Context) {
	wardrobeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_WARDROBE_ID", "Invalid wardrobe id format")
		return
	}

	result, err := h.outfitService.UnlinkOutfit(c.Request.Context(), service.UnlinkOutfitRequest{
		WardrobeID: wardrobeID,
		OutfitID:   c.Param("outfitId"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"removed": result.Removed})
}
