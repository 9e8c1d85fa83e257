package handlers

import (
	"net/http"

	"hoku-backend/models"
	"hoku-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// DressHandler handles HTTP requests for dresses
type DressHandler struct {
	dressService *service.DressService
}

// NewDressHandler creates a new dress handler
func NewDressHandler(dressService *service.DressService) *DressHandler {
	return &DressHandler{dressService: dressService}
}

// AddDressRequest represents the request body for adding a dress.
// WardrobeID optionally names an extra wardrobe beyond the default.
type AddDressRequest struct {
	UserID     string        `json:"user_id" binding:"required"`
	WardrobeID *string       `json:"wardrobe_id"`
	Dress      *models.Dress `json:"dress" binding:"required"`
}

// AddDress handles POST /api/dresses. The response carries a separate
// link_status: a failed link after the dress exists is a 201 with a
// warning, not an error.
func (h *DressHandler) AddDress(c *gin.Context) {
	var req AddDressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		respondBadRequest(c, "INVALID_USER_ID", "Invalid user_id format")
		return
	}

	serviceReq := service.AddDressRequest{UserID: userID, Dress: req.Dress}
	if req.WardrobeID != nil {
		wID, err := uuid.Parse(*req.WardrobeID)
		if err != nil {
			respondBadRequest(c, "INVALID_WARDROBE_ID", "Invalid wardrobe_id format")
			return
		}
		serviceReq.WardrobeID = &wID
	}

	result, err := h.dressService.AddDress(c.Request.Context(), serviceReq)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"data":        result.Dress,
		"link_status": result.LinkStatus,
	})
}

// GetDress handles GET /api/dresses/:id
func (h *DressHandler) GetDress(c *gin.Context) {
	result, err := h.dressService.GetDress(c.Request.Context(), service.GetDressRequest{DressID: c.Param("id")})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result.Dress)
}

// ListByUser handles GET /api/users/:id/dresses
func (h *DressHandler) ListByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_USER_ID", "Invalid user id format")
		return
	}

	result, err := h.dressService.ListDresses(c.Request.Context(), service.ListDressesRequest{UserID: userID})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result.Dresses)
}

// UpdateDress handles PUT /api/dresses/:id with a partial document
func (h *DressHandler) UpdateDress(c *gin.Context) {
	var fields bson.M
	if err := c.ShouldBindJSON(&fields); err != nil {
		respondBadRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	// Immutable fields are never patched
	delete(fields, "_id")
	delete(fields, "user_id")
	delete(fields, "createdAt")

	result, err := h.dressService.UpdateDress(c.Request.Context(), service.UpdateDressRequest{
		DressID: c.Param("id"),
		Fields:  fields,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result.Dress)
}

// DeleteDress handles DELETE /api/dresses/:id
func (h *DressHandler) DeleteDress(c *gin.Context) {
	userID, _ := parseOptionalUserID(c.Query("user_id"))

	result, err := h.dressService.DeleteDress(c.Request.Context(), service.DeleteDressRequest{
		UserID:  userID,
		DressID: c.Param("id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{
		"dress":         result.Dress,
		"links_removed": result.LinksRemoved,
	})
}

// LinkDress handles POST /api/wardrobes/:id/dresses/:dressId
func (h *DressHandler) LinkDress(c *gin.Context) {
	wardrobeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_WARDROBE_ID", "Invalid wardrobe id format")
		return
	}

	result, err := h.dressService.LinkDress(c.Request.Context(), service.LinkDressRequest{
		WardrobeID: wardrobeID,
		DressID:    c.Param("dressId"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, result.Link)
}

// UnlinkDress handles DELETE /api/wardrobes/:id/dresses/:dressId
func (h *DressHandler) UnlinkDress(c *gin.Context) {
	wardrobeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_WARDROBE_ID", "Invalid wardrobe id format")
		return
	}

	result, err := h.dressService.UnlinkDress(c.Request.Context(), service.UnlinkDressRequest{
		WardrobeID: wardrobeID,
		DressID:    c.Param("dressId"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"removed": result.Removed})
}

// parseOptionalUserID parses a user id, tolerating absence. Missing
// actors are recorded as NULL in the activity log.
func parseOptionalUserID(raw string) (uuid.UUID, bool) {
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
