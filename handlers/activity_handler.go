package handlers

import (
	"net/http"

	"hoku-backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ActivityHandler handles HTTP requests for the activity log. Reads and
// admin deletes go straight to the repository; writes only ever happen
// through the fire-and-forget logger inside workflows.
type ActivityHandler struct {
	logRepo *repository.ActivityLogRepository
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(logRepo *repository.ActivityLogRepository) *ActivityHandler {
	return &ActivityHandler{logRepo: logRepo}
}

// List handles GET /api/activity
func (h *ActivityHandler) List(c *gin.Context) {
	entries, err := h.logRepo.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, entries)
}

// ListByUser handles GET /api/users/:id/activity
func (h *ActivityHandler) ListByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_USER_ID", "Invalid user id format")
		return
	}

	entries, err := h.logRepo.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, entries)
}

// Get handles GET /api/activity/:id
func (h *ActivityHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_LOG_ID", "Invalid log id format")
		return
	}

	entry, err := h.logRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, entry)
}

// Delete handles DELETE /api/activity/:id (admin)
func (h *ActivityHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_LOG_ID", "Invalid log id format")
		return
	}

	if err := h.logRepo.DeleteByID(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": true})
}

// Purge handles DELETE /api/activity (admin bulk purge)
func (h *ActivityHandler) Purge(c *gin.Context) {
	removed, err := h.logRepo.DeleteAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": removed})
}
