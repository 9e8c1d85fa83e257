package handlers

import (
	"net/http"

	"hoku-backend/models"
	"hoku-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler handles HTTP requests for user accounts
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	EmailID  string `json:"email_id" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.userService.Login(c.Request.Context(), service.LoginRequest{
		EmailID:  req.EmailID,
		Password: req.Password,
	})
	if err != nil {
		// A failed login is 401 regardless of taxonomy kind
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": "invalid email or password",
			},
		})
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"user":  result.User,
		"token": result.Token,
	})
}

// GetUser handles GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_USER_ID", "Invalid user id format")
		return
	}

	result, err := h.userService.GetUser(c.Request.Context(), service.GetUserRequest{UserID: id})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result.User)
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	result, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result.Users)
}

// UpdateProfile handles PUT /api/users/:id
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_USER_ID", "Invalid user id format")
		return
	}

	var update models.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondBadRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.userService.UpdateProfile(c.Request.Context(), service.UpdateProfileRequest{
		UserID: id,
		Update: update,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result.User)
}

// DeleteUser handles DELETE /api/users/:id. ?hard=true removes the row
// entirely instead of soft-deleting.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_USER_ID", "Invalid user id format")
		return
	}

	_, err = h.userService.DeleteUser(c.Request.Context(), service.DeleteUserRequest{
		UserID: id,
		Hard:   c.Query("hard") == "true",
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": true})
}
