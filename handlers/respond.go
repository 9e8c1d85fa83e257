package handlers

import (
	"errors"
	"net/http"

	"hoku-backend/apperr"

	"github.com/gin-gonic/gin"
)

// respondError maps the error taxonomy to HTTP statuses and emits the
// standard error envelope. NotFound→404, Conflict→409, everything else
// (storage failures, broken bootstrap invariant) →500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindConflict:
		status = http.StatusConflict
	}

	body := gin.H{
		"code":    apperr.ReasonOf(err),
		"message": err.Error(),
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) && len(appErr.Meta) > 0 {
		body["meta"] = appErr.Meta
	}

	c.JSON(status, gin.H{
		"success": false,
		"error":   body,
	})
}

// respondBadRequest emits a 400 with the standard envelope.
func respondBadRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondData emits a success envelope.
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}
