package handlers

import (
	"io"
	"net/http"
	"strings"

	"hoku-backend/service"
	"hoku-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// MediaHandler handles media uploads for dress documents.
type MediaHandler struct {
	store        storage.Storage
	dressService *service.DressService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(store storage.Storage, dressService *service.DressService) *MediaHandler {
	return &MediaHandler{store: store, dressService: dressService}
}

// UploadDressImage handles POST /api/dresses/:id/media. The stored
// path is appended to the dress document's media_assets.image_urls.
func (h *MediaHandler) UploadDressImage(c *gin.Context) {
	dressID := c.Param("id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, "INVALID_REQUEST", "missing file upload")
		return
	}
	if !storage.AllowedMediaExt(fileHeader.Filename) {
		respondBadRequest(c, "UNSUPPORTED_MEDIA", "unsupported media file type")
		return
	}

	current, err := h.dressService.GetDress(c.Request.Context(), service.GetDressRequest{DressID: dressID})
	if err != nil {
		respondError(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondBadRequest(c, "INVALID_REQUEST", "failed to read upload")
		return
	}
	defer file.Close()

	storagePath, err := h.store.Upload(c.Request.Context(), uuid.New(), fileHeader.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}

	urls := append(current.Dress.MediaAssets.ImageURLs, storagePath)
	result, err := h.dressService.UpdateDress(c.Request.Context(), service.UpdateDressRequest{
		DressID: dressID,
		Fields:  bson.M{"media_assets.image_urls": urls},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"data":         result.Dress,
		"storage_path": storagePath,
	})
}

// DownloadMedia handles GET /api/media/*path
func (h *MediaHandler) DownloadMedia(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" {
		respondBadRequest(c, "INVALID_REQUEST", "missing media path")
		return
	}

	reader, err := h.store.Download(c.Request.Context(), path)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MEDIA_NOT_FOUND",
				"message": "media not found",
			},
		})
		return
	}
	defer reader.Close()

	c.Status(http.StatusOK)
	io.Copy(c.Writer, reader)
}
