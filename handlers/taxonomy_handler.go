package handlers

import (
	"context"
	"net/http"
	"strconv"

	"hoku-backend/models"
	"hoku-backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OccasionStore manages event-name taxonomy rows.
// Implemented by repository.OccasionRepository.
type OccasionStore interface {
	Create(ctx context.Context, occasion *models.Occasion) error
	List(ctx context.Context) ([]*models.Occasion, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.Occasion, error)
}

// TaxonomyHandler handles HTTP requests for dress taxonomy: categories,
// sub-categories, colour families, occasions and billed features. Plain
// CRUD over the repositories.
type TaxonomyHandler struct {
	categoryRepo     *repository.CategoryRepository
	colourFamilyRepo *repository.ColourFamilyRepository
	featureRepo      *repository.FeatureRepository
	occasionStore    OccasionStore
}

// NewTaxonomyHandler creates a new taxonomy handler
func NewTaxonomyHandler(
	categoryRepo *repository.CategoryRepository,
	colourFamilyRepo *repository.ColourFamilyRepository,
	featureRepo *repository.FeatureRepository,
	occasionStore OccasionStore,
) *TaxonomyHandler {
	return &TaxonomyHandler{
		categoryRepo:     categoryRepo,
		colourFamilyRepo: colourFamilyRepo,
		featureRepo:      featureRepo,
		occasionStore:    occasionStore,
	}
}

// CreateCategory handles POST /api/categories
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		respondBadRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	if err := h.categoryRepo.Create(c.Request.Context(), &category); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, category)
}

// CreateSubCategory handles POST /api/categories/:id/subcategories
func (h *TaxonomyHandler) CreateSubCategory(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_CATEGORY_ID", "Invalid category id format")
		return
	}

	var sub models.SubCategory
	if err := c.ShouldBindJSON(&sub); err != nil {
		respondBadRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	sub.CategoryID = categoryID

	if err := h.categoryRepo.CreateSubCategory(c.Request.Context(), &sub); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, sub)
}

// ListCategories handles GET /api/categories: the full nested tree
func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	tree, err := h.categoryRepo.ListTree(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, tree)
}

// ListSubCategories handles GET /api/categories/:id/subcategories
func (h *TaxonomyHandler) ListSubCategories(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_CATEGORY_ID", "Invalid category id format")
		return
	}

	subs, err := h.categoryRepo.ListSubCategories(c.Request.Context(), categoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, subs)
}

// CreateColourFamily handles POST /api/colour-families
func (h *TaxonomyHandler) CreateColourFamily(c *gin.Context) {
	var family models.ColourFamily
	if err := c.ShouldBindJSON(&family); err != nil {
		respondBadRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	if err := h.colourFamilyRepo.Create(c.Request.Context(), &family); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, family)
}

// ListColourFamilies handles GET /api/colour-families
func (h *TaxonomyHandler) ListColourFamilies(c *gin.Context) {
	families, err := h.colourFamilyRepo.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, families)
}

// CreateOccasion handles POST /api/occasions
func (h *TaxonomyHandler) CreateOccasion(c *gin.Context) {
	var occasion models.Occasion
	if err := c.ShouldBindJSON(&occasion); err != nil {
		respondBadRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	if occasion.Name == "" {
		respondBadRequest(c, "INVALID_REQUEST", "Event name is required")
		return
	}
	if err := h.occasionStore.Create(c.Request.Context(), &occasion); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, occasion)
}

// ListOccasions handles GET /api/occasions
func (h *TaxonomyHandler) ListOccasions(c *gin.Context) {
	occasions, err := h.occasionStore.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, occasions)
}

// DeleteOccasion handles DELETE /api/occasions/:id
func (h *TaxonomyHandler) DeleteOccasion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "INVALID_OCCASION_ID", "Invalid occasion id format")
		return
	}

	occasion, err := h.occasionStore.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, occasion)
}

// CreateFeature handles POST /api/features
func (h *TaxonomyHandler) CreateFeature(c *gin.Context) {
	var feature models.Feature
	if err := c.ShouldBindJSON(&feature); err != nil {
		respondBadRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	if err := h.featureRepo.Create(c.Request.Context(), &feature); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, feature)
}

// ListFeatures handles GET /api/features
func (h *TaxonomyHandler) ListFeatures(c *gin.Context) {
	features, err := h.featureRepo.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, features)
}
