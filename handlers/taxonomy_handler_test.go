package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hoku-backend/apperr"
	"hoku-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOccasionStore struct {
	occasions map[uuid.UUID]*models.Occasion
}

func newFakeOccasionStore() *fakeOccasionStore {
	return &fakeOccasionStore{occasions: make(map[uuid.UUID]*models.Occasion)}
}

func (f *fakeOccasionStore) Create(ctx context.Context, occasion *models.Occasion) error {
	for _, o := range f.occasions {
		if o.Name == occasion.Name {
			return apperr.Conflict("DUPLICATE_OCCASION_NAME", "an event with this name already exists")
		}
	}
	occasion.ID = uuid.New()
	occasion.CreatedAt = time.Now()
	f.occasions[occasion.ID] = occasion
	return nil
}

func (f *fakeOccasionStore) List(ctx context.Context) ([]*models.Occasion, error) {
	var out []*models.Occasion
	for _, o := range f.occasions {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOccasionStore) Delete(ctx context.Context, id uuid.UUID) (*models.Occasion, error) {
	o, ok := f.occasions[id]
	if !ok {
		return nil, apperr.NotFound("OCCASION_NOT_FOUND", "occasion not found")
	}
	delete(f.occasions, id)
	return o, nil
}

func occasionRouter() (*gin.Engine, *fakeOccasionStore) {
	gin.SetMode(gin.TestMode)
	store := newFakeOccasionStore()
	h := NewTaxonomyHandler(nil, nil, nil, store)
	r := gin.New()
	r.POST("/occasions", h.CreateOccasion)
	r.GET("/occasions", h.ListOccasions)
	r.DELETE("/occasions/:id", h.DeleteOccasion)
	return r, store
}

func TestCreateOccasion(t *testing.T) {
	r, store := occasionRouter()

	req := httptest.NewRequest(http.MethodPost, "/occasions", strings.NewReader(`{"name":"Wedding Guest"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), "Wedding Guest")
	assert.Len(t, store.occasions, 1)
}

func TestCreateOccasionDuplicateName(t *testing.T) {
	r, store := occasionRouter()
	require.NoError(t, store.Create(context.Background(), &models.Occasion{Name: "Wedding Guest"}))

	req := httptest.NewRequest(http.MethodPost, "/occasions", strings.NewReader(`{"name":"Wedding Guest"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "DUPLICATE_OCCASION_NAME")
	assert.Len(t, store.occasions, 1)
}

func TestCreateOccasionEmptyName(t *testing.T) {
	r, _ := occasionRouter()

	req := httptest.NewRequest(http.MethodPost, "/occasions", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteOccasion(t *testing.T) {
	r, store := occasionRouter()
	occasion := &models.Occasion{Name: "Cocktail Party"}
	require.NoError(t, store.Create(context.Background(), occasion))

	req := httptest.NewRequest(http.MethodDelete, "/occasions/"+occasion.ID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.occasions)
}

func TestDeleteOccasionNotFound(t *testing.T) {
	r, _ := occasionRouter()

	req := httptest.NewRequest(http.MethodDelete, "/occasions/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "OCCASION_NOT_FOUND")
}
