package service

import (
	"context"
	"errors"

	"hoku-backend/models"

	"github.com/google/uuid"
)

// WardrobeStore is the wardrobe persistence surface.
type WardrobeStore interface {
	Create(ctx context.Context, wardrobe *models.Wardrobe) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Wardrobe, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Wardrobe, error)
	List(ctx context.Context) ([]*models.Wardrobe, error)
	Update(ctx context.Context, id uuid.UUID, update models.WardrobeUpdate) (*models.Wardrobe, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.Wardrobe, error)
	Reorder(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error
}

// WardrobeService handles wardrobe CRUD routed through the reserved-name
// guard.
type WardrobeService struct {
	store  WardrobeStore
	guard  *WardrobeGuard
	logger *ActivityLogger
}

// WardrobeServiceOption is a functional option for WardrobeService
type WardrobeServiceOption func(*WardrobeService)

// WardrobeWithStore sets the wardrobe store
func WardrobeWithStore(store WardrobeStore) WardrobeServiceOption {
	return func(s *WardrobeService) {
		s.store = store
	}
}

// WardrobeWithGuard sets the wardrobe guard
func WardrobeWithGuard(guard *WardrobeGuard) WardrobeServiceOption {
	return func(s *WardrobeService) {
		s.guard = guard
	}
}

// WardrobeWithActivityLogger sets the activity logger
func WardrobeWithActivityLogger(logger *ActivityLogger) WardrobeServiceOption {
	return func(s *WardrobeService) {
		s.logger = logger
	}
}

// NewWardrobeService creates a new wardrobe service
func NewWardrobeService(opts ...WardrobeServiceOption) *WardrobeService {
	s := &WardrobeService{guard: NewWardrobeGuard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateWardrobeRequest represents a request to create a wardrobe
type CreateWardrobeRequest struct {
	UserID       uuid.UUID
	Name         string
	Intent       *string
	Lifestyle    *string
	NegativePref *string
}

// CreateWardrobeResult represents the result of creating a wardrobe
type CreateWardrobeResult struct {
	Wardrobe *models.Wardrobe
}

// CreateWardrobe creates a custom wardrobe at the end of the user's
// ordering.
func (s *WardrobeService) CreateWardrobe(ctx context.Context, req CreateWardrobeRequest) (*CreateWardrobeResult, error) {
	if s.store == nil {
		return nil, errors.New("wardrobe store not set")
	}

	wardrobe := &models.Wardrobe{
		UserID:       req.UserID,
		Name:         req.Name,
		Intent:       req.Intent,
		Lifestyle:    req.Lifestyle,
		NegativePref: req.NegativePref,
	}
	if err := s.store.Create(ctx, wardrobe); err != nil {
		return nil, err
	}

	s.logger.Log(ctx, &models.ActivityLog{
		UserID:           req.UserID,
		ActionType:       "WARDROBE_CREATED",
		SourceFeature:    "wardrobe",
		TargetEntityType: "wardrobe",
		TargetEntityID:   wardrobe.ID.String(),
		Status:           models.ActivitySuccess,
		Metadata:         models.ActivityMeta{"wardrobe_name": wardrobe.Name},
	})

	return &CreateWardrobeResult{Wardrobe: wardrobe}, nil
}

// GetWardrobeRequest represents a request to fetch one wardrobe
type GetWardrobeRequest struct {
	WardrobeID uuid.UUID
}

// GetWardrobeResult represents the result of fetching one wardrobe
type GetWardrobeResult struct {
	Wardrobe *models.Wardrobe
}

// GetWardrobe retrieves a wardrobe by id
func (s *WardrobeService) GetWardrobe(ctx context.Context, req GetWardrobeRequest) (*GetWardrobeResult, error) {
	if s.store == nil {
		return nil, errors.New("wardrobe store not set")
	}
	wardrobe, err := s.store.GetByID(ctx, req.WardrobeID)
	if err != nil {
		return nil, err
	}
	return &GetWardrobeResult{Wardrobe: wardrobe}, nil
}

// ListWardrobesRequest represents a request to list a user's wardrobes
type ListWardrobesRequest struct {
	UserID uuid.UUID
}

// ListWardrobesResult represents the ordered wardrobe list
type ListWardrobesResult struct {
	Wardrobes []*models.Wardrobe
}

// ListByUser retrieves a user's wardrobes in position order. The
// bootstrap invariant is checked on every read: a missing default
// wardrobe fails the call rather than returning a partial view.
func (s *WardrobeService) ListByUser(ctx context.Context, req ListWardrobesRequest) (*ListWardrobesResult, error) {
	if s.store == nil {
		return nil, errors.New("wardrobe store not set")
	}

	wardrobes, err := s.store.ListByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.RequireDefault(wardrobes); err != nil {
		return nil, err
	}
	return &ListWardrobesResult{Wardrobes: wardrobes}, nil
}

// ListAllResult represents the admin view of every wardrobe
type ListAllResult struct {
	Wardrobes []*models.Wardrobe
}

// ListAll retrieves every wardrobe (admin path; no invariant check).
func (s *WardrobeService) ListAll(ctx context.Context) (*ListAllResult, error) {
	if s.store == nil {
		return nil, errors.New("wardrobe store not set")
	}
	wardrobes, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListAllResult{Wardrobes: wardrobes}, nil
}

// UpdateWardrobeRequest represents a wardrobe mutation
type UpdateWardrobeRequest struct {
	WardrobeID uuid.UUID
	Update     models.WardrobeUpdate
}

// UpdateWardrobeResult represents the result of updating a wardrobe
type UpdateWardrobeResult struct {
	Wardrobe *models.Wardrobe
}

// UpdateWardrobe renames or re-describes a wardrobe. Reserved wardrobes
// are rejected before any write.
func (s *WardrobeService) UpdateWardrobe(ctx context.Context, req UpdateWardrobeRequest) (*UpdateWardrobeResult, error) {
	if s.store == nil {
		return nil, errors.New("wardrobe store not set")
	}

	wardrobe, err := s.store.GetByID(ctx, req.WardrobeID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckMutable(wardrobe); err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, req.WardrobeID, req.Update)
	if err != nil {
		return nil, err
	}
	return &UpdateWardrobeResult{Wardrobe: updated}, nil
}

// DeleteWardrobeRequest represents a request to delete a wardrobe
type DeleteWardrobeRequest struct {
	WardrobeID uuid.UUID
}

// DeleteWardrobeResult represents the result of deleting a wardrobe
type DeleteWardrobeResult struct {
	Wardrobe *models.Wardrobe
}

// DeleteWardrobe deletes a custom wardrobe; reserved wardrobes are
// rejected before any write.
func (s *WardrobeService) DeleteWardrobe(ctx context.Context, req DeleteWardrobeRequest) (*DeleteWardrobeResult, error) {
	if s.store == nil {
		return nil, errors.New("wardrobe store not set")
	}

	wardrobe, err := s.store.GetByID(ctx, req.WardrobeID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckMutable(wardrobe); err != nil {
		return nil, err
	}

	deleted, err := s.store.Delete(ctx, req.WardrobeID)
	if err != nil {
		return nil, err
	}

	s.logger.Log(ctx, &models.ActivityLog{
		UserID:           wardrobe.UserID,
		ActionType:       "WARDROBE_DELETED",
		SourceFeature:    "wardrobe",
		TargetEntityType: "wardrobe",
		TargetEntityID:   wardrobe.ID.String(),
		Status:           models.ActivitySuccess,
		Metadata:         models.ActivityMeta{"wardrobe_name": wardrobe.Name},
	})

	return &DeleteWardrobeResult{Wardrobe: deleted}, nil
}

// ReorderRequest represents a full reordering of a user's wardrobes
type ReorderRequest struct {
	UserID     uuid.UUID
	OrderedIDs []uuid.UUID
}

// ReorderResult represents the result of a reorder
type ReorderResult struct{}

// Reorder rewrites every listed wardrobe's position inside one
// transaction; any failure rolls the whole ordering back.
func (s *WardrobeService) Reorder(ctx context.Context, req ReorderRequest) (*ReorderResult, error) {
	if s.store == nil {
		return nil, errors.New("wardrobe store not set")
	}
	if err := s.store.Reorder(ctx, req.UserID, req.OrderedIDs); err != nil {
		return nil, err
	}
	return &ReorderResult{}, nil
}
