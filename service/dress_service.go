package service

import (
	"context"
	"errors"

	"hoku-backend/apperr"
	"hoku-backend/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// DressStore is the document persistence surface for dresses.
type DressStore interface {
	Create(ctx context.Context, dress *models.Dress) error
	FindByID(ctx context.Context, id string) (*models.Dress, error)
	FindByUserID(ctx context.Context, userID string) ([]*models.Dress, error)
	FindByIDs(ctx context.Context, ids []string) ([]*models.Dress, error)
	Update(ctx context.Context, id string, fields bson.M) (*models.Dress, error)
	Delete(ctx context.Context, id string) (*models.Dress, error)
}

// DressLinkStore manages wardrobe-dress join rows.
type DressLinkStore interface {
	Link(ctx context.Context, wardrobeID uuid.UUID, dressID string) (*models.WardrobeDressLink, bool, error)
	Unlink(ctx context.Context, wardrobeID uuid.UUID, dressID string) (bool, error)
	UnlinkAll(ctx context.Context, dressID string) (int64, error)
	DressIDsByWardrobe(ctx context.Context, wardrobeID uuid.UUID) ([]string, error)
}

// LinkWardrobeStore resolves wardrobe rows for link workflows.
type LinkWardrobeStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Wardrobe, error)
	FindByUserIDAndName(ctx context.Context, userID uuid.UUID, name string) (*models.Wardrobe, error)
}

// LinkStatus reports how the linking half of a create-and-link workflow
// went. A failed link after the document exists is not an error: the
// caller gets the document plus this status.
type LinkStatus struct {
	LinkedWardrobeIDs []uuid.UUID `json:"linked_wardrobe_ids"`
	Failed            bool        `json:"failed,omitempty"`
	Message           string      `json:"message,omitempty"`
}

// DressService orchestrates the dress document lifecycle across both
// stores: Mongo documents plus Postgres wardrobe links.
type DressService struct {
	dressStore    DressStore
	linkStore     DressLinkStore
	wardrobeStore LinkWardrobeStore
	guard         *WardrobeGuard
	logger        *ActivityLogger
}

// DressServiceOption is a functional option for DressService
type DressServiceOption func(*DressService)

// DressWithStore sets the dress document store
func DressWithStore(store DressStore) DressServiceOption {
	return func(s *DressService) {
		s.dressStore = store
	}
}

// DressWithLinkStore sets the wardrobe-dress link store
func DressWithLinkStore(store DressLinkStore) DressServiceOption {
	return func(s *DressService) {
		s.linkStore = store
	}
}

// DressWithWardrobeStore sets the wardrobe store
func DressWithWardrobeStore(store LinkWardrobeStore) DressServiceOption {
	return func(s *DressService) {
		s.wardrobeStore = store
	}
}

// DressWithGuard sets the wardrobe guard
func DressWithGuard(guard *WardrobeGuard) DressServiceOption {
	return func(s *DressService) {
		s.guard = guard
	}
}

// DressWithActivityLogger sets the activity logger
func DressWithActivityLogger(logger *ActivityLogger) DressServiceOption {
	return func(s *DressService) {
		s.logger = logger
	}
}

// NewDressService creates a new dress service
func NewDressService(opts ...DressServiceOption) *DressService {
	s := &DressService{guard: NewWardrobeGuard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddDressRequest represents a request to create a dress and link it.
// WardrobeID, when set, names an extra wardrobe beyond the default.
type AddDressRequest struct {
	UserID     uuid.UUID
	Dress      *models.Dress
	WardrobeID *uuid.UUID
}

// AddDressResult represents the result of the create-and-link workflow
type AddDressResult struct {
	Dress      *models.Dress
	LinkStatus LinkStatus
}

// AddDress creates the dress document, links it to the user's
// "Your Dresses" wardrobe, and additionally to req.WardrobeID when set.
// A link failure after the document exists does not fail the call: the
// result carries the dress plus a LinkStatus describing the failure.
func (s *DressService) AddDress(ctx context.Context, req AddDressRequest) (*AddDressResult, error) {
	if s.dressStore == nil || s.linkStore == nil || s.wardrobeStore == nil {
		return nil, errors.New("dress service stores not set")
	}

	defaultWardrobe, err := s.wardrobeStore.FindByUserIDAndName(ctx, req.UserID, models.WardrobeNameDresses)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.MissingDefaultWardrobe("default wardrobe is missing for this user")
		}
		return nil, err
	}

	req.Dress.UserID = req.UserID.String()
	if err := s.dressStore.Create(ctx, req.Dress); err != nil {
		s.logger.Log(ctx, &models.ActivityLog{
			UserID:           req.UserID,
			ActionType:       "DRESS_CREATED",
			SourceFeature:    "wardrobe",
			TargetEntityType: "dress",
			Status:           models.ActivityFailure,
			Metadata:         models.ActivityMeta{"error": err.Error()},
		})
		return nil, err
	}

	dressID := req.Dress.ID.Hex()
	targets := []uuid.UUID{defaultWardrobe.ID}
	if req.WardrobeID != nil && *req.WardrobeID != defaultWardrobe.ID {
		if _, err := s.wardrobeStore.GetByID(ctx, *req.WardrobeID); err != nil {
			targets = targets[:1]
			status := s.linkTargets(ctx, dressID, targets)
			status.Failed = true
			status.Message = "extra wardrobe not found: " + err.Error()
			s.logAddDress(ctx, req.UserID, dressID, status)
			return &AddDressResult{Dress: req.Dress, LinkStatus: status}, nil
		}
		targets = append(targets, *req.WardrobeID)
	}

	status := s.linkTargets(ctx, dressID, targets)
	s.logAddDress(ctx, req.UserID, dressID, status)
	return &AddDressResult{Dress: req.Dress, LinkStatus: status}, nil
}

// linkTargets links a dress to each wardrobe, collecting outcomes
// rather than failing.
func (s *DressService) linkTargets(ctx context.Context, dressID string, wardrobeIDs []uuid.UUID) LinkStatus {
	status := LinkStatus{}
	for _, wID := range wardrobeIDs {
		if _, _, err := s.linkStore.Link(ctx, wID, dressID); err != nil {
			status.Failed = true
			status.Message = "failed to link wardrobe " + wID.String() + ": " + err.Error()
			continue
		}
		status.LinkedWardrobeIDs = append(status.LinkedWardrobeIDs, wID)
	}
	return status
}

// logAddDress records the workflow outcome: SUCCESS when at least one
// wardrobe got linked, FAILURE when the document ended up orphaned.
func (s *DressService) logAddDress(ctx context.Context, userID uuid.UUID, dressID string, status LinkStatus) {
	logStatus := models.ActivitySuccess
	if len(status.LinkedWardrobeIDs) == 0 {
		logStatus = models.ActivityFailure
	}
	meta := models.ActivityMeta{"linked_wardrobes": len(status.LinkedWardrobeIDs)}
	if status.Failed {
		meta["link_warning"] = status.Message
	}
	s.logger.Log(ctx, &models.ActivityLog{
		UserID:           userID,
		ActionType:       "DRESS_CREATED",
		SourceFeature:    "wardrobe",
		TargetEntityType: "dress",
		TargetEntityID:   dressID,
		Status:           logStatus,
		Metadata:         meta,
	})
}

// GetDressRequest represents a request to fetch one dress
type GetDressRequest struct {
	DressID string
}

// GetDressResult represents the result of fetching one dress
type GetDressResult struct {
	Dress *models.Dress
}

// GetDress retrieves a dress by id
func (s *DressService) GetDress(ctx context.Context, req GetDressRequest) (*GetDressResult, error) {
	if s.dressStore == nil {
		return nil, errors.New("dress store not set")
	}
	dress, err := s.dressStore.FindByID(ctx, req.DressID)
	if err != nil {
		return nil, err
	}
	return &GetDressResult{Dress: dress}, nil
}

// ListDressesRequest represents a request to list a user's dresses
type ListDressesRequest struct {
	UserID uuid.UUID
}

// ListDressesResult represents the result of listing dresses
type ListDressesResult struct {
	Dresses []*models.Dress
}

// ListDresses retrieves every dress owned by a user
func (s *DressService) ListDresses(ctx context.Context, req ListDressesRequest) (*ListDressesResult, error) {
	if s.dressStore == nil {
		return nil, errors.New("dress store not set")
	}
	dresses, err := s.dressStore.FindByUserID(ctx, req.UserID.String())
	if err != nil {
		return nil, err
	}
	return &ListDressesResult{Dresses: dresses}, nil
}

// UpdateDressRequest represents a partial dress update
type UpdateDressRequest struct {
	DressID string
	Fields  bson.M
}

// UpdateDressResult represents the result of updating a dress
type UpdateDressResult struct {
	Dress *models.Dress
}

// UpdateDress applies a partial update to a dress document
func (s *DressService) UpdateDress(ctx context.Context, req UpdateDressRequest) (*UpdateDressResult, error) {
	if s.dressStore == nil {
		return nil, errors.New("dress store not set")
	}
	dress, err := s.dressStore.Update(ctx, req.DressID, req.Fields)
	if err != nil {
		return nil, err
	}
	return &UpdateDressResult{Dress: dress}, nil
}

// DeleteDressRequest represents a request to delete a dress
type DeleteDressRequest struct {
	UserID  uuid.UUID
	DressID string
}

// DeleteDressResult reports the cascade outcome alongside the deletion.
type DeleteDressResult struct {
	Dress        *models.Dress
	LinksRemoved int64
}

// DeleteDress removes the document first; only on success are the link
// rows cascaded away. A cascade failure leaves orphan links behind,
// which readers tolerate by skipping ids with no document.
func (s *DressService) DeleteDress(ctx context.Context, req DeleteDressRequest) (*DeleteDressResult, error) {
	if s.dressStore == nil || s.linkStore == nil {
		return nil, errors.New("dress service stores not set")
	}

	dress, err := s.dressStore.Delete(ctx, req.DressID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, err
		}
		s.logger.Log(ctx, &models.ActivityLog{
			UserID:           req.UserID,
			ActionType:       "DRESS_DELETED",
			SourceFeature:    "wardrobe",
			TargetEntityType: "dress",
			TargetEntityID:   req.DressID,
			Status:           models.ActivityFailure,
			Metadata:         models.ActivityMeta{"error": err.Error()},
		})
		return nil, err
	}

	removed, unlinkErr := s.linkStore.UnlinkAll(ctx, req.DressID)
	meta := models.ActivityMeta{"links_removed": removed}
	if unlinkErr != nil {
		meta["unlink_error"] = unlinkErr.Error()
	}
	s.logger.Log(ctx, &models.ActivityLog{
		UserID:           req.UserID,
		ActionType:       "DRESS_DELETED",
		SourceFeature:    "wardrobe",
		TargetEntityType: "dress",
		TargetEntityID:   req.DressID,
		Status:           models.ActivitySuccess,
		Metadata:         meta,
	})

	return &DeleteDressResult{Dress: dress, LinksRemoved: removed}, nil
}

// LinkDressRequest represents an explicit link of a dress to a wardrobe
type LinkDressRequest struct {
	WardrobeID uuid.UUID
	DressID    string
}

// LinkDressResult represents the result of an explicit link
type LinkDressResult struct {
	Link *models.WardrobeDressLink
}

// LinkDress links an existing dress into a wardrobe. The wardrobe must
// exist; a link that is already present is a Conflict.
func (s *DressService) LinkDress(ctx context.Context, req LinkDressRequest) (*LinkDressResult, error) {
	if s.linkStore == nil || s.wardrobeStore == nil {
		return nil, errors.New("dress service stores not set")
	}

	if _, err := s.wardrobeStore.GetByID(ctx, req.WardrobeID); err != nil {
		return nil, err
	}
	if _, err := s.dressStore.FindByID(ctx, req.DressID); err != nil {
		return nil, err
	}

	link, created, err := s.linkStore.Link(ctx, req.WardrobeID, req.DressID)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, apperr.Conflict("LINK_EXISTS", "dress is already linked to this wardrobe").
			WithMeta("wardrobe_id", req.WardrobeID.String()).
			WithMeta("dress_id", req.DressID)
	}
	return &LinkDressResult{Link: link}, nil
}

// UnlinkDressRequest represents an explicit unlink request
type UnlinkDressRequest struct {
	WardrobeID uuid.UUID
	DressID    string
}

// UnlinkDressResult reports whether a link row was actually removed
type UnlinkDressResult struct {
	Removed bool
}

// UnlinkDress removes a dress from a wardrobe. Unlinking from the
// "Your Dresses" wardrobe is rejected; unlinking an absent link is a
// no-op, not an error.
func (s *DressService) UnlinkDress(ctx context.Context, req UnlinkDressRequest) (*UnlinkDressResult, error) {
	if s.linkStore == nil || s.wardrobeStore == nil {
		return nil, errors.New("dress service stores not set")
	}

	wardrobe, err := s.wardrobeStore.GetByID(ctx, req.WardrobeID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckUnlinkable(wardrobe, LinkKindDress); err != nil {
		return nil, err
	}

	removed, err := s.linkStore.Unlink(ctx, req.WardrobeID, req.DressID)
	if err != nil {
		return nil, err
	}
	return &UnlinkDressResult{Removed: removed}, nil
}

// DressesByWardrobeRequest represents a wardrobe-contents read
type DressesByWardrobeRequest struct {
	WardrobeID uuid.UUID
}

// DressesByWardrobeResult represents the resolved wardrobe contents
type DressesByWardrobeResult struct {
	Dresses []*models.Dress
}

// DressesByWardrobe resolves a wardrobe's link rows to documents. Link
// ids with no surviving document are silently skipped.
func (s *DressService) DressesByWardrobe(ctx context.Context, req DressesByWardrobeRequest) (*DressesByWardrobeResult, error) {
	if s.dressStore == nil || s.linkStore == nil || s.wardrobeStore == nil {
		return nil, errors.New("dress service stores not set")
	}

	if _, err := s.wardrobeStore.GetByID(ctx, req.WardrobeID); err != nil {
		return nil, err
	}

	ids, err := s.linkStore.DressIDsByWardrobe(ctx, req.WardrobeID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return &DressesByWardrobeResult{Dresses: []*models.Dress{}}, nil
	}

	dresses, err := s.dressStore.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &DressesByWardrobeResult{Dresses: dresses}, nil
}
