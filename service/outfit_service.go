package service

import (
	"context"
	"errors"

	"hoku-backend/apperr"
	"hoku-backend/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// OutfitStore is the document persistence surface for outfits.
type OutfitStore interface {
	Create(ctx context.Context, outfit *models.Outfit) error
	FindByID(ctx context.Context, id string) (*models.Outfit, error)
	FindByUserID(ctx context.Context, userID string) ([]*models.Outfit, error)
	FindByIDs(ctx context.Context, ids []string) ([]*models.Outfit, error)
	FindByDressComponentID(ctx context.Context, dressID string) ([]*models.Outfit, error)
	Update(ctx context.Context, id string, fields bson.M) (*models.Outfit, error)
	Delete(ctx context.Context, id string) (*models.Outfit, error)
}

// OutfitLinkStore manages wardrobe-outfit join rows.
type OutfitLinkStore interface {
	Link(ctx context.Context, wardrobeID uuid.UUID, outfitID string) (*models.WardrobeOutfitLink, bool, error)
	Unlink(ctx context.Context, wardrobeID uuid.UUID, outfitID string) (bool, error)
	UnlinkAll(ctx context.Context, outfitID string) (int64, error)
	OutfitIDsByWardrobe(ctx context.Context, wardrobeID uuid.UUID) ([]string, error)
}

// OutfitService orchestrates the outfit document lifecycle across both
// stores, mirroring DressService with "Your Outfits" as the anchor.
type OutfitService struct {
	outfitStore   OutfitStore
	linkStore     OutfitLinkStore
	wardrobeStore LinkWardrobeStore
	guard         *WardrobeGuard
	logger        *ActivityLogger
}

// OutfitServiceOption is a functional option for OutfitService
type OutfitServiceOption func(*OutfitService)

// OutfitWithStore sets the outfit document store
func OutfitWithStore(store OutfitStore) OutfitServiceOption {
	return func(s *OutfitService) {
		s.outfitStore = store
	}
}

// OutfitWithLinkStore sets the wardrobe-outfit link store
func OutfitWithLinkStore(store OutfitLinkStore) OutfitServiceOption {
	return func(s *OutfitService) {
		s.linkStore = store
	}
}

// OutfitWithWardrobeStore sets the wardrobe store
func OutfitWithWardrobeStore(store LinkWardrobeStore) OutfitServiceOption {
	return func(s *OutfitService) {
		s.wardrobeStore = store
	}
}

// OutfitWithGuard sets the wardrobe guard
func OutfitWithGuard(guard *WardrobeGuard) OutfitServiceOption {
	return func(s *OutfitService) {
		s.guard = guard
	}
}

// OutfitWithActivityLogger sets the activity logger
func OutfitWithActivityLogger(logger *ActivityLogger) OutfitServiceOption {
	return func(s *OutfitService) {
		s.logger = logger
	}
}

// NewOutfitService creates a new outfit service
func NewOutfitService(opts ...OutfitServiceOption) *OutfitService {
	s := &OutfitService{guard: NewWardrobeGuard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateOutfitRequest represents a request to create an outfit and link
// it. WardrobeID, when set, names an extra wardrobe beyond the default.
type CreateOutfitRequest struct {
	UserID     uuid.UUID
	Outfit     *models.Outfit
	WardrobeID *uuid.UUID
}

// CreateOutfitResult represents the result of the create-and-link workflow
type CreateOutfitResult struct {
	Outfit     *models.Outfit
	LinkStatus LinkStatus
}

// CreateOutfit creates the outfit document, links it to the user's
// "Your Outfits" wardrobe, and additionally to req.WardrobeID when set.
// Same success-with-warning semantics as DressService.AddDress.
func (s *OutfitService) CreateOutfit(ctx context.Context, req CreateOutfitRequest) (*CreateOutfitResult, error) {
	if s.outfitStore == nil || s.linkStore == nil || s.wardrobeStore == nil {
		return nil, errors.New("outfit service stores not set")
	}

	defaultWardrobe, err := s.wardrobeStore.FindByUserIDAndName(ctx, req.UserID, models.WardrobeNameOutfits)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.MissingDefaultWardrobe("default wardrobe is missing for this user")
		}
		return nil, err
	}

	req.Outfit.UserID = req.UserID.String()
	if err := s.outfitStore.Create(ctx, req.Outfit); err != nil {
		s.logger.Log(ctx, &models.ActivityLog{
			UserID:           req.UserID,
			ActionType:       "OUTFIT_CREATED",
			SourceFeature:    "wardrobe",
			TargetEntityType: "outfit",
			Status:           models.ActivityFailure,
			Metadata:         models.ActivityMeta{"error": err.Error()},
		})
		return nil, err
	}

	outfitID := req.Outfit.ID.Hex()
	targets := []uuid.UUID{defaultWardrobe.ID}
	if req.WardrobeID != nil && *req.WardrobeID != defaultWardrobe.ID {
		if _, err := s.wardrobeStore.GetByID(ctx, *req.WardrobeID); err != nil {
			status := s.linkTargets(ctx, outfitID, targets)
			status.Failed = true
			status.Message = "extra wardrobe not found: " + err.Error()
			s.logCreateOutfit(ctx, req.UserID, outfitID, status)
			return &CreateOutfitResult{Outfit: req.Outfit, LinkStatus: status}, nil
		}
		targets = append(targets, *req.WardrobeID)
	}

	status := s.linkTargets(ctx, outfitID, targets)
	s.logCreateOutfit(ctx, req.UserID, outfitID, status)
	return &CreateOutfitResult{Outfit: req.Outfit, LinkStatus: status}, nil
}

func (s *OutfitService) linkTargets(ctx context.Context, outfitID string, wardrobeIDs []uuid.UUID) LinkStatus {
	status := LinkStatus{}
	for _, wID := range wardrobeIDs {
		if _, _, err := s.linkStore.Link(ctx, wID, outfitID); err != nil {
			status.Failed = true
			status.Message = "failed to link wardrobe " + wID.String() + ": " + err.Error()
			continue
		}
		status.LinkedWardrobeIDs = append(status.LinkedWardrobeIDs, wID)
	}
	return status
}

// logCreateOutfit records the workflow outcome: SUCCESS when at least
// one wardrobe got linked, FAILURE when the document ended up orphaned.
func (s *OutfitService) logCreateOutfit(ctx context.Context, userID uuid.UUID, outfitID string, status LinkStatus) {
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
		ActionType:       "OUTFIT_CREATED",
		SourceFeature:    "wardrobe",
		TargetEntityType: "outfit",
		TargetEntityID:   outfitID,
		Status:           logStatus,
		Metadata:         meta,
	})
}

// GetOutfitRequest represents a request to fetch one outfit
type GetOutfitRequest struct {
	OutfitID string
}

// GetOutfitResult represents the result of fetching one outfit
type GetOutfitResult struct {
	Outfit *models.Outfit
}

// GetOutfit retrieves an outfit by id
func (s *OutfitService) GetOutfit(ctx context.Context, req GetOutfitRequest) (*GetOutfitResult, error) {
	if s.outfitStore == nil {
		return nil, errors.New("outfit store not set")
	}
	outfit, err := s.outfitStore.FindByID(ctx, req.OutfitID)
	if err != nil {
		return nil, err
	}
	return &GetOutfitResult{Outfit: outfit}, nil
}

// ListOutfitsRequest represents a request to list a user's outfits
type ListOutfitsRequest struct {
	UserID uuid.UUID
}

// ListOutfitsResult represents the result of listing outfits
type ListOutfitsResult struct {
	Outfits []*models.Outfit
}

// ListOutfits retrieves every outfit owned by a user
func (s *OutfitService) ListOutfits(ctx context.Context, req ListOutfitsRequest) (*ListOutfitsResult, error) {
	if s.outfitStore == nil {
		return nil, errors.New("outfit store not set")
	}
	outfits, err := s.outfitStore.FindByUserID(ctx, req.UserID.String())
	if err != nil {
		return nil, err
	}
	return &ListOutfitsResult{Outfits: outfits}, nil
}

// OutfitsUsingDressRequest asks which outfits reference a dress
type OutfitsUsingDressRequest struct {
	DressID string
}

// OutfitsUsingDressResult lists the outfits referencing a dress
type OutfitsUsingDressResult struct {
	Outfits []*models.Outfit
}

// OutfitsUsingDress retrieves the outfits with the dress among their
// components. Components are never validated against live dresses, so
// this is the only way to find the dependents of a dress.
func (s *OutfitService) OutfitsUsingDress(ctx context.Context, req OutfitsUsingDressRequest) (*OutfitsUsingDressResult, error) {
	if s.outfitStore == nil {
		return nil, errors.New("outfit store not set")
	}
	outfits, err := s.outfitStore.FindByDressComponentID(ctx, req.DressID)
	if err != nil {
		return nil, err
	}
	return &OutfitsUsingDressResult{Outfits: outfits}, nil
}

// UpdateOutfitRequest represents a partial outfit update
type UpdateOutfitRequest struct {
	OutfitID string
	Fields   bson.M
}

// UpdateOutfitResult represents the result of updating an outfit
type UpdateOutfitResult struct {
	Outfit *models.Outfit
}

// UpdateOutfit applies a partial update to an outfit document
func (s *OutfitService) UpdateOutfit(ctx context.Context, req UpdateOutfitRequest) (*UpdateOutfitResult, error) {
	if s.outfitStore == nil {
		return nil, errors.New("outfit store not set")
	}
	outfit, err := s.outfitStore.Update(ctx, req.OutfitID, req.Fields)
	if err != nil {
		return nil, err
	}
	return &UpdateOutfitResult{Outfit: outfit}, nil
}

// DeleteOutfitRequest represents a request to delete an outfit
type DeleteOutfitRequest struct {
	UserID   uuid.UUID
	OutfitID string
}

// DeleteOutfitResult reports the cascade outcome alongside the deletion
type DeleteOutfitResult struct {
	Outfit       *models.Outfit
	LinksRemoved int64
}

// DeleteOutfit removes the document first, then cascades link rows.
func (s *OutfitService) DeleteOutfit(ctx context.Context, req DeleteOutfitRequest) (*DeleteOutfitResult, error) {
	if s.outfitStore == nil || s.linkStore == nil {
		return nil, errors.New("outfit service stores not set")
	}

	outfit, err := s.outfitStore.Delete(ctx, req.OutfitID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, err
		}
		s.logger.Log(ctx, &models.ActivityLog{
			UserID:           req.UserID,
			ActionType:       "OUTFIT_DELETED",
			SourceFeature:    "wardrobe",
			TargetEntityType: "outfit",
			TargetEntityID:   req.OutfitID,
			Status:           models.ActivityFailure,
			Metadata:         models.ActivityMeta{"error": err.Error()},
		})
		return nil, err
	}

	removed, unlinkErr := s.linkStore.UnlinkAll(ctx, req.OutfitID)
	meta := models.ActivityMeta{"links_removed": removed}
	if unlinkErr != nil {
		meta["unlink_error"] = unlinkErr.Error()
	}
	s.logger.Log(ctx, &models.ActivityLog{
		UserID:           req.UserID,
		ActionType:       "OUTFIT_DELETED",
		SourceFeature:    "wardrobe",
		TargetEntityType: "outfit",
		TargetEntityID:   req.OutfitID,
		Status:           models.ActivitySuccess,
		Metadata:         meta,
	})

	return &DeleteOutfitResult{Outfit: outfit, LinksRemoved: removed}, nil
}

// LinkOutfitRequest represents an explicit link of an outfit to a wardrobe
type LinkOutfitRequest struct {
	WardrobeID uuid.UUID
	OutfitID   string
}

// LinkOutfitResult represents the result of an explicit link
type LinkOutfitResult struct {
	Link *models.WardrobeOutfitLink
}

// LinkOutfit links an existing outfit into a wardrobe.
func (s *OutfitService) LinkOutfit(ctx context.Context, req LinkOutfitRequest) (*LinkOutfitResult, error) {
	if s.linkStore == nil || s.wardrobeStore == nil {
		return nil, errors.New("outfit service stores not set")
	}

	if _, err := s.wardrobeStore.GetByID(ctx, req.WardrobeID); err != nil {
		return nil, err
	}
	if _, err := s.outfitStore.FindByID(ctx, req.OutfitID); err != nil {
		return nil, err
	}

	link, created, err := s.linkStore.Link(ctx, req.WardrobeID, req.OutfitID)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, apperr.Conflict("LINK_EXISTS", "outfit is already linked to this wardrobe").
			WithMeta("wardrobe_id", req.WardrobeID.String()).
			WithMeta("outfit_id", req.OutfitID)
	}
	return &LinkOutfitResult{Link: link}, nil
}

// UnlinkOutfitRequest represents an explicit unlink request
type UnlinkOutfitRequest struct {
	WardrobeID uuid.UUID
	OutfitID   string
}

// UnlinkOutfitResult reports whether a link row was actually removed
type UnlinkOutfitResult struct {
	Removed bool
}

// UnlinkOutfit removes an outfit from a wardrobe. Unlinking from the
// "Your Outfits" wardrobe is rejected; an absent link is a no-op.
func (s *OutfitService) UnlinkOutfit(ctx context.Context, req UnlinkOutfitRequest) (*UnlinkOutfitResult, error) {
	if s.linkStore == nil || s.wardrobeStore == nil {
		return nil, errors.New("outfit service stores not set")
	}

	wardrobe, err := s.wardrobeStore.GetByID(ctx, req.WardrobeID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckUnlinkable(wardrobe, LinkKindOutfit); err != nil {
		return nil, err
	}

	removed, err := s.linkStore.Unlink(ctx, req.WardrobeID, req.OutfitID)
	if err != nil {
		return nil, err
	}
	return &UnlinkOutfitResult{Removed: removed}, nil
}

// OutfitsByWardrobeRequest represents a wardrobe-contents read
type OutfitsByWardrobeRequest struct {
	WardrobeID uuid.UUID
}

// OutfitsByWardrobeResult represents the resolved wardrobe contents
type OutfitsByWardrobeResult struct {
	Outfits []*models.Outfit
}

// OutfitsByWardrobe resolves a wardrobe's link rows to documents,
// silently skipping ids with no surviving document.
func (s *OutfitService) OutfitsByWardrobe(ctx context.Context, req OutfitsByWardrobeRequest) (*OutfitsByWardrobeResult, error) {
	if s.outfitStore == nil || s.linkStore == nil || s.wardrobeStore == nil {
		return nil, errors.New("outfit service stores not set")
	}

	if _, err := s.wardrobeStore.GetByID(ctx, req.WardrobeID); err != nil {
		return nil, err
	}

	ids, err := s.linkStore.OutfitIDsByWardrobe(ctx, req.WardrobeID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return &OutfitsByWardrobeResult{Outfits: []*models.Outfit{}}, nil
	}

	outfits, err := s.outfitStore.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &OutfitsByWardrobeResult{Outfits: outfits}, nil
}
