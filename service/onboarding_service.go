package service

import (
	"context"
	"errors"

	"hoku-backend/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// OnboardingUserStore is the user persistence surface onboarding needs.
type OnboardingUserStore interface {
	Create(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, id uuid.UUID, update models.ProfileUpdate) (*models.User, error)
}

// OnboardingWardrobeStore creates wardrobe rows during bootstrap.
type OnboardingWardrobeStore interface {
	Create(ctx context.Context, wardrobe *models.Wardrobe) error
}

// DressAdder runs the create-and-link workflow for one dress. It is
// implemented by DressService.
type DressAdder interface {
	AddDress(ctx context.Context, req AddDressRequest) (*AddDressResult, error)
}

// OnboardingService bootstraps new users: account row plus the three
// reserved wardrobes every user must own.
type OnboardingService struct {
	userStore     OnboardingUserStore
	wardrobeStore OnboardingWardrobeStore
	dresses       DressAdder
	logger        *ActivityLogger
}

// OnboardingServiceOption is a functional option for OnboardingService
type OnboardingServiceOption func(*OnboardingService)

// OnboardingWithUserStore sets the user store
func OnboardingWithUserStore(store OnboardingUserStore) OnboardingServiceOption {
	return func(s *OnboardingService) {
		s.userStore = store
	}
}

// OnboardingWithWardrobeStore sets the wardrobe store
func OnboardingWithWardrobeStore(store OnboardingWardrobeStore) OnboardingServiceOption {
	return func(s *OnboardingService) {
		s.wardrobeStore = store
	}
}

// OnboardingWithDressAdder sets the dress create-and-link workflow
func OnboardingWithDressAdder(adder DressAdder) OnboardingServiceOption {
	return func(s *OnboardingService) {
		s.dresses = adder
	}
}

// OnboardingWithActivityLogger sets the activity logger
func OnboardingWithActivityLogger(logger *ActivityLogger) OnboardingServiceOption {
	return func(s *OnboardingService) {
		s.logger = logger
	}
}

// NewOnboardingService creates a new onboarding service
func NewOnboardingService(opts ...OnboardingServiceOption) *OnboardingService {
	s := &OnboardingService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignupRequest represents a request to create an account
type SignupRequest struct {
	Name        string
	EmailID     string
	Password    string
	PhoneNumber *string
}

// SignupResult carries the new user id and the ids of the three
// reserved wardrobes. It is returned whole or not at all.
type SignupResult struct {
	UserID              uuid.UUID
	DressesWardrobeID   uuid.UUID
	OutfitsWardrobeID   uuid.UUID
	FavoritesWardrobeID uuid.UUID
}

// Signup creates the user row, then the reserved wardrobes in order.
// A wardrobe failure after the user row exists is not rolled back: a
// FAILURE activity entry is attempted and the error propagates.
func (s *OnboardingService) Signup(ctx context.Context, req SignupRequest) (*SignupResult, error) {
	if s.userStore == nil || s.wardrobeStore == nil {
		return nil, errors.New("onboarding stores not set")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:        req.Name,
		EmailID:     req.EmailID,
		Password:    string(hash),
		PhoneNumber: req.PhoneNumber,
	}
	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}

	result := &SignupResult{UserID: user.ID}
	targets := []struct {
		name string
		dest *uuid.UUID
	}{
		{models.WardrobeNameDresses, &result.DressesWardrobeID},
		{models.WardrobeNameOutfits, &result.OutfitsWardrobeID},
		{models.WardrobeNameFavorites, &result.FavoritesWardrobeID},
	}

	for _, target := range targets {
		wardrobe := &models.Wardrobe{UserID: user.ID, Name: target.name}
		if err := s.wardrobeStore.Create(ctx, wardrobe); err != nil {
			s.logger.Log(ctx, &models.ActivityLog{
				UserID:           user.ID,
				ActionType:       "SIGNUP",
				SourceFeature:    "onboarding",
				TargetEntityType: "wardrobe",
				Status:           models.ActivityFailure,
				Metadata:         models.ActivityMeta{"wardrobe_name": target.name, "error": err.Error()},
			})
			return nil, err
		}
		*target.dest = wardrobe.ID

		s.logger.Log(ctx, &models.ActivityLog{
			UserID:           user.ID,
			ActionType:       "WARDROBE_CREATED",
			SourceFeature:    "onboarding",
			TargetEntityType: "wardrobe",
			TargetEntityID:   wardrobe.ID.String(),
			Status:           models.ActivitySuccess,
			Metadata:         models.ActivityMeta{"wardrobe_name": target.name},
		})
	}

	return result, nil
}

// CompleteOnboardingRequest represents the post-signup onboarding step:
// profile details plus an optional set of initial dresses.
type CompleteOnboardingRequest struct {
	UserID  uuid.UUID
	Profile *models.ProfileUpdate
	Dresses []*models.Dress
}

// CompleteOnboardingResult represents the result of completing onboarding
type CompleteOnboardingResult struct {
	User    *models.User
	Dresses []*AddDressResult
}

// CompleteOnboarding applies the profile update and runs the
// create-and-link workflow for each initial dress.
func (s *OnboardingService) CompleteOnboarding(ctx context.Context, req CompleteOnboardingRequest) (*CompleteOnboardingResult, error) {
	if s.userStore == nil {
		return nil, errors.New("user store not set")
	}

	result := &CompleteOnboardingResult{}

	if req.Profile != nil {
		user, err := s.userStore.UpdateProfile(ctx, req.UserID, *req.Profile)
		if err != nil {
			return nil, err
		}
		result.User = user
	}

	for _, dress := range req.Dresses {
		if s.dresses == nil {
			return nil, errors.New("dress workflow not set")
		}
		added, err := s.dresses.AddDress(ctx, AddDressRequest{UserID: req.UserID, Dress: dress})
		if err != nil {
			return nil, err
		}
		result.Dresses = append(result.Dresses, added)
	}

	s.logger.Log(ctx, &models.ActivityLog{
		UserID:        req.UserID,
		ActionType:    "ONBOARDING_COMPLETED",
		SourceFeature: "onboarding",
		Status:        models.ActivitySuccess,
		Metadata:      models.ActivityMeta{"initial_dresses": len(req.Dresses)},
	})

	return result, nil
}

// UpdateOnboardingRequest represents a later revision of onboarding data
type UpdateOnboardingRequest struct {
	UserID  uuid.UUID
	Profile *models.ProfileUpdate
	Dresses []*models.Dress
}

// UpdateOnboardingResult represents the result of updating onboarding data
type UpdateOnboardingResult struct {
	User    *models.User
	Dresses []*AddDressResult
}

// UpdateOnboarding re-runs the profile update and adds any further
// dresses. Same semantics as CompleteOnboarding without the completion
// marker.
func (s *OnboardingService) UpdateOnboarding(ctx context.Context, req UpdateOnboardingRequest) (*UpdateOnboardingResult, error) {
	if s.userStore == nil {
		return nil, errors.New("user store not set")
	}

	result := &UpdateOnboardingResult{}

	if req.Profile != nil {
		user, err := s.userStore.UpdateProfile(ctx, req.UserID, *req.Profile)
		if err != nil {
			return nil, err
		}
		result.User = user
	}

	for _, dress := range req.Dresses {
		if s.dresses == nil {
			return nil, errors.New("dress workflow not set")
		}
		added, err := s.dresses.AddDress(ctx, AddDressRequest{UserID: req.UserID, Dress: dress})
		if err != nil {
			return nil, err
		}
		result.Dresses = append(result.Dresses, added)
	}

	return result, nil
}
