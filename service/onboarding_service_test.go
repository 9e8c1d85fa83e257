package service

import (
	"context"
	"errors"
	"testing"

	"hoku-backend/apperr"
	"hoku-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newOnboardingFixture() (*OnboardingService, *fakeUserAccounts, *fakeWardrobeStore, *fakeActivityStore) {
	users := newFakeUserAccounts()
	wardrobes := newFakeWardrobeStore()
	activity := &fakeActivityStore{}
	svc := NewOnboardingService(
		OnboardingWithUserStore(users),
		OnboardingWithWardrobeStore(wardrobes),
		OnboardingWithActivityLogger(NewActivityLogger(activity)),
	)
	return svc, users, wardrobes, activity
}

func TestSignupCreatesReservedWardrobes(t *testing.T) {
	svc, users, wardrobes, activity := newOnboardingFixture()

	result, err := svc.Signup(context.Background(), SignupRequest{
		Name:     "Asha",
		EmailID:  "asha@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, result.UserID)

	list, err := wardrobes.ListByUserID(context.Background(), result.UserID)
	require.NoError(t, err)
	require.Len(t, list, 3)

	names := make(map[string]uuid.UUID)
	for _, w := range list {
		names[w.Name] = w.ID
	}
	assert.Equal(t, names[models.WardrobeNameDresses], result.DressesWardrobeID)
	assert.Equal(t, names[models.WardrobeNameOutfits], result.OutfitsWardrobeID)
	assert.Equal(t, names[models.WardrobeNameFavorites], result.FavoritesWardrobeID)

	// Password stored as a bcrypt hash, never plaintext.
	user := users.users[result.UserID]
	assert.NotEqual(t, "supersecret", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("supersecret")))

	assert.Len(t, activity.byAction("WARDROBE_CREATED"), 3)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newOnboardingFixture()
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupRequest{Name: "A", EmailID: "dup@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, SignupRequest{Name: "B", EmailID: "dup@example.com", Password: "password2"})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
	assert.Equal(t, "DUPLICATE_EMAIL", apperr.ReasonOf(err))
}

func TestSignupWardrobeFailurePropagates(t *testing.T) {
	svc, users, wardrobes, activity := newOnboardingFixture()
	wardrobes.failAfter = 2 // third reserved wardrobe fails

	_, err := svc.Signup(context.Background(), SignupRequest{
		Name:     "Asha",
		EmailID:  "asha@example.com",
		Password: "supersecret",
	})
	require.Error(t, err)

	// The user row is not rolled back; the failure is recorded.
	assert.Len(t, users.users, 1)
	failures := activity.byAction("SIGNUP")
	require.Len(t, failures, 1)
	assert.Equal(t, models.ActivityFailure, failures[0].Status)
}

func TestSignupSurvivesActivityLogFailure(t *testing.T) {
	users := newFakeUserAccounts()
	wardrobes := newFakeWardrobeStore()
	activity := &fakeActivityStore{err: errors.New("log store down")}
	svc := NewOnboardingService(
		OnboardingWithUserStore(users),
		OnboardingWithWardrobeStore(wardrobes),
		OnboardingWithActivityLogger(NewActivityLogger(activity)),
	)

	result, err := svc.Signup(context.Background(), SignupRequest{
		Name:     "Asha",
		EmailID:  "asha@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, result.DressesWardrobeID)
}

func TestSignupWithoutLogger(t *testing.T) {
	users := newFakeUserAccounts()
	wardrobes := newFakeWardrobeStore()
	svc := NewOnboardingService(
		OnboardingWithUserStore(users),
		OnboardingWithWardrobeStore(wardrobes),
	)

	_, err := svc.Signup(context.Background(), SignupRequest{
		Name:     "Asha",
		EmailID:  "asha@example.com",
		Password: "supersecret",
	})
	assert.NoError(t, err)
}

func TestCompleteOnboarding(t *testing.T) {
	svc, _, wardrobes, activity := newOnboardingFixture()
	ctx := context.Background()

	signup, err := svc.Signup(ctx, SignupRequest{Name: "Asha", EmailID: "asha@example.com", Password: "supersecret"})
	require.NoError(t, err)

	dressStore := newFakeDressStore()
	links := newFakeDressLinkStore()
	dressSvc := NewDressService(
		DressWithStore(dressStore),
		DressWithLinkStore(links),
		DressWithWardrobeStore(wardrobes),
	)
	OnboardingWithDressAdder(dressSvc)(svc)

	tone := "warm"
	result, err := svc.CompleteOnboarding(ctx, CompleteOnboardingRequest{
		UserID:  signup.UserID,
		Profile: &models.ProfileUpdate{ColourTone: &tone},
		Dresses: []*models.Dress{
			{Name: "Linen midi"},
			{Name: "Silk wrap"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.Equal(t, "warm", *result.User.ColourTone)
	require.Len(t, result.Dresses, 2)

	// Each initial dress landed in the default wardrobe.
	for _, added := range result.Dresses {
		assert.Equal(t, []uuid.UUID{signup.DressesWardrobeID}, added.LinkStatus.LinkedWardrobeIDs)
		assert.False(t, added.LinkStatus.Failed)
	}

	completed := activity.byAction("ONBOARDING_COMPLETED")
	require.Len(t, completed, 1)
	assert.Equal(t, 2, completed[0].Metadata["initial_dresses"])
}
