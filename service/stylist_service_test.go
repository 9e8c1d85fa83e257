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
)

type stylistFixture struct {
	svc      *StylistService
	dresses  *fakeDressStore
	users    *fakeUserAccounts
	credits  *fakeCreditStore
	gen      *fakeTagGenerator
	activity *fakeActivityStore
	userID   uuid.UUID
	dressID  string
}

func newStylistFixture(t *testing.T, balance int) *stylistFixture {
	f := &stylistFixture{
		dresses:  newFakeDressStore(),
		users:    newFakeUserAccounts(),
		credits:  &fakeCreditStore{},
		gen:      &fakeTagGenerator{tags: []string{"bohemian", "summer", "casual"}},
		activity: &fakeActivityStore{},
	}

	user := &models.User{Name: "Asha", EmailID: "asha@example.com", Password: "x"}
	require.NoError(t, f.users.Create(context.Background(), user))
	user.CreditBalance = balance
	f.userID = user.ID

	dress := &models.Dress{UserID: f.userID.String(), Name: "Linen midi"}
	require.NoError(t, f.dresses.Create(context.Background(), dress))
	f.dressID = dress.ID.Hex()

	features := &fakeFeatureStore{features: map[string]*models.Feature{
		FeatureStylistAnalysis: {
			FeatureCode: FeatureStylistAnalysis,
			Name:        "Stylist Analysis",
			CreditCost:  5,
			IsActive:    true,
		},
	}}

	f.svc = NewStylistService(
		StylistWithDressStore(f.dresses),
		StylistWithFeatureStore(features),
		StylistWithUserStore(f.users),
		StylistWithCreditStore(f.credits),
		StylistWithGenerator(f.gen),
		StylistWithActivityLogger(NewActivityLogger(f.activity)),
	)
	return f
}

func TestAnalyzeDress(t *testing.T) {
	f := newStylistFixture(t, 20)
	ctx := context.Background()

	result, err := f.svc.AnalyzeDress(ctx, AnalyzeDressRequest{UserID: f.userID, DressID: f.dressID})
	require.NoError(t, err)

	assert.Equal(t, []string{"bohemian", "summer", "casual"}, result.Tags)
	assert.Equal(t, result.Tags, result.Dress.AIFeatures.GeneratedTags)
	assert.Equal(t, 15, result.NewBalance)

	ledger, err := f.credits.ListByUserID(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, models.CreditConsumption, ledger[0].TransactionType)
	assert.Equal(t, 5, ledger[0].Amount)
	require.NotNil(t, ledger[0].RelatedFeatureCode)
	assert.Equal(t, FeatureStylistAnalysis, *ledger[0].RelatedFeatureCode)
}

func TestAnalyzeDressInsufficientCredits(t *testing.T) {
	f := newStylistFixture(t, 3)

	_, err := f.svc.AnalyzeDress(context.Background(), AnalyzeDressRequest{UserID: f.userID, DressID: f.dressID})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
	assert.Equal(t, "INSUFFICIENT_CREDITS", apperr.ReasonOf(err))

	// No charge on rejection.
	assert.Empty(t, f.credits.entries)
	user, _ := f.users.GetByID(context.Background(), f.userID)
	assert.Equal(t, 3, user.CreditBalance)
}

func TestAnalyzeDressNotOwned(t *testing.T) {
	f := newStylistFixture(t, 20)

	other := &models.Dress{UserID: uuid.NewString(), Name: "Someone else's"}
	require.NoError(t, f.dresses.Create(context.Background(), other))

	_, err := f.svc.AnalyzeDress(context.Background(), AnalyzeDressRequest{
		UserID:  f.userID,
		DressID: other.ID.Hex(),
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestAnalyzeDressGenerationFailure(t *testing.T) {
	f := newStylistFixture(t, 20)
	f.gen.err = errors.New("model unavailable")
	ctx := context.Background()

	_, err := f.svc.AnalyzeDress(ctx, AnalyzeDressRequest{UserID: f.userID, DressID: f.dressID})
	require.Error(t, err)
	assert.Equal(t, apperr.KindStorage, apperr.KindOf(err))

	// No charge when generation fails, and the failure is recorded.
	assert.Empty(t, f.credits.entries)
	user, _ := f.users.GetByID(ctx, f.userID)
	assert.Equal(t, 20, user.CreditBalance)

	failures := f.activity.byAction("STYLIST_ANALYSIS")
	require.Len(t, failures, 1)
	assert.Equal(t, models.ActivityFailure, failures[0].Status)
}
