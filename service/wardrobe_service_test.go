package service

import (
	"context"
	"testing"

	"hoku-backend/apperr"
	"hoku-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWardrobeFixture() (*WardrobeService, *fakeWardrobeStore, uuid.UUID) {
	store := newFakeWardrobeStore()
	userID := uuid.New()
	store.seed(userID, models.WardrobeNameDresses)
	store.seed(userID, models.WardrobeNameOutfits)
	store.seed(userID, models.WardrobeNameFavorites)
	svc := NewWardrobeService(WardrobeWithStore(store))
	return svc, store, userID
}

func TestCreateAndGetWardrobe(t *testing.T) {
	svc, _, userID := newWardrobeFixture()
	ctx := context.Background()

	intent := "office wear"
	created, err := svc.CreateWardrobe(ctx, CreateWardrobeRequest{
		UserID: userID,
		Name:   "Work",
		Intent: &intent,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.Wardrobe.ID)

	got, err := svc.GetWardrobe(ctx, GetWardrobeRequest{WardrobeID: created.Wardrobe.ID})
	require.NoError(t, err)
	assert.Equal(t, "Work", got.Wardrobe.Name)
	assert.Equal(t, "office wear", *got.Wardrobe.Intent)
}

func TestListByUserRequiresDefault(t *testing.T) {
	svc, _, userID := newWardrobeFixture()

	result, err := svc.ListByUser(context.Background(), ListWardrobesRequest{UserID: userID})
	require.NoError(t, err)
	assert.Len(t, result.Wardrobes, 3)

	// A user with no default wardrobe fails loudly.
	other := NewWardrobeService(WardrobeWithStore(newFakeWardrobeStore()))
	_, err = other.ListByUser(context.Background(), ListWardrobesRequest{UserID: uuid.New()})
	require.Error(t, err)
	assert.True(t, apperr.IsMissingDefaultWardrobe(err))
}

func TestUpdateReservedWardrobeRejected(t *testing.T) {
	svc, store, userID := newWardrobeFixture()
	ctx := context.Background()

	var reserved *models.Wardrobe
	for _, w := range store.wardrobes {
		if w.UserID == userID && w.Name == models.WardrobeNameDresses {
			reserved = w
		}
	}
	require.NotNil(t, reserved)

	newName := "My Things"
	_, err := svc.UpdateWardrobe(ctx, UpdateWardrobeRequest{
		WardrobeID: reserved.ID,
		Update:     models.WardrobeUpdate{Name: &newName},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
	assert.Equal(t, "RESERVED_WARDROBE", apperr.ReasonOf(err))

	// Untouched.
	got, err := svc.GetWardrobe(ctx, GetWardrobeRequest{WardrobeID: reserved.ID})
	require.NoError(t, err)
	assert.Equal(t, models.WardrobeNameDresses, got.Wardrobe.Name)
}

func TestDeleteReservedWardrobeRejected(t *testing.T) {
	svc, store, userID := newWardrobeFixture()

	for _, w := range store.wardrobes {
		if w.UserID != userID || !w.IsReserved() {
			continue
		}
		_, err := svc.DeleteWardrobe(context.Background(), DeleteWardrobeRequest{WardrobeID: w.ID})
		require.Error(t, err, "reserved wardrobe %q must not be deletable", w.Name)
		assert.True(t, apperr.IsConflict(err))
	}
	assert.Len(t, store.wardrobes, 3)
}

func TestDeleteCustomWardrobe(t *testing.T) {
	svc, _, userID := newWardrobeFixture()
	ctx := context.Background()

	created, err := svc.CreateWardrobe(ctx, CreateWardrobeRequest{UserID: userID, Name: "Travel"})
	require.NoError(t, err)

	deleted, err := svc.DeleteWardrobe(ctx, DeleteWardrobeRequest{WardrobeID: created.Wardrobe.ID})
	require.NoError(t, err)
	assert.Equal(t, "Travel", deleted.Wardrobe.Name)

	_, err = svc.GetWardrobe(ctx, GetWardrobeRequest{WardrobeID: created.Wardrobe.ID})
	assert.True(t, apperr.IsNotFound(err))
}

func TestReorderWardrobes(t *testing.T) {
	svc, store, userID := newWardrobeFixture()
	ctx := context.Background()

	list, err := store.ListByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 3)

	reversed := []uuid.UUID{list[2].ID, list[1].ID, list[0].ID}
	_, err = svc.Reorder(ctx, ReorderRequest{UserID: userID, OrderedIDs: reversed})
	require.NoError(t, err)

	for pos, id := range reversed {
		assert.Equal(t, pos, store.wardrobes[id].Position)
	}
}

func TestWardrobeGuardCheckUnlinkable(t *testing.T) {
	guard := NewWardrobeGuard()
	userID := uuid.New()

	dresses := &models.Wardrobe{UserID: userID, Name: models.WardrobeNameDresses}
	outfits := &models.Wardrobe{UserID: userID, Name: models.WardrobeNameOutfits}
	favorites := &models.Wardrobe{UserID: userID, Name: models.WardrobeNameFavorites}
	custom := &models.Wardrobe{UserID: userID, Name: "Summer"}

	assert.Error(t, guard.CheckUnlinkable(dresses, LinkKindDress))
	assert.Error(t, guard.CheckUnlinkable(outfits, LinkKindOutfit))

	// The anchor only protects its own document kind; favorites are
	// freely curated for both.
	assert.NoError(t, guard.CheckUnlinkable(dresses, LinkKindOutfit))
	assert.NoError(t, guard.CheckUnlinkable(outfits, LinkKindDress))
	assert.NoError(t, guard.CheckUnlinkable(favorites, LinkKindDress))
	assert.NoError(t, guard.CheckUnlinkable(favorites, LinkKindOutfit))
	assert.NoError(t, guard.CheckUnlinkable(custom, LinkKindDress))
}
