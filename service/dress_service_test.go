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

type dressFixture struct {
	svc       *DressService
	dresses   *fakeDressStore
	links     *fakeDressLinkStore
	wardrobes *fakeWardrobeStore
	activity  *fakeActivityStore
	userID    uuid.UUID
	defaultW  *models.Wardrobe
}

func newDressFixture() *dressFixture {
	f := &dressFixture{
		dresses:   newFakeDressStore(),
		links:     newFakeDressLinkStore(),
		wardrobes: newFakeWardrobeStore(),
		activity:  &fakeActivityStore{},
		userID:    uuid.New(),
	}
	f.defaultW = f.wardrobes.seed(f.userID, models.WardrobeNameDresses)
	f.wardrobes.seed(f.userID, models.WardrobeNameOutfits)
	f.wardrobes.seed(f.userID, models.WardrobeNameFavorites)
	f.svc = NewDressService(
		DressWithStore(f.dresses),
		DressWithLinkStore(f.links),
		DressWithWardrobeStore(f.wardrobes),
		DressWithActivityLogger(NewActivityLogger(f.activity)),
	)
	return f
}

func TestAddDressLinksDefault(t *testing.T) {
	f := newDressFixture()

	result, err := f.svc.AddDress(context.Background(), AddDressRequest{
		UserID: f.userID,
		Dress:  &models.Dress{Name: "Linen midi"},
	})
	require.NoError(t, err)

	assert.Equal(t, f.userID.String(), result.Dress.UserID)
	assert.False(t, result.Dress.ID.IsZero())
	assert.Equal(t, []uuid.UUID{f.defaultW.ID}, result.LinkStatus.LinkedWardrobeIDs)
	assert.False(t, result.LinkStatus.Failed)

	logs := f.activity.byAction("DRESS_CREATED")
	require.Len(t, logs, 1)
	assert.Equal(t, models.ActivitySuccess, logs[0].Status)
}

func TestAddDressWithExtraWardrobe(t *testing.T) {
	f := newDressFixture()
	extra := f.wardrobes.seed(f.userID, "Summer")

	result, err := f.svc.AddDress(context.Background(), AddDressRequest{
		UserID:     f.userID,
		Dress:      &models.Dress{Name: "Silk wrap"},
		WardrobeID: &extra.ID,
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []uuid.UUID{f.defaultW.ID, extra.ID}, result.LinkStatus.LinkedWardrobeIDs)
	assert.False(t, result.LinkStatus.Failed)
}

func TestAddDressMissingExtraWardrobe(t *testing.T) {
	f := newDressFixture()
	missing := uuid.New()

	result, err := f.svc.AddDress(context.Background(), AddDressRequest{
		UserID:     f.userID,
		Dress:      &models.Dress{Name: "Silk wrap"},
		WardrobeID: &missing,
	})
	require.NoError(t, err)

	// Still linked to the default; the miss is a warning, not a failure.
	assert.Equal(t, []uuid.UUID{f.defaultW.ID}, result.LinkStatus.LinkedWardrobeIDs)
	assert.True(t, result.LinkStatus.Failed)
	assert.Contains(t, result.LinkStatus.Message, "extra wardrobe not found")
}

func TestAddDressLinkFailureIsNotAnError(t *testing.T) {
	f := newDressFixture()
	f.links.linkErr = errors.New("postgres down")

	result, err := f.svc.AddDress(context.Background(), AddDressRequest{
		UserID: f.userID,
		Dress:  &models.Dress{Name: "Linen midi"},
	})
	require.NoError(t, err)

	// The document exists even though no link was written.
	assert.False(t, result.Dress.ID.IsZero())
	assert.Empty(t, result.LinkStatus.LinkedWardrobeIDs)
	assert.True(t, result.LinkStatus.Failed)
	_, storeErr := f.dresses.FindByID(context.Background(), result.Dress.ID.Hex())
	assert.NoError(t, storeErr)

	// With nothing linked the workflow log records a failure, not a
	// success with a warning buried in metadata.
	logs := f.activity.byAction("DRESS_CREATED")
	require.Len(t, logs, 1)
	assert.Equal(t, models.ActivityFailure, logs[0].Status)
	assert.Contains(t, logs[0].Metadata, "link_warning")
}

func TestAddDressMissingDefaultWardrobe(t *testing.T) {
	f := newDressFixture()
	svc := NewDressService(
		DressWithStore(f.dresses),
		DressWithLinkStore(f.links),
		DressWithWardrobeStore(newFakeWardrobeStore()), // no wardrobes at all
	)

	_, err := svc.AddDress(context.Background(), AddDressRequest{
		UserID: f.userID,
		Dress:  &models.Dress{Name: "Linen midi"},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsMissingDefaultWardrobe(err))
}

func TestDeleteDressCascadesLinks(t *testing.T) {
	f := newDressFixture()
	ctx := context.Background()
	extra := f.wardrobes.seed(f.userID, "Summer")

	added, err := f.svc.AddDress(ctx, AddDressRequest{
		UserID:     f.userID,
		Dress:      &models.Dress{Name: "Linen midi"},
		WardrobeID: &extra.ID,
	})
	require.NoError(t, err)
	dressID := added.Dress.ID.Hex()

	result, err := f.svc.DeleteDress(ctx, DeleteDressRequest{UserID: f.userID, DressID: dressID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.LinksRemoved)

	_, err = f.svc.GetDress(ctx, GetDressRequest{DressID: dressID})
	assert.True(t, apperr.IsNotFound(err))

	ids, err := f.links.DressIDsByWardrobe(ctx, f.defaultW.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestDeleteDressNotFound(t *testing.T) {
	f := newDressFixture()

	_, err := f.svc.DeleteDress(context.Background(), DeleteDressRequest{
		UserID:  f.userID,
		DressID: "ffffffffffffffffffffffff",
	})
	assert.True(t, apperr.IsNotFound(err))
	assert.Empty(t, f.activity.byAction("DRESS_DELETED"))
}

func TestLinkDressDuplicateIsConflict(t *testing.T) {
	f := newDressFixture()
	ctx := context.Background()
	extra := f.wardrobes.seed(f.userID, "Summer")

	added, err := f.svc.AddDress(ctx, AddDressRequest{UserID: f.userID, Dress: &models.Dress{Name: "Linen midi"}})
	require.NoError(t, err)
	dressID := added.Dress.ID.Hex()

	_, err = f.svc.LinkDress(ctx, LinkDressRequest{WardrobeID: extra.ID, DressID: dressID})
	require.NoError(t, err)

	_, err = f.svc.LinkDress(ctx, LinkDressRequest{WardrobeID: extra.ID, DressID: dressID})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
	assert.Equal(t, "LINK_EXISTS", apperr.ReasonOf(err))
}

func TestLinkDressUnknownWardrobe(t *testing.T) {
	f := newDressFixture()
	ctx := context.Background()

	added, err := f.svc.AddDress(ctx, AddDressRequest{UserID: f.userID, Dress: &models.Dress{Name: "Linen midi"}})
	require.NoError(t, err)

	_, err = f.svc.LinkDress(ctx, LinkDressRequest{WardrobeID: uuid.New(), DressID: added.Dress.ID.Hex()})
	assert.True(t, apperr.IsNotFound(err))
}

func TestUnlinkDressFromDefaultRejected(t *testing.T) {
	f := newDressFixture()
	ctx := context.Background()

	added, err := f.svc.AddDress(ctx, AddDressRequest{UserID: f.userID, Dress: &models.Dress{Name: "Linen midi"}})
	require.NoError(t, err)

	_, err = f.svc.UnlinkDress(ctx, UnlinkDressRequest{
		WardrobeID: f.defaultW.ID,
		DressID:    added.Dress.ID.Hex(),
	})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
	assert.Equal(t, "RESERVED_WARDROBE", apperr.ReasonOf(err))
}

func TestUnlinkDressIdempotent(t *testing.T) {
	f := newDressFixture()
	ctx := context.Background()
	extra := f.wardrobes.seed(f.userID, "Summer")

	added, err := f.svc.AddDress(ctx, AddDressRequest{
		UserID:     f.userID,
		Dress:      &models.Dress{Name: "Linen midi"},
		WardrobeID: &extra.ID,
	})
	require.NoError(t, err)
	dressID := added.Dress.ID.Hex()

	first, err := f.svc.UnlinkDress(ctx, UnlinkDressRequest{WardrobeID: extra.ID, DressID: dressID})
	require.NoError(t, err)
	assert.True(t, first.Removed)

	second, err := f.svc.UnlinkDress(ctx, UnlinkDressRequest{WardrobeID: extra.ID, DressID: dressID})
	require.NoError(t, err)
	assert.False(t, second.Removed)
}

func TestDressesByWardrobeSkipsStaleLinks(t *testing.T) {
	f := newDressFixture()
	ctx := context.Background()
	extra := f.wardrobes.seed(f.userID, "Summer")

	first, err := f.svc.AddDress(ctx, AddDressRequest{UserID: f.userID, Dress: &models.Dress{Name: "Linen midi"}, WardrobeID: &extra.ID})
	require.NoError(t, err)
	second, err := f.svc.AddDress(ctx, AddDressRequest{UserID: f.userID, Dress: &models.Dress{Name: "Silk wrap"}, WardrobeID: &extra.ID})
	require.NoError(t, err)

	// Orphan a link by removing the document behind the store's back.
	_, err = f.dresses.Delete(ctx, first.Dress.ID.Hex())
	require.NoError(t, err)

	result, err := f.svc.DressesByWardrobe(ctx, DressesByWardrobeRequest{WardrobeID: extra.ID})
	require.NoError(t, err)
	require.Len(t, result.Dresses, 1)
	assert.Equal(t, second.Dress.ID, result.Dresses[0].ID)
}

func TestDressesByWardrobeEmpty(t *testing.T) {
	f := newDressFixture()
	extra := f.wardrobes.seed(f.userID, "Summer")

	result, err := f.svc.DressesByWardrobe(context.Background(), DressesByWardrobeRequest{WardrobeID: extra.ID})
	require.NoError(t, err)
	assert.NotNil(t, result.Dresses)
	assert.Empty(t, result.Dresses)
}
