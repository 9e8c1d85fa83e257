package service

import (
	"hoku-backend/apperr"
	"hoku-backend/models"
)

// LinkKind names which document type an unlink targets.
type LinkKind string

const (
	LinkKindDress  LinkKind = "dress"
	LinkKindOutfit LinkKind = "outfit"
)

// WardrobeGuard centralizes the reserved-wardrobe rules. Every user owns
// "Your Dresses", "Your Outfits" and "Your Favorites" from signup onward;
// those wardrobes cannot be renamed, deleted, or have their anchor
// documents explicitly unlinked.
type WardrobeGuard struct{}

// NewWardrobeGuard creates a wardrobe guard.
func NewWardrobeGuard() *WardrobeGuard {
	return &WardrobeGuard{}
}

// RequireDefault checks that the "Your Dresses" wardrobe is present in a
// user's wardrobe list. Its absence means the bootstrap invariant is
// broken and reads must fail loudly rather than return a partial view.
func (g *WardrobeGuard) RequireDefault(wardrobes []*models.Wardrobe) error {
	for _, w := range wardrobes {
		if w.Name == models.WardrobeNameDresses {
			return nil
		}
	}
	return apperr.MissingDefaultWardrobe("default wardrobe is missing for this user")
}

// CheckMutable rejects rename or delete of a reserved wardrobe.
func (g *WardrobeGuard) CheckMutable(w *models.Wardrobe) error {
	if w.IsReserved() {
		return apperr.Conflict("RESERVED_WARDROBE", "reserved wardrobes cannot be modified or deleted").
			WithMeta("wardrobe_name", w.Name)
	}
	return nil
}

// CheckUnlinkable rejects an explicit unlink from the default wardrobe
// anchoring the given document kind. Cascade deletes bypass this check
// by calling the link repositories directly.
func (g *WardrobeGuard) CheckUnlinkable(w *models.Wardrobe, kind LinkKind) error {
	protected := models.WardrobeNameDresses
	if kind == LinkKindOutfit {
		protected = models.WardrobeNameOutfits
	}
	if w.Name == protected {
		return apperr.Conflict("RESERVED_WARDROBE", "documents cannot be removed from their default wardrobe").
			WithMeta("wardrobe_name", w.Name)
	}
	return nil
}
