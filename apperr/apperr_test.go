package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindClassification(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("USER_NOT_FOUND", "user not found")))
	assert.True(t, IsConflict(Conflict("LINK_EXISTS", "already linked")))
	assert.True(t, IsMissingDefaultWardrobe(MissingDefaultWardrobe("missing")))
	assert.Equal(t, KindStorage, KindOf(Storage("query failed", errors.New("boom"))))
}

func TestKindOfUnclassified(t *testing.T) {
	err := errors.New("plain failure")
	assert.Equal(t, KindStorage, KindOf(err))
	assert.Equal(t, "INTERNAL", ReasonOf(err))
	assert.False(t, IsNotFound(err))
}

func TestReasonOfWrapped(t *testing.T) {
	inner := Conflict("INVALID_SIGNATURE", "signature verification failed")
	wrapped := fmt.Errorf("verify payment: %w", inner)

	assert.Equal(t, "INVALID_SIGNATURE", ReasonOf(wrapped))
	assert.True(t, IsConflict(wrapped))
}

func TestStorageUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Storage("failed to reach gateway", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "STORAGE")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestWithMeta(t *testing.T) {
	err := Conflict("RESERVED_WARDROBE", "reserved wardrobes cannot be modified").
		WithMeta("wardrobe_name", "Your Dresses")

	assert.Equal(t, "Your Dresses", err.Meta["wardrobe_name"])

	var appErr *Error
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, KindConflict, appErr.Kind)
}
