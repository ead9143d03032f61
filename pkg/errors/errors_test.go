package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	base := stderrors.New("disk full")
	wrapped := Wrap(base, "INTERNAL_ERROR", http.StatusInternalServerError, "save failed")

	assert.Equal(t, "save failed: disk full", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, base))

	plain := New("NOT_FOUND", http.StatusNotFound, "gone")
	assert.Equal(t, "gone", plain.Error())
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	typed := Clone(ErrValidation, "bad payload")
	assert.Equal(t, typed, FromError(typed))

	got := FromError(stderrors.New("oops"))
	require.NotNil(t, got)
	assert.Equal(t, ErrInternal.Code, got.Code)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	clone := Clone(ErrNotFound, "run not found")

	assert.Equal(t, "run not found", clone.Message)
	assert.Equal(t, "resource not found", ErrNotFound.Message)
	assert.Equal(t, ErrNotFound.Code, clone.Code)

	same := Clone(ErrConflict, "")
	assert.Equal(t, ErrConflict.Message, same.Message)
}
