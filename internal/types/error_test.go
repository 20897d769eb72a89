package types

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCapacityError(t *testing.T) {
	t.Run("no slots is a capacity error", func(t *testing.T) {
		err := NewCapacityError(ErrNoSlots)
		assert.Equal(t, CapacityError, err.ErrorCode)
		assert.Equal(t, http.StatusConflict, err.StatusCode)
		assert.ErrorIs(t, err, ErrNoSlots)
	})
	t.Run("bounds are validation errors", func(t *testing.T) {
		for _, reason := range []error{ErrPoolInactive, ErrBelowMinimum, ErrAboveMaximum} {
			err := NewCapacityError(reason)
			assert.Equal(t, ValidationError, err.ErrorCode)
			assert.ErrorIs(t, err, reason)
		}
	})
}

func TestAsError(t *testing.T) {
	wrapped := fmt.Errorf("stake: %w", NewValidationError("amount %s", "-1"))
	typed := AsError(wrapped)
	require.NotNil(t, typed)
	assert.Equal(t, ValidationError, typed.ErrorCode)
	assert.True(t, HasCode(wrapped, ValidationError))
	assert.False(t, HasCode(wrapped, NotFound))

	assert.Nil(t, AsError(errors.New("plain")))
	assert.True(t, NewErrorWithMsg(http.StatusConflict, ConcurrencyConflict, "lost").Retryable())
}
