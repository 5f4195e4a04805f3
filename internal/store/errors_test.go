package store

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("some error"),
			expected: false,
		},
		{
			name:     "ErrNotFound",
			err:      ErrNotFound,
			expected: true,
		},
		{
			name:     "wrapped ErrUserNotFound",
			err:      fmt.Errorf("failed to find user: %w", ErrUserNotFound),
			expected: true,
		},
		{
			name:     "write error",
			err:      NewWriteError("user", "write failed", nil),
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsNotFoundError(tc.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	t.Run("with wrapped error", func(t *testing.T) {
		err := NewStoreError("user", "save", "rename failed", os.ErrPermission)
		assert.Equal(t, "save operation on user failed: rename failed: permission denied", err.Error())
		assert.ErrorIs(t, err, os.ErrPermission)
	})

	t.Run("without wrapped error", func(t *testing.T) {
		err := NewStoreError("user", "load", "bad data", nil)
		assert.Equal(t, "load operation on user failed: bad data", err.Error())
	})
}

func TestLoadAndWriteErrors(t *testing.T) {
	loadErr := NewLoadError("user", "parse failed", os.ErrInvalid)
	assert.ErrorIs(t, loadErr, ErrStoreLoad)
	assert.ErrorIs(t, loadErr, os.ErrInvalid)
	assert.False(t, IsWriteError(loadErr))

	writeErr := NewWriteError("user", "rename failed", os.ErrPermission)
	assert.ErrorIs(t, writeErr, ErrStoreWrite)
	assert.ErrorIs(t, writeErr, os.ErrPermission)
	assert.True(t, IsWriteError(fmt.Errorf("create users: %w", writeErr)))

	var storeErr *StoreError
	assert.ErrorAs(t, writeErr, &storeErr)
	assert.Equal(t, "save", storeErr.Operation)
}
