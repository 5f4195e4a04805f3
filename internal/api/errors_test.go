package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/userbase-api/internal/api/shared"
	"github.com/phrazzld/userbase-api/internal/domain"
	"github.com/phrazzld/userbase-api/internal/service"
	"github.com/phrazzld/userbase-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "nil error",
			err:             nil,
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: MsgServerError,
		},
		{
			name:            "validation error",
			err:             domain.NewValidationError("age", "must be positive", nil),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: MsgInvalidUserData,
		},
		{
			name: "batch validation error",
			err: domain.NewBatchValidationError(
				map[int]error{1: domain.NewValidationError("name", "is required", nil)}, 2),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: MsgInvalidUserData,
		},
		{
			name:            "wrapped not found",
			err:             fmt.Errorf("failed to update user %q: %w", "x", store.ErrUserNotFound),
			expectedStatus:  http.StatusNotFound,
			expectedMessage: MsgUserNotFound,
		},
		{
			name:            "empty collection",
			err:             service.ErrEmptyCollection,
			expectedStatus:  http.StatusNotFound,
			expectedMessage: MsgNoUsersFound,
		},
		{
			name:            "write failure",
			err:             store.NewWriteError("user", "save collection", errors.New("disk full")),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: MsgWriteFailed,
		},
		{
			name:            "load failure",
			err:             store.NewLoadError("user", "decode", errors.New("bad json")),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: MsgReadFailed,
		},
		{
			name:            "body too large",
			err:             fmt.Errorf("%w: limit is 8 bytes", shared.ErrBodyTooLarge),
			expectedStatus:  http.StatusRequestEntityTooLarge,
			expectedMessage: MsgBodyTooLarge,
		},
		{
			name:            "unknown error",
			err:             errors.New("something broke at /var/lib/users.json"),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: MsgServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedStatus, MapErrorToStatusCode(tc.err))
			assert.Equal(t, tc.expectedMessage, GetSafeErrorMessage(tc.err))
		})
	}
}
