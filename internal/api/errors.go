package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/userbase-api/internal/api/shared"
	"github.com/phrazzld/userbase-api/internal/domain"
	"github.com/phrazzld/userbase-api/internal/service"
	"github.com/phrazzld/userbase-api/internal/store"
)

// Client-facing error messages.
const (
	MsgInvalidUserData = "Invalid user data"
	MsgUserNotFound    = "User not found"
	MsgNoUsersFound    = "No users found"
	MsgWriteFailed     = "Error writing users"
	MsgReadFailed      = "Error reading users"
	MsgBodyTooLarge    = "Request body too large"
	MsgServerError     = "Server error"

	MsgRouteNotFound    = "Not found"
	MsgMethodNotAllowed = "Method not allowed"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, shared.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge

	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, service.ErrEmptyCollection):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the client message for err.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return MsgServerError

	case errors.Is(err, shared.ErrBodyTooLarge):
		return MsgBodyTooLarge

	case errors.Is(err, domain.ErrValidation):
		return MsgInvalidUserData

	case errors.Is(err, store.ErrUserNotFound):
		return MsgUserNotFound

	case errors.Is(err, service.ErrEmptyCollection):
		return MsgNoUsersFound

	case errors.Is(err, store.ErrStoreWrite):
		return MsgWriteFailed

	case errors.Is(err, store.ErrStoreLoad):
		return MsgReadFailed

	default:
		return MsgServerError
	}
}

// HandleAPIError writes the error response for err and logs the redacted
// details. A non-empty message overrides the mapped client message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), message, err)
}
