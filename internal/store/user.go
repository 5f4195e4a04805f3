package store

import (
	"context"

	"github.com/phrazzld/userbase-api/internal/domain"
)

// UserStore defines the interface for durable storage of the user collection.
// Implementations read and write the whole collection at once; there are no
// partial updates.
type UserStore interface {
	// Load reads the full collection in stored order.
	// A store that has never been written yields an empty collection and no error.
	// Any other read or parse failure wraps ErrStoreLoad.
	Load(ctx context.Context) ([]domain.User, error)

	// Save replaces the stored collection with users.
	// Failures wrap ErrStoreWrite.
	Save(ctx context.Context, users []domain.User) error
}
