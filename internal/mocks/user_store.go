package mocks

import (
	"context"
	"slices"
	"sync"

	"github.com/phrazzld/userbase-api/internal/domain"
	"github.com/phrazzld/userbase-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	LoadFn func(ctx context.Context) ([]domain.User, error)
	SaveFn func(ctx context.Context, users []domain.User) error

	mu sync.Mutex
	// Users is the stored collection used by the default implementation
	Users []domain.User
	// Saves holds a copy of every collection passed to a successful Save
	Saves [][]domain.User
}

// Ensure MockUserStore implements store.UserStore interface
var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store holding users.
func NewMockUserStore(users ...domain.User) *MockUserStore {
	return &MockUserStore{
		Users: slices.Clone(users),
	}
}

// Load implements the UserStore interface
func (m *MockUserStore) Load(ctx context.Context) ([]domain.User, error) {
	if m.LoadFn != nil {
		return m.LoadFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Users == nil {
		return []domain.User{}, nil
	}
	return slices.Clone(m.Users), nil
}

// Save implements the UserStore interface
func (m *MockUserStore) Save(ctx context.Context, users []domain.User) error {
	if m.SaveFn != nil {
		if err := m.SaveFn(ctx, users); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Users = slices.Clone(users)
	m.Saves = append(m.Saves, slices.Clone(users))
	return nil
}

// SaveCount returns the number of successful saves.
func (m *MockUserStore) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Saves)
}

// Stored returns a copy of the currently stored collection.
func (m *MockUserStore) Stored() []domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.Users)
}
