package testutils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/userbase-api/internal/domain"
	"github.com/stretchr/testify/require"
)

// UserOption customizes a user built by MustCreateUserForTest.
type UserOption func(*domain.User)

// WithUserID sets the user's ID.
func WithUserID(id string) UserOption {
	return func(u *domain.User) { u.ID = id }
}

// WithUserName sets the user's name.
func WithUserName(name string) UserOption {
	return func(u *domain.User) { u.Name = name }
}

// WithUserEmail sets the user's email.
func WithUserEmail(email string) UserOption {
	return func(u *domain.User) { u.Email = email }
}

// WithUserAge sets the user's age.
func WithUserAge(age int) UserOption {
	return func(u *domain.User) { u.Age = age }
}

// MustCreateUserForTest returns a valid user with a random ID and unique
// email, modified by opts. The result must still pass validation.
func MustCreateUserForTest(t *testing.T, opts ...UserOption) domain.User {
	t.Helper()

	id := uuid.NewString()
	u := domain.User{
		ID:    id,
		Name:  "Test User " + id[:8],
		Email: fmt.Sprintf("test-%s@example.com", id[:8]),
		Age:   30,
	}
	for _, opt := range opts {
		opt(&u)
	}

	require.NoError(t, u.Validate(), "test user must be valid")
	return u
}

// WriteUsersFile writes users to dir/users.json in the persisted format and
// returns the file path.
func WriteUsersFile(t *testing.T, dir string, users ...domain.User) string {
	t.Helper()

	if users == nil {
		users = []domain.User{}
	}
	data, err := json.MarshalIndent(users, "", "  ")
	require.NoError(t, err, "Failed to marshal users")

	path := filepath.Join(dir, "users.json")
	require.NoError(t, os.WriteFile(path, append(data, '\n'), 0o600), "Failed to write users file")
	return path
}
