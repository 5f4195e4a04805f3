package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/phrazzld/userbase-api/internal/domain"
	"github.com/phrazzld/userbase-api/internal/store"
)

// DefaultFileMode is used when no file mode is configured.
const DefaultFileMode fs.FileMode = 0o644

const entityName = "user"

// UserStore implements store.UserStore on top of a single JSON file.
type UserStore struct {
	path   string
	mode   fs.FileMode
	logger *slog.Logger

	mu sync.Mutex
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a store backed by the file at path.
// The file does not need to exist yet. A zero mode falls back to DefaultFileMode.
func NewUserStore(path string, mode fs.FileMode, logger *slog.Logger) *UserStore {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for jsonfile.UserStore")
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	return &UserStore{
		path:   path,
		mode:   mode,
		logger: logger.With(slog.String("component", "jsonfile_user_store")),
	}
}

// Path returns the backing file path.
func (s *UserStore) Path() string {
	return s.path
}

// Load implements store.UserStore.Load.
// A missing or blank file yields an empty collection.
func (s *UserStore) Load(ctx context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.InfoContext(ctx, "users file does not exist, starting with empty collection",
			slog.String("path", s.path))
		return []domain.User{}, nil
	}
	if err != nil {
		return nil, store.NewLoadError(entityName, "read users file", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		s.logger.WarnContext(ctx, "users file is empty, starting with empty collection",
			slog.String("path", s.path))
		return []domain.User{}, nil
	}

	users, err := decodeUsers(data)
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "users loaded",
		slog.String("path", s.path),
		slog.Int("count", len(users)))

	return users, nil
}

// Save implements store.UserStore.Save.
// The collection is written to a temporary file in the same directory and
// renamed over the target, so a failed save leaves the previous file intact.
func (s *UserStore) Save(ctx context.Context, users []domain.User) error {
	if users == nil {
		users = []domain.User{}
	}

	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return store.NewWriteError(entityName, "encode users", err)
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeFile(data); err != nil {
		s.logger.ErrorContext(ctx, "failed to write users file",
			slog.String("path", s.path),
			slog.String("error", err.Error()))
		return err
	}

	s.logger.DebugContext(ctx, "users saved",
		slog.String("path", s.path),
		slog.Int("count", len(users)))

	return nil
}

func (s *UserStore) writeFile(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return store.NewWriteError(entityName, "create directory", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return store.NewWriteError(entityName, "create temp file", err)
	}
	tmpName := tmp.Name()

	// Remove the temp file unless the rename below consumed it.
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return store.NewWriteError(entityName, "write temp file", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return store.NewWriteError(entityName, "sync temp file", err)
	}
	if err := tmp.Close(); err != nil {
		return store.NewWriteError(entityName, "close temp file", err)
	}
	if err := os.Chmod(tmpName, s.mode); err != nil {
		return store.NewWriteError(entityName, "set file mode", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return store.NewWriteError(entityName, "replace users file", err)
	}
	committed = true

	return nil
}

// decodeUsers parses a JSON array of users and checks the collection invariants.
func decodeUsers(data []byte) ([]domain.User, error) {
	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, store.NewLoadError(entityName, "parse users file", err)
	}
	if users == nil {
		return []domain.User{}, nil
	}

	seen := make(map[string]int, len(users))
	for i, u := range users {
		if err := u.Validate(); err != nil {
			return nil, store.NewLoadError(entityName, fmt.Sprintf("record %d is invalid", i), err)
		}
		if j, dup := seen[u.ID]; dup {
			return nil, store.NewLoadError(entityName,
				fmt.Sprintf("records %d and %d share id %q", j, i, u.ID), nil)
		}
		seen[u.ID] = i
	}

	return users, nil
}
