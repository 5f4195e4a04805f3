package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/userbase-api/internal/domain"
	"github.com/phrazzld/userbase-api/internal/events"
	"github.com/phrazzld/userbase-api/internal/store"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// UserService is the user repository consumed by the HTTP layer.
type UserService interface {
	// List returns the full collection in insertion order.
	List(ctx context.Context) []domain.User

	// Get returns the user with the given ID.
	// Returns store.ErrUserNotFound if no such user exists.
	Get(ctx context.Context, id string) (domain.User, error)

	// ListSorted returns the collection ordered by name using locale-aware collation.
	// Returns ErrEmptyCollection if there are no users.
	ListSorted(ctx context.Context) ([]domain.User, error)

	// ListByAgeGreaterThan returns users older than threshold.
	// A threshold without a leading integer matches nobody.
	ListByAgeGreaterThan(ctx context.Context, threshold string) []domain.User

	// ListByEmailDomain returns users whose email ends with suffix.
	ListByEmailDomain(ctx context.Context, suffix string) []domain.User

	// CreateMany validates and stores a batch of users, all or nothing.
	// Returns the new users in input order.
	CreateMany(ctx context.Context, inputs []domain.UserInput) ([]domain.User, error)

	// Create validates and stores a single user.
	Create(ctx context.Context, input domain.UserInput) (domain.User, error)

	// Update applies a partial patch to the user with the given ID.
	Update(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error)

	// Delete removes the user with the given ID and returns it.
	Delete(ctx context.Context, id string) (domain.User, error)

	// Reload replaces the in-memory collection with the stored one.
	Reload(ctx context.Context) error

	// Count returns the number of users.
	Count(ctx context.Context) int
}

// Option configures a UserServiceImpl.
type Option func(*UserServiceImpl)

// WithCollation sets the language whose collation rules order ListSorted.
func WithCollation(tag language.Tag) Option {
	return func(s *UserServiceImpl) {
		s.collation = tag
	}
}

// UserServiceImpl implements the UserService interface.
// All state is guarded by mu; mutations hold the write lock until the store
// has accepted the new collection.
type UserServiceImpl struct {
	userStore store.UserStore
	emitter   events.EventEmitter
	logger    *slog.Logger
	collation language.Tag

	mu    sync.RWMutex
	users []domain.User
}

// Ensure UserServiceImpl implements UserService interface
var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates the repository and loads the collection from userStore.
// A load failure is returned unchanged; the caller decides whether it is fatal.
func NewUserService(
	ctx context.Context,
	userStore store.UserStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
	opts ...Option,
) (*UserServiceImpl, error) {
	if userStore == nil {
		return nil, fmt.Errorf("userStore cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if emitter == nil {
		emitter = events.NopEmitter{}
	}

	s := &UserServiceImpl{
		userStore: userStore,
		emitter:   emitter,
		logger:    logger.With("component", "user_service"),
		collation: language.Und,
	}
	for _, opt := range opts {
		opt(s)
	}

	users, err := userStore.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	s.users = users

	s.logger.Info("user collection loaded", "count", len(users))
	return s, nil
}

// NewEmptyUserService creates the repository with an empty collection without
// reading the store. It exists for the explicit "start empty after a load
// failure" startup mode; the first mutation overwrites whatever is stored.
func NewEmptyUserService(
	userStore store.UserStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
	opts ...Option,
) *UserServiceImpl {
	if userStore == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("userStore cannot be nil for UserService")
	}
	if logger == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("logger cannot be nil for UserService")
	}
	if emitter == nil {
		emitter = events.NopEmitter{}
	}
	s := &UserServiceImpl{
		userStore: userStore,
		emitter:   emitter,
		logger:    logger.With("component", "user_service"),
		collation: language.Und,
		users:     []domain.User{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List implements UserService.List.
func (s *UserServiceImpl) List(ctx context.Context) []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.users)
}

// Get implements UserService.Get.
func (s *UserServiceImpl) Get(ctx context.Context, id string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		s.logger.DebugContext(ctx, "user not found", "user_id", id)
		return domain.User{}, fmt.Errorf("failed to retrieve user %q: %w", id, store.ErrUserNotFound)
	}
	return s.users[i], nil
}

// ListSorted implements UserService.ListSorted.
func (s *UserServiceImpl) ListSorted(ctx context.Context) ([]domain.User, error) {
	sorted := s.List(ctx)
	if len(sorted) == 0 {
		return nil, ErrEmptyCollection
	}

	// Collators keep internal buffers and are not safe for concurrent use.
	c := collate.New(s.collation)
	slices.SortStableFunc(sorted, func(a, b domain.User) int {
		return c.CompareString(a.Name, b.Name)
	})
	return sorted, nil
}

// ListByAgeGreaterThan implements UserService.ListByAgeGreaterThan.
func (s *UserServiceImpl) ListByAgeGreaterThan(ctx context.Context, threshold string) []domain.User {
	limit, ok := parseLeadingInt(threshold)
	if !ok {
		s.logger.DebugContext(ctx, "age threshold is not a number", "threshold", threshold)
		return []domain.User{}
	}
	return s.filter(func(u domain.User) bool { return u.Age > limit })
}

// ListByEmailDomain implements UserService.ListByEmailDomain.
// The match is a plain suffix test, so "gmail.com" also matches "x-gmail.com".
func (s *UserServiceImpl) ListByEmailDomain(ctx context.Context, suffix string) []domain.User {
	return s.filter(func(u domain.User) bool { return strings.HasSuffix(u.Email, suffix) })
}

// CreateMany implements UserService.CreateMany.
func (s *UserServiceImpl) CreateMany(ctx context.Context, inputs []domain.UserInput) ([]domain.User, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("failed to create users: %w", domain.ErrEmptyBatch)
	}

	failures := make(map[int]error)
	for i, in := range inputs {
		if err := in.Validate(); err != nil {
			failures[i] = err
		}
	}
	if len(failures) > 0 {
		err := domain.NewBatchValidationError(failures, len(inputs))
		s.logger.DebugContext(ctx, "rejected user batch",
			"batch_size", len(inputs),
			"invalid_count", len(failures),
			"error", err)
		return nil, fmt.Errorf("failed to create users: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	taken := make(map[string]struct{}, len(s.users)+len(inputs))
	for _, u := range s.users {
		taken[u.ID] = struct{}{}
	}

	created := make([]domain.User, 0, len(inputs))
	for _, in := range inputs {
		u := domain.User{ID: s.newID(taken), Name: in.Name, Email: in.Email, Age: in.Age}
		taken[u.ID] = struct{}{}
		created = append(created, u)
	}

	next := make([]domain.User, 0, len(s.users)+len(created))
	next = append(next, s.users...)
	next = append(next, created...)

	if err := s.commit(ctx, next); err != nil {
		s.mu.Unlock()
		s.logger.ErrorContext(ctx, "failed to persist created users",
			"error", err,
			"batch_size", len(created))
		return nil, fmt.Errorf("failed to create users: %w", err)
	}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "users created", "count", len(created))
	for _, u := range created {
		s.emit(ctx, events.UserCreated, u)
	}

	return slices.Clone(created), nil
}

// Create implements UserService.Create.
func (s *UserServiceImpl) Create(ctx context.Context, input domain.UserInput) (domain.User, error) {
	created, err := s.CreateMany(ctx, []domain.UserInput{input})
	if err != nil {
		return domain.User{}, err
	}
	return created[0], nil
}

// Update implements UserService.Update.
// Empty name or email values and a nil age leave the field unchanged; an
// explicit non-positive age is rejected. A patch that changes nothing is not
// written and emits no event.
func (s *UserServiceImpl) Update(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error) {
	if err := patch.Validate(); err != nil {
		return domain.User{}, fmt.Errorf("failed to update user %q: %w", id, err)
	}
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		s.logger.DebugContext(ctx, "attempted to update non-existent user", "user_id", id)
		return domain.User{}, fmt.Errorf("failed to update user %q: %w", id, store.ErrUserNotFound)
	}

	if patch.IsEmpty() {
		current := s.users[i]
		s.mu.Unlock()
		s.logger.DebugContext(ctx, "empty patch, user left unchanged", "user_id", id)
		return current, nil
	}

	updated := s.users[i].Apply(patch)
	next := slices.Clone(s.users)
	next[i] = updated

	if err := s.commit(ctx, next); err != nil {
		s.mu.Unlock()
		s.logger.ErrorContext(ctx, "failed to persist updated user",
			"error", err,
			"user_id", id)
		return domain.User{}, fmt.Errorf("failed to update user %q: %w", id, err)
	}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "user updated", "user_id", id)
	s.emit(ctx, events.UserUpdated, updated)

	return updated, nil
}

// Delete implements UserService.Delete.
func (s *UserServiceImpl) Delete(ctx context.Context, id string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		s.logger.DebugContext(ctx, "attempted to delete non-existent user", "user_id", id)
		return domain.User{}, fmt.Errorf("failed to delete user %q: %w", id, store.ErrUserNotFound)
	}

	removed := s.users[i]
	next := slices.Delete(slices.Clone(s.users), i, i+1)

	if err := s.commit(ctx, next); err != nil {
		s.mu.Unlock()
		s.logger.ErrorContext(ctx, "failed to persist user deletion",
			"error", err,
			"user_id", id)
		return domain.User{}, fmt.Errorf("failed to delete user %q: %w", id, err)
	}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "user deleted", "user_id", id)
	s.emit(ctx, events.UserDeleted, removed)

	return removed, nil
}

// Reload implements UserService.Reload.
// On failure the current collection is kept.
func (s *UserServiceImpl) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.userStore.Load(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to reload users", "error", err)
		return fmt.Errorf("failed to reload users: %w", err)
	}

	s.logger.InfoContext(ctx, "user collection reloaded",
		"previous_count", len(s.users),
		"count", len(users))
	s.users = users
	return nil
}

// Count implements UserService.Count.
func (s *UserServiceImpl) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// commit persists next and, only if that succeeds, makes it the live
// collection. Callers must hold the write lock.
func (s *UserServiceImpl) commit(ctx context.Context, next []domain.User) error {
	if err := s.userStore.Save(ctx, next); err != nil {
		if !store.IsWriteError(err) {
			err = store.NewWriteError("user", "save collection", err)
		}
		return err
	}
	s.users = next
	return nil
}

// indexOf returns the position of the user with id, or -1.
// Callers must hold a lock.
func (s *UserServiceImpl) indexOf(id string) int {
	return slices.IndexFunc(s.users, func(u domain.User) bool { return u.ID == id })
}

// filter returns the users matching keep, in collection order.
func (s *UserServiceImpl) filter(keep func(domain.User) bool) []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.User, 0)
	for _, u := range s.users {
		if keep(u) {
			out = append(out, u)
		}
	}
	return out
}

// newID returns a random ID not present in taken.
func (s *UserServiceImpl) newID(taken map[string]struct{}) string {
	for {
		id := uuid.NewString()
		if _, dup := taken[id]; !dup {
			return id
		}
	}
}

func (s *UserServiceImpl) emit(ctx context.Context, eventType string, u domain.User) {
	if err := s.emitter.EmitEvent(ctx, events.NewUserEvent(eventType, u)); err != nil {
		s.logger.WarnContext(ctx, "user event handlers failed",
			"error", err,
			"event_type", eventType,
			"user_id", u.ID)
	}
}
