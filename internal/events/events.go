package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/userbase-api/internal/domain"
)

// Event types published by the user repository.
const (
	UserCreated = "user.created"
	UserUpdated = "user.updated"
	UserDeleted = "user.deleted"
)

// UserEvent records a change to the user collection that has already been
// persisted.
type UserEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of UserCreated, UserUpdated or UserDeleted
	Type string `json:"type"`

	// User is the record as it was after the change, or as it was before
	// removal for UserDeleted.
	User domain.User `json:"user"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewUserEvent creates a UserEvent of the given type for user.
func NewUserEvent(eventType string, user domain.User) *UserEvent {
	return &UserEvent{
		ID:        uuid.New(),
		Type:      eventType,
		User:      user,
		CreatedAt: time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *UserEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *UserEvent) error
}

// NopEmitter discards every event.
type NopEmitter struct{}

// EmitEvent implements EventEmitter.
func (NopEmitter) EmitEvent(context.Context, *UserEvent) error { return nil }
