package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// allTypes is the subscription key for handlers that receive every event.
const allTypes = "*"

// InMemoryEventEmitter dispatches events synchronously to handlers held in
// memory. Type subscribers run before wildcard ones, each group in
// registration order.
type InMemoryEventEmitter struct {
	mu       sync.RWMutex
	handlers map[string][]EventHandler
	logger   *slog.Logger
}

// Ensure InMemoryEventEmitter implements EventEmitter interface
var _ EventEmitter = (*InMemoryEventEmitter)(nil)

// NewInMemoryEventEmitter creates a new instance of InMemoryEventEmitter.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	return &InMemoryEventEmitter{
		handlers: make(map[string][]EventHandler),
		logger:   logger.With("component", "in_memory_event_emitter"),
	}
}

// RegisterHandler subscribes handler to every event type.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler) {
	e.Subscribe(allTypes, handler)
}

// Subscribe registers handler for a single event type.
func (e *InMemoryEventEmitter) Subscribe(eventType string, handler EventHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers[eventType] = append(e.handlers[eventType], handler)
	e.logger.Debug("registered event handler",
		"event_type", eventType,
		"handler_count", len(e.handlers[eventType]))
}

// EmitEvent publishes the given event to every matching handler.
// A failing handler does not stop delivery to the rest; all failures are
// returned together.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *UserEvent) error {
	e.mu.RLock()
	handlers := make([]EventHandler, 0, len(e.handlers[allTypes])+len(e.handlers[event.Type]))
	handlers = append(handlers, e.handlers[event.Type]...)
	handlers = append(handlers, e.handlers[allTypes]...)
	e.mu.RUnlock()

	e.logger.DebugContext(ctx, "emitting event",
		"event_id", event.ID,
		"event_type", event.Type,
		"user_id", event.User.ID,
		"handler_count", len(handlers))

	var result *multierror.Error
	for i, handler := range handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			e.logger.ErrorContext(ctx, "handler failed to process event",
				"error", err,
				"handler_index", i,
				"event_id", event.ID,
				"event_type", event.Type)
			result = multierror.Append(result, fmt.Errorf("handler %d: %w", i, err))
		}
	}

	return result.ErrorOrNil()
}
