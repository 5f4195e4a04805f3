package events

import (
	"context"
	"log/slog"
)

// AuditLogHandler writes every user event to a structured log.
// Only the user ID is logged; names and emails stay out of the audit trail.
type AuditLogHandler struct {
	logger *slog.Logger
}

// NewAuditLogHandler creates an AuditLogHandler writing to logger.
func NewAuditLogHandler(logger *slog.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: logger.With("component", "user_audit")}
}

// HandleEvent implements EventHandler.
func (h *AuditLogHandler) HandleEvent(ctx context.Context, event *UserEvent) error {
	h.logger.InfoContext(ctx, "user changed",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type),
		slog.String("user_id", event.User.ID),
		slog.Time("at", event.CreatedAt))
	return nil
}
