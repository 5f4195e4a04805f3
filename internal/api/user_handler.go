package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/userbase-api/internal/api/shared"
	"github.com/phrazzld/userbase-api/internal/domain"
	"github.com/phrazzld/userbase-api/internal/platform/logger"
	"github.com/phrazzld/userbase-api/internal/service"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Users  int    `json:"users"`
}

// UserHandler handles user collection HTTP requests.
type UserHandler struct {
	users  service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users service.UserService, logger *slog.Logger) *UserHandler {
	if users == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("users cannot be nil for UserHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}

	return &UserHandler{
		users:  users,
		logger: logger.With(slog.String("component", "user_handler")),
	}
}

// RegisterRoutes mounts the user endpoints on r.
// Static segments take precedence over {id} in chi, so /users/sorted never
// reaches Get.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, MsgRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/sorted", h.ListSorted)
		r.Get("/age/{age}", h.ListByAge)
		r.Get("/domain/{domain}", h.ListByDomain)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	r.Post("/admin/reload", h.Reload)
	r.Get("/health", h.Health)
}

// List handles GET /users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.users.List(r.Context()))
}

// ListSorted handles GET /users/sorted
func (h *UserHandler) ListSorted(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListSorted(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, users)
}

// ListByAge handles GET /users/age/{age}
// The threshold is passed through unparsed; a non-numeric value yields an
// empty list rather than an error.
func (h *UserHandler) ListByAge(w http.ResponseWriter, r *http.Request) {
	users := h.users.ListByAgeGreaterThan(r.Context(), chi.URLParam(r, "age"))
	shared.RespondWithJSON(w, r, http.StatusOK, users)
}

// ListByDomain handles GET /users/domain/{domain}
func (h *UserHandler) ListByDomain(w http.ResponseWriter, r *http.Request) {
	users := h.users.ListByEmailDomain(r.Context(), chi.URLParam(r, "domain"))
	shared.RespondWithJSON(w, r, http.StatusOK, users)
}

// Get handles GET /users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// Create handles POST /users
// The body may be a single user object or an array of them. The response
// mirrors the request shape.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	inputs, many, err := shared.DecodeOneOrMany[domain.UserInput](r)
	if err != nil {
		log.Debug("failed to decode user payload", "error", err)
		HandleAPIError(w, r, err, "")
		return
	}

	created, err := h.users.CreateMany(r.Context(), inputs)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("users created", slog.Int("count", len(created)), slog.Bool("batch", many))
	if many {
		shared.RespondWithJSON(w, r, http.StatusCreated, created)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, created[0])
}

// Update handles PUT /users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.UserPatch
	if err := shared.DecodeJSON(r, &patch); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.users.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// Delete handles DELETE /users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// Reload handles POST /admin/reload
func (h *UserHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Reload(r.Context()); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Health handles GET /health
func (h *UserHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status: "ok",
		Users:  h.users.Count(r.Context()),
	})
}
