package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/userbase-api/internal/api"
	apiMiddleware "github.com/phrazzld/userbase-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(apiMiddleware.MaxBodyBytes(app.config.Server.MaxBodyBytes))

	api.NewUserHandler(app.userService, app.logger).RegisterRoutes(r)

	return r
}
