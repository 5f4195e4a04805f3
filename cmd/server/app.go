package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/phrazzld/userbase-api/internal/config"
	"github.com/phrazzld/userbase-api/internal/events"
	"github.com/phrazzld/userbase-api/internal/platform/jsonfile"
	"github.com/phrazzld/userbase-api/internal/service"
	"github.com/phrazzld/userbase-api/internal/store"
	"golang.org/x/text/language"
)

// application holds all the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	userStore    store.UserStore
	eventEmitter *events.InMemoryEventEmitter
	userService  service.UserService
}

// newApplication opens the users file and builds the repository on top of it.
// A load failure is fatal unless the configuration explicitly allows starting
// with an empty collection.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	collation, err := language.Parse(cfg.Users.CollationLocale)
	if err != nil {
		return nil, fmt.Errorf("invalid collation locale %q: %w", cfg.Users.CollationLocale, err)
	}

	fileStore := jsonfile.NewUserStore(cfg.Store.Path, fs.FileMode(cfg.Store.FileMode), logger)
	app.userStore = fileStore

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewAuditLogHandler(logger))

	app.userService, err = service.NewUserService(
		ctx,
		app.userStore,
		app.eventEmitter,
		logger,
		service.WithCollation(collation),
	)
	if err != nil {
		if !cfg.Store.AllowEmptyOnLoadError || !errors.Is(err, store.ErrStoreLoad) {
			return nil, fmt.Errorf("failed to create user service: %w", err)
		}

		logger.Error("users file could not be loaded, starting with an empty collection",
			"error", err,
			"path", fileStore.Path(),
			"next_write_replaces_file", true)
		app.userService = service.NewEmptyUserService(
			app.userStore,
			app.eventEmitter,
			logger,
			service.WithCollation(collation),
		)
	}

	logger.Info("Application initialized successfully",
		"store_path", fileStore.Path(),
		"users", app.userService.Count(ctx),
		"collation", collation.String())
	return app, nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup runs after the HTTP server has stopped accepting requests.
func (app *application) cleanup() {
	app.logger.Info("Application shutdown completed",
		"users", app.userService.Count(context.Background()))
}
