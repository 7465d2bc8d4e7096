package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Dacosmicgiant/CodeCraft-backend/internal/config"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/platform/postgres"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/service"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/service/auth"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore       store.UserStore
	domainStore     store.DomainStore
	technologyStore store.TechnologyStore
	tutorialStore   store.TutorialStore
	lessonStore     store.LessonStore

	// Service interfaces
	jwtService     auth.JWTService
	passwordHasher *auth.BcryptVerifier
	userService    service.UserService
	catalogService service.CatalogService
	lessonService  service.LessonService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger and
// database connection that must be established before initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordHasher = auth.NewBcryptVerifier(cfg.Auth.BcryptCost)

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.domainStore = postgres.NewPostgresDomainStore(db, logger)
	app.technologyStore = postgres.NewPostgresTechnologyStore(db, logger)
	app.tutorialStore = postgres.NewPostgresTutorialStore(db, logger)
	app.lessonStore = postgres.NewPostgresLessonStore(db, logger)

	// Initialize services
	app.userService, err = service.NewUserService(
		app.userStore,
		app.passwordHasher,
		app.passwordHasher,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.catalogService, err = service.NewCatalogService(
		app.domainStore,
		app.technologyStore,
		app.tutorialStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog service: %w", err)
	}

	app.lessonService, err = service.NewLessonService(
		db,
		app.lessonStore,
		app.tutorialStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create lesson service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
