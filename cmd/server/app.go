package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/fiszki-app/fiszki-api/internal/api"
	"github.com/fiszki-app/fiszki-api/internal/api/middleware"
	"github.com/fiszki-app/fiszki-api/internal/config"
	"github.com/fiszki-app/fiszki-api/internal/generation"
	"github.com/fiszki-app/fiszki-api/internal/platform/postgres"
	"github.com/fiszki-app/fiszki-api/internal/service"
	"github.com/fiszki-app/fiszki-api/internal/service/auth"
)

// application holds all long-lived dependencies of the server. It is built
// once at startup and torn down by cleanup.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	authHandler      *api.AuthHandler
	folderHandler    *api.FolderHandler
	flashcardHandler *api.FlashcardHandler
	authMiddleware   *middleware.AuthMiddleware
}

// newApplication wires the full dependency graph: database handle, stores,
// services and HTTP handlers. On any wiring error the database connection is
// closed before the error is returned.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	app, err := buildApplication(cfg, logger, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func buildApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	userStore := postgres.NewPostgresUserStore(db, bcrypt.DefaultCost, logger)
	folderStore := postgres.NewPostgresFolderStore(db, logger)
	flashcardStore := postgres.NewPostgresFlashcardStore(db, logger)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}
	passwordVerifier := auth.NewBcryptVerifier()

	generator := generation.NewMockGenerator(logger)

	folderService, err := service.NewFolderService(folderStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create folder service: %w", err)
	}
	flashcardService, err := service.NewFlashcardService(db, flashcardStore, folderStore, generator, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create flashcard service: %w", err)
	}

	return &application{
		config:           cfg,
		logger:           logger,
		db:               db,
		authHandler:      api.NewAuthHandler(userStore, jwtService, passwordVerifier, logger),
		folderHandler:    api.NewFolderHandler(folderService, logger),
		flashcardHandler: api.NewFlashcardHandler(flashcardService, logger),
		authMiddleware:   middleware.NewAuthMiddleware(jwtService),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Warn("failed to close database connection", "error", err)
		}
	}
}
