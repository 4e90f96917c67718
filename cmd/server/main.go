// Package main implements the entry point for the Fiszki API server,
// which manages users' flashcard folders and provides AI-assisted
// card generation from pasted study material.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/fiszki-app/fiszki-api/internal/config"
	"github.com/fiszki-app/fiszki-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String(
		"migrate",
		"",
		"run database migrations and exit (up, down, or status)",
	)
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		log.Fatalf("fiszki-api: %v", err)
	}
}

// run loads configuration, wires the application and either executes a
// migration command or starts the HTTP server.
func run(migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	if migrateCmd != "" {
		return handleMigrations(cfg, migrateCmd, appLogger)
	}

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	router := app.setupRouter()
	if err := app.startHTTPServer(context.Background(), router); err != nil {
		app.cleanup()
		return err
	}
	return nil
}

// handleMigrations opens a dedicated database connection, runs the requested
// migration command and closes the connection again.
func handleMigrations(cfg *config.Config, command string, appLogger *slog.Logger) error {
	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Warn("failed to close database connection", "error", closeErr)
		}
	}()

	if err := runMigrations(db, command, appLogger); err != nil {
		return fmt.Errorf("migration %q failed: %w", command, err)
	}
	return nil
}
