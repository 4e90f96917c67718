package main

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// runMigrations executes the given goose command against the connected
// database using the migrations embedded in the binary.
func runMigrations(db *sql.DB, command string, logger *slog.Logger) error {
	goose.SetBaseFS(embeddedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	logger.Info("running migrations", "command", command)

	switch command {
	case "up":
		if err := goose.Up(db, "migrations"); err != nil {
			return err
		}
	case "down":
		if err := goose.Down(db, "migrations"); err != nil {
			return err
		}
	case "status":
		if err := goose.Status(db, "migrations"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown migration command %q (expected up, down, or status)", command)
	}

	logger.Info("migrations completed", "command", command)
	return nil
}
