package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/kanban-api/internal/config"
	"github.com/phrazzld/kanban-api/internal/platform/sqlstore"
)

var errNoSQLDatabase = errors.New("migrations require a SQL database driver (sqlite3, pgx or postgres)")

// runMigrations executes one goose command against the configured database.
func runMigrations(ctx context.Context, cfg *config.Config, command string, log *slog.Logger) error {
	if !cfg.Database.UsesSQL() {
		return errNoSQLDatabase
	}

	db, err := sqlstore.Open(ctx, cfg.Database.Driver, cfg.Database.URL, cfg.Database.MaxOpenConns)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Error("failed to close database connection", "error", cerr)
		}
	}()

	if err := sqlstore.Migrate(ctx, db, cfg.Database.Driver, command, log); err != nil {
		return err
	}

	if version, err := sqlstore.CurrentVersion(ctx, db, cfg.Database.Driver); err == nil {
		log.Info("database schema version", "version", version)
	}
	return nil
}
