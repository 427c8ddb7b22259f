package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql

	"github.com/chirpnet/chirpd/internal/logger"
	"github.com/chirpnet/chirpd/pkg/store/migrations"
)

// runMigrations executes the embedded PostgreSQL migrations using
// golang-migrate. golang-migrate takes a PostgreSQL advisory lock, so only
// one instance applies migrations at a time.
func runMigrations(ctx context.Context, connString, database string) error {
	logger.Info("running database migrations")

	// golang-migrate drives a plain database/sql connection
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{
		MigrationsTable: "schema_migrations",
		DatabaseName:    database,
	})
	if err != nil {
		return fmt.Errorf("failed to create postgres driver: %w", err)
	}

	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create source driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}
	if err == migrate.ErrNoChange {
		logger.Debug("database schema is up to date")
	} else {
		logger.Info("database migrations applied")
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}
	if err == nil {
		logger.Debug("database schema version", "version", version, "dirty", dirty)
		if dirty {
			logger.Warn("database schema is in a dirty state, manual intervention may be required")
		}
	}

	return nil
}
