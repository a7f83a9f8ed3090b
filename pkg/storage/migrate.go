package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

// RunMigrations executes all pending database migrations from migrationsDir.
// Goose needs a database/sql handle, so this opens a short-lived one through
// the pgx stdlib driver, separate from the crawl-time pool.
func RunMigrations(dsn, migrationsDir string, log *logrus.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database for migrations: %w", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	log.WithField("dir", migrationsDir).Debug("Checking for pending migrations...")
	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	log.Debug("Migrations up to date")
	return nil
}
