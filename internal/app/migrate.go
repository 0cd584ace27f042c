package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/The-Layout-List/pointercrate/internal/config"
	"github.com/The-Layout-List/pointercrate/internal/database"
	"github.com/The-Layout-List/pointercrate/internal/database/migrations"
)

// MigrateDatabase brings the local list database to the latest schema
// version, creating the database file on first run. Like RestoreArchive
// it runs outside the normal app lifecycle: NewListApp refuses to start
// on an out-of-date schema.
func MigrateDatabase(cfg *config.Config) error {
	dbPath, err := database.FilePath(cfg.Database)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	db, err := database.OpenConnection(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.MigrateUp(db); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	return nil
}

// DatabaseStatus reports whether the local database schema matches the
// migrations compiled into this binary. Returns nil when up to date.
func DatabaseStatus(cfg *config.Config) error {
	dbPath, err := database.FilePath(cfg.Database)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("no database at %s, run `demonlist db migrate` first", dbPath)
	}

	db, err := database.OpenConnection(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	return migrations.CheckDBMigrationStatus(db)
}
