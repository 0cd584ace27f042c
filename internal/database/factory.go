package database

import (
	"fmt"
	"path/filepath"

	"github.com/The-Layout-List/pointercrate/internal/config"
	"github.com/The-Layout-List/pointercrate/internal/list"
)

// FilePath returns the on-disk location of the sqlite database for the
// given config, or an error for database types that have no file.
func FilePath(cfg config.DatabaseConfig) (string, error) {
	if cfg.Type != "sqlite" {
		return "", fmt.Errorf("database type %q has no file path", cfg.Type)
	}
	if cfg.DataDir == "" {
		return "", fmt.Errorf("data_dir required for sqlite database")
	}
	return filepath.Join(cfg.DataDir, "demonlist.db"), nil
}

// NewDatabaseFromConfig creates a Database implementation based on the database config type.
func NewDatabaseFromConfig(cfg config.DatabaseConfig) (list.Database, error) {
	switch cfg.Type {
	case "sqlite":
		path, err := FilePath(cfg)
		if err != nil {
			return nil, err
		}
		return NewSQLiteDatabase(path)
	case "memory":
		return NewSQLiteDatabase(":memory:")
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}
