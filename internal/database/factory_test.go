package database

import (
	"path/filepath"
	"testing"

	"github.com/The-Layout-List/pointercrate/internal/config"
)

func TestNewDatabaseFromConfig(t *testing.T) {
	t.Run("memory database", func(t *testing.T) {
		cfg := config.DatabaseConfig{Type: "memory"}
		got, err := NewDatabaseFromConfig(cfg)

		if err != nil {
			t.Errorf("NewDatabaseFromConfig() unexpected error: %v", err)
			return
		}
		if got == nil {
			t.Error("NewDatabaseFromConfig() returned nil")
		}
		if got != nil {
			got.Close()
		}
	})

	t.Run("sqlite database", func(t *testing.T) {
		cfg := config.DatabaseConfig{
			Type:    "sqlite",
			DataDir: t.TempDir(),
		}
		got, err := NewDatabaseFromConfig(cfg)

		if err != nil {
			t.Errorf("NewDatabaseFromConfig() unexpected error: %v", err)
			return
		}
		if got == nil {
			t.Error("NewDatabaseFromConfig() returned nil")
		}
		if got != nil {
			got.Close()
		}
	})

	t.Run("sqlite database without data_dir", func(t *testing.T) {
		cfg := config.DatabaseConfig{Type: "sqlite"}
		got, err := NewDatabaseFromConfig(cfg)

		if err == nil {
			t.Error("NewDatabaseFromConfig() expected error for missing data_dir, got nil")
		}
		if got != nil {
			t.Error("NewDatabaseFromConfig() should return nil on error")
			got.Close()
		}
	})

	t.Run("unknown database type", func(t *testing.T) {
		cfg := config.DatabaseConfig{Type: "unknown"}
		got, err := NewDatabaseFromConfig(cfg)

		if err == nil {
			t.Error("NewDatabaseFromConfig() expected error for unknown type, got nil")
		}
		if got != nil {
			t.Error("NewDatabaseFromConfig() should return nil on error")
			got.Close()
		}
	})
}

func TestFilePath(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		got, err := FilePath(config.DatabaseConfig{Type: "sqlite", DataDir: "/var/lib/demonlist"})
		if err != nil {
			t.Fatalf("FilePath() error = %v", err)
		}
		want := filepath.Join("/var/lib/demonlist", "demonlist.db")
		if got != want {
			t.Errorf("FilePath() = %q, want %q", got, want)
		}
	})

	t.Run("memory has no file", func(t *testing.T) {
		if _, err := FilePath(config.DatabaseConfig{Type: "memory"}); err == nil {
			t.Error("FilePath(memory) = nil, want error")
		}
	})
}
