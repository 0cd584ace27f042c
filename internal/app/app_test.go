package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/The-Layout-List/pointercrate/internal/config"
	"github.com/The-Layout-List/pointercrate/internal/database"
	"github.com/The-Layout-List/pointercrate/internal/list"
)

// testConfig builds a config rooted in a temp dir with a filesystem
// vault and the test encryption backend.
func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	cfg := config.NewConfig("roundtrip", dir)
	cfg.Encryption.Type = "test"
	cfg.Vaults = []config.VaultConfig{
		{Type: "filesystem", Name: "local", FSVaultRoot: filepath.Join(dir, "vault")},
	}
	return cfg
}

func newTestDemon(name string, position int) list.NewDemon {
	return list.NewDemon{
		Name:        name,
		Position:    position,
		Requirement: 90,
		Publisher:   "publisher",
		Verifier:    "verifier",
		Difficulty:  list.DifficultyExtreme,
	}
}

func TestListApp_ArchiveRoundTrip(t *testing.T) {
	cfg := testConfig(t)
	if err := MigrateDatabase(cfg); err != nil {
		t.Fatalf("MigrateDatabase() error = %v", err)
	}

	// A mutating operation uploads a fresh archive on Close.
	a, err := NewListApp(cfg, "AddDemon", "Bloodbath")
	if err != nil {
		t.Fatalf("NewListApp() error = %v", err)
	}
	if _, err := a.AddDemon(7, newTestDemon("Bloodbath", 1)); err != nil {
		a.Close()
		t.Fatalf("AddDemon() error = %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Lose the local database, then restore it from the vault.
	dbPath, err := database.FilePath(cfg.Database)
	if err != nil {
		t.Fatalf("FilePath() error = %v", err)
	}
	if err := os.Remove(dbPath); err != nil {
		t.Fatalf("removing local database: %v", err)
	}

	if err := RestoreArchive(cfg, "passphrase", false); err != nil {
		t.Fatalf("RestoreArchive() error = %v", err)
	}

	restored, err := NewListApp(cfg, "ViewList", "")
	if err != nil {
		t.Fatalf("NewListApp() after restore error = %v", err)
	}
	defer restored.Close()

	demons, err := restored.Demons()
	if err != nil {
		t.Fatalf("Demons() error = %v", err)
	}
	if len(demons) != 1 || demons[0].Name != "Bloodbath" {
		t.Errorf("restored list = %v, want one demon Bloodbath", demons)
	}
}

func TestListApp_RefusesStaleLocalDatabase(t *testing.T) {
	cfg := testConfig(t)
	if err := MigrateDatabase(cfg); err != nil {
		t.Fatalf("MigrateDatabase() error = %v", err)
	}

	a, err := NewListApp(cfg, "AddDemon", "Bloodbath")
	if err != nil {
		t.Fatalf("NewListApp() error = %v", err)
	}
	if _, err := a.AddDemon(7, newTestDemon("Bloodbath", 1)); err != nil {
		a.Close()
		t.Fatalf("AddDemon() error = %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Replace the local database with an empty one. Its operation journal
	// is now behind the vault archive, so startup must refuse.
	dbPath, err := database.FilePath(cfg.Database)
	if err != nil {
		t.Fatalf("FilePath() error = %v", err)
	}
	if err := os.Remove(dbPath); err != nil {
		t.Fatalf("removing local database: %v", err)
	}
	if err := MigrateDatabase(cfg); err != nil {
		t.Fatalf("MigrateDatabase() error = %v", err)
	}

	if _, err := NewListApp(cfg, "ViewList", ""); err == nil {
		t.Fatal("NewListApp() expected error for stale local database")
	}
}

func TestRestoreArchive_RefusesExistingDatabase(t *testing.T) {
	cfg := testConfig(t)
	if err := MigrateDatabase(cfg); err != nil {
		t.Fatalf("MigrateDatabase() error = %v", err)
	}

	a, err := NewListApp(cfg, "AddDemon", "Bloodbath")
	if err != nil {
		t.Fatalf("NewListApp() error = %v", err)
	}
	if _, err := a.AddDemon(7, newTestDemon("Bloodbath", 1)); err != nil {
		a.Close()
		t.Fatalf("AddDemon() error = %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if err := RestoreArchive(cfg, "passphrase", false); err == nil {
		t.Fatal("RestoreArchive() expected error without --force")
	}
	if err := RestoreArchive(cfg, "passphrase", true); err != nil {
		t.Fatalf("RestoreArchive(force) error = %v", err)
	}
}

func TestRestoreArchive_EmptyVault(t *testing.T) {
	cfg := testConfig(t)
	if err := MigrateDatabase(cfg); err != nil {
		t.Fatalf("MigrateDatabase() error = %v", err)
	}

	if err := RestoreArchive(cfg, "", true); err == nil {
		t.Fatal("RestoreArchive() expected error for empty vault")
	}
}
