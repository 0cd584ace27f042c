package testutil

import (
	"testing"

	"github.com/The-Layout-List/pointercrate/internal/database"
	"github.com/The-Layout-List/pointercrate/internal/database/migrations"
	"github.com/The-Layout-List/pointercrate/internal/list"
)

// NewTestDatabase creates a new in-memory SQLite database with all
// migrations applied. The database is automatically closed when the
// test completes.
func NewTestDatabase(t *testing.T) list.Database {
	t.Helper()

	sqlDB, err := database.OpenConnection(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := migrations.MigrateUp(sqlDB); err != nil {
		sqlDB.Close()
		t.Fatalf("failed to migrate database: %v", err)
	}

	db := database.NewSQLiteDatabaseFromDB(sqlDB)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
