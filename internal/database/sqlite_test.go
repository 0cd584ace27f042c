package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/The-Layout-List/pointercrate/internal/database/migrations"
	"github.com/The-Layout-List/pointercrate/internal/list"
)

var testTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

// newTestDB creates a new in-memory database with all migrations applied.
func newTestDB(t *testing.T) *SQLiteDatabase {
	t.Helper()

	db, err := NewSQLiteDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	if err := migrations.MigrateUp(db.db); err != nil {
		db.Close()
		t.Fatalf("failed to migrate database: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func insertTestDemon(t *testing.T, db *SQLiteDatabase, name string, position int) *list.Demon {
	t.Helper()

	player, err := db.FindOrCreatePlayer("player for " + name)
	if err != nil {
		t.Fatalf("FindOrCreatePlayer() error = %v", err)
	}
	demon, err := db.InsertDemonAudited(&list.Demon{
		Name:        name,
		Position:    position,
		Requirement: 90,
		PublisherID: player.ID,
		VerifierID:  player.ID,
		Difficulty:  list.DifficultyExtreme,
	}, 1, testTime)
	if err != nil {
		t.Fatalf("InsertDemonAudited() error = %v", err)
	}
	return demon
}

func TestSQLiteDatabase_FindDemon_NotFound(t *testing.T) {
	db := newTestDB(t)

	demon, err := db.FindDemon(999)
	if err != nil {
		t.Fatalf("FindDemon() error = %v", err)
	}
	if demon != nil {
		t.Errorf("FindDemon(999) = %v, want nil", demon)
	}
}

func TestSQLiteDatabase_ListDemons_Ordering(t *testing.T) {
	db := newTestDB(t)

	a := insertTestDemon(t, db, "Acheron", 1)
	insertTestDemon(t, db, "Bloodbath", 2)

	// Unrank Acheron; it must sort after every ranked demon.
	_, err := db.UpdateDemonAudited(a.ID, 1, testTime, func(d *list.Demon) error {
		d.Position = list.UnrankedPosition
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateDemonAudited() error = %v", err)
	}

	demons, err := db.ListDemons()
	if err != nil {
		t.Fatalf("ListDemons() error = %v", err)
	}
	if len(demons) != 2 {
		t.Fatalf("ListDemons() returned %d demons, want 2", len(demons))
	}
	if demons[0].Name != "Bloodbath" || demons[1].Name != "Acheron" {
		t.Errorf("ListDemons() order = %s, %s; want Bloodbath, Acheron", demons[0].Name, demons[1].Name)
	}
}

func TestSQLiteDatabase_MaxPosition(t *testing.T) {
	db := newTestDB(t)

	max, err := db.MaxPosition()
	if err != nil {
		t.Fatalf("MaxPosition() error = %v", err)
	}
	if max != 0 {
		t.Errorf("MaxPosition() on empty list = %d, want 0", max)
	}

	insertTestDemon(t, db, "Acheron", 1)
	b := insertTestDemon(t, db, "Bloodbath", 2)

	// Unranked demons must not count towards the maximum.
	_, err = db.UpdateDemonAudited(b.ID, 1, testTime, func(d *list.Demon) error {
		d.Position = list.UnrankedPosition
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateDemonAudited() error = %v", err)
	}

	max, err = db.MaxPosition()
	if err != nil {
		t.Fatalf("MaxPosition() error = %v", err)
	}
	if max != 1 {
		t.Errorf("MaxPosition() = %d, want 1", max)
	}
}

func TestSQLiteDatabase_UpdateDemonAudited_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.UpdateDemonAudited(999, 1, testTime, func(d *list.Demon) error { return nil })
	if _, ok := err.(list.NotFoundError); !ok {
		t.Errorf("UpdateDemonAudited(999) error = %v, want NotFoundError", err)
	}
}

func TestSQLiteDatabase_UpdateDemonAudited_MutateErrorAborts(t *testing.T) {
	db := newTestDB(t)
	d := insertTestDemon(t, db, "Acheron", 1)

	wantErr := list.ConstraintError{Field: "position", Message: "nope"}
	_, err := db.UpdateDemonAudited(d.ID, 1, testTime, func(demon *list.Demon) error {
		demon.Name = "changed"
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("UpdateDemonAudited() error = %v, want %v", err, wantErr)
	}

	// Neither the mutation nor an audit entry may survive the rollback.
	reloaded, err := db.FindDemon(d.ID)
	if err != nil {
		t.Fatalf("FindDemon() error = %v", err)
	}
	if reloaded.Name != "Acheron" {
		t.Errorf("name after aborted update = %q, want Acheron", reloaded.Name)
	}
	entries, err := db.ModificationsFor(list.KindDemon, d.ID)
	if err != nil {
		t.Fatalf("ModificationsFor() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("ModificationsFor() returned %d entries after aborted update, want 0", len(entries))
	}
}

func TestSQLiteDatabase_FindOrCreatePlayer(t *testing.T) {
	db := newTestDB(t)

	first, err := db.FindOrCreatePlayer("spaceuk")
	if err != nil {
		t.Fatalf("FindOrCreatePlayer() error = %v", err)
	}
	second, err := db.FindOrCreatePlayer("spaceuk")
	if err != nil {
		t.Fatalf("FindOrCreatePlayer() error = %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("FindOrCreatePlayer() created duplicate players: %d, %d", first.ID, second.ID)
	}
}

func TestSQLiteDatabase_ModificationsSince_AttributeFilter(t *testing.T) {
	db := newTestDB(t)
	d := insertTestDemon(t, db, "Acheron", 1)

	// One update touching the name, one touching the video with a null
	// prior value, one touching nothing.
	_, err := db.UpdateDemonAudited(d.ID, 1, testTime.Add(time.Minute), func(demon *list.Demon) error {
		demon.Name = "Acheron Buffed"
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateDemonAudited() error = %v", err)
	}
	video := "https://www.youtube.com/watch?v=abc"
	_, err = db.UpdateDemonAudited(d.ID, 1, testTime.Add(2*time.Minute), func(demon *list.Demon) error {
		demon.Video = &video
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateDemonAudited() error = %v", err)
	}
	_, err = db.UpdateDemonAudited(d.ID, 1, testTime.Add(3*time.Minute), func(demon *list.Demon) error {
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateDemonAudited() error = %v", err)
	}

	t.Run("name", func(t *testing.T) {
		entries, err := db.ModificationsSince(list.KindDemon, list.AttrName, testTime)
		if err != nil {
			t.Fatalf("ModificationsSince() error = %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("ModificationsSince(name) returned %d entries, want 1", len(entries))
		}
		if !entries[0].Diffs[list.AttrName].Equal(list.Text("Acheron")) {
			t.Errorf("prior name = %v, want Acheron", entries[0].Diffs[list.AttrName])
		}
	})

	t.Run("null prior values still match", func(t *testing.T) {
		entries, err := db.ModificationsSince(list.KindDemon, list.AttrVideo, testTime)
		if err != nil {
			t.Fatalf("ModificationsSince() error = %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("ModificationsSince(video) returned %d entries, want 1", len(entries))
		}
		if !entries[0].Diffs[list.AttrVideo].Equal(list.Null()) {
			t.Errorf("prior video = %v, want null", entries[0].Diffs[list.AttrVideo])
		}
	})

	t.Run("since excludes older entries", func(t *testing.T) {
		entries, err := db.ModificationsSince(list.KindDemon, list.AttrName, testTime.Add(90*time.Second))
		if err != nil {
			t.Fatalf("ModificationsSince() error = %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("ModificationsSince() returned %d entries, want 0", len(entries))
		}
	})
}

func TestSQLiteDatabase_ModificationsFor_Order(t *testing.T) {
	db := newTestDB(t)
	d := insertTestDemon(t, db, "Acheron", 1)

	// Two updates sharing a timestamp must come back in insertion order.
	for i, name := range []string{"first", "second"} {
		_, err := db.UpdateDemonAudited(d.ID, int64(i+1), testTime.Add(time.Minute), func(demon *list.Demon) error {
			demon.Name = name
			return nil
		})
		if err != nil {
			t.Fatalf("UpdateDemonAudited() error = %v", err)
		}
	}

	entries, err := db.ModificationsFor(list.KindDemon, d.ID)
	if err != nil {
		t.Fatalf("ModificationsFor() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ModificationsFor() returned %d entries, want 2", len(entries))
	}
	if entries[0].ID >= entries[1].ID {
		t.Errorf("entries out of insertion order: %d before %d", entries[0].ID, entries[1].ID)
	}
	if !entries[0].Diffs[list.AttrName].Equal(list.Text("Acheron")) {
		t.Errorf("first prior name = %v, want Acheron", entries[0].Diffs[list.AttrName])
	}
	if !entries[1].Diffs[list.AttrName].Equal(list.Text("first")) {
		t.Errorf("second prior name = %v, want first", entries[1].Diffs[list.AttrName])
	}
}

func TestSQLiteDatabase_Additions(t *testing.T) {
	db := newTestDB(t)
	d := insertTestDemon(t, db, "Acheron", 1)

	addition, err := db.AdditionFor(list.KindDemon, d.ID)
	if err != nil {
		t.Fatalf("AdditionFor() error = %v", err)
	}
	if addition == nil {
		t.Fatal("AdditionFor() = nil, want entry")
	}
	if addition.Actor != 1 || !addition.Time.Equal(testTime) {
		t.Errorf("addition = (%d, %v), want (1, %v)", addition.Actor, addition.Time, testTime)
	}

	missing, err := db.AdditionFor(list.KindDemon, 999)
	if err != nil {
		t.Fatalf("AdditionFor() error = %v", err)
	}
	if missing != nil {
		t.Errorf("AdditionFor(999) = %v, want nil", missing)
	}

	all, err := db.Additions(list.KindDemon)
	if err != nil {
		t.Fatalf("Additions() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Additions() returned %d entries, want 1", len(all))
	}
}

func TestSQLiteDatabase_OperationJournal(t *testing.T) {
	db := newTestDB(t)

	max, err := db.MaxOperationID()
	if err != nil {
		t.Fatalf("MaxOperationID() error = %v", err)
	}
	if max != 0 {
		t.Errorf("MaxOperationID() on empty journal = %d, want 0", max)
	}

	id, err := db.CreateOperation("AddDemon", "Bloodbath", testTime)
	if err != nil {
		t.Fatalf("CreateOperation() error = %v", err)
	}
	if err := db.FinishOperation(id, "success", testTime.Add(time.Second)); err != nil {
		t.Fatalf("FinishOperation() error = %v", err)
	}

	ops, err := db.ListOperations(10)
	if err != nil {
		t.Fatalf("ListOperations() error = %v", err)
	}
	if len(ops) != 1 {
		t.Fatalf("ListOperations() returned %d operations, want 1", len(ops))
	}
	op := ops[0]
	if op.Operation != "AddDemon" || op.Parameters != "Bloodbath" || op.Status != "success" {
		t.Errorf("operation = %+v, want AddDemon/Bloodbath/success", op)
	}
	if op.FinishedAt == nil {
		t.Error("FinishedAt = nil after FinishOperation")
	}

	max, err = db.MaxOperationID()
	if err != nil {
		t.Fatalf("MaxOperationID() error = %v", err)
	}
	if max != id {
		t.Errorf("MaxOperationID() = %d, want %d", max, id)
	}
}

func TestSQLiteDatabase_ListOperations_NewestFirst(t *testing.T) {
	db := newTestDB(t)

	for i := 0; i < 3; i++ {
		if _, err := db.CreateOperation("MoveDemon", "", testTime.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("CreateOperation() error = %v", err)
		}
	}

	ops, err := db.ListOperations(2)
	if err != nil {
		t.Fatalf("ListOperations() error = %v", err)
	}
	if len(ops) != 2 {
		t.Fatalf("ListOperations(2) returned %d operations, want 2", len(ops))
	}
	if ops[0].ID <= ops[1].ID {
		t.Errorf("operations not newest first: %d then %d", ops[0].ID, ops[1].ID)
	}
}

func TestSQLiteDatabase_BackupTo(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "demonlist.db")

	db, err := NewSQLiteDatabase(srcPath)
	if err != nil {
		t.Fatalf("NewSQLiteDatabase() error = %v", err)
	}
	defer db.Close()
	if err := migrations.MigrateUp(db.db); err != nil {
		t.Fatalf("MigrateUp() error = %v", err)
	}
	insertTestDemon(t, db, "Acheron", 1)

	destPath := filepath.Join(dir, "archive.db")
	if err := db.BackupTo(destPath); err != nil {
		t.Fatalf("BackupTo() error = %v", err)
	}

	info, err := os.Stat(destPath)
	if err != nil {
		t.Fatalf("stat backup: %v", err)
	}
	if info.Size() == 0 {
		t.Error("backup file is empty")
	}

	// The copy must be a usable database with the same content.
	copyDB, err := NewSQLiteDatabase(destPath)
	if err != nil {
		t.Fatalf("opening backup: %v", err)
	}
	defer copyDB.Close()

	demons, err := copyDB.ListDemons()
	if err != nil {
		t.Fatalf("ListDemons() on backup error = %v", err)
	}
	if len(demons) != 1 || demons[0].Name != "Acheron" {
		t.Errorf("backup content = %v, want one demon Acheron", demons)
	}
}
