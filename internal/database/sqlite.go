package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/The-Layout-List/pointercrate/internal/database/migrations"
	"github.com/The-Layout-List/pointercrate/internal/list"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteDatabase implements the list.Database interface using SQLite.
// Audited writes run the entity mutation, the diff computation and the
// audit log append inside one transaction.
type SQLiteDatabase struct {
	db   *sql.DB
	path string
}

// NewSQLiteDatabase creates a new SQLite database connection.
// path can be a file path or ":memory:" for an in-memory database.
func NewSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	return &SQLiteDatabase{db: db, path: path}, nil
}

// NewSQLiteDatabaseFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly configured.
func NewSQLiteDatabaseFromDB(db *sql.DB) *SQLiteDatabase {
	return &SQLiteDatabase{db: db, path: ""}
}

// OpenConnection opens and configures a SQLite database connection with
// appropriate PRAGMAs. This is exported for use in tools and tests that need
// a properly configured SQLite connection.
// path can be a file path or ":memory:" for in-memory database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// An in-memory database exists per connection, so the pool must not
	// open a second one.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// Demon operations

const demonColumns = "id, name, position, requirement, video, thumbnail, publisher, verifier, level_id, difficulty"

func scanDemon(row interface{ Scan(...any) error }) (*list.Demon, error) {
	var d list.Demon
	var video sql.NullString
	var levelID sql.NullInt64
	var difficulty string
	err := row.Scan(&d.ID, &d.Name, &d.Position, &d.Requirement, &video, &d.Thumbnail, &d.PublisherID, &d.VerifierID, &levelID, &difficulty)
	if err != nil {
		return nil, err
	}
	if video.Valid {
		d.Video = &video.String
	}
	if levelID.Valid {
		d.LevelID = &levelID.Int64
	}
	d.Difficulty = list.Difficulty(difficulty)
	return &d, nil
}

func nullText(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}

func (s *SQLiteDatabase) FindDemon(id int64) (*list.Demon, error) {
	row := s.db.QueryRow("SELECT "+demonColumns+" FROM demons WHERE id = ?", id)
	demon, err := scanDemon(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding demon: %w", err)
	}
	return demon, nil
}

func (s *SQLiteDatabase) ListDemons() ([]*list.Demon, error) {
	// Ranked demons first in list order, then unranked ones by id.
	rows, err := s.db.Query("SELECT " + demonColumns + " FROM demons ORDER BY CASE WHEN position = -1 THEN 1 ELSE 0 END, position, id")
	if err != nil {
		return nil, fmt.Errorf("listing demons: %w", err)
	}
	defer rows.Close()

	var demons []*list.Demon
	for rows.Next() {
		demon, err := scanDemon(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning demon: %w", err)
		}
		demons = append(demons, demon)
	}
	return demons, rows.Err()
}

func (s *SQLiteDatabase) MaxPosition() (int, error) {
	var max sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(position) FROM demons WHERE position != -1").Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("querying max position: %w", err)
	}
	return int(max.Int64), nil
}

// InsertDemonAudited inserts a demon at demon.Position in a single transaction.
// Demons at or below that position move down one place first, and every moved
// demon gets its own position modification entry: a shift is a tracked update
// like any other. The new demon itself is recorded in the addition log.
func (s *SQLiteDatabase) InsertDemonAudited(demon *list.Demon, actor int64, now time.Time) (*list.Demon, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	err = shiftRange(tx, "position >= ? AND position != -1", []any{demon.Position}, +1, actor, now)
	if err != nil {
		return nil, err
	}

	res, err := tx.Exec(
		"INSERT INTO demons (name, position, requirement, video, thumbnail, publisher, verifier, level_id, difficulty) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		demon.Name, demon.Position, demon.Requirement, nullText(demon.Video), demon.Thumbnail,
		demon.PublisherID, demon.VerifierID, nullInt(demon.LevelID), string(demon.Difficulty),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting demon: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading demon id: %w", err)
	}

	if err := insertAddition(tx, list.KindDemon, id, actor, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	created := demon.Clone()
	created.ID = id
	return created, nil
}

// UpdateDemonAudited applies mutate to a demon in a single transaction:
// load, mutate, shift the list if the position changed, compute the sparse
// diff against the pre-update state, append it to the audit log, persist.
// The audit entry is appended even when the diff comes out empty, so every
// update leaves a trace.
func (s *SQLiteDatabase) UpdateDemonAudited(id int64, actor int64, now time.Time, mutate func(*list.Demon) error) (*list.Demon, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow("SELECT "+demonColumns+" FROM demons WHERE id = ?", id)
	before, err := scanDemon(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, list.NotFoundError{Kind: list.KindDemon, ID: id}
		}
		return nil, fmt.Errorf("loading demon: %w", err)
	}

	after := before.Clone()
	if err := mutate(after); err != nil {
		return nil, err
	}
	after.ID = id

	if after.Position != before.Position {
		if err := shiftForMove(tx, before.Position, after.Position, id, actor, now); err != nil {
			return nil, err
		}
	}

	diff := list.DiffDemon(before, after)
	if err := insertModification(tx, list.KindDemon, id, actor, now, diff); err != nil {
		return nil, err
	}

	_, err = tx.Exec(
		"UPDATE demons SET name = ?, position = ?, requirement = ?, video = ?, thumbnail = ?, publisher = ?, verifier = ?, level_id = ?, difficulty = ? WHERE id = ?",
		after.Name, after.Position, after.Requirement, nullText(after.Video), after.Thumbnail,
		after.PublisherID, after.VerifierID, nullInt(after.LevelID), string(after.Difficulty), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating demon: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return after, nil
}

// shiftForMove shifts the span of demons displaced by a move from position
// from to position to, excluding the moving demon itself. Either end may be
// the unranked sentinel.
func shiftForMove(tx *sql.Tx, from, to int, excludeID int64, actor int64, now time.Time) error {
	switch {
	case from == list.UnrankedPosition:
		// Re-ranking: everything at or below the target moves down.
		return shiftRange(tx, "position >= ? AND position != -1 AND id != ?", []any{to, excludeID}, +1, actor, now)
	case to == list.UnrankedPosition:
		// Unranking: everything below the vacated spot moves up.
		return shiftRange(tx, "position > ? AND id != ?", []any{from, excludeID}, -1, actor, now)
	case to < from:
		return shiftRange(tx, "position >= ? AND position < ? AND id != ?", []any{to, from, excludeID}, +1, actor, now)
	case to > from:
		return shiftRange(tx, "position > ? AND position <= ? AND id != ?", []any{from, to, excludeID}, -1, actor, now)
	}
	return nil
}

// shiftRange applies a position delta to every demon matching where, appending
// a modification entry recording each demon's prior position.
func shiftRange(tx *sql.Tx, where string, args []any, delta int, actor int64, now time.Time) error {
	rows, err := tx.Query("SELECT id, position FROM demons WHERE "+where, args...)
	if err != nil {
		return fmt.Errorf("selecting demons to shift: %w", err)
	}

	type shifted struct {
		id       int64
		position int
	}
	var moves []shifted
	for rows.Next() {
		var m shifted
		if err := rows.Scan(&m.id, &m.position); err != nil {
			rows.Close()
			return fmt.Errorf("scanning demon to shift: %w", err)
		}
		moves = append(moves, m)
	}
	if err := rows.Close(); err != nil {
		return fmt.Errorf("reading demons to shift: %w", err)
	}

	for _, m := range moves {
		diff := list.Diff{list.AttrPosition: list.Int64(int64(m.position))}
		if err := insertModification(tx, list.KindDemon, m.id, actor, now, diff); err != nil {
			return err
		}
		if _, err := tx.Exec("UPDATE demons SET position = ? WHERE id = ?", m.position+delta, m.id); err != nil {
			return fmt.Errorf("shifting demon %d: %w", m.id, err)
		}
	}
	return nil
}

// Player operations

func (s *SQLiteDatabase) FindPlayer(id int64) (*list.Player, error) {
	var p list.Player
	err := s.db.QueryRow("SELECT id, name, banned FROM players WHERE id = ?", id).Scan(&p.ID, &p.Name, &p.Banned)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding player: %w", err)
	}
	return &p, nil
}

func (s *SQLiteDatabase) FindOrCreatePlayer(name string) (*list.Player, error) {
	var p list.Player
	err := s.db.QueryRow("SELECT id, name, banned FROM players WHERE name = ?", name).Scan(&p.ID, &p.Name, &p.Banned)
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("finding player by name: %w", err)
	}

	res, err := s.db.Exec("INSERT INTO players (name, banned) VALUES (?, FALSE)", name)
	if err != nil {
		return nil, fmt.Errorf("creating player: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading player id: %w", err)
	}
	return &list.Player{ID: id, Name: name}, nil
}

func (s *SQLiteDatabase) UpdatePlayerAudited(id int64, actor int64, now time.Time, mutate func(*list.Player) error) (*list.Player, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var before list.Player
	err = tx.QueryRow("SELECT id, name, banned FROM players WHERE id = ?", id).Scan(&before.ID, &before.Name, &before.Banned)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, list.NotFoundError{Kind: list.KindPlayer, ID: id}
		}
		return nil, fmt.Errorf("loading player: %w", err)
	}

	after := before.Clone()
	if err := mutate(after); err != nil {
		return nil, err
	}
	after.ID = id

	diff := list.DiffPlayer(&before, after)
	if err := insertModification(tx, list.KindPlayer, id, actor, now, diff); err != nil {
		return nil, err
	}

	if _, err := tx.Exec("UPDATE players SET name = ?, banned = ? WHERE id = ?", after.Name, after.Banned, id); err != nil {
		return nil, fmt.Errorf("updating player: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return after, nil
}

// Record operations

const recordColumns = "id, progress, video, raw_footage, status, player, demon, enjoyment"

func scanRecord(row interface{ Scan(...any) error }) (*list.Record, error) {
	var r list.Record
	var video, rawFootage sql.NullString
	var enjoyment sql.NullInt64
	var status string
	err := row.Scan(&r.ID, &r.Progress, &video, &rawFootage, &status, &r.PlayerID, &r.DemonID, &enjoyment)
	if err != nil {
		return nil, err
	}
	if video.Valid {
		r.Video = &video.String
	}
	if rawFootage.Valid {
		r.RawFootage = &rawFootage.String
	}
	if enjoyment.Valid {
		e := int(enjoyment.Int64)
		r.Enjoyment = &e
	}
	r.Status = list.RecordStatus(status)
	return &r, nil
}

func (s *SQLiteDatabase) FindRecord(id int64) (*list.Record, error) {
	row := s.db.QueryRow("SELECT "+recordColumns+" FROM records WHERE id = ?", id)
	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding record: %w", err)
	}
	return record, nil
}

func (s *SQLiteDatabase) ListRecords() ([]*list.Record, error) {
	return s.queryRecords("SELECT " + recordColumns + " FROM records ORDER BY id")
}

func (s *SQLiteDatabase) ListRecordsForDemon(demonID int64) ([]*list.Record, error) {
	return s.queryRecords("SELECT "+recordColumns+" FROM records WHERE demon = ? ORDER BY id", demonID)
}

func (s *SQLiteDatabase) queryRecords(query string, args ...any) ([]*list.Record, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var records []*list.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *SQLiteDatabase) InsertRecordAudited(record *list.Record, actor int64, now time.Time) (*list.Record, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO records (progress, video, raw_footage, status, player, demon, enjoyment) VALUES (?, ?, ?, ?, ?, ?, ?)",
		record.Progress, nullText(record.Video), nullText(record.RawFootage), string(record.Status),
		record.PlayerID, record.DemonID, nullEnjoyment(record.Enjoyment),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading record id: %w", err)
	}

	if err := insertAddition(tx, list.KindRecord, id, actor, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	created := record.Clone()
	created.ID = id
	return created, nil
}

func (s *SQLiteDatabase) UpdateRecordAudited(id int64, actor int64, now time.Time, mutate func(*list.Record) error) (*list.Record, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow("SELECT "+recordColumns+" FROM records WHERE id = ?", id)
	before, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, list.NotFoundError{Kind: list.KindRecord, ID: id}
		}
		return nil, fmt.Errorf("loading record: %w", err)
	}

	after := before.Clone()
	if err := mutate(after); err != nil {
		return nil, err
	}
	after.ID = id

	diff := list.DiffRecord(before, after)
	if err := insertModification(tx, list.KindRecord, id, actor, now, diff); err != nil {
		return nil, err
	}

	_, err = tx.Exec(
		"UPDATE records SET progress = ?, video = ?, raw_footage = ?, status = ?, player = ?, demon = ?, enjoyment = ? WHERE id = ?",
		after.Progress, nullText(after.Video), nullText(after.RawFootage), string(after.Status),
		after.PlayerID, after.DemonID, nullEnjoyment(after.Enjoyment), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return after, nil
}

func nullEnjoyment(e *int) sql.NullInt64 {
	if e == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*e), Valid: true}
}

// Audit log

const modificationColumns = "id, kind, entity_id, actor, time, diffs"

func insertModification(tx *sql.Tx, kind list.EntityKind, entityID, actor int64, now time.Time, diff list.Diff) error {
	data, err := json.Marshal(diff)
	if err != nil {
		return fmt.Errorf("encoding diff: %w", err)
	}
	_, err = tx.Exec(
		"INSERT INTO entity_modifications (kind, entity_id, actor, time, diffs) VALUES (?, ?, ?, ?, ?)",
		string(kind), entityID, actor, now, string(data),
	)
	if err != nil {
		return fmt.Errorf("appending modification entry: %w", err)
	}
	return nil
}

func insertAddition(tx *sql.Tx, kind list.EntityKind, entityID, actor int64, now time.Time) error {
	_, err := tx.Exec(
		"INSERT INTO entity_additions (kind, entity_id, actor, time) VALUES (?, ?, ?, ?)",
		string(kind), entityID, actor, now,
	)
	if err != nil {
		return fmt.Errorf("appending addition entry: %w", err)
	}
	return nil
}

func scanModification(rows *sql.Rows) (*list.ModificationEntry, error) {
	var m list.ModificationEntry
	var kind, diffs string
	if err := rows.Scan(&m.ID, &kind, &m.EntityID, &m.Actor, &m.Time, &diffs); err != nil {
		return nil, err
	}
	m.Kind = list.EntityKind(kind)
	if err := json.Unmarshal([]byte(diffs), &m.Diffs); err != nil {
		return nil, fmt.Errorf("decoding diff: %w", err)
	}
	return &m, nil
}

func (s *SQLiteDatabase) ModificationsFor(kind list.EntityKind, entityID int64) ([]*list.ModificationEntry, error) {
	return s.queryModifications(
		"SELECT "+modificationColumns+" FROM entity_modifications WHERE kind = ? AND entity_id = ? ORDER BY time, id",
		string(kind), entityID,
	)
}

func (s *SQLiteDatabase) ModificationsSince(kind list.EntityKind, attr string, since time.Time) ([]*list.ModificationEntry, error) {
	// json_type is NULL when the diff does not name the attribute at all,
	// and 'null' when it names it with a null prior value. Only the former
	// is filtered out: absence and null are different statements.
	return s.queryModifications(
		"SELECT "+modificationColumns+" FROM entity_modifications WHERE kind = ? AND time >= ? AND json_type(diffs, ?) IS NOT NULL ORDER BY time, id",
		string(kind), since, "$."+attr,
	)
}

func (s *SQLiteDatabase) queryModifications(query string, args ...any) ([]*list.ModificationEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying modifications: %w", err)
	}
	defer rows.Close()

	var entries []*list.ModificationEntry
	for rows.Next() {
		entry, err := scanModification(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning modification: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *SQLiteDatabase) AdditionFor(kind list.EntityKind, entityID int64) (*list.AdditionEntry, error) {
	var a list.AdditionEntry
	var k string
	err := s.db.QueryRow(
		"SELECT kind, entity_id, actor, time FROM entity_additions WHERE kind = ? AND entity_id = ?",
		string(kind), entityID,
	).Scan(&k, &a.EntityID, &a.Actor, &a.Time)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding addition: %w", err)
	}
	a.Kind = list.EntityKind(k)
	return &a, nil
}

func (s *SQLiteDatabase) Additions(kind list.EntityKind) ([]*list.AdditionEntry, error) {
	rows, err := s.db.Query("SELECT kind, entity_id, actor, time FROM entity_additions WHERE kind = ? ORDER BY time, entity_id", string(kind))
	if err != nil {
		return nil, fmt.Errorf("querying additions: %w", err)
	}
	defer rows.Close()

	var entries []*list.AdditionEntry
	for rows.Next() {
		var a list.AdditionEntry
		var k string
		if err := rows.Scan(&k, &a.EntityID, &a.Actor, &a.Time); err != nil {
			return nil, fmt.Errorf("scanning addition: %w", err)
		}
		a.Kind = list.EntityKind(k)
		entries = append(entries, &a)
	}
	return entries, rows.Err()
}

// Operation journal

func (s *SQLiteDatabase) CreateOperation(operation, parameters string, now time.Time) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO operations (operation, parameters, status, started_at) VALUES (?, ?, 'running', ?)",
		operation, parameters, now,
	)
	if err != nil {
		return 0, fmt.Errorf("creating operation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading operation id: %w", err)
	}
	return id, nil
}

func (s *SQLiteDatabase) FinishOperation(id int64, status string, now time.Time) error {
	_, err := s.db.Exec("UPDATE operations SET status = ?, finished_at = ? WHERE id = ?", status, now, id)
	if err != nil {
		return fmt.Errorf("finishing operation: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) ListOperations(limit int) ([]*list.Operation, error) {
	rows, err := s.db.Query("SELECT id, operation, parameters, status, started_at, finished_at FROM operations ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	defer rows.Close()

	var ops []*list.Operation
	for rows.Next() {
		var op list.Operation
		var finished sql.NullTime
		if err := rows.Scan(&op.ID, &op.Operation, &op.Parameters, &op.Status, &op.StartedAt, &finished); err != nil {
			return nil, fmt.Errorf("scanning operation: %w", err)
		}
		if finished.Valid {
			op.FinishedAt = &finished.Time
		}
		ops = append(ops, &op)
	}
	return ops, rows.Err()
}

func (s *SQLiteDatabase) MaxOperationID() (int64, error) {
	var max sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(id) FROM operations").Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("getting max operation ID: %w", err)
	}
	return max.Int64, nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteDatabase) Path() string {
	return s.path
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// BackupTo creates a complete copy of the database at destPath using VACUUM INTO.
func (s *SQLiteDatabase) BackupTo(destPath string) error {
	_, err := s.db.Exec("VACUUM INTO ?", destPath)
	if err != nil {
		return fmt.Errorf("backing up database: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteDatabase implements the list.Database interface
var _ list.Database = (*SQLiteDatabase)(nil)
