package list

import "time"

// Database provides an interface for list storage. Mutating methods that
// take an actor and a timestamp are audited: the entity mutation, the
// diff computation and the audit log append all happen inside a single
// transaction, so a partially applied update can never leave an orphaned
// or missing audit entry.
type Database interface {
	// Demon operations

	// FindDemon returns a demon by ID, or nil if it does not exist.
	FindDemon(id int64) (*Demon, error)

	// ListDemons returns every demon, ranked demons first in position
	// order, unranked demons after in ID order.
	ListDemons() ([]*Demon, error)

	// MaxPosition returns the highest position currently held, or 0 when
	// the list is empty.
	MaxPosition() (int, error)

	// InsertDemonAudited inserts a demon at demon.Position within one
	// transaction: demons at or below that position are shifted down by
	// one (each shift appending its own position modification), the new
	// row is inserted, and an addition entry is written.
	InsertDemonAudited(demon *Demon, actor int64, now time.Time) (*Demon, error)

	// UpdateDemonAudited applies mutate to the demon within one
	// transaction. Position changes shift the affected span of the list,
	// each moved demon appending its own position modification. Exactly
	// one modification entry is appended for the target demon itself,
	// even when mutate changed nothing.
	UpdateDemonAudited(id int64, actor int64, now time.Time, mutate func(*Demon) error) (*Demon, error)

	// Player operations

	// FindPlayer returns a player by ID, or nil if it does not exist.
	FindPlayer(id int64) (*Player, error)

	// FindOrCreatePlayer resolves a player by name, creating the player
	// on first reference.
	FindOrCreatePlayer(name string) (*Player, error)

	// UpdatePlayerAudited applies mutate to the player and appends
	// exactly one modification entry within one transaction, even when
	// mutate changed nothing.
	UpdatePlayerAudited(id int64, actor int64, now time.Time, mutate func(*Player) error) (*Player, error)

	// Record operations

	// FindRecord returns a record by ID, or nil if it does not exist.
	FindRecord(id int64) (*Record, error)

	// ListRecords returns every record in ID order.
	ListRecords() ([]*Record, error)

	// ListRecordsForDemon returns the records on a demon in ID order.
	ListRecordsForDemon(demonID int64) ([]*Record, error)

	// InsertRecordAudited inserts a record and its addition entry within
	// one transaction.
	InsertRecordAudited(record *Record, actor int64, now time.Time) (*Record, error)

	// UpdateRecordAudited applies mutate to the record and appends
	// exactly one modification entry within one transaction, even when
	// mutate changed nothing.
	UpdateRecordAudited(id int64, actor int64, now time.Time, mutate func(*Record) error) (*Record, error)

	// Audit log queries

	// ModificationsFor returns an entity's modification entries ordered
	// by time ascending (ties by insertion order).
	ModificationsFor(kind EntityKind, entityID int64) ([]*ModificationEntry, error)

	// ModificationsSince returns all modification entries of the given
	// kind at or after since whose diff names attr, ordered by time
	// ascending (ties by insertion order). Sentinel values are included;
	// filtering them is the caller's concern.
	ModificationsSince(kind EntityKind, attr string, since time.Time) ([]*ModificationEntry, error)

	// AdditionFor returns an entity's addition entry, or nil if the
	// entity was never recorded as created.
	AdditionFor(kind EntityKind, entityID int64) (*AdditionEntry, error)

	// Additions returns all addition entries of the given kind.
	Additions(kind EntityKind) ([]*AdditionEntry, error)

	// Operation journal

	// CreateOperation records the start of a mutating CLI operation and
	// returns its autoincrement ID.
	CreateOperation(operation, parameters string, now time.Time) (int64, error)

	// FinishOperation marks an operation finished with the given status.
	FinishOperation(id int64, status string, now time.Time) error

	// ListOperations returns the most recent operations, newest first.
	ListOperations(limit int) ([]*Operation, error)

	// MaxOperationID returns the highest operation ID, or 0 when the
	// journal is empty. Used as the archive version.
	MaxOperationID() (int64, error)

	// Path returns the database file path (or ":memory:").
	Path() string

	// CheckMigrations verifies the database schema is up-to-date.
	CheckMigrations() error

	// BackupTo creates a complete copy of the database at destPath.
	BackupTo(destPath string) error

	// Close closes the database connection.
	Close() error
}

// Operation is one journal row describing a mutating CLI invocation.
type Operation struct {
	ID         int64
	Operation  string
	Parameters string
	Status     string
	StartedAt  time.Time
	FinishedAt *time.Time
}
