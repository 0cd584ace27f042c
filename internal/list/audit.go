package list

import "time"

// EntityKind identifies the kind of tracked entity an audit entry is about.
type EntityKind string

const (
	KindDemon  EntityKind = "demon"
	KindRecord EntityKind = "record"
	KindPlayer EntityKind = "player"
)

// ModificationEntry is one row of the audit log: a sparse, field-level
// diff attributed to an acting user. Exactly one entry is appended per
// update, even when nothing changed. Entries are immutable once written,
// and their autoincrement IDs are monotonic with their timestamps.
type ModificationEntry struct {
	ID       int64
	Kind     EntityKind
	EntityID int64
	Actor    int64
	Time     time.Time
	Diffs    Diff
}

// AdditionEntry records when a tracked entity was created and by whom.
// It is written exactly once, at creation, and never mutated or deleted.
type AdditionEntry struct {
	Kind     EntityKind
	EntityID int64
	Actor    int64
	Time     time.Time
}

// CreatedAtOrAfter reports whether the entity was created at or after
// the given cutoff. Reconstruction uses this to exclude entities that
// did not yet exist at the reconstruction instant.
func (a *AdditionEntry) CreatedAtOrAfter(cutoff time.Time) bool {
	return !a.Time.Before(cutoff)
}
