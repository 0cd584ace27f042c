package list

import (
	"errors"
	"fmt"
)

// ErrMissingActor is returned when a mutating operation is attempted
// without an acting user. Audit entries must always be attributable, so
// the whole operation fails before anything is written.
var ErrMissingActor = errors.New("mutating operations require an acting user")

// NotFoundError is returned when an operation references an entity that
// does not exist. Writes referencing missing entities are aborted
// outright so the audit log can never point at a ghost.
type NotFoundError struct {
	Kind EntityKind
	ID   int64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// ConstraintError is returned when an incoming attribute value violates
// its range or enumeration constraint. The value is rejected at the
// boundary, before any diff is computed or audit entry written.
type ConstraintError struct {
	Field   string
	Message string
}

func (e ConstraintError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
