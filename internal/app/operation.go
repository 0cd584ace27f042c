package app

import (
	"fmt"
	"time"
)

// Status values recorded in the operation journal.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Operation tracks one CLI invocation against the list. Mutating
// commands persist it to the journal, which assigns the auto-increment
// ID that also versions the vault archive. Read-only commands keep
// ID=0 and never reach the journal.
type Operation struct {
	ID         int64
	Operation  string
	Parameters string
	Status     string
	startedAt  time.Time
}

// NewOperation creates a new in-memory operation started at startedAt.
func NewOperation(operation, parameters string, startedAt time.Time) *Operation {
	return &Operation{
		Operation:  operation,
		Parameters: parameters,
		Status:     StatusSuccess,
		startedAt:  startedAt,
	}
}

// LogScope identifies this invocation in log lines. Before the journal
// assigns an id the scope is the operation name plus start instant;
// afterwards it is the name plus journal id, so log lines can be
// matched against `demonlist history` and the archive version.
func (op *Operation) LogScope() string {
	if op.Persisted() {
		return fmt.Sprintf("%s#%d", op.Operation, op.ID)
	}
	return op.Operation + "-" + op.startedAt.UTC().Format("20060102T150405Z")
}

// Persisted returns true if this operation has been saved to the journal.
func (op *Operation) Persisted() bool {
	return op.ID != 0
}

// Fail marks the operation as failed; Close records the status in the
// journal.
func (op *Operation) Fail() {
	op.Status = StatusError
}
