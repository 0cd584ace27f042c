package list

import "fmt"

// RecordStatus is the closed set of states a record can be in.
type RecordStatus string

const (
	StatusSubmitted          RecordStatus = "submitted"
	StatusApproved           RecordStatus = "approved"
	StatusRejected           RecordStatus = "rejected"
	StatusUnderConsideration RecordStatus = "under consideration"
)

var recordStatuses = map[RecordStatus]bool{
	StatusSubmitted:          true,
	StatusApproved:           true,
	StatusRejected:           true,
	StatusUnderConsideration: true,
}

// ParseRecordStatus validates a status string and returns the typed status.
func ParseRecordStatus(s string) (RecordStatus, error) {
	rs := RecordStatus(s)
	if !recordStatuses[rs] {
		return "", ConstraintError{Field: "status", Message: fmt.Sprintf("unknown record status: %s", s)}
	}
	return rs, nil
}

// Record models a player's progress on a demon.
type Record struct {
	ID         int64
	Progress   int // demon requirement up to 100
	Video      *string
	RawFootage *string
	Status     RecordStatus
	PlayerID   int64
	DemonID    int64
	Enjoyment  *int // 0-10 when given
}

// Clone returns a deep copy so callers can mutate freely.
func (r *Record) Clone() *Record {
	cp := *r
	if r.Video != nil {
		v := *r.Video
		cp.Video = &v
	}
	if r.RawFootage != nil {
		f := *r.RawFootage
		cp.RawFootage = &f
	}
	if r.Enjoyment != nil {
		e := *r.Enjoyment
		cp.Enjoyment = &e
	}
	return &cp
}

// ValidateProgress checks a record's progress against the demon's
// requirement.
func ValidateProgress(progress, requirement int) error {
	if progress > 100 || progress < requirement {
		return ConstraintError{Field: "progress", Message: fmt.Sprintf("progress must lie between %d and 100", requirement)}
	}
	return nil
}

// ValidateEnjoyment checks that an enjoyment rating lies within 0-10.
func ValidateEnjoyment(enjoyment int) error {
	if enjoyment < 0 || enjoyment > 10 {
		return ConstraintError{Field: "enjoyment", Message: "enjoyment must lie between 0 and 10"}
	}
	return nil
}
