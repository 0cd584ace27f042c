package list

import "time"

// Clock abstracts time retrieval so business logic is deterministic in
// tests. All timestamps entering the audit log pass through a Clock.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time, normalized to UTC so that
// audit log timestamps compare consistently.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now().UTC() }
