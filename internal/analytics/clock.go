package analytics

import "time"

// Clock supplies the current instant. Nothing in this package reads the wall clock directly.
type Clock interface {
	Now() time.Time
}

// FixedClock always reports the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}
