// Package clock abstracts time for services so tests can pin "now".
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// NewSystem returns the wall clock.
func NewSystem() Clock {
	return SystemClock{}
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Instant
}
