package test

import "time"

// ClockStub returns a fixed instant.
type ClockStub struct {
	T time.Time
}

// Now returns the configured time.
func (c ClockStub) Now() time.Time {
	return c.T
}
