package kernel

import "time"

// Clock supplies the current time to the domain. Cooldown checks, claim
// timestamps and queue reordering all read time through it so they can be tested.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns the same instant. Advance moves it forward.
type FixedClock struct {
	At time.Time
}

// NewFixedClock returns a clock frozen at t.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{At: t}
}

// Now returns the frozen instant.
func (c *FixedClock) Now() time.Time {
	return c.At
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.At = c.At.Add(d)
}
