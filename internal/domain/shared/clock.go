package shared

import "time"

// Clock provides the current time. Derivations that depend on "now"
// (milestone lookups, trend bucketing) take a Clock so they stay
// deterministic under test.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface
type ClockFunc func() time.Time

// Now returns the current time from the wrapped function
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock returns a Clock backed by time.Now
func SystemClock() Clock {
	return ClockFunc(time.Now)
}

// FixedClock returns a Clock that always reports the same instant
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}
