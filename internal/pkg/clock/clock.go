package clock

import "time"

// Clock supplies the current time. Scheduling and publishing logic must not
// read the wall clock directly; they take a Clock so tests can pin "today".
type Clock interface {
	Now() time.Time
}

// System reads the real wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

// Today truncates the clock's current time to a UTC calendar date.
// All publish-date arithmetic happens on UTC dates to keep schedule
// assignment deterministic across server time zones.
func Today(c Clock) time.Time {
	return DateOf(c.Now())
}

// DateOf returns the UTC calendar date containing t.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
