package domain

import "time"

// Event is a busy interval on the user's calendar for one day, as
// reported by the backend's Google Calendar proxy.
type Event struct {
	Summary string
	Start   time.Time
	End     time.Time
}

// Overlaps reports whether the event intersects the half-open interval
// [start, end).
func (e Event) Overlaps(start, end time.Time) bool {
	return e.Start.Before(end) && e.End.After(start)
}
