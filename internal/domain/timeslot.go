package domain

import "time"

// TimeSlot is one fixed-width interval of a day's working-hours window.
// Slots for a day form a contiguous, gap-free, non-overlapping partition
// of the window, ordered by start time.
type TimeSlot struct {
	Start     time.Time
	End       time.Time
	Available bool
}

// Minutes returns the slot width in whole minutes.
func (s TimeSlot) Minutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}
