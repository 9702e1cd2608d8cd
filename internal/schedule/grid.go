package schedule

import (
	"fmt"
	"time"

	"github.com/aquilahq/aquila/internal/domain"
)

// Window is the working-hours window slots are generated for, expressed
// in minutes since midnight. The window must divide evenly into slots.
type Window struct {
	StartMin int
	EndMin   int
	SlotMin  int
}

// DefaultWindow returns the standard 09:00–17:00 window with 30-minute
// slots (16 slots per day).
func DefaultWindow() Window {
	return Window{StartMin: 9 * 60, EndMin: 17 * 60, SlotMin: 30}
}

// Validate checks the window's internal consistency.
func (w Window) Validate() error {
	if w.SlotMin <= 0 {
		return fmt.Errorf("slot width must be positive, got %d", w.SlotMin)
	}
	if w.StartMin < 0 || w.EndMin > 24*60 {
		return fmt.Errorf("window [%d, %d) outside the day", w.StartMin, w.EndMin)
	}
	if w.EndMin <= w.StartMin {
		return fmt.Errorf("window end %d not after start %d", w.EndMin, w.StartMin)
	}
	if (w.EndMin-w.StartMin)%w.SlotMin != 0 {
		return fmt.Errorf("window of %d minutes not divisible by %d-minute slots",
			w.EndMin-w.StartMin, w.SlotMin)
	}
	return nil
}

// SlotCount returns the number of slots the window holds.
func (w Window) SlotCount() int {
	return (w.EndMin - w.StartMin) / w.SlotMin
}

// TotalMin returns the window length in minutes.
func (w Window) TotalMin() int {
	return w.EndMin - w.StartMin
}

// BuildDayGrid derives the availability grid for one day: a contiguous,
// gap-free partition of the window into fixed-width slots, each marked
// unavailable iff any event overlaps it. Pure; the same day and events
// always produce the same grid.
func BuildDayGrid(day time.Time, w Window, events []domain.Event) []domain.TimeSlot {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	n := w.SlotCount()
	slots := make([]domain.TimeSlot, 0, n)
	for i := 0; i < n; i++ {
		start := midnight.Add(time.Duration(w.StartMin+i*w.SlotMin) * time.Minute)
		end := start.Add(time.Duration(w.SlotMin) * time.Minute)

		available := true
		for _, e := range events {
			if e.Overlaps(start, end) {
				available = false
				break
			}
		}
		slots = append(slots, domain.TimeSlot{Start: start, End: end, Available: available})
	}
	return slots
}
