package contract

import (
	"time"

	"github.com/aquilahq/aquila/internal/domain"
)

// Placement is a candidate start/end position for one subtask on the
// day's slot grid. End is rounded up to whole slots, so it may be later
// than start + estimate.
type Placement struct {
	Start time.Time
	End   time.Time
}

// Recommendation pairs a subtask with a best-effort slot from the batch
// recommender. Slot is nil when the grid was exhausted before the
// subtask's turn.
type Recommendation struct {
	SubtaskID    string
	Title        string
	EstimatedMin int
	Slot         *domain.TimeSlot

	// TightFit marks a slot shorter than the subtask's estimate. The
	// batch recommender is first-come-first-served and does not match
	// on duration; the report calls this out instead.
	TightFit bool
}

// Availability is the derived slot grid for one day, together with
// fetch diagnostics.
type Availability struct {
	Day   time.Time
	Slots []domain.TimeSlot

	// SkippedEvents counts calendar items dropped because they were
	// missing a start or end instant.
	SkippedEvents int
}

// CommitRequest asks the plan service to persist a finished session and
// write its assignments back to the calendar.
type CommitRequest struct {
	TaskName   string
	CourseName string
	Day        time.Time
	Entries    []domain.PlanEntry
}

// CommitResult reports the outcome of a commit.
type CommitResult struct {
	PlanID       string
	Status       domain.PlanStatus
	SyncedEvents int
}
