package schedule

import (
	"errors"
	"strings"

	"github.com/aquilahq/aquila/internal/domain"
	"github.com/google/uuid"
)

var (
	ErrEmptyTitle          = errors.New("subtask title must not be empty")
	ErrNonPositiveDuration = errors.New("subtask duration must be positive minutes")
	ErrSubtaskNotFound     = errors.New("subtask not found")
	ErrNotCustom           = errors.New("subtask is not a custom entry")
	ErrNoPendingCustom     = errors.New("no custom entry awaiting a duration")
)

// Queue holds the schedulable subtasks for one task, in insertion order:
// the recommended batch first, then custom entries as the user adds
// them. Items are addressed by generated IDs, never by position.
type Queue struct {
	items []domain.Subtask
}

func NewQueue() *Queue {
	return &Queue{}
}

// AddRecommended appends one suggestion from the backend. Recommended
// subtasks start unselected; the user opts them into the plan.
func (q *Queue) AddRecommended(title string, estimatedMin int) domain.Subtask {
	st := domain.Subtask{
		ID:           uuid.New().String(),
		Title:        strings.TrimSpace(title),
		EstimatedMin: estimatedMin,
		Source:       domain.SourceRecommended,
	}
	q.items = append(q.items, st)
	return st
}

// AddCustom appends a user-entered subtask with no duration yet. The
// entry is selected immediately; its duration arrives through
// SetLastCustomDuration once the user commits the minutes field.
func (q *Queue) AddCustom(title string) (domain.Subtask, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Subtask{}, ErrEmptyTitle
	}
	st := domain.Subtask{
		ID:       uuid.New().String(),
		Title:    title,
		Source:   domain.SourceCustom,
		Selected: true,
	}
	q.items = append(q.items, st)
	return st, nil
}

// SetLastCustomDuration assigns minutes to the most recently added
// custom entry that has no duration yet. The entry UX commits the title
// first and the minutes second; adds in between break the pairing, so
// only the newest unfinished entry is ever touched.
func (q *Queue) SetLastCustomDuration(minutes int) error {
	if minutes <= 0 {
		return ErrNonPositiveDuration
	}
	for i := len(q.items) - 1; i >= 0; i-- {
		if q.items[i].Source == domain.SourceCustom && q.items[i].EstimatedMin == 0 {
			q.items[i].EstimatedMin = minutes
			return nil
		}
	}
	return ErrNoPendingCustom
}

// Toggle flips the selection state of a subtask.
func (q *Queue) Toggle(id string) error {
	for i := range q.items {
		if q.items[i].ID == id {
			q.items[i].Selected = !q.items[i].Selected
			return nil
		}
	}
	return ErrSubtaskNotFound
}

// RemoveCustom deletes a custom entry. Recommended subtasks are never
// removed, only deselected.
func (q *Queue) RemoveCustom(id string) error {
	for i := range q.items {
		if q.items[i].ID != id {
			continue
		}
		if q.items[i].Source != domain.SourceCustom {
			return ErrNotCustom
		}
		q.items = append(q.items[:i], q.items[i+1:]...)
		return nil
	}
	return ErrSubtaskNotFound
}

// MarkScheduled records that a slot has been confirmed for the subtask.
func (q *Queue) MarkScheduled(id string) error {
	for i := range q.items {
		if q.items[i].ID == id {
			q.items[i].Scheduled = true
			return nil
		}
	}
	return ErrSubtaskNotFound
}

// Items returns a copy of all subtasks in insertion order.
func (q *Queue) Items() []domain.Subtask {
	out := make([]domain.Subtask, len(q.items))
	copy(out, q.items)
	return out
}

// Selected returns the to-schedule set in insertion order.
func (q *Queue) Selected() []domain.Subtask {
	var out []domain.Subtask
	for _, st := range q.items {
		if st.Selected {
			out = append(out, st)
		}
	}
	return out
}

// TotalEstimatedMin sums the estimates of the selected subtasks only.
func (q *Queue) TotalEstimatedMin() int {
	total := 0
	for _, st := range q.items {
		if st.Selected {
			total += st.EstimatedMin
		}
	}
	return total
}

// Current returns the first selected, unscheduled subtask in insertion
// order, or nil once the queue is exhausted. Pure function of the
// queue's flags: repeated calls on an unchanged queue agree.
func (q *Queue) Current() *domain.Subtask {
	for _, st := range q.items {
		if st.Selected && !st.Scheduled {
			current := st
			return &current
		}
	}
	return nil
}

// Exhausted reports whether every selected subtask has been scheduled.
func (q *Queue) Exhausted() bool {
	return q.Current() == nil
}

// Len returns the number of subtasks, selected or not.
func (q *Queue) Len() int {
	return len(q.items)
}
