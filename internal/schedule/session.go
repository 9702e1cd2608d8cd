package schedule

import (
	"errors"
	"time"

	"github.com/aquilahq/aquila/internal/contract"
	"github.com/aquilahq/aquila/internal/domain"
)

// Step is the state of the scheduling loop for one task.
type Step string

const (
	// StepEstimation: the user is selecting and defining subtasks.
	StepEstimation Step = "estimation"
	// StepPlanning: subtasks are assigned slots one at a time.
	StepPlanning Step = "planning"
	// StepDone: every selected subtask has a confirmed slot.
	StepDone Step = "done"
	// StepSubmitted: the plan has been committed.
	StepSubmitted Step = "submitted"
)

var (
	ErrNotPlanning     = errors.New("session is not in the planning step")
	ErrNoCurrentTask   = errors.New("no subtask left to schedule")
	ErrNotDone         = errors.New("session has unscheduled subtasks")
	ErrAlreadySubmitted = errors.New("session already submitted")
)

// Assignment is one confirmed subtask/placement pairing.
type Assignment struct {
	Subtask   domain.Subtask
	Placement contract.Placement
}

// Session drives the estimation → planning → done → submitted loop for
// one task. All transitions are synchronous; the caller owns fetching
// (suggestions, day events) and feeds results in through the Queue and
// SetSlots.
type Session struct {
	TaskName   string
	CourseName string
	Queue      *Queue

	day         time.Time
	window      Window
	slots       []domain.TimeSlot
	step        Step
	assignments []Assignment
}

func NewSession(taskName, courseName string, day time.Time, w Window) *Session {
	return &Session{
		TaskName:   taskName,
		CourseName: courseName,
		Queue:      NewQueue(),
		day:        day,
		window:     w,
		step:       StepEstimation,
	}
}

func (s *Session) Step() Step        { return s.step }
func (s *Session) Day() time.Time    { return s.day }
func (s *Session) Window() Window    { return s.window }
func (s *Session) Slots() []domain.TimeSlot {
	out := make([]domain.TimeSlot, len(s.slots))
	copy(out, s.slots)
	return out
}

// SetDay switches the planning date. Confirmed assignments and
// scheduled flags survive; the slot grid is invalidated until the
// caller installs the new day's grid.
func (s *Session) SetDay(day time.Time) {
	s.day = day
	s.slots = nil
}

// SetSlots installs the availability grid for the current day.
func (s *Session) SetSlots(slots []domain.TimeSlot) {
	s.slots = slots
}

// ContinueToPlanning moves from estimation to planning. Unconditional:
// an empty selection just lands the session in the all-done state.
func (s *Session) ContinueToPlanning() {
	if s.step != StepEstimation {
		return
	}
	if s.Queue.Exhausted() {
		s.step = StepDone
		return
	}
	s.step = StepPlanning
}

// BackToEstimation returns to subtask selection without resetting any
// scheduled flags or confirmed assignments.
func (s *Session) BackToEstimation() {
	if s.step == StepPlanning || s.step == StepDone {
		s.step = StepEstimation
	}
}

// Current returns the subtask being scheduled, or nil.
func (s *Session) Current() *domain.Subtask {
	return s.Queue.Current()
}

// CurrentPlacements returns the valid placements for the current
// subtask on the current grid.
func (s *Session) CurrentPlacements() []contract.Placement {
	current := s.Queue.Current()
	if current == nil {
		return nil
	}
	return ValidPlacements(s.slots, current.EstimatedMin, s.window)
}

// AssignCurrent confirms a placement for the current subtask, marks it
// scheduled, and advances to the next unscheduled subtask. When the
// queue is exhausted the session reaches StepDone.
func (s *Session) AssignCurrent(p contract.Placement) error {
	if s.step != StepPlanning {
		return ErrNotPlanning
	}
	current := s.Queue.Current()
	if current == nil {
		return ErrNoCurrentTask
	}

	if err := s.Queue.MarkScheduled(current.ID); err != nil {
		return err
	}
	scheduled := *current
	scheduled.Scheduled = true
	s.assignments = append(s.assignments, Assignment{Subtask: scheduled, Placement: p})

	if s.Queue.Exhausted() {
		s.step = StepDone
	}
	return nil
}

// Assignments returns the confirmed pairings in confirmation order.
func (s *Session) Assignments() []Assignment {
	out := make([]Assignment, len(s.assignments))
	copy(out, s.assignments)
	return out
}

// Submit closes the session. Only legal once every selected subtask has
// a slot; the caller performs the actual persistence and calendar
// write-back before or after flipping the state.
func (s *Session) Submit() error {
	switch s.step {
	case StepSubmitted:
		return ErrAlreadySubmitted
	case StepDone:
		s.step = StepSubmitted
		return nil
	default:
		return ErrNotDone
	}
}
