package service

import (
	"context"
	"time"

	"github.com/aquilahq/aquila/internal/contract"
	"github.com/aquilahq/aquila/internal/domain"
)

// PlanService is the application layer behind the plan wizard and the
// reporting commands. It owns talking to the backend, deriving slot
// grids, and committing finished plans.
type PlanService interface {
	// SuggestSubtasks asks the backend to break the task down. Errors
	// are returned as-is; callers degrade to manual entry.
	SuggestSubtasks(ctx context.Context, taskName, courseName string) ([]domain.Subtask, error)

	// Availability fetches the day's calendar events and derives the
	// slot grid from them.
	Availability(ctx context.Context, day time.Time) (*contract.Availability, error)

	// Commit persists a finished plan locally and writes its entries
	// back to the calendar. A calendar write-back failure is not an
	// error: the plan is kept with status pending_sync.
	Commit(ctx context.Context, req contract.CommitRequest) (*contract.CommitResult, error)

	// History returns the most recently committed plans, newest first.
	History(ctx context.Context, limit int) ([]*domain.Plan, error)

	// PlansForDay returns the plans committed for one calendar day.
	PlansForDay(ctx context.Context, day time.Time) ([]*domain.Plan, error)
}
