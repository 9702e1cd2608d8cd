package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aquilahq/aquila/internal/backend"
	"github.com/aquilahq/aquila/internal/contract"
	"github.com/aquilahq/aquila/internal/db"
	"github.com/aquilahq/aquila/internal/domain"
	"github.com/aquilahq/aquila/internal/repository"
	"github.com/aquilahq/aquila/internal/schedule"
	"github.com/google/uuid"
)

type planService struct {
	backend    backend.Client
	plans      repository.PlanRepo
	uow        db.UnitOfWork
	window     schedule.Window
	calendarID string
	observer   UseCaseObserver
}

// NewPlanService wires the plan use cases to the backend client and the
// local plan store.
func NewPlanService(
	client backend.Client,
	plans repository.PlanRepo,
	uow db.UnitOfWork,
	window schedule.Window,
	calendarID string,
	observers ...UseCaseObserver,
) PlanService {
	return &planService{
		backend:    client,
		plans:      plans,
		uow:        uow,
		window:     window,
		calendarID: calendarID,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *planService) SuggestSubtasks(ctx context.Context, taskName, courseName string) (subtasks []domain.Subtask, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "suggest-subtasks",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"task": taskName, "count": len(subtasks)},
		})
	}()

	suggestions, err := s.backend.SuggestSubtasks(ctx, taskName, courseName)
	if err != nil {
		return nil, err
	}

	subtasks = make([]domain.Subtask, 0, len(suggestions))
	for _, sg := range suggestions {
		if sg.Title == "" || sg.EstimatedTime <= 0 {
			continue
		}
		subtasks = append(subtasks, domain.Subtask{
			ID:           uuid.New().String(),
			Title:        sg.Title,
			EstimatedMin: sg.EstimatedTime,
			Source:       domain.SourceRecommended,
		})
	}
	return subtasks, nil
}

func (s *planService) Availability(ctx context.Context, day time.Time) (*contract.Availability, error) {
	events, skipped, err := s.backend.DayEvents(ctx, day)
	if err != nil {
		return nil, err
	}
	return &contract.Availability{
		Day:           day,
		Slots:         schedule.BuildDayGrid(day, s.window, events),
		SkippedEvents: skipped,
	}, nil
}

func (s *planService) Commit(ctx context.Context, req contract.CommitRequest) (result *contract.CommitResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"task": req.TaskName, "entries": len(req.Entries)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "commit-plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err = validateCommit(req); err != nil {
		return nil, err
	}

	plan := &domain.Plan{
		ID:         uuid.New().String(),
		TaskName:   req.TaskName,
		CourseName: req.CourseName,
		Day:        req.Day,
		Status:     domain.PlanPendingSync,
		CreatedAt:  time.Now().UTC(),
		Entries:    make([]domain.PlanEntry, len(req.Entries)),
	}
	copy(plan.Entries, req.Entries)
	for i := range plan.Entries {
		if plan.Entries[i].ID == "" {
			plan.Entries[i].ID = uuid.New().String()
		}
		plan.Entries[i].PlanID = plan.ID
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLitePlanRepo(tx).Create(ctx, plan)
	})
	if err != nil {
		err = &contract.PlanError{
			Code:    contract.ErrStoreFailure,
			Message: fmt.Sprintf("saving plan: %v", err),
		}
		return nil, err
	}

	synced, syncErr := s.backend.SyncPlan(ctx, s.calendarID, eventWrites(plan))
	if syncErr != nil {
		// Local commit stands; the plan stays pending_sync.
		fields["sync_error"] = syncErr.Error()
		return &contract.CommitResult{
			PlanID: plan.ID,
			Status: domain.PlanPendingSync,
		}, nil
	}

	if err = s.plans.UpdateStatus(ctx, plan.ID, domain.PlanSynced); err != nil {
		err = &contract.PlanError{
			Code:    contract.ErrStoreFailure,
			Message: fmt.Sprintf("marking plan synced: %v", err),
		}
		return nil, err
	}

	return &contract.CommitResult{
		PlanID:       plan.ID,
		Status:       domain.PlanSynced,
		SyncedEvents: synced,
	}, nil
}

func (s *planService) History(ctx context.Context, limit int) ([]*domain.Plan, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.plans.ListRecent(ctx, limit)
}

func (s *planService) PlansForDay(ctx context.Context, day time.Time) ([]*domain.Plan, error) {
	return s.plans.ListByDay(ctx, day.Format("2006-01-02"))
}

func validateCommit(req contract.CommitRequest) error {
	if req.Day.IsZero() {
		return &contract.PlanError{Code: contract.ErrInvalidDay, Message: "plan day is not set"}
	}
	if len(req.Entries) == 0 {
		return &contract.PlanError{Code: contract.ErrEmptyPlan, Message: "plan has no scheduled subtasks"}
	}
	for _, e := range req.Entries {
		if e.EstimatedMin <= 0 {
			return &contract.PlanError{
				Code:    contract.ErrInvalidDuration,
				Message: fmt.Sprintf("subtask %q has a non-positive estimate", e.Title),
			}
		}
		if !e.SlotEnd.After(e.SlotStart) {
			return &contract.PlanError{
				Code:    contract.ErrInvalidDuration,
				Message: fmt.Sprintf("subtask %q has an empty slot", e.Title),
			}
		}
	}
	return nil
}

// eventWrites converts plan entries into the backend's calendar payload.
func eventWrites(p *domain.Plan) []backend.EventWrite {
	events := make([]backend.EventWrite, len(p.Entries))
	for i, e := range p.Entries {
		events[i] = backend.EventWrite{
			Title:       e.Title,
			Description: fmt.Sprintf("%s (%s), planned %d min", p.TaskName, p.CourseName, e.EstimatedMin),
			StartTime:   e.SlotStart.Format(time.RFC3339),
			EndTime:     e.SlotEnd.Format(time.RFC3339),
		}
	}
	return events
}
