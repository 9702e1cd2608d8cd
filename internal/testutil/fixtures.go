package testutil

import (
	"time"

	"github.com/aquilahq/aquila/internal/domain"
	"github.com/google/uuid"
)

// testDay is the calendar day fixtures default to.
var testDay = time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)

// Plan options
type PlanOption func(*domain.Plan)

func WithPlanStatus(s domain.PlanStatus) PlanOption {
	return func(p *domain.Plan) {
		p.Status = s
	}
}

func WithPlanDay(d time.Time) PlanOption {
	return func(p *domain.Plan) {
		p.Day = d
	}
}

func WithCreatedAt(t time.Time) PlanOption {
	return func(p *domain.Plan) {
		p.CreatedAt = t
	}
}

func WithEntries(entries ...domain.PlanEntry) PlanOption {
	return func(p *domain.Plan) {
		for i := range entries {
			entries[i].PlanID = p.ID
		}
		p.Entries = entries
	}
}

func NewTestPlan(taskName, courseName string, opts ...PlanOption) *domain.Plan {
	p := &domain.Plan{
		ID:         uuid.New().String(),
		TaskName:   taskName,
		CourseName: courseName,
		Day:        testDay,
		Status:     domain.PlanSynced,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Entry options
type EntryOption func(*domain.PlanEntry)

func WithSource(s domain.SubtaskSource) EntryOption {
	return func(e *domain.PlanEntry) {
		e.Source = s
	}
}

func WithSlot(startHour, startMin, durationMin int) EntryOption {
	return func(e *domain.PlanEntry) {
		e.SlotStart = time.Date(testDay.Year(), testDay.Month(), testDay.Day(),
			startHour, startMin, 0, 0, time.UTC)
		e.SlotEnd = e.SlotStart.Add(time.Duration(durationMin) * time.Minute)
	}
}

// NewTestEntry creates a plan entry scheduled at 09:00 on the fixture day.
// PlanID is filled in by WithEntries when attached to a plan.
func NewTestEntry(title string, estimatedMin int, opts ...EntryOption) domain.PlanEntry {
	e := domain.PlanEntry{
		ID:           uuid.New().String(),
		Title:        title,
		EstimatedMin: estimatedMin,
		Source:       domain.SourceRecommended,
	}
	WithSlot(9, 0, estimatedMin)(&e)
	for _, opt := range opts {
		opt(&e)
	}
	return e
}
