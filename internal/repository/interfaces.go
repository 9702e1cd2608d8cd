package repository

import (
	"context"
	"errors"

	"github.com/aquilahq/aquila/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// PlanRepo persists committed plans and their entries.
type PlanRepo interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	ListByDay(ctx context.Context, day string) ([]*domain.Plan, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Plan, error)
	UpdateStatus(ctx context.Context, id string, status domain.PlanStatus) error
}
