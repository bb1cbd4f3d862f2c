package repository

import (
	"context"

	"github.com/dogeja/blueprint/internal/domain"
)

// TaskDayStats is a joined per-day view of a report's task totals, used by
// the summary service for dashboard aggregates.
type TaskDayStats struct {
	Date      string
	ReportID  string
	Condition int
	Total     int
	Completed int
	ActualMin int
}

type ReportRepo interface {
	Create(ctx context.Context, r *domain.DailyReport) error
	GetByID(ctx context.Context, id string) (*domain.DailyReport, error)
	GetByDate(ctx context.Context, date string) (*domain.DailyReport, error)
	ListByDateRange(ctx context.Context, from, to string) ([]*domain.DailyReport, error)
	Update(ctx context.Context, r *domain.DailyReport) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByReport(ctx context.Context, reportID string) ([]*domain.Task, error)
	// ListIncompleteByReport returns the report's carry-over candidates:
	// progress under 100, cancelled tasks excluded.
	ListIncompleteByReport(ctx context.Context, reportID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	SetOrderIndex(ctx context.Context, id string, orderIndex int) error
	Delete(ctx context.Context, id string) error
	StatsByDateRange(ctx context.Context, from, to string) ([]TaskDayStats, error)
}

type GoalRepo interface {
	Create(ctx context.Context, g *domain.Goal) error
	GetByID(ctx context.Context, id string) (*domain.Goal, error)
	List(ctx context.Context, includeClosed bool) ([]*domain.Goal, error)
	ListRoots(ctx context.Context) ([]*domain.Goal, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.Goal, error)
	Update(ctx context.Context, g *domain.Goal) error
	Delete(ctx context.Context, id string) error
}

type PhoneCallRepo interface {
	Create(ctx context.Context, c *domain.PhoneCall) error
	ListByReport(ctx context.Context, reportID string) ([]*domain.PhoneCall, error)
	Delete(ctx context.Context, id string) error
}

type ReflectionRepo interface {
	Create(ctx context.Context, r *domain.Reflection) error
	GetByID(ctx context.Context, id string) (*domain.Reflection, error)
	ListByReport(ctx context.Context, reportID string) ([]*domain.Reflection, error)
	Update(ctx context.Context, r *domain.Reflection) error
	Delete(ctx context.Context, id string) error
}

type ResolutionRepo interface {
	Get(ctx context.Context, date string) (*domain.CarryOverResolution, error)
	ListByDateRange(ctx context.Context, from, to string) ([]*domain.CarryOverResolution, error)
	Upsert(ctx context.Context, r *domain.CarryOverResolution) error
}
