package service

import (
	"context"

	"github.com/dogeja/blueprint/internal/domain"
)

// CandidateSet holds a prior day's incomplete tasks partitioned by category.
// It is a derived, transient view; nothing is persisted until the user
// resolves the prompt.
type CandidateSet struct {
	Continuous []*domain.Task
	ShortTerm  []*domain.Task
}

// Empty reports whether the set holds no candidates at all.
func (c CandidateSet) Empty() bool {
	return len(c.Continuous) == 0 && len(c.ShortTerm) == 0
}

// All returns the candidates in display order: continuous first.
func (c CandidateSet) All() []*domain.Task {
	out := make([]*domain.Task, 0, len(c.Continuous)+len(c.ShortTerm))
	out = append(out, c.Continuous...)
	out = append(out, c.ShortTerm...)
	return out
}

// MoveFailure records a single task that could not be carried over.
type MoveFailure struct {
	TaskID string
	Err    error
}

// MoveResult is the per-task outcome of a carry-over move. Moves run
// sequentially, so a failure partway through leaves earlier tasks moved;
// callers surface Failed to the user for retry.
type MoveResult struct {
	Moved  []*domain.Task
	Failed []MoveFailure
}

// FullSuccess reports whether every selected task was moved.
func (r *MoveResult) FullSuccess() bool {
	return len(r.Failed) == 0
}

// CarryOverService decides what, if anything, must move from yesterday's
// report into today's, and performs the move when instructed.
type CarryOverService interface {
	FindIncompleteTasks(ctx context.Context, targetDate string) (CandidateSet, error)
	HasPendingDecision(ctx context.Context, targetDate string) (bool, error)
	IsResolved(ctx context.Context, targetDate string) (bool, error)
	ResolveByDismissal(ctx context.Context, targetDate string) error
	ResolveBySelectionMove(ctx context.Context, selectedTaskIDs []string, targetDate string) (*MoveResult, error)
}

type ReportService interface {
	// GetByDate loads the report for a date with its task list populated.
	GetByDate(ctx context.Context, date string) (*domain.DailyReport, error)
	// Save upserts the report's basic fields, creating the row on first save.
	Save(ctx context.Context, r *domain.DailyReport) error
	ListRange(ctx context.Context, from, to string) ([]*domain.DailyReport, error)
	Delete(ctx context.Context, date string) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByReport(ctx context.Context, reportID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Complete(ctx context.Context, id string) error
	Reorder(ctx context.Context, reportID string, orderedIDs []string) error
	Delete(ctx context.Context, id string) error
}

type GoalService interface {
	Create(ctx context.Context, g *domain.Goal) error
	GetByID(ctx context.Context, id string) (*domain.Goal, error)
	List(ctx context.Context, includeClosed bool) ([]*domain.Goal, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.Goal, error)
	Tree(ctx context.Context) ([]*domain.GoalNode, error)
	Update(ctx context.Context, g *domain.Goal) error
	Delete(ctx context.Context, id string) error
}

type PhoneCallService interface {
	Log(ctx context.Context, c *domain.PhoneCall) error
	ListByReport(ctx context.Context, reportID string) ([]*domain.PhoneCall, error)
	Delete(ctx context.Context, id string) error
}

type ReflectionService interface {
	Add(ctx context.Context, r *domain.Reflection) error
	ListByReport(ctx context.Context, reportID string) ([]*domain.Reflection, error)
	Update(ctx context.Context, r *domain.Reflection) error
	Delete(ctx context.Context, id string) error
}

// DaySummary is one day's aggregate for dashboard views.
type DaySummary struct {
	Date          string
	Condition     int
	TaskTotal     int
	TaskCompleted int
	ActualMin     int
}

// PeriodSummary aggregates a contiguous date range.
type PeriodSummary struct {
	From           string
	To             string
	Days           []DaySummary
	AvgCondition   float64
	TaskTotal      int
	TaskCompleted  int
	CompletionRate float64
	TotalActualMin int
	CarriedOver    int
}

type SummaryService interface {
	// WeekSummary covers the seven days ending at end (inclusive).
	WeekSummary(ctx context.Context, end string) (*PeriodSummary, error)
	// MonthSummary covers the calendar month containing the given date.
	MonthSummary(ctx context.Context, date string) (*PeriodSummary, error)
	Range(ctx context.Context, from, to string) (*PeriodSummary, error)
}
