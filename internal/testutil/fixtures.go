package testutil

import (
	"time"

	"github.com/dogeja/blueprint/internal/domain"
	"github.com/google/uuid"
)

// Report options

type ReportOption func(*domain.DailyReport)

func WithCondition(c int) ReportOption {
	return func(r *domain.DailyReport) {
		r.Condition = c
	}
}

func WithWorkHours(start, end string) ReportOption {
	return func(r *domain.DailyReport) {
		r.WorkStart = start
		r.WorkEnd = end
	}
}

func WithLocation(loc string) ReportOption {
	return func(r *domain.DailyReport) {
		r.Location = loc
	}
}

// NewTestReport builds a daily report for the given YYYY-MM-DD date.
func NewTestReport(date string, opts ...ReportOption) *domain.DailyReport {
	now := time.Now().UTC()
	r := &domain.DailyReport{
		ID:        uuid.New().String(),
		Date:      date,
		Condition: 3,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Task options

type TaskOption func(*domain.Task)

func WithProgress(p int) TaskOption {
	return func(t *domain.Task) {
		t.ProgressRate = p
	}
}

func WithCategory(c domain.TaskCategory) TaskOption {
	return func(t *domain.Task) {
		t.Category = c
	}
}

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithPriority(p int) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithEstimatedMin(m int) TaskOption {
	return func(t *domain.Task) {
		t.EstimatedMin = m
	}
}

func WithActualMin(m int) TaskOption {
	return func(t *domain.Task) {
		t.ActualMin = m
	}
}

func WithGoalRef(goalID string) TaskOption {
	return func(t *domain.Task) {
		t.GoalID = &goalID
	}
}

func WithOrderIndex(i int) TaskOption {
	return func(t *domain.Task) {
		t.OrderIndex = i
	}
}

// NewTestTask builds a task under the given report.
func NewTestTask(reportID, title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:        uuid.New().String(),
		ReportID:  reportID,
		Title:     title,
		Category:  domain.CategoryShortTerm,
		Priority:  3,
		Status:    domain.TaskPlanned,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Goal options

type GoalOption func(*domain.Goal)

func WithPeriod(p domain.GoalPeriod) GoalOption {
	return func(g *domain.Goal) {
		g.Period = p
	}
}

func WithParentGoal(id string) GoalOption {
	return func(g *domain.Goal) {
		g.ParentID = &id
	}
}

func WithGoalStatus(s domain.GoalStatus) GoalOption {
	return func(g *domain.Goal) {
		g.Status = s
	}
}

func WithTargetDate(d time.Time) GoalOption {
	return func(g *domain.Goal) {
		g.TargetDate = &d
	}
}

// NewTestGoal builds a goal with sensible defaults.
func NewTestGoal(title string, opts ...GoalOption) *domain.Goal {
	now := time.Now().UTC()
	g := &domain.Goal{
		ID:        uuid.New().String(),
		Title:     title,
		Period:    domain.PeriodWeekly,
		Status:    domain.GoalActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewTestPhoneCall builds a phone call under the given report.
func NewTestPhoneCall(reportID, caller string) *domain.PhoneCall {
	now := time.Now().UTC()
	return &domain.PhoneCall{
		ID:         uuid.New().String(),
		ReportID:   reportID,
		Caller:     caller,
		Subject:    "follow-up",
		ReceivedAt: now,
		CreatedAt:  now,
	}
}

// NewTestReflection builds a reflection under the given report.
func NewTestReflection(reportID, content string) *domain.Reflection {
	now := time.Now().UTC()
	return &domain.Reflection{
		ID:        uuid.New().String(),
		ReportID:  reportID,
		Content:   content,
		Mood:      3,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
