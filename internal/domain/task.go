package domain

import "time"

// Task belongs to exactly one DailyReport. Deleting the report cascades.
type Task struct {
	ID           string
	ReportID     string
	Title        string
	Description  string
	Category     TaskCategory
	Priority     int // 1-5
	ProgressRate int // 0-100
	Status       TaskStatus

	EstimatedMin int
	ActualMin    int

	// GoalID optionally links the task to a goal. Goals do not own tasks.
	GoalID *string

	OrderIndex int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsComplete reports whether the task counts as finished for carry-over
// purposes. ProgressRate is the sole completion signal; Status is not
// authoritative here.
func (t *Task) IsComplete() bool {
	return t.ProgressRate >= 100
}

// CloneForCarryOver returns a fresh copy of the task owned by the target
// report, with progress reset to zero and status reset to planned. The
// receiver is left untouched.
func (t *Task) CloneForCarryOver(id, targetReportID string, now time.Time) *Task {
	clone := &Task{
		ID:           id,
		ReportID:     targetReportID,
		Title:        t.Title,
		Description:  t.Description,
		Category:     t.Category,
		Priority:     t.Priority,
		ProgressRate: 0,
		Status:       TaskPlanned,
		EstimatedMin: t.EstimatedMin,
		OrderIndex:   t.OrderIndex,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if t.GoalID != nil {
		g := *t.GoalID
		clone.GoalID = &g
	}
	return clone
}
