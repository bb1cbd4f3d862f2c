package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_IsComplete(t *testing.T) {
	tests := []struct {
		name     string
		progress int
		status   TaskStatus
		want     bool
	}{
		{"zero progress", 0, TaskPlanned, false},
		{"partial progress", 40, TaskInProgress, false},
		{"full progress", 100, TaskCompleted, true},
		{"full progress but status planned", 100, TaskPlanned, true},
		{"completed status but partial progress", 60, TaskCompleted, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &Task{ProgressRate: tt.progress, Status: tt.status}
			assert.Equal(t, tt.want, task.IsComplete())
		})
	}
}

func TestTask_CloneForCarryOver(t *testing.T) {
	goalID := "goal-1"
	now := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	src := &Task{
		ID:           "task-1",
		ReportID:     "report-prev",
		Title:        "Write monthly summary",
		Description:  "covering December",
		Category:     CategoryShortTerm,
		Priority:     4,
		ProgressRate: 40,
		Status:       TaskInProgress,
		EstimatedMin: 90,
		ActualMin:    30,
		GoalID:       &goalID,
		OrderIndex:   2,
	}

	clone := src.CloneForCarryOver("task-2", "report-today", now)

	assert.Equal(t, "task-2", clone.ID)
	assert.Equal(t, "report-today", clone.ReportID)
	assert.Equal(t, src.Title, clone.Title)
	assert.Equal(t, src.Description, clone.Description)
	assert.Equal(t, src.Category, clone.Category)
	assert.Equal(t, src.Priority, clone.Priority)
	assert.Equal(t, src.EstimatedMin, clone.EstimatedMin)

	assert.Equal(t, 0, clone.ProgressRate, "progress resets")
	assert.Equal(t, TaskPlanned, clone.Status, "status resets")
	assert.Equal(t, 0, clone.ActualMin, "actual time is not carried")

	require.NotNil(t, clone.GoalID)
	assert.Equal(t, goalID, *clone.GoalID)
	assert.NotSame(t, src.GoalID, clone.GoalID, "goal ref is copied, not shared")

	// Source is untouched.
	assert.Equal(t, 40, src.ProgressRate)
	assert.Equal(t, TaskInProgress, src.Status)
	assert.Equal(t, "report-prev", src.ReportID)
}

func TestTask_CloneForCarryOver_NoGoal(t *testing.T) {
	src := &Task{ID: "t", ReportID: "r", Title: "x", Category: CategoryContinuous}
	clone := src.CloneForCarryOver("t2", "r2", time.Now().UTC())
	assert.Nil(t, clone.GoalID)
}
