package service

import (
	"context"
	"testing"

	"github.com/dogeja/blueprint/internal/domain"
	"github.com/dogeja/blueprint/internal/repository"
	"github.com/dogeja/blueprint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTaskService(t *testing.T) (TaskService, string) {
	t.Helper()
	database := testutil.NewTestDB(t)
	reports := repository.NewSQLiteReportRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)

	rep := testutil.NewTestReport("2024-04-01")
	require.NoError(t, reports.Create(context.Background(), rep))

	return NewTaskService(tasks, testutil.NewTestUoW(database)), rep.ID
}

func TestTaskService_CreateDefaults(t *testing.T) {
	svc, reportID := setupTaskService(t)
	ctx := context.Background()

	task := &domain.Task{ReportID: reportID, Title: "write minutes"}
	require.NoError(t, svc.Create(ctx, task))

	got, err := svc.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, domain.TaskPlanned, got.Status)
	assert.Equal(t, domain.CategoryShortTerm, got.Category)
	assert.Equal(t, 3, got.Priority)
	assert.Equal(t, 0, got.ProgressRate)
}

func TestTaskService_CreateRequiresTitle(t *testing.T) {
	svc, reportID := setupTaskService(t)
	err := svc.Create(context.Background(), &domain.Task{ReportID: reportID})
	assert.Error(t, err)
}

func TestTaskService_Complete(t *testing.T) {
	svc, reportID := setupTaskService(t)
	ctx := context.Background()

	task := &domain.Task{ReportID: reportID, Title: "halfway", ProgressRate: 50}
	require.NoError(t, svc.Create(ctx, task))
	require.NoError(t, svc.Complete(ctx, task.ID))

	got, err := svc.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.ProgressRate)
	assert.Equal(t, domain.TaskCompleted, got.Status)
	assert.True(t, got.IsComplete())
}

func TestTaskService_CompleteUnknownTask(t *testing.T) {
	svc, _ := setupTaskService(t)
	err := svc.Complete(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskService_Reorder(t *testing.T) {
	svc, reportID := setupTaskService(t)
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"first", "second", "third"} {
		task := &domain.Task{ReportID: reportID, Title: title}
		require.NoError(t, svc.Create(ctx, task))
		ids = append(ids, task.ID)
	}

	// Reverse the list.
	require.NoError(t, svc.Reorder(ctx, reportID, []string{ids[2], ids[1], ids[0]}))

	got, err := svc.ListByReport(ctx, reportID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "third", got[0].Title)
	assert.Equal(t, "second", got[1].Title)
	assert.Equal(t, "first", got[2].Title)
}

func TestTaskService_ReorderRejectsForeignTask(t *testing.T) {
	svc, reportID := setupTaskService(t)
	ctx := context.Background()

	task := &domain.Task{ReportID: reportID, Title: "mine"}
	require.NoError(t, svc.Create(ctx, task))

	err := svc.Reorder(ctx, "other-report", []string{task.ID})
	require.Error(t, err)

	// The rejected reorder must not have touched the row.
	got, err := svc.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, reportID, got.ReportID)
}

func TestTaskService_Delete(t *testing.T) {
	svc, reportID := setupTaskService(t)
	ctx := context.Background()

	task := &domain.Task{ReportID: reportID, Title: "gone"}
	require.NoError(t, svc.Create(ctx, task))
	require.NoError(t, svc.Delete(ctx, task.ID))

	_, err := svc.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
