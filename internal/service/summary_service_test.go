package service

import (
	"context"
	"testing"
	"time"

	"github.com/dogeja/blueprint/internal/domain"
	"github.com/dogeja/blueprint/internal/repository"
	"github.com/dogeja/blueprint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type summaryFixture struct {
	svc     SummaryService
	reports *repository.SQLiteReportRepo
	tasks   *repository.SQLiteTaskRepo
	res     *repository.SQLiteResolutionRepo
}

func setupSummaryService(t *testing.T) *summaryFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	tasks := repository.NewSQLiteTaskRepo(database)
	res := repository.NewSQLiteResolutionRepo(database)
	return &summaryFixture{
		svc:     NewSummaryService(tasks, res),
		reports: repository.NewSQLiteReportRepo(database),
		tasks:   tasks,
		res:     res,
	}
}

func (f *summaryFixture) seedDay(t *testing.T, date string, condition int, tasks ...*domain.Task) {
	t.Helper()
	ctx := context.Background()
	rep := testutil.NewTestReport(date, testutil.WithCondition(condition))
	require.NoError(t, f.reports.Create(ctx, rep))
	for _, task := range tasks {
		task.ReportID = rep.ID
		require.NoError(t, f.tasks.Create(ctx, task))
	}
}

func TestSummaryService_RangeAggregates(t *testing.T) {
	f := setupSummaryService(t)
	ctx := context.Background()

	f.seedDay(t, "2024-05-01", 4,
		testutil.NewTestTask("", "done", testutil.WithProgress(100), testutil.WithActualMin(60)),
		testutil.NewTestTask("", "open", testutil.WithProgress(20), testutil.WithActualMin(30)),
	)
	f.seedDay(t, "2024-05-02", 2,
		testutil.NewTestTask("", "also done", testutil.WithProgress(100), testutil.WithActualMin(45)),
	)
	require.NoError(t, f.res.Upsert(ctx, &domain.CarryOverResolution{
		Date: "2024-05-02", Outcome: domain.OutcomeMoved, MovedCount: 1,
		ResolvedAt: time.Now().UTC(),
	}))

	got, err := f.svc.Range(ctx, "2024-05-01", "2024-05-07")
	require.NoError(t, err)

	require.Len(t, got.Days, 2)
	assert.Equal(t, "2024-05-01", got.Days[0].Date)
	assert.Equal(t, 2, got.Days[0].TaskTotal)
	assert.Equal(t, 1, got.Days[0].TaskCompleted)
	assert.Equal(t, 90, got.Days[0].ActualMin)

	assert.Equal(t, 3, got.TaskTotal)
	assert.Equal(t, 2, got.TaskCompleted)
	assert.InDelta(t, 2.0/3.0, got.CompletionRate, 1e-9)
	assert.InDelta(t, 3.0, got.AvgCondition, 1e-9)
	assert.Equal(t, 135, got.TotalActualMin)
	assert.Equal(t, 1, got.CarriedOver)
}

func TestSummaryService_RangeExcludesCancelledTasks(t *testing.T) {
	f := setupSummaryService(t)

	f.seedDay(t, "2024-05-03", 3,
		testutil.NewTestTask("", "kept", testutil.WithProgress(100)),
		testutil.NewTestTask("", "carried away", testutil.WithProgress(40),
			testutil.WithTaskStatus(domain.TaskCancelled)),
	)

	got, err := f.svc.Range(context.Background(), "2024-05-03", "2024-05-03")
	require.NoError(t, err)
	require.Len(t, got.Days, 1)
	assert.Equal(t, 1, got.Days[0].TaskTotal, "cancelled rows do not count")
	assert.Equal(t, 1, got.Days[0].TaskCompleted)
}

func TestSummaryService_RangeEmpty(t *testing.T) {
	f := setupSummaryService(t)

	got, err := f.svc.Range(context.Background(), "2024-05-01", "2024-05-07")
	require.NoError(t, err)
	assert.Empty(t, got.Days)
	assert.Zero(t, got.TaskTotal)
	assert.Zero(t, got.AvgCondition)
	assert.Zero(t, got.CompletionRate)
}

func TestSummaryService_RangeRejectsInvertedBounds(t *testing.T) {
	f := setupSummaryService(t)
	_, err := f.svc.Range(context.Background(), "2024-05-07", "2024-05-01")
	assert.Error(t, err)
}

func TestSummaryService_WeekWindow(t *testing.T) {
	f := setupSummaryService(t)

	f.seedDay(t, "2024-05-06", 3) // one day before the window opens
	f.seedDay(t, "2024-05-07", 3)
	f.seedDay(t, "2024-05-13", 3)

	got, err := f.svc.WeekSummary(context.Background(), "2024-05-13")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-07", got.From)
	assert.Equal(t, "2024-05-13", got.To)
	assert.Len(t, got.Days, 2)
}

func TestSummaryService_MonthWindow(t *testing.T) {
	f := setupSummaryService(t)

	got, err := f.svc.MonthSummary(context.Background(), "2024-02-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", got.From)
	assert.Equal(t, "2024-02-29", got.To, "leap February")
}
