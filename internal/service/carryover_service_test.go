package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dogeja/blueprint/internal/domain"
	"github.com/dogeja/blueprint/internal/repository"
	"github.com/dogeja/blueprint/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testToday     = "2024-01-15"
	testYesterday = "2024-01-14"
)

func fixedClock(date string) func() time.Time {
	return func() time.Time {
		t, _ := time.Parse(domain.DateLayout, date)
		return t.Add(9 * time.Hour) // mid-morning
	}
}

type carryOverFixture struct {
	svc     CarryOverService
	db      *sql.DB
	reports *repository.SQLiteReportRepo
	tasks   *repository.SQLiteTaskRepo
	res     *repository.SQLiteResolutionRepo
}

func setupCarryOver(t *testing.T) *carryOverFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	reports := repository.NewSQLiteReportRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	res := repository.NewSQLiteResolutionRepo(database)
	svc := NewCarryOverService(reports, tasks, res, testutil.NewTestUoW(database),
		zerolog.Nop(), WithClock(fixedClock(testToday)))
	return &carryOverFixture{svc: svc, db: database, reports: reports, tasks: tasks, res: res}
}

// seedYesterday creates the prior-day report with the canonical A/B/C task
// set: A complete continuous, B half-done continuous, C untouched short-term.
func (f *carryOverFixture) seedYesterday(t *testing.T) (a, b, c *domain.Task) {
	t.Helper()
	ctx := context.Background()
	rep := testutil.NewTestReport(testYesterday)
	require.NoError(t, f.reports.Create(ctx, rep))

	a = testutil.NewTestTask(rep.ID, "A", testutil.WithProgress(100),
		testutil.WithCategory(domain.CategoryContinuous))
	b = testutil.NewTestTask(rep.ID, "B", testutil.WithProgress(40),
		testutil.WithCategory(domain.CategoryContinuous))
	c = testutil.NewTestTask(rep.ID, "C", testutil.WithProgress(0),
		testutil.WithCategory(domain.CategoryShortTerm))
	for _, task := range []*domain.Task{a, b, c} {
		require.NoError(t, f.tasks.Create(ctx, task))
	}
	return a, b, c
}

// untouchedReportRepo fails the test on any call; it verifies that
// non-today evaluations never reach storage.
type untouchedReportRepo struct {
	t *testing.T
}

func (r *untouchedReportRepo) fail() {
	r.t.Helper()
	r.t.Fatal("repository must not be touched for non-today dates")
}

func (r *untouchedReportRepo) Create(context.Context, *domain.DailyReport) error {
	r.fail()
	return nil
}

func (r *untouchedReportRepo) GetByID(context.Context, string) (*domain.DailyReport, error) {
	r.fail()
	return nil, nil
}

func (r *untouchedReportRepo) GetByDate(context.Context, string) (*domain.DailyReport, error) {
	r.fail()
	return nil, nil
}

func (r *untouchedReportRepo) ListByDateRange(context.Context, string, string) ([]*domain.DailyReport, error) {
	r.fail()
	return nil, nil
}

func (r *untouchedReportRepo) Update(context.Context, *domain.DailyReport) error {
	r.fail()
	return nil
}

func (r *untouchedReportRepo) Delete(context.Context, string) error {
	r.fail()
	return nil
}

func TestFindIncompleteTasks_NotToday_NoStorageAccess(t *testing.T) {
	f := setupCarryOver(t)
	svc := NewCarryOverService(&untouchedReportRepo{t: t}, f.tasks, f.res,
		testutil.NewTestUoW(f.db), zerolog.Nop(), WithClock(fixedClock(testToday)))
	ctx := context.Background()

	for _, date := range []string{"2024-01-14", "2024-01-16", "2023-06-01"} {
		set, err := svc.FindIncompleteTasks(ctx, date)
		require.NoError(t, err)
		assert.True(t, set.Empty(), "date %s must yield empty sets", date)
	}
}

func TestFindIncompleteTasks_InvalidDate(t *testing.T) {
	f := setupCarryOver(t)
	_, err := f.svc.FindIncompleteTasks(context.Background(), "15/01/2024")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestFindIncompleteTasks_PartitionsByCategory(t *testing.T) {
	f := setupCarryOver(t)
	_, b, c := f.seedYesterday(t)

	set, err := f.svc.FindIncompleteTasks(context.Background(), testToday)
	require.NoError(t, err)

	require.Len(t, set.Continuous, 1)
	assert.Equal(t, b.ID, set.Continuous[0].ID)
	require.Len(t, set.ShortTerm, 1)
	assert.Equal(t, c.ID, set.ShortTerm[0].ID)
}

func TestFindIncompleteTasks_NoPriorReport(t *testing.T) {
	f := setupCarryOver(t)

	set, err := f.svc.FindIncompleteTasks(context.Background(), testToday)
	require.NoError(t, err)
	assert.True(t, set.Empty())
}

func TestFindIncompleteTasks_Idempotent(t *testing.T) {
	f := setupCarryOver(t)
	f.seedYesterday(t)
	ctx := context.Background()

	first, err := f.svc.FindIncompleteTasks(ctx, testToday)
	require.NoError(t, err)
	second, err := f.svc.FindIncompleteTasks(ctx, testToday)
	require.NoError(t, err)

	require.Len(t, second.Continuous, len(first.Continuous))
	require.Len(t, second.ShortTerm, len(first.ShortTerm))
	assert.Equal(t, first.Continuous[0].ID, second.Continuous[0].ID)
	assert.Equal(t, first.ShortTerm[0].ID, second.ShortTerm[0].ID)
}

func TestFindIncompleteTasks_DiscoveryFailureDegradesToEmpty(t *testing.T) {
	f := setupCarryOver(t)
	f.seedYesterday(t)

	// Sever the storage layer; discovery must degrade, not error.
	require.NoError(t, f.db.Close())

	set, err := f.svc.FindIncompleteTasks(context.Background(), testToday)
	require.NoError(t, err)
	assert.True(t, set.Empty())
}

func TestHasPendingDecision(t *testing.T) {
	f := setupCarryOver(t)
	ctx := context.Background()

	pending, err := f.svc.HasPendingDecision(ctx, testToday)
	require.NoError(t, err)
	assert.False(t, pending, "no prior report, nothing pending")

	f.seedYesterday(t)
	pending, err = f.svc.HasPendingDecision(ctx, testToday)
	require.NoError(t, err)
	assert.True(t, pending)

	require.NoError(t, f.svc.ResolveByDismissal(ctx, testToday))
	pending, err = f.svc.HasPendingDecision(ctx, testToday)
	require.NoError(t, err)
	assert.False(t, pending, "resolved dates are never pending")
}

func TestResolveByDismissal_LeavesEverythingUnchanged(t *testing.T) {
	f := setupCarryOver(t)
	_, b, c := f.seedYesterday(t)
	ctx := context.Background()

	require.NoError(t, f.svc.ResolveByDismissal(ctx, testToday))

	resolved, err := f.svc.IsResolved(ctx, testToday)
	require.NoError(t, err)
	assert.True(t, resolved)

	// Prior-day tasks are untouched.
	for _, task := range []*domain.Task{b, c} {
		fetched, err := f.tasks.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ProgressRate, fetched.ProgressRate)
		assert.Equal(t, task.Status, fetched.Status)
	}

	// Today's report was never created.
	_, err = f.reports.GetByDate(ctx, testToday)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestResolveByDismissal_DoesNotOverwriteMove(t *testing.T) {
	f := setupCarryOver(t)
	_, b, _ := f.seedYesterday(t)
	ctx := context.Background()

	result, err := f.svc.ResolveBySelectionMove(ctx, []string{b.ID}, testToday)
	require.NoError(t, err)
	require.True(t, result.FullSuccess())

	require.NoError(t, f.svc.ResolveByDismissal(ctx, testToday))

	res, err := f.res.Get(ctx, testToday)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeMoved, res.Outcome, "move outcome is terminal")
	assert.Equal(t, 1, res.MovedCount)
}

func TestResolveBySelectionMove_RefusesResolvedDate(t *testing.T) {
	f := setupCarryOver(t)
	_, b, c := f.seedYesterday(t)
	ctx := context.Background()

	result, err := f.svc.ResolveBySelectionMove(ctx, []string{b.ID}, testToday)
	require.NoError(t, err)
	require.True(t, result.FullSuccess())

	// A second move must not run; the recorded count stays at the first
	// batch's.
	_, err = f.svc.ResolveBySelectionMove(ctx, []string{c.ID}, testToday)
	assert.ErrorIs(t, err, ErrAlreadyResolved)

	res, err := f.res.Get(ctx, testToday)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeMoved, res.Outcome)
	assert.Equal(t, 1, res.MovedCount)

	// C was not touched.
	fetched, err := f.tasks.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskPlanned, fetched.Status)
}

func TestResolveBySelectionMove_RefusesDismissedDate(t *testing.T) {
	f := setupCarryOver(t)
	_, b, _ := f.seedYesterday(t)
	ctx := context.Background()

	require.NoError(t, f.svc.ResolveByDismissal(ctx, testToday))

	_, err := f.svc.ResolveBySelectionMove(ctx, []string{b.ID}, testToday)
	assert.ErrorIs(t, err, ErrAlreadyResolved)
}

func TestResolveBySelectionMove_CloneWithReset(t *testing.T) {
	f := setupCarryOver(t)
	_, b, c := f.seedYesterday(t)
	ctx := context.Background()

	result, err := f.svc.ResolveBySelectionMove(ctx, []string{b.ID}, testToday)
	require.NoError(t, err)
	require.True(t, result.FullSuccess())
	require.Len(t, result.Moved, 1)

	// The clone sits in today's report with progress and status reset.
	today, err := f.reports.GetByDate(ctx, testToday)
	require.NoError(t, err)
	todayTasks, err := f.tasks.ListByReport(ctx, today.ID)
	require.NoError(t, err)
	require.Len(t, todayTasks, 1)
	clone := todayTasks[0]
	assert.Equal(t, "B", clone.Title)
	assert.Equal(t, 0, clone.ProgressRate)
	assert.Equal(t, domain.TaskPlanned, clone.Status)
	assert.Equal(t, domain.CategoryContinuous, clone.Category)
	assert.NotEqual(t, b.ID, clone.ID, "clone is a new row")

	// The source row stays in yesterday's report, marked cancelled.
	src, err := f.tasks.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCancelled, src.Status)
	assert.Equal(t, 40, src.ProgressRate, "source progress preserved")

	// Re-evaluation no longer offers B; C is still there.
	set, err := f.svc.FindIncompleteTasks(ctx, testToday)
	require.NoError(t, err)
	assert.Empty(t, set.Continuous)
	require.Len(t, set.ShortTerm, 1)
	assert.Equal(t, c.ID, set.ShortTerm[0].ID)
}

func TestResolveBySelectionMove_PreservesSelectionOrder(t *testing.T) {
	f := setupCarryOver(t)
	_, b, c := f.seedYesterday(t)
	ctx := context.Background()

	result, err := f.svc.ResolveBySelectionMove(ctx, []string{c.ID, b.ID}, testToday)
	require.NoError(t, err)
	require.True(t, result.FullSuccess())
	require.Len(t, result.Moved, 2)
	assert.Equal(t, "C", result.Moved[0].Title)
	assert.Equal(t, "B", result.Moved[1].Title)
}

func TestResolveBySelectionMove_EmptySelection(t *testing.T) {
	f := setupCarryOver(t)
	_, err := f.svc.ResolveBySelectionMove(context.Background(), nil, testToday)
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestResolveBySelectionMove_AppendsToExistingReport(t *testing.T) {
	f := setupCarryOver(t)
	_, b, _ := f.seedYesterday(t)
	ctx := context.Background()

	today := testutil.NewTestReport(testToday)
	require.NoError(t, f.reports.Create(ctx, today))
	existing := testutil.NewTestTask(today.ID, "already here")
	require.NoError(t, f.tasks.Create(ctx, existing))

	result, err := f.svc.ResolveBySelectionMove(ctx, []string{b.ID}, testToday)
	require.NoError(t, err)
	require.True(t, result.FullSuccess())

	tasks, err := f.tasks.ListByReport(ctx, today.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestResolveBySelectionMove_RejectsCompletedTask(t *testing.T) {
	f := setupCarryOver(t)
	a, _, _ := f.seedYesterday(t)
	ctx := context.Background()

	result, err := f.svc.ResolveBySelectionMove(ctx, []string{a.ID}, testToday)
	require.NoError(t, err)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, a.ID, result.Failed[0].TaskID)

	resolved, err := f.svc.IsResolved(ctx, testToday)
	require.NoError(t, err)
	assert.False(t, resolved, "failed move must not mark the date resolved")
}

func TestResolveBySelectionMove_UnknownTaskReported(t *testing.T) {
	f := setupCarryOver(t)
	_, b, _ := f.seedYesterday(t)
	ctx := context.Background()

	result, err := f.svc.ResolveBySelectionMove(ctx, []string{b.ID, "ghost"}, testToday)
	require.NoError(t, err)

	require.Len(t, result.Moved, 1, "good task still moves")
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "ghost", result.Failed[0].TaskID)
	assert.True(t, errors.Is(result.Failed[0].Err, repository.ErrNotFound))

	resolved, err := f.svc.IsResolved(ctx, testToday)
	require.NoError(t, err)
	assert.False(t, resolved, "partial failure leaves the date unresolved for retry")
}

func TestResolveBySelectionMove_MidMoveFailureRollsBack(t *testing.T) {
	f := setupCarryOver(t)
	_, b, c := f.seedYesterday(t)
	ctx := context.Background()

	// Each move is two writes (clone insert, source cancel). Failing the
	// fourth exec aborts the second task after its clone went in, so the
	// transaction must roll the clone back out.
	injected := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: f.db, FailOn: 4, Err: injected}
	svc := NewCarryOverService(f.reports, f.tasks, f.res, uow,
		zerolog.Nop(), WithClock(fixedClock(testToday)))

	result, err := svc.ResolveBySelectionMove(ctx, []string{b.ID, c.ID}, testToday)
	require.NoError(t, err)

	require.Len(t, result.Moved, 1)
	assert.Equal(t, "B", result.Moved[0].Title)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, c.ID, result.Failed[0].TaskID)
	assert.ErrorIs(t, result.Failed[0].Err, injected)

	// Today's report holds only the clone of B; C's half-written clone
	// was rolled back with the failed transaction.
	today, err := f.reports.GetByDate(ctx, testToday)
	require.NoError(t, err)
	todayTasks, err := f.tasks.ListByReport(ctx, today.ID)
	require.NoError(t, err)
	require.Len(t, todayTasks, 1)
	assert.Equal(t, "B", todayTasks[0].Title)

	// C itself is untouched and still a candidate.
	src, err := f.tasks.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskPlanned, src.Status)
	assert.Equal(t, 0, src.ProgressRate)

	resolved, err := svc.IsResolved(ctx, testToday)
	require.NoError(t, err)
	assert.False(t, resolved)

	// A retry through a healthy unit of work completes the move and
	// records the resolution.
	retry, err := f.svc.ResolveBySelectionMove(ctx, []string{c.ID}, testToday)
	require.NoError(t, err)
	require.True(t, retry.FullSuccess())

	resolved, err = f.svc.IsResolved(ctx, testToday)
	require.NoError(t, err)
	assert.True(t, resolved)
}

func TestIsResolved_InvalidDate(t *testing.T) {
	f := setupCarryOver(t)
	_, err := f.svc.IsResolved(context.Background(), "bogus")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}
