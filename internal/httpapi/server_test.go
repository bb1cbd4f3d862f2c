package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dogeja/blueprint/internal/domain"
	"github.com/dogeja/blueprint/internal/repository"
	"github.com/dogeja/blueprint/internal/service"
	"github.com/dogeja/blueprint/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiToday = "2024-07-02"

type apiFixture struct {
	server  *Server
	reports *repository.SQLiteReportRepo
	tasks   *repository.SQLiteTaskRepo
}

func setupAPI(t *testing.T) *apiFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	reports := repository.NewSQLiteReportRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	goals := repository.NewSQLiteGoalRepo(database)
	calls := repository.NewSQLitePhoneCallRepo(database)
	reflections := repository.NewSQLiteReflectionRepo(database)
	resolutions := repository.NewSQLiteResolutionRepo(database)
	uow := testutil.NewTestUoW(database)

	clock := func() time.Time {
		d, _ := time.Parse(domain.DateLayout, apiToday)
		return d.Add(10 * time.Hour)
	}

	svcs := Services{
		Reports:     service.NewReportService(reports, tasks),
		Tasks:       service.NewTaskService(tasks, uow),
		Goals:       service.NewGoalService(goals),
		PhoneCalls:  service.NewPhoneCallService(calls),
		Reflections: service.NewReflectionService(reflections),
		CarryOver: service.NewCarryOverService(reports, tasks, resolutions, uow,
			zerolog.Nop(), service.WithClock(clock)),
		Summary: service.NewSummaryService(tasks, resolutions),
	}

	return &apiFixture{
		server:  NewServer(svcs, zerolog.Nop(), Config{Addr: "127.0.0.1:0"}),
		reports: reports,
		tasks:   tasks,
	}
}

func (f *apiFixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.server.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	f := setupAPI(t)
	rec := f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReportLifecycle(t *testing.T) {
	f := setupAPI(t)

	rec := f.do(t, http.MethodGet, "/api/v1/reports/2024-07-01", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPut, "/api/v1/reports/2024-07-01",
		`{"condition":4,"work_start":"09:00","work_end":"18:00","location":"office"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	saved := decode[reportJSON](t, rec)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, 4, saved.Condition)

	rec = f.do(t, http.MethodGet, "/api/v1/reports/2024-07-01", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[reportJSON](t, rec)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "office", got.Location)

	rec = f.do(t, http.MethodGet, "/api/v1/reports?from=2024-07-01&to=2024-07-07", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]reportJSON](t, rec)
	assert.Len(t, list, 1)

	rec = f.do(t, http.MethodDelete, "/api/v1/reports/2024-07-01", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = f.do(t, http.MethodGet, "/api/v1/reports/2024-07-01", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportValidation(t *testing.T) {
	f := setupAPI(t)

	rec := f.do(t, http.MethodPut, "/api/v1/reports/not-a-date", `{"condition":3}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPut, "/api/v1/reports/2024-07-01", `{"condition":9}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaskEndpoints(t *testing.T) {
	f := setupAPI(t)

	// Creating a task on an untouched date creates the report row too.
	rec := f.do(t, http.MethodPost, "/api/v1/reports/2024-07-01/tasks",
		`{"title":"write minutes","category":"continuous","priority":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	task := decode[taskJSON](t, rec)
	assert.Equal(t, "continuous", task.Category)
	assert.Equal(t, "planned", task.Status)

	rec = f.do(t, http.MethodPatch, "/api/v1/tasks/"+task.ID, `{"progress_rate":60}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[taskJSON](t, rec)
	assert.Equal(t, 60, updated.ProgressRate)

	rec = f.do(t, http.MethodPost, "/api/v1/tasks/"+task.ID+"/complete", "")
	require.Equal(t, http.StatusOK, rec.Code)
	completed := decode[taskJSON](t, rec)
	assert.Equal(t, 100, completed.ProgressRate)
	assert.Equal(t, "completed", completed.Status)

	rec = f.do(t, http.MethodDelete, "/api/v1/tasks/"+task.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = f.do(t, http.MethodPatch, "/api/v1/tasks/"+task.ID, `{"progress_rate":10}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTaskValidation(t *testing.T) {
	f := setupAPI(t)

	rec := f.do(t, http.MethodPost, "/api/v1/reports/2024-07-01/tasks", `{"title":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/reports/2024-07-01/tasks",
		`{"title":"x","category":"weird"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReorderEndpoint(t *testing.T) {
	f := setupAPI(t)

	first := decode[taskJSON](t, f.do(t, http.MethodPost,
		"/api/v1/reports/2024-07-01/tasks", `{"title":"first"}`))
	second := decode[taskJSON](t, f.do(t, http.MethodPost,
		"/api/v1/reports/2024-07-01/tasks", `{"title":"second"}`))

	body, err := json.Marshal(reorderRequest{TaskIDs: []string{second.ID, first.ID}})
	require.NoError(t, err)
	rec := f.do(t, http.MethodPut, "/api/v1/reports/2024-07-01/tasks/order", string(body))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	got := decode[reportJSON](t, f.do(t, http.MethodGet, "/api/v1/reports/2024-07-01", ""))
	require.Len(t, got.Tasks, 2)
	assert.Equal(t, "second", got.Tasks[0].Title)
}

func TestGoalEndpoints(t *testing.T) {
	f := setupAPI(t)

	rec := f.do(t, http.MethodPost, "/api/v1/goals",
		`{"title":"ship v1","period":"monthly"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	parent := decode[goalJSON](t, rec)

	rec = f.do(t, http.MethodPost, "/api/v1/goals",
		`{"title":"week 1","period":"weekly","parent_id":"`+parent.ID+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	tree := decode[[]goalNodeJSON](t, f.do(t, http.MethodGet, "/api/v1/goals/tree", ""))
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "week 1", tree[0].Children[0].Title)

	children := decode[[]goalJSON](t, f.do(t, http.MethodGet,
		"/api/v1/goals/"+parent.ID+"/children", ""))
	assert.Len(t, children, 1)

	rec = f.do(t, http.MethodPost, "/api/v1/goals", `{"title":"x","period":"fortnightly"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCarryOverEndpoints(t *testing.T) {
	f := setupAPI(t)
	ctx := context.Background()

	rep := testutil.NewTestReport("2024-07-01")
	require.NoError(t, f.reports.Create(ctx, rep))
	leftover := testutil.NewTestTask(rep.ID, "unfinished",
		testutil.WithProgress(20), testutil.WithCategory(domain.CategoryContinuous))
	require.NoError(t, f.tasks.Create(ctx, leftover))

	set := decode[candidateSetJSON](t, f.do(t, http.MethodGet,
		"/api/v1/carryover/"+apiToday, ""))
	require.Len(t, set.Continuous, 1)

	rec := f.do(t, http.MethodPost, "/api/v1/carryover/"+apiToday+"/move",
		`{"task_ids":["`+leftover.ID+`"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[moveResultJSON](t, rec)
	require.Len(t, result.Moved, 1)
	assert.Equal(t, 0, result.Moved[0].ProgressRate)

	// Resolved dates answer with an empty candidate set.
	set = decode[candidateSetJSON](t, f.do(t, http.MethodGet,
		"/api/v1/carryover/"+apiToday, ""))
	assert.Empty(t, set.Continuous)
	assert.Empty(t, set.ShortTerm)
}

func TestCarryOverMoveValidation(t *testing.T) {
	f := setupAPI(t)

	rec := f.do(t, http.MethodPost, "/api/v1/carryover/"+apiToday+"/move", `{"task_ids":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/carryover/bad-date/move", `{"task_ids":["x"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCarryOverPartialFailureStatus(t *testing.T) {
	f := setupAPI(t)
	ctx := context.Background()

	rep := testutil.NewTestReport("2024-07-01")
	require.NoError(t, f.reports.Create(ctx, rep))
	leftover := testutil.NewTestTask(rep.ID, "unfinished", testutil.WithProgress(20))
	require.NoError(t, f.tasks.Create(ctx, leftover))

	rec := f.do(t, http.MethodPost, "/api/v1/carryover/"+apiToday+"/move",
		`{"task_ids":["`+leftover.ID+`","ghost"]}`)
	assert.Equal(t, http.StatusMultiStatus, rec.Code)
	result := decode[moveResultJSON](t, rec)
	assert.Len(t, result.Moved, 1)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "ghost", result.Failed[0].TaskID)
}

func TestSummaryEndpoints(t *testing.T) {
	f := setupAPI(t)
	ctx := context.Background()

	rep := testutil.NewTestReport("2024-07-01", testutil.WithCondition(4))
	require.NoError(t, f.reports.Create(ctx, rep))
	require.NoError(t, f.tasks.Create(ctx,
		testutil.NewTestTask(rep.ID, "done", testutil.WithProgress(100))))

	summary := decode[periodSummaryJSON](t, f.do(t, http.MethodGet,
		"/api/v1/summary/week?end=2024-07-07", ""))
	assert.Equal(t, "2024-07-01", summary.From)
	assert.Equal(t, 1, summary.TaskTotal)
	assert.Equal(t, 1, summary.TaskCompleted)

	rec := f.do(t, http.MethodGet, "/api/v1/summary/week", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/summary/range?from=2024-07-07&to=2024-07-01", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
