package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dogeja/blueprint/internal/domain"
	"github.com/dogeja/blueprint/internal/repository"
	"github.com/labstack/echo/v4"
)

// Reports

type saveReportRequest struct {
	Condition int    `json:"condition"`
	WorkStart string `json:"work_start"`
	WorkEnd   string `json:"work_end"`
	Location  string `json:"location"`
}

func (s *Server) handleListReports(c echo.Context) error {
	from, to := c.QueryParam("from"), c.QueryParam("to")
	if from == "" || to == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "from and to query params are required")
	}
	reports, err := s.svcs.Reports.ListRange(c.Request().Context(), from, to)
	if err != nil {
		return apiError(err)
	}
	out := make([]reportJSON, 0, len(reports))
	for _, r := range reports {
		out = append(out, toReportJSON(r))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetReport(c echo.Context) error {
	rep, err := s.svcs.Reports.GetByDate(c.Request().Context(), c.Param("date"))
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, toReportJSON(rep))
}

func (s *Server) handleSaveReport(c echo.Context) error {
	var req saveReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Condition < 0 || req.Condition > 5 {
		return echo.NewHTTPError(http.StatusBadRequest, "condition must be between 1 and 5")
	}

	rep := &domain.DailyReport{
		Date:      c.Param("date"),
		Condition: req.Condition,
		WorkStart: req.WorkStart,
		WorkEnd:   req.WorkEnd,
		Location:  req.Location,
	}
	if err := s.svcs.Reports.Save(c.Request().Context(), rep); err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, toReportJSON(rep))
}

func (s *Server) handleDeleteReport(c echo.Context) error {
	if err := s.svcs.Reports.Delete(c.Request().Context(), c.Param("date")); err != nil {
		return apiError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Tasks

type createTaskRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Priority     int     `json:"priority"`
	EstimatedMin int     `json:"estimated_min"`
	GoalID       *string `json:"goal_id"`
}

type updateTaskRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	Priority     *int    `json:"priority"`
	ProgressRate *int    `json:"progress_rate"`
	Status       *string `json:"status"`
	EstimatedMin *int    `json:"estimated_min"`
	ActualMin    *int    `json:"actual_min"`
	GoalID       *string `json:"goal_id"`
}

type reorderRequest struct {
	TaskIDs []string `json:"task_ids"`
}

// reportForDate resolves the report row for a date, creating it when create
// is set so task writes can target a fresh day.
func (s *Server) reportForDate(c echo.Context, create bool) (*domain.DailyReport, error) {
	ctx := c.Request().Context()
	date := c.Param("date")

	rep, err := s.svcs.Reports.GetByDate(ctx, date)
	if err == nil {
		return rep, nil
	}
	if !create || !errors.Is(err, repository.ErrNotFound) {
		return nil, apiError(err)
	}

	rep = &domain.DailyReport{Date: date}
	if err := s.svcs.Reports.Save(ctx, rep); err != nil {
		return nil, apiError(err)
	}
	return rep, nil
}

func (s *Server) handleCreateTask(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if req.Category != "" && !domain.ValidTaskCategories[req.Category] {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown task category")
	}

	rep, err := s.reportForDate(c, true)
	if err != nil {
		return err
	}

	task := &domain.Task{
		ReportID:     rep.ID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     domain.TaskCategory(req.Category),
		Priority:     req.Priority,
		EstimatedMin: req.EstimatedMin,
		GoalID:       req.GoalID,
	}
	if err := s.svcs.Tasks.Create(c.Request().Context(), task); err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusCreated, toTaskJSON(task))
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	task, err := s.svcs.Tasks.GetByID(ctx, c.Param("id"))
	if err != nil {
		return apiError(err)
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Category != nil {
		if !domain.ValidTaskCategories[*req.Category] {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown task category")
		}
		task.Category = domain.TaskCategory(*req.Category)
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.ProgressRate != nil {
		if *req.ProgressRate < 0 || *req.ProgressRate > 100 {
			return echo.NewHTTPError(http.StatusBadRequest, "progress_rate must be 0-100")
		}
		task.ProgressRate = *req.ProgressRate
	}
	if req.Status != nil {
		task.Status = domain.TaskStatus(*req.Status)
	}
	if req.EstimatedMin != nil {
		task.EstimatedMin = *req.EstimatedMin
	}
	if req.ActualMin != nil {
		task.ActualMin = *req.ActualMin
	}
	if req.GoalID != nil {
		task.GoalID = req.GoalID
	}

	if err := s.svcs.Tasks.Update(ctx, task); err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, toTaskJSON(task))
}

func (s *Server) handleCompleteTask(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	if err := s.svcs.Tasks.Complete(ctx, id); err != nil {
		return apiError(err)
	}
	task, err := s.svcs.Tasks.GetByID(ctx, id)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, toTaskJSON(task))
}

func (s *Server) handleReorderTasks(c echo.Context) error {
	var req reorderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.TaskIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "task_ids is required")
	}

	rep, err := s.reportForDate(c, false)
	if err != nil {
		return err
	}
	if err := s.svcs.Tasks.Reorder(c.Request().Context(), rep.ID, req.TaskIDs); err != nil {
		return apiError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	if err := s.svcs.Tasks.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return apiError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Goals

type goalRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Period       *string    `json:"period"`
	ParentID     *string    `json:"parent_id"`
	TargetDate   *time.Time `json:"target_date"`
	Status       *string    `json:"status"`
	ProgressRate *int       `json:"progress_rate"`
}

func (s *Server) handleListGoals(c echo.Context) error {
	includeClosed := c.QueryParam("include_closed") == "true"
	goals, err := s.svcs.Goals.List(c.Request().Context(), includeClosed)
	if err != nil {
		return apiError(err)
	}
	out := make([]goalJSON, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalJSON(g))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleGoalTree(c echo.Context) error {
	tree, err := s.svcs.Goals.Tree(c.Request().Context())
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, toGoalTreeJSON(tree))
}

func (s *Server) handleCreateGoal(c echo.Context) error {
	var req goalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Title == nil || *req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if req.Period == nil || !domain.ValidGoalPeriods[*req.Period] {
		return echo.NewHTTPError(http.StatusBadRequest, "a valid period is required")
	}

	goal := &domain.Goal{
		Title:      *req.Title,
		Period:     domain.GoalPeriod(*req.Period),
		ParentID:   req.ParentID,
		TargetDate: req.TargetDate,
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if err := s.svcs.Goals.Create(c.Request().Context(), goal); err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusCreated, toGoalJSON(goal))
}

func (s *Server) handleGetGoal(c echo.Context) error {
	goal, err := s.svcs.Goals.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, toGoalJSON(goal))
}

func (s *Server) handleGoalChildren(c echo.Context) error {
	children, err := s.svcs.Goals.ListChildren(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apiError(err)
	}
	out := make([]goalJSON, 0, len(children))
	for _, g := range children {
		out = append(out, toGoalJSON(g))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleUpdateGoal(c echo.Context) error {
	var req goalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	goal, err := s.svcs.Goals.GetByID(ctx, c.Param("id"))
	if err != nil {
		return apiError(err)
	}

	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.Period != nil {
		if !domain.ValidGoalPeriods[*req.Period] {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown goal period")
		}
		goal.Period = domain.GoalPeriod(*req.Period)
	}
	if req.ParentID != nil {
		goal.ParentID = req.ParentID
	}
	if req.TargetDate != nil {
		goal.TargetDate = req.TargetDate
	}
	if req.Status != nil {
		goal.Status = domain.GoalStatus(*req.Status)
	}
	if req.ProgressRate != nil {
		goal.ProgressRate = *req.ProgressRate
	}

	if err := s.svcs.Goals.Update(ctx, goal); err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, toGoalJSON(goal))
}

func (s *Server) handleDeleteGoal(c echo.Context) error {
	if err := s.svcs.Goals.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return apiError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Phone calls

type phoneCallRequest struct {
	Caller     string    `json:"caller"`
	Subject    string    `json:"subject"`
	Memo       string    `json:"memo"`
	ReceivedAt time.Time `json:"received_at"`
}

func (s *Server) handleListPhoneCalls(c echo.Context) error {
	rep, err := s.reportForDate(c, false)
	if err != nil {
		return err
	}
	calls, err := s.svcs.PhoneCalls.ListByReport(c.Request().Context(), rep.ID)
	if err != nil {
		return apiError(err)
	}
	out := make([]phoneCallJSON, 0, len(calls))
	for _, call := range calls {
		out = append(out, toPhoneCallJSON(call))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleLogPhoneCall(c echo.Context) error {
	var req phoneCallRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Caller == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "caller is required")
	}

	rep, err := s.reportForDate(c, true)
	if err != nil {
		return err
	}

	call := &domain.PhoneCall{
		ReportID:   rep.ID,
		Caller:     req.Caller,
		Subject:    req.Subject,
		Memo:       req.Memo,
		ReceivedAt: req.ReceivedAt,
	}
	if err := s.svcs.PhoneCalls.Log(c.Request().Context(), call); err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusCreated, toPhoneCallJSON(call))
}

func (s *Server) handleDeletePhoneCall(c echo.Context) error {
	if err := s.svcs.PhoneCalls.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return apiError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Reflections

type reflectionRequest struct {
	Content string `json:"content"`
	Mood    int    `json:"mood"`
}

func (s *Server) handleListReflections(c echo.Context) error {
	rep, err := s.reportForDate(c, false)
	if err != nil {
		return err
	}
	reflections, err := s.svcs.Reflections.ListByReport(c.Request().Context(), rep.ID)
	if err != nil {
		return apiError(err)
	}
	out := make([]reflectionJSON, 0, len(reflections))
	for _, r := range reflections {
		out = append(out, toReflectionJSON(r))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleAddReflection(c echo.Context) error {
	var req reflectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "content is required")
	}

	rep, err := s.reportForDate(c, true)
	if err != nil {
		return err
	}

	reflection := &domain.Reflection{
		ReportID: rep.ID,
		Content:  req.Content,
		Mood:     req.Mood,
	}
	if err := s.svcs.Reflections.Add(c.Request().Context(), reflection); err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusCreated, toReflectionJSON(reflection))
}

func (s *Server) handleUpdateReflection(c echo.Context) error {
	var req reflectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "content is required")
	}

	reflection := &domain.Reflection{
		ID:      c.Param("id"),
		Content: req.Content,
		Mood:    req.Mood,
	}
	if err := s.svcs.Reflections.Update(c.Request().Context(), reflection); err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, toReflectionJSON(reflection))
}

func (s *Server) handleDeleteReflection(c echo.Context) error {
	if err := s.svcs.Reflections.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return apiError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Carry-over

type carryOverMoveRequest struct {
	TaskIDs []string `json:"task_ids"`
}

func (s *Server) handleCarryOverCandidates(c echo.Context) error {
	ctx := c.Request().Context()
	date := c.Param("date")

	resolved, err := s.svcs.CarryOver.IsResolved(ctx, date)
	if err != nil {
		return apiError(err)
	}
	if resolved {
		return c.JSON(http.StatusOK, candidateSetJSON{
			Continuous: []taskJSON{},
			ShortTerm:  []taskJSON{},
		})
	}

	set, err := s.svcs.CarryOver.FindIncompleteTasks(ctx, date)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, toCandidateSetJSON(set))
}

func (s *Server) handleCarryOverMove(c echo.Context) error {
	var req carryOverMoveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := s.svcs.CarryOver.ResolveBySelectionMove(c.Request().Context(), req.TaskIDs, c.Param("date"))
	if err != nil {
		return apiError(err)
	}
	status := http.StatusOK
	if !result.FullSuccess() {
		status = http.StatusMultiStatus
	}
	return c.JSON(status, toMoveResultJSON(result))
}

func (s *Server) handleCarryOverDismiss(c echo.Context) error {
	if err := s.svcs.CarryOver.ResolveByDismissal(c.Request().Context(), c.Param("date")); err != nil {
		return apiError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Summaries

func (s *Server) handleWeekSummary(c echo.Context) error {
	end := c.QueryParam("end")
	if end == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "end query param is required")
	}
	summary, err := s.svcs.Summary.WeekSummary(c.Request().Context(), end)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, toPeriodSummaryJSON(summary))
}

func (s *Server) handleMonthSummary(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date query param is required")
	}
	summary, err := s.svcs.Summary.MonthSummary(c.Request().Context(), date)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, toPeriodSummaryJSON(summary))
}

func (s *Server) handleRangeSummary(c echo.Context) error {
	from, to := c.QueryParam("from"), c.QueryParam("to")
	if from == "" || to == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "from and to query params are required")
	}
	if from > to {
		return echo.NewHTTPError(http.StatusBadRequest, "from must not be after to")
	}
	summary, err := s.svcs.Summary.Range(c.Request().Context(), from, to)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, toPeriodSummaryJSON(summary))
}
