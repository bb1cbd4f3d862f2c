package httpapi

import (
	"time"

	"github.com/dogeja/blueprint/internal/domain"
	"github.com/dogeja/blueprint/internal/service"
)

// Wire types for the JSON API. Domain structs stay transport-agnostic; these
// mirror them with stable field names.

type reportJSON struct {
	ID        string     `json:"id"`
	Date      string     `json:"date"`
	Condition int        `json:"condition"`
	WorkStart string     `json:"work_start,omitempty"`
	WorkEnd   string     `json:"work_end,omitempty"`
	Location  string     `json:"location,omitempty"`
	Tasks     []taskJSON `json:"tasks,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type taskJSON struct {
	ID           string  `json:"id"`
	ReportID     string  `json:"report_id"`
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	Category     string  `json:"category"`
	Priority     int     `json:"priority"`
	ProgressRate int     `json:"progress_rate"`
	Status       string  `json:"status"`
	EstimatedMin int     `json:"estimated_min,omitempty"`
	ActualMin    int     `json:"actual_min,omitempty"`
	GoalID       *string `json:"goal_id,omitempty"`
	OrderIndex   int     `json:"order_index"`
}

type goalJSON struct {
	ID           string     `json:"id"`
	ParentID     *string    `json:"parent_id,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Period       string     `json:"period"`
	TargetDate   *time.Time `json:"target_date,omitempty"`
	Status       string     `json:"status"`
	ProgressRate int        `json:"progress_rate"`
}

type goalNodeJSON struct {
	goalJSON
	Children []goalNodeJSON `json:"children,omitempty"`
}

type phoneCallJSON struct {
	ID         string    `json:"id"`
	ReportID   string    `json:"report_id"`
	Caller     string    `json:"caller"`
	Subject    string    `json:"subject,omitempty"`
	Memo       string    `json:"memo,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}

type reflectionJSON struct {
	ID       string `json:"id"`
	ReportID string `json:"report_id"`
	Content  string `json:"content"`
	Mood     int    `json:"mood"`
}

type candidateSetJSON struct {
	Continuous []taskJSON `json:"continuous"`
	ShortTerm  []taskJSON `json:"short_term"`
}

type moveResultJSON struct {
	Moved  []taskJSON        `json:"moved"`
	Failed []moveFailureJSON `json:"failed,omitempty"`
}

type moveFailureJSON struct {
	TaskID string `json:"task_id"`
	Error  string `json:"error"`
}

type daySummaryJSON struct {
	Date          string `json:"date"`
	Condition     int    `json:"condition"`
	TaskTotal     int    `json:"task_total"`
	TaskCompleted int    `json:"task_completed"`
	ActualMin     int    `json:"actual_min"`
}

type periodSummaryJSON struct {
	From           string           `json:"from"`
	To             string           `json:"to"`
	Days           []daySummaryJSON `json:"days"`
	AvgCondition   float64          `json:"avg_condition"`
	TaskTotal      int              `json:"task_total"`
	TaskCompleted  int              `json:"task_completed"`
	CompletionRate float64          `json:"completion_rate"`
	TotalActualMin int              `json:"total_actual_min"`
	CarriedOver    int              `json:"carried_over"`
}

func toReportJSON(r *domain.DailyReport) reportJSON {
	out := reportJSON{
		ID:        r.ID,
		Date:      r.Date,
		Condition: r.Condition,
		WorkStart: r.WorkStart,
		WorkEnd:   r.WorkEnd,
		Location:  r.Location,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	for _, t := range r.Tasks {
		out.Tasks = append(out.Tasks, toTaskJSON(t))
	}
	return out
}

func toTaskJSON(t *domain.Task) taskJSON {
	return taskJSON{
		ID:           t.ID,
		ReportID:     t.ReportID,
		Title:        t.Title,
		Description:  t.Description,
		Category:     string(t.Category),
		Priority:     t.Priority,
		ProgressRate: t.ProgressRate,
		Status:       string(t.Status),
		EstimatedMin: t.EstimatedMin,
		ActualMin:    t.ActualMin,
		GoalID:       t.GoalID,
		OrderIndex:   t.OrderIndex,
	}
}

func toTaskListJSON(tasks []*domain.Task) []taskJSON {
	out := make([]taskJSON, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskJSON(t))
	}
	return out
}

func toGoalJSON(g *domain.Goal) goalJSON {
	return goalJSON{
		ID:           g.ID,
		ParentID:     g.ParentID,
		Title:        g.Title,
		Description:  g.Description,
		Period:       string(g.Period),
		TargetDate:   g.TargetDate,
		Status:       string(g.Status),
		ProgressRate: g.ProgressRate,
	}
}

func toGoalTreeJSON(nodes []*domain.GoalNode) []goalNodeJSON {
	out := make([]goalNodeJSON, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, goalNodeJSON{
			goalJSON: toGoalJSON(n.Goal),
			Children: toGoalTreeJSON(n.Children),
		})
	}
	return out
}

func toPhoneCallJSON(c *domain.PhoneCall) phoneCallJSON {
	return phoneCallJSON{
		ID:         c.ID,
		ReportID:   c.ReportID,
		Caller:     c.Caller,
		Subject:    c.Subject,
		Memo:       c.Memo,
		ReceivedAt: c.ReceivedAt,
	}
}

func toReflectionJSON(r *domain.Reflection) reflectionJSON {
	return reflectionJSON{
		ID:       r.ID,
		ReportID: r.ReportID,
		Content:  r.Content,
		Mood:     r.Mood,
	}
}

func toCandidateSetJSON(set service.CandidateSet) candidateSetJSON {
	return candidateSetJSON{
		Continuous: toTaskListJSON(set.Continuous),
		ShortTerm:  toTaskListJSON(set.ShortTerm),
	}
}

func toMoveResultJSON(r *service.MoveResult) moveResultJSON {
	out := moveResultJSON{Moved: toTaskListJSON(r.Moved)}
	for _, f := range r.Failed {
		out.Failed = append(out.Failed, moveFailureJSON{TaskID: f.TaskID, Error: f.Err.Error()})
	}
	return out
}

func toPeriodSummaryJSON(s *service.PeriodSummary) periodSummaryJSON {
	out := periodSummaryJSON{
		From:           s.From,
		To:             s.To,
		Days:           make([]daySummaryJSON, 0, len(s.Days)),
		AvgCondition:   s.AvgCondition,
		TaskTotal:      s.TaskTotal,
		TaskCompleted:  s.TaskCompleted,
		CompletionRate: s.CompletionRate,
		TotalActualMin: s.TotalActualMin,
		CarriedOver:    s.CarriedOver,
	}
	for _, d := range s.Days {
		out.Days = append(out.Days, daySummaryJSON{
			Date:          d.Date,
			Condition:     d.Condition,
			TaskTotal:     d.TaskTotal,
			TaskCompleted: d.TaskCompleted,
			ActualMin:     d.ActualMin,
		})
	}
	return out
}
