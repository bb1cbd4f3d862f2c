package service

import (
	"context"
	"fmt"

	"github.com/dogeja/blueprint/internal/domain"
	"github.com/dogeja/blueprint/internal/repository"
)

type summaryService struct {
	tasks       repository.TaskRepo
	resolutions repository.ResolutionRepo
}

func NewSummaryService(tasks repository.TaskRepo, resolutions repository.ResolutionRepo) SummaryService {
	return &summaryService{tasks: tasks, resolutions: resolutions}
}

func (s *summaryService) WeekSummary(ctx context.Context, end string) (*PeriodSummary, error) {
	endT, err := domain.ParseDate(end)
	if err != nil {
		return nil, err
	}
	from := endT.AddDate(0, 0, -6).Format(domain.DateLayout)
	return s.Range(ctx, from, end)
}

func (s *summaryService) MonthSummary(ctx context.Context, date string) (*PeriodSummary, error) {
	t, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}
	first := t.AddDate(0, 0, -t.Day()+1)
	last := first.AddDate(0, 1, -1)
	return s.Range(ctx, first.Format(domain.DateLayout), last.Format(domain.DateLayout))
}

func (s *summaryService) Range(ctx context.Context, from, to string) (*PeriodSummary, error) {
	fromT, err := domain.ParseDate(from)
	if err != nil {
		return nil, err
	}
	toT, err := domain.ParseDate(to)
	if err != nil {
		return nil, err
	}
	if fromT.After(toT) {
		return nil, fmt.Errorf("summary range: from %s is after to %s", from, to)
	}

	stats, err := s.tasks.StatsByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("loading summary stats: %w", err)
	}

	summary := &PeriodSummary{From: from, To: to}
	var conditionSum int
	for _, day := range stats {
		summary.Days = append(summary.Days, DaySummary{
			Date:          day.Date,
			Condition:     day.Condition,
			TaskTotal:     day.Total,
			TaskCompleted: day.Completed,
			ActualMin:     day.ActualMin,
		})
		conditionSum += day.Condition
		summary.TaskTotal += day.Total
		summary.TaskCompleted += day.Completed
		summary.TotalActualMin += day.ActualMin
	}
	if len(stats) > 0 {
		summary.AvgCondition = float64(conditionSum) / float64(len(stats))
	}
	if summary.TaskTotal > 0 {
		summary.CompletionRate = float64(summary.TaskCompleted) / float64(summary.TaskTotal)
	}

	resolutions, err := s.resolutions.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("loading carry-over resolutions: %w", err)
	}
	for _, res := range resolutions {
		summary.CarriedOver += res.MovedCount
	}

	return summary, nil
}
