package service

import (
	"context"
	"errors"
	"time"

	"github.com/dogeja/blueprint/internal/domain"
	"github.com/dogeja/blueprint/internal/repository"
	"github.com/google/uuid"
)

type reportService struct {
	reports repository.ReportRepo
	tasks   repository.TaskRepo
}

func NewReportService(reports repository.ReportRepo, tasks repository.TaskRepo) ReportService {
	return &reportService{reports: reports, tasks: tasks}
}

func (s *reportService) GetByDate(ctx context.Context, date string) (*domain.DailyReport, error) {
	if _, err := domain.ParseDate(date); err != nil {
		return nil, err
	}
	rep, err := s.reports.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	rep.Tasks, err = s.tasks.ListByReport(ctx, rep.ID)
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func (s *reportService) Save(ctx context.Context, r *domain.DailyReport) error {
	if _, err := domain.ParseDate(r.Date); err != nil {
		return err
	}
	now := time.Now().UTC()

	existing, err := s.reports.GetByDate(ctx, r.Date)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
		if r.Condition == 0 {
			r.Condition = 3
		}
		r.CreatedAt = now
		r.UpdatedAt = now
		return s.reports.Create(ctx, r)
	}

	// A row already exists for this date; update it in place.
	r.ID = existing.ID
	r.CreatedAt = existing.CreatedAt
	r.UpdatedAt = now
	return s.reports.Update(ctx, r)
}

func (s *reportService) ListRange(ctx context.Context, from, to string) ([]*domain.DailyReport, error) {
	if _, err := domain.ParseDate(from); err != nil {
		return nil, err
	}
	if _, err := domain.ParseDate(to); err != nil {
		return nil, err
	}
	return s.reports.ListByDateRange(ctx, from, to)
}

func (s *reportService) Delete(ctx context.Context, date string) error {
	rep, err := s.reports.GetByDate(ctx, date)
	if err != nil {
		return err
	}
	return s.reports.Delete(ctx, rep.ID)
}
