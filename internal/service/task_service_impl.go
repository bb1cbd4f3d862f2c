package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dogeja/blueprint/internal/db"
	"github.com/dogeja/blueprint/internal/domain"
	"github.com/dogeja/blueprint/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	tasks repository.TaskRepo
	uow   db.UnitOfWork
}

func NewTaskService(tasks repository.TaskRepo, uow db.UnitOfWork) TaskService {
	return &taskService{tasks: tasks, uow: uow}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if t.Title == "" {
		return fmt.Errorf("task title is required")
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = domain.TaskPlanned
	}
	if t.Category == "" {
		t.Category = domain.CategoryShortTerm
	}
	if t.Priority == 0 {
		t.Priority = 3
	}
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListByReport(ctx context.Context, reportID string) ([]*domain.Task, error) {
	return s.tasks.ListByReport(ctx, reportID)
}

func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	t.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, t)
}

func (s *taskService) Complete(ctx context.Context, id string) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	t.ProgressRate = 100
	t.Status = domain.TaskCompleted
	t.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, t)
}

// Reorder rewrites the order indexes of a report's tasks in one transaction.
// Every task in orderedIDs must belong to the report; otherwise nothing moves.
func (s *taskService) Reorder(ctx context.Context, reportID string, orderedIDs []string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		for i, id := range orderedIDs {
			t, err := txTasks.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if t.ReportID != reportID {
				return fmt.Errorf("task %s does not belong to report %s", id, reportID)
			}
			if err := txTasks.SetOrderIndex(ctx, id, i); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}
