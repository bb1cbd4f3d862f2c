package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dogeja/blueprint/internal/domain"
	"github.com/dogeja/blueprint/internal/repository"
	"github.com/google/uuid"
)

type reflectionService struct {
	reflections repository.ReflectionRepo
}

func NewReflectionService(reflections repository.ReflectionRepo) ReflectionService {
	return &reflectionService{reflections: reflections}
}

func (s *reflectionService) Add(ctx context.Context, r *domain.Reflection) error {
	if r.Content == "" {
		return fmt.Errorf("reflection content is required")
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	if r.Mood == 0 {
		r.Mood = 3
	}
	return s.reflections.Create(ctx, r)
}

func (s *reflectionService) ListByReport(ctx context.Context, reportID string) ([]*domain.Reflection, error) {
	return s.reflections.ListByReport(ctx, reportID)
}

func (s *reflectionService) Update(ctx context.Context, r *domain.Reflection) error {
	r.UpdatedAt = time.Now().UTC()
	return s.reflections.Update(ctx, r)
}

func (s *reflectionService) Delete(ctx context.Context, id string) error {
	return s.reflections.Delete(ctx, id)
}
