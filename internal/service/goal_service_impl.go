package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dogeja/blueprint/internal/domain"
	"github.com/dogeja/blueprint/internal/repository"
	"github.com/google/uuid"
)

type goalService struct {
	goals repository.GoalRepo
}

func NewGoalService(goals repository.GoalRepo) GoalService {
	return &goalService{goals: goals}
}

func (s *goalService) Create(ctx context.Context, g *domain.Goal) error {
	if g.Title == "" {
		return fmt.Errorf("goal title is required")
	}
	if !domain.ValidGoalPeriods[string(g.Period)] {
		return fmt.Errorf("invalid goal period %q", g.Period)
	}
	if g.ParentID != nil {
		if _, err := s.goals.GetByID(ctx, *g.ParentID); err != nil {
			return fmt.Errorf("resolving parent goal: %w", err)
		}
	}
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
	if g.Status == "" {
		g.Status = domain.GoalActive
	}
	return s.goals.Create(ctx, g)
}

func (s *goalService) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	return s.goals.GetByID(ctx, id)
}

func (s *goalService) List(ctx context.Context, includeClosed bool) ([]*domain.Goal, error) {
	return s.goals.List(ctx, includeClosed)
}

func (s *goalService) ListChildren(ctx context.Context, parentID string) ([]*domain.Goal, error) {
	return s.goals.ListChildren(ctx, parentID)
}

// Tree assembles the full goal hierarchy from a single list query.
func (s *goalService) Tree(ctx context.Context) ([]*domain.GoalNode, error) {
	goals, err := s.goals.List(ctx, true)
	if err != nil {
		return nil, err
	}

	nodes := make(map[string]*domain.GoalNode, len(goals))
	for _, g := range goals {
		nodes[g.ID] = &domain.GoalNode{Goal: g}
	}

	var roots []*domain.GoalNode
	for _, g := range goals {
		node := nodes[g.ID]
		if g.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*g.ParentID]
		if !ok {
			// Dangling parent reference; surface the goal at the root
			// rather than dropping it.
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots, nil
}

func (s *goalService) Update(ctx context.Context, g *domain.Goal) error {
	if g.ParentID != nil && *g.ParentID == g.ID {
		return fmt.Errorf("goal cannot be its own parent")
	}
	g.UpdatedAt = time.Now().UTC()
	return s.goals.Update(ctx, g)
}

func (s *goalService) Delete(ctx context.Context, id string) error {
	return s.goals.Delete(ctx, id)
}
