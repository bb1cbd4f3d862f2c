package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dogeja/blueprint/internal/domain"
	"github.com/dogeja/blueprint/internal/repository"
	"github.com/google/uuid"
)

type phoneCallService struct {
	calls repository.PhoneCallRepo
}

func NewPhoneCallService(calls repository.PhoneCallRepo) PhoneCallService {
	return &phoneCallService{calls: calls}
}

func (s *phoneCallService) Log(ctx context.Context, c *domain.PhoneCall) error {
	if c.Caller == "" {
		return fmt.Errorf("caller is required")
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if c.ReceivedAt.IsZero() {
		c.ReceivedAt = now
	}
	c.CreatedAt = now
	return s.calls.Create(ctx, c)
}

func (s *phoneCallService) ListByReport(ctx context.Context, reportID string) ([]*domain.PhoneCall, error) {
	return s.calls.ListByReport(ctx, reportID)
}

func (s *phoneCallService) Delete(ctx context.Context, id string) error {
	return s.calls.Delete(ctx, id)
}
