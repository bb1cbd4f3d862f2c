package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dogeja/blueprint/internal/db"
	"github.com/dogeja/blueprint/internal/domain"
	"github.com/dogeja/blueprint/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNoSelection is returned when a move is requested with no task ids.
var ErrNoSelection = errors.New("no tasks selected for carry-over")

// ErrAlreadyResolved is returned when a move is requested for a date whose
// carry-over decision has already been recorded.
var ErrAlreadyResolved = errors.New("carry-over already resolved for date")

type carryOverService struct {
	reports     repository.ReportRepo
	tasks       repository.TaskRepo
	resolutions repository.ResolutionRepo
	uow         db.UnitOfWork
	log         zerolog.Logger
	now         func() time.Time
}

// CarryOverOption configures the carry-over service.
type CarryOverOption func(*carryOverService)

// WithClock overrides the wall clock, used by tests to pin "today".
func WithClock(now func() time.Time) CarryOverOption {
	return func(s *carryOverService) {
		s.now = now
	}
}

// NewCarryOverService wires the reconciler. Candidate discovery is
// best-effort: repository failures degrade to an empty set with a logged
// warning. Moves are deliberate actions and report per-task outcomes.
func NewCarryOverService(
	reports repository.ReportRepo,
	tasks repository.TaskRepo,
	resolutions repository.ResolutionRepo,
	uow db.UnitOfWork,
	log zerolog.Logger,
	opts ...CarryOverOption,
) CarryOverService {
	s := &carryOverService{
		reports:     reports,
		tasks:       tasks,
		resolutions: resolutions,
		uow:         uow,
		log:         log,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *carryOverService) FindIncompleteTasks(ctx context.Context, targetDate string) (CandidateSet, error) {
	if _, err := domain.ParseDate(targetDate); err != nil {
		return CandidateSet{}, err
	}

	// Only "today" is ever reconciled; past or future dates return empty
	// sets without touching storage.
	if targetDate != domain.DateOf(s.now()) {
		return CandidateSet{}, nil
	}

	prevDate, err := domain.PrevDay(targetDate)
	if err != nil {
		return CandidateSet{}, err
	}

	prior, err := s.reports.GetByDate(ctx, prevDate)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return CandidateSet{}, nil
		}
		s.log.Warn().Err(err).Str("date", prevDate).
			Msg("carry-over discovery failed, treating as no candidates")
		return CandidateSet{}, nil
	}

	incomplete, err := s.tasks.ListIncompleteByReport(ctx, prior.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("report_id", prior.ID).
			Msg("carry-over discovery failed, treating as no candidates")
		return CandidateSet{}, nil
	}

	var set CandidateSet
	for _, t := range incomplete {
		if t.Category == domain.CategoryContinuous {
			set.Continuous = append(set.Continuous, t)
		} else {
			set.ShortTerm = append(set.ShortTerm, t)
		}
	}
	return set, nil
}

func (s *carryOverService) HasPendingDecision(ctx context.Context, targetDate string) (bool, error) {
	resolved, err := s.IsResolved(ctx, targetDate)
	if err != nil {
		return false, err
	}
	if resolved {
		return false, nil
	}
	set, err := s.FindIncompleteTasks(ctx, targetDate)
	if err != nil {
		return false, err
	}
	return !set.Empty(), nil
}

func (s *carryOverService) IsResolved(ctx context.Context, targetDate string) (bool, error) {
	if _, err := domain.ParseDate(targetDate); err != nil {
		return false, err
	}
	_, err := s.resolutions.Get(ctx, targetDate)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("checking carry-over resolution: %w", err)
	}
	return true, nil
}

func (s *carryOverService) ResolveByDismissal(ctx context.Context, targetDate string) error {
	resolved, err := s.IsResolved(ctx, targetDate)
	if err != nil {
		return err
	}
	// The resolution row is terminal; a dismissal never overwrites an
	// earlier move outcome.
	if resolved {
		return nil
	}
	return s.resolutions.Upsert(ctx, &domain.CarryOverResolution{
		Date:       targetDate,
		Outcome:    domain.OutcomeDismissed,
		ResolvedAt: s.now().UTC(),
	})
}

// ResolveBySelectionMove clones each selected task into the target date's
// report (clone-with-reset policy): the copy starts at progress 0 and status
// planned, and the source row is marked cancelled so it never reappears as a
// candidate. Each task moves in its own transaction, in selection order;
// failures are collected per task. The resolution row is written only when
// every selected task moved, so a partial failure can be retried.
func (s *carryOverService) ResolveBySelectionMove(ctx context.Context, selectedTaskIDs []string, targetDate string) (*MoveResult, error) {
	if _, err := domain.ParseDate(targetDate); err != nil {
		return nil, err
	}
	if len(selectedTaskIDs) == 0 {
		return nil, ErrNoSelection
	}

	// The resolution row is terminal; a second move must not overwrite the
	// recorded outcome.
	resolved, err := s.IsResolved(ctx, targetDate)
	if err != nil {
		return nil, err
	}
	if resolved {
		return nil, ErrAlreadyResolved
	}

	target, err := s.ensureReport(ctx, targetDate)
	if err != nil {
		return nil, fmt.Errorf("preparing target report: %w", err)
	}

	result := &MoveResult{}
	for _, id := range selectedTaskIDs {
		moved, err := s.moveOne(ctx, id, target.ID)
		if err != nil {
			s.log.Warn().Err(err).Str("task_id", id).Str("date", targetDate).
				Msg("carry-over move failed")
			result.Failed = append(result.Failed, MoveFailure{TaskID: id, Err: err})
			continue
		}
		result.Moved = append(result.Moved, moved)
	}

	if result.FullSuccess() {
		if err := s.resolutions.Upsert(ctx, &domain.CarryOverResolution{
			Date:       targetDate,
			Outcome:    domain.OutcomeMoved,
			MovedCount: len(result.Moved),
			ResolvedAt: s.now().UTC(),
		}); err != nil {
			return result, fmt.Errorf("recording carry-over resolution: %w", err)
		}
	}
	return result, nil
}

// moveOne clones a single task into the target report and cancels the
// source, atomically.
func (s *carryOverService) moveOne(ctx context.Context, taskID, targetReportID string) (*domain.Task, error) {
	var clone *domain.Task
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)

		src, err := txTasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if src.IsComplete() {
			return fmt.Errorf("task %s is already complete", taskID)
		}
		if src.ReportID == targetReportID {
			return fmt.Errorf("task %s already belongs to the target report", taskID)
		}

		now := s.now().UTC()
		clone = src.CloneForCarryOver(uuid.New().String(), targetReportID, now)
		if err := txTasks.Create(ctx, clone); err != nil {
			return err
		}

		src.Status = domain.TaskCancelled
		src.UpdatedAt = now
		return txTasks.Update(ctx, src)
	})
	if err != nil {
		return nil, err
	}
	return clone, nil
}

// ensureReport returns the report for date, creating an empty one if needed.
func (s *carryOverService) ensureReport(ctx context.Context, date string) (*domain.DailyReport, error) {
	rep, err := s.reports.GetByDate(ctx, date)
	if err == nil {
		return rep, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	now := s.now().UTC()
	rep = &domain.DailyReport{
		ID:        uuid.New().String(),
		Date:      date,
		Condition: 3,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.reports.Create(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}
