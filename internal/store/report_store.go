// Package store holds the per-session state of the daily report workspace:
// which date is selected, the loaded report, the unsaved-draft guard, and the
// pending carry-over prompt. It is constructed once at startup and injected
// into every frontend, so terminal views and HTTP handlers share one view of
// the session.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/dogeja/blueprint/internal/domain"
	"github.com/dogeja/blueprint/internal/repository"
	"github.com/dogeja/blueprint/internal/service"
	"github.com/rs/zerolog"
)

// ErrUnsavedTask is returned when a date switch would discard an open task
// draft. Callers either save the draft or call ConfirmDiscardDraft and retry.
var ErrUnsavedTask = errors.New("unsaved task draft in progress")

// ErrNoActiveDate is returned by operations that need a selected date before
// any SelectDate call succeeded.
var ErrNoActiveDate = errors.New("no active date selected")

// ErrNoPendingCarryOver is returned when a carry-over decision is submitted
// but no prompt is outstanding.
var ErrNoPendingCarryOver = errors.New("no pending carry-over decision")

// ReportFields carries the editable header fields of a daily report.
type ReportFields struct {
	Condition int
	WorkStart string
	WorkEnd   string
	Location  string
}

// DailyReportStore is the mutable session state. All methods are
// mutex-guarded: bubbletea commands and echo handlers may interleave.
type DailyReportStore struct {
	mu sync.Mutex

	reports service.ReportService
	tasks   service.TaskService
	carry   service.CarryOverService
	log     zerolog.Logger

	activeDate string
	active     *domain.DailyReport
	cache      map[string]*domain.DailyReport

	draftOpen bool

	// evaluated guards EvaluateCarryOver to at most one storage round per
	// date per store instance; the resolution row guards across restarts.
	evaluated   map[string]bool
	pending     service.CandidateSet
	pendingDate string
}

func New(
	reports service.ReportService,
	tasks service.TaskService,
	carry service.CarryOverService,
	log zerolog.Logger,
) *DailyReportStore {
	return &DailyReportStore{
		reports:   reports,
		tasks:     tasks,
		carry:     carry,
		log:       log,
		cache:     make(map[string]*domain.DailyReport),
		evaluated: make(map[string]bool),
	}
}

// SelectDate makes date the active report. The report is loaded from the
// session cache when possible; a date with no saved report yields an unsaved
// in-memory report that persists on the first write. When a task draft is
// open the switch is refused and the previous selection stays active.
//
// The returned report is the live session copy and is treated as read-only
// by callers: all mutation goes through the store's write-through methods so
// the session never runs ahead of a failed repository write.
func (s *DailyReportStore) SelectDate(ctx context.Context, date string) (*domain.DailyReport, error) {
	if _, err := domain.ParseDate(date); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draftOpen {
		return nil, ErrUnsavedTask
	}

	if rep, ok := s.cache[date]; ok {
		s.activeDate = date
		s.active = rep
		return rep, nil
	}

	rep, err := s.reports.GetByDate(ctx, date)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		// Nothing saved yet; hand out a blank report that SaveReport or
		// AddTask will persist. Not cached until it has a row.
		rep = &domain.DailyReport{Date: date, Condition: 3}
	} else {
		s.cache[date] = rep
	}

	s.activeDate = date
	s.active = rep
	return rep, nil
}

// ActiveReport returns the currently selected report, or false when no date
// has been selected yet. Like SelectDate, the report is the live session
// copy; callers must not mutate it directly.
func (s *DailyReportStore) ActiveReport() (*domain.DailyReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.active != nil
}

func (s *DailyReportStore) ActiveDate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeDate
}

// BeginTaskDraft marks a task form as open, arming the unsaved guard.
func (s *DailyReportStore) BeginTaskDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draftOpen = true
}

// ConfirmDiscardDraft drops the open draft, releasing the unsaved guard.
func (s *DailyReportStore) ConfirmDiscardDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draftOpen = false
}

func (s *DailyReportStore) HasOpenDraft() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draftOpen
}

// SaveReport upserts the active report's header fields.
func (s *DailyReportStore) SaveReport(ctx context.Context, fields ReportFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return ErrNoActiveDate
	}

	s.active.Condition = fields.Condition
	s.active.WorkStart = fields.WorkStart
	s.active.WorkEnd = fields.WorkEnd
	s.active.Location = fields.Location

	if err := s.reports.Save(ctx, s.active); err != nil {
		return err
	}
	s.cache[s.activeDate] = s.active
	return nil
}

// AddTask persists a task under the active report, creating the report row
// first if this is the date's first write. The in-memory task list is only
// touched after the write succeeds.
func (s *DailyReportStore) AddTask(ctx context.Context, t *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return ErrNoActiveDate
	}
	if err := s.ensurePersistedLocked(ctx); err != nil {
		return err
	}

	t.ReportID = s.active.ID
	if err := s.tasks.Create(ctx, t); err != nil {
		return err
	}
	s.active.Tasks = append(s.active.Tasks, t)
	s.draftOpen = false
	return nil
}

// UpdateTask is write-through: the repository row first, the session copy
// after.
func (s *DailyReportStore) UpdateTask(ctx context.Context, t *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tasks.Update(ctx, t); err != nil {
		return err
	}
	if s.active == nil {
		return nil
	}
	for i, existing := range s.active.Tasks {
		if existing.ID == t.ID {
			s.active.Tasks[i] = t
			break
		}
	}
	return nil
}

func (s *DailyReportStore) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	if s.active == nil {
		return nil
	}
	for i, existing := range s.active.Tasks {
		if existing.ID == id {
			s.active.Tasks = append(s.active.Tasks[:i], s.active.Tasks[i+1:]...)
			break
		}
	}
	return nil
}

// EvaluateCarryOver runs candidate discovery for date at most once per store
// instance and per durable resolution. An empty candidate set is resolved as
// an immediate dismissal so the date never prompts again. The returned set is
// what the caller should present; it is empty when there is nothing to ask.
func (s *DailyReportStore) EvaluateCarryOver(ctx context.Context, date string) (service.CandidateSet, error) {
	if _, err := domain.ParseDate(date); err != nil {
		return service.CandidateSet{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.evaluated[date] {
		if s.pendingDate == date {
			return s.pending, nil
		}
		return service.CandidateSet{}, nil
	}

	resolved, err := s.carry.IsResolved(ctx, date)
	if err != nil {
		return service.CandidateSet{}, err
	}
	if resolved {
		s.evaluated[date] = true
		return service.CandidateSet{}, nil
	}

	set, err := s.carry.FindIncompleteTasks(ctx, date)
	if err != nil {
		return service.CandidateSet{}, err
	}
	s.evaluated[date] = true

	if set.Empty() {
		if err := s.carry.ResolveByDismissal(ctx, date); err != nil {
			s.log.Warn().Err(err).Str("date", date).
				Msg("auto-dismissing empty carry-over failed")
		}
		return service.CandidateSet{}, nil
	}

	s.pending = set
	s.pendingDate = date
	return set, nil
}

// PendingCarryOver returns the outstanding prompt, if any.
func (s *DailyReportStore) PendingCarryOver() (service.CandidateSet, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending, s.pendingDate, s.pendingDate != ""
}

// AcceptCarryOverSelection moves the selected candidates into the pending
// date's report. On full success the prompt clears; on partial failure the
// moved candidates are pruned so only the failed ones remain for retry. The
// active report is reloaded when it is the move target.
func (s *DailyReportStore) AcceptCarryOverSelection(ctx context.Context, selectedTaskIDs []string) (*service.MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pendingDate == "" {
		return nil, ErrNoPendingCarryOver
	}

	date := s.pendingDate
	result, err := s.carry.ResolveBySelectionMove(ctx, selectedTaskIDs, date)
	if err != nil {
		return nil, err
	}

	if result.FullSuccess() {
		s.clearPendingLocked()
	} else {
		s.prunePendingLocked(selectedTaskIDs, result)
	}

	if err := s.reloadActiveLocked(ctx, date); err != nil {
		s.log.Warn().Err(err).Msg("reloading report after carry-over move failed")
	}
	return result, nil
}

// DismissCarryOver resolves the outstanding prompt without moving anything.
func (s *DailyReportStore) DismissCarryOver(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pendingDate == "" {
		return ErrNoPendingCarryOver
	}
	if err := s.carry.ResolveByDismissal(ctx, s.pendingDate); err != nil {
		return err
	}
	s.clearPendingLocked()
	return nil
}

func (s *DailyReportStore) clearPendingLocked() {
	s.pending = service.CandidateSet{}
	s.pendingDate = ""
}

// prunePendingLocked keeps only the candidates that were selected but failed
// to move, plus the ones never selected.
func (s *DailyReportStore) prunePendingLocked(selected []string, result *service.MoveResult) {
	failed := make(map[string]bool, len(result.Failed))
	for _, f := range result.Failed {
		failed[f.TaskID] = true
	}
	moved := make(map[string]bool, len(selected))
	for _, id := range selected {
		if !failed[id] {
			moved[id] = true
		}
	}

	keep := func(in []*domain.Task) []*domain.Task {
		var out []*domain.Task
		for _, t := range in {
			if !moved[t.ID] {
				out = append(out, t)
			}
		}
		return out
	}
	s.pending.Continuous = keep(s.pending.Continuous)
	s.pending.ShortTerm = keep(s.pending.ShortTerm)
}

// ensurePersistedLocked creates the active report row on first write.
func (s *DailyReportStore) ensurePersistedLocked(ctx context.Context) error {
	if s.active.ID != "" {
		return nil
	}
	if err := s.reports.Save(ctx, s.active); err != nil {
		return err
	}
	s.cache[s.activeDate] = s.active
	return nil
}

// reloadActiveLocked refreshes the session copy of date from storage when it
// is (or has become) the active report.
func (s *DailyReportStore) reloadActiveLocked(ctx context.Context, date string) error {
	rep, err := s.reports.GetByDate(ctx, date)
	if err != nil {
		return err
	}
	s.cache[date] = rep
	if s.activeDate == date {
		s.active = rep
	}
	return nil
}
