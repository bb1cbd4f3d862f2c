// Package tui is the interactive terminal day view: one report at a time,
// date navigation, and the morning carry-over prompt as a modal overlay.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dogeja/blueprint/internal/domain"
	"github.com/dogeja/blueprint/internal/service"
	"github.com/dogeja/blueprint/internal/store"
	"github.com/rs/zerolog"
)

type keyMap struct {
	PrevDay  key.Binding
	NextDay  key.Binding
	Up       key.Binding
	Down     key.Binding
	Complete key.Binding
	Toggle   key.Binding
	Accept   key.Binding
	Dismiss  key.Binding
	Refresh  key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevDay:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		NextDay:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Complete: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "complete task")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Accept:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "accept")),
		Dismiss:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dismiss")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevDay, k.NextDay, k.Up, k.Down, k.Complete, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// carryPrompt is the modal selection state while a carry-over decision is
// outstanding.
type carryPrompt struct {
	candidates []*domain.Task
	selected   map[int]bool
	cursor     int
}

func newCarryPrompt(set service.CandidateSet) *carryPrompt {
	p := &carryPrompt{
		candidates: set.All(),
		selected:   make(map[int]bool),
	}
	// Continuous tasks are preselected; they are the "keep going" kind.
	for i := range set.Continuous {
		p.selected[i] = true
	}
	return p
}

func (p *carryPrompt) selectedIDs() []string {
	var ids []string
	for i, t := range p.candidates {
		if p.selected[i] {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// Messages

type reportLoadedMsg struct {
	report *domain.DailyReport
}

type carryEvaluatedMsg struct {
	set service.CandidateSet
}

type moveDoneMsg struct {
	result *service.MoveResult
}

type dismissedMsg struct{}

type errMsg struct {
	err error
}

// Model is the root bubbletea model.
type Model struct {
	store *store.DailyReportStore
	log   zerolog.Logger

	date   string
	report *domain.DailyReport
	cursor int

	prompt *carryPrompt

	keys   keyMap
	help   help.Model
	status string
	err    error

	width    int
	quitting bool
}

func New(st *store.DailyReportStore, log zerolog.Logger, date string) Model {
	return Model{
		store: st,
		log:   log,
		date:  date,
		keys:  defaultKeyMap(),
		help:  help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadReport(m.date), m.evaluateCarryOver(m.date))
}

// Commands

func (m Model) loadReport(date string) tea.Cmd {
	return func() tea.Msg {
		rep, err := m.store.SelectDate(context.Background(), date)
		if err != nil {
			return errMsg{err}
		}
		return reportLoadedMsg{report: rep}
	}
}

func (m Model) evaluateCarryOver(date string) tea.Cmd {
	return func() tea.Msg {
		set, err := m.store.EvaluateCarryOver(context.Background(), date)
		if err != nil {
			return errMsg{err}
		}
		return carryEvaluatedMsg{set: set}
	}
}

func (m Model) acceptSelection(ids []string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.store.AcceptCarryOverSelection(context.Background(), ids)
		if err != nil {
			return errMsg{err}
		}
		return moveDoneMsg{result: result}
	}
}

func (m Model) dismissCarryOver() tea.Cmd {
	return func() tea.Msg {
		if err := m.store.DismissCarryOver(context.Background()); err != nil {
			return errMsg{err}
		}
		return dismissedMsg{}
	}
}

func (m Model) completeTask(t *domain.Task) tea.Cmd {
	return func() tea.Msg {
		// Mutate a copy: t aliases the store's session report, which must
		// only change after the write succeeds.
		done := *t
		done.ProgressRate = 100
		done.Status = domain.TaskCompleted
		if err := m.store.UpdateTask(context.Background(), &done); err != nil {
			return errMsg{err}
		}
		rep, ok := m.store.ActiveReport()
		if !ok {
			return errMsg{errors.New("no active report")}
		}
		return reportLoadedMsg{report: rep}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case reportLoadedMsg:
		m.report = msg.report
		m.err = nil
		if m.cursor >= len(m.report.Tasks) {
			m.cursor = 0
		}
		return m, nil

	case carryEvaluatedMsg:
		if !msg.set.Empty() {
			m.prompt = newCarryPrompt(msg.set)
		}
		return m, nil

	case moveDoneMsg:
		if msg.result.FullSuccess() {
			m.prompt = nil
			m.status = fmt.Sprintf("carried over %d tasks", len(msg.result.Moved))
		} else {
			m.status = fmt.Sprintf("%d moved, %d failed; retry or dismiss",
				len(msg.result.Moved), len(msg.result.Failed))
			if set, _, ok := m.store.PendingCarryOver(); ok {
				m.prompt = newCarryPrompt(set)
			} else {
				m.prompt = nil
			}
		}
		return m, m.loadReport(m.date)

	case dismissedMsg:
		m.prompt = nil
		m.status = "carry-over dismissed"
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.prompt != nil {
			return m.updatePrompt(msg)
		}
		return m.updateDayView(msg)
	}

	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.prompt
	switch {
	case key.Matches(msg, m.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if p.cursor < len(p.candidates)-1 {
			p.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		p.selected[p.cursor] = !p.selected[p.cursor]
	case key.Matches(msg, m.keys.Accept):
		ids := p.selectedIDs()
		if len(ids) == 0 {
			return m, m.dismissCarryOver()
		}
		return m, m.acceptSelection(ids)
	case key.Matches(msg, m.keys.Dismiss):
		return m, m.dismissCarryOver()
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateDayView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.PrevDay):
		prev, err := domain.PrevDay(m.date)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.date = prev
		m.cursor = 0
		return m, m.loadReport(prev)

	case key.Matches(msg, m.keys.NextDay):
		next, err := domain.NextDay(m.date)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.date = next
		m.cursor = 0
		return m, tea.Batch(m.loadReport(next), m.evaluateCarryOver(next))

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.report != nil && m.cursor < len(m.report.Tasks)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Complete):
		if m.report != nil && m.cursor < len(m.report.Tasks) {
			return m, m.completeTask(m.report.Tasks[m.cursor])
		}

	case key.Matches(msg, m.keys.Refresh):
		return m, tea.Batch(m.loadReport(m.date), m.evaluateCarryOver(m.date))
	}
	return m, nil
}
