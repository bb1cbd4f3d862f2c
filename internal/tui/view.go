package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dogeja/blueprint/internal/domain"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#fe8019")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8ec07c"))
	openStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#fabd2f"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#fb4934"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#83a598")).Bold(true)
	promptBox     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	selectedGlyph = doneStyle.Render("[x]")
	deselectGlyph = dimStyle.Render("[ ]")
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(m.date))
	if m.report != nil {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  condition %d/5", m.report.Condition)))
		if m.report.Location != "" {
			b.WriteString(dimStyle.Render("  " + m.report.Location))
		}
	}
	b.WriteString("\n\n")

	if m.prompt != nil {
		b.WriteString(m.promptView())
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.taskListView())

	if m.status != "" {
		b.WriteString("\n" + dimStyle.Render(m.status) + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + errStyle.Render("error: "+m.err.Error()) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m Model) taskListView() string {
	if m.report == nil || len(m.report.Tasks) == 0 {
		return dimStyle.Render("no tasks") + "\n"
	}

	var b strings.Builder
	for i, t := range m.report.Tasks {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		b.WriteString(marker + taskLine(t) + "\n")
	}
	return b.String()
}

func taskLine(t *domain.Task) string {
	progress := fmt.Sprintf("%3d%%", t.ProgressRate)
	switch {
	case t.Status == domain.TaskCancelled:
		return dimStyle.Render(t.Title + "  (carried over)")
	case t.IsComplete():
		return doneStyle.Render(progress) + " " + t.Title
	default:
		return openStyle.Render(progress) + " " + t.Title +
			dimStyle.Render("  "+string(t.Category))
	}
}

func (m Model) promptView() string {
	p := m.prompt
	var b strings.Builder
	b.WriteString(titleStyle.Render("Carry over from yesterday?") + "\n\n")

	for i, t := range p.candidates {
		glyph := deselectGlyph
		if p.selected[i] {
			glyph = selectedGlyph
		}
		marker := "  "
		if i == p.cursor {
			marker = cursorStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s\n",
			marker, glyph, t.Title,
			dimStyle.Render(fmt.Sprintf("(%s, %d%%)", t.Category, t.ProgressRate))))
	}

	b.WriteString("\n" + dimStyle.Render("space toggle · enter accept · d dismiss"))
	return promptBox.Render(b.String())
}
