package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dogeja/blueprint/internal/domain"
)

// Gruvbox-inspired palette.
var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorRed    = lipgloss.Color("#fb4934")
	colorBlue   = lipgloss.Color("#83a598")
	colorDim    = lipgloss.Color("#928374")
	colorHeader = lipgloss.Color("#fe8019")
)

var (
	styleGreen  = lipgloss.NewStyle().Foreground(colorGreen)
	styleYellow = lipgloss.NewStyle().Foreground(colorYellow)
	styleRed    = lipgloss.NewStyle().Foreground(colorRed)
	styleBlue   = lipgloss.NewStyle().Foreground(colorBlue)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleHeader = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
)

// renderTable renders a simple aligned table with a header separator line.
// Column widths are measured with lipgloss so colored cells align.
func renderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)

	widths := make([]int, cols)
	for i, h := range headers {
		if w := lipgloss.Width(h); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	const colGap = 2
	pad := func(s string, w int) string {
		return s + strings.Repeat(" ", w-lipgloss.Width(s))
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(pad(styleHeader.Render(h), widths[i]+colGap))
	}
	b.WriteString("\n")
	total := 0
	for _, w := range widths {
		total += w + colGap
	}
	b.WriteString(styleDim.Render(strings.Repeat("─", total)))
	b.WriteString("\n")
	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(pad(cell, widths[i]+colGap))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// statusStyle colors a task status label.
func statusStyle(s domain.TaskStatus) lipgloss.Style {
	switch s {
	case domain.TaskCompleted:
		return styleGreen
	case domain.TaskInProgress:
		return styleBlue
	case domain.TaskCancelled:
		return styleDim
	default:
		return styleYellow
	}
}

// progressCell renders "40%" with a completion color.
func progressCell(rate int) string {
	label := fmt.Sprintf("%d%%", rate)
	switch {
	case rate >= 100:
		return styleGreen.Render(label)
	case rate > 0:
		return styleYellow.Render(label)
	default:
		return styleDim.Render(label)
	}
}

// conditionCell renders the 1-5 condition score.
func conditionCell(c int) string {
	label := fmt.Sprintf("%d/5", c)
	switch {
	case c >= 4:
		return styleGreen.Render(label)
	case c <= 2:
		return styleRed.Render(label)
	default:
		return styleYellow.Render(label)
	}
}

// shortID trims a uuid for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
