package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fracalc/internal/ui"
)

// Style variables for the accumulator.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle    lipgloss.Style
	titleStyle    lipgloss.Style
	versionStyle  lipgloss.Style
	labelStyle    lipgloss.Style
	focusedStyle  lipgloss.Style
	totalStyle    lipgloss.Style
	negativeStyle lipgloss.Style
	historyStyle  lipgloss.Style
	errorStyle    lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	labelStyle = lipgloss.NewStyle().
		Foreground(t.Dim).
		Width(13)

	focusedStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true).
		Width(13)

	totalStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	negativeStyle = lipgloss.NewStyle().
		Foreground(t.Negative).
		Bold(true)

	historyStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error)
}
