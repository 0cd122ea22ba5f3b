package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fracalc/internal/config"
	apperrors "github.com/agbru/fracalc/internal/errors"
	"github.com/agbru/fracalc/internal/metrics"
	"github.com/agbru/fracalc/internal/orchestration"
)

const (
	fieldNumerator = iota
	fieldDenominator
	fieldCount
)

// historyRows is the number of recent terms shown under the total.
const historyRows = 5

// Model is the root bubbletea model for the accumulator.
type Model struct {
	header HeaderModel
	inputs [fieldCount]textinput.Model
	focus  int
	help   help.Model
	keymap KeyMap

	ctx      context.Context
	opts     orchestration.Options
	recorder *metrics.Recorder

	history []config.Term
	total   orchestration.EvaluationResult
	err     error
	width   int
}

// NewModel creates a new accumulator model seeded with cfg.Terms. Seed terms
// that cannot be added are skipped and the last failure is shown.
func NewModel(ctx context.Context, cfg config.AppConfig, recorder *metrics.Recorder, version string) Model {
	m := Model{
		header:   NewHeaderModel(version),
		help:     help.New(),
		keymap:   DefaultKeyMap(),
		ctx:      ctx,
		opts:     orchestration.Options{Width: cfg.Width, Workers: cfg.Workers},
		recorder: recorder,
	}

	placeholders := [fieldCount]string{"1", "2"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 20
		ti.Width = 20
		ti.Prompt = "› "
		m.inputs[i] = ti
	}
	m.inputs[fieldNumerator].Focus()

	m.reset()
	for _, t := range cfg.Terms {
		m.add(t)
	}
	return m
}

// Total returns the current reduced total.
func (m Model) Total() string {
	return m.total.Sum
}

// History returns the accepted terms in order.
func (m Model) History() []config.Term {
	return m.history
}

// Err returns the last input or arithmetic error, or nil.
func (m Model) Err() error {
	return m.err
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.NextField):
		return m, m.setFocus((m.focus + 1) % fieldCount)

	case key.Matches(msg, m.keymap.Reset):
		m.reset()
		m.clearInputs()
		return m, m.setFocus(fieldNumerator)

	case key.Matches(msg, m.keymap.Add):
		return m.submit()
	}

	return m.updateFocused(msg)
}

// submit adds the entered term. Enter on a filled numerator with an empty
// denominator moves to the denominator instead.
func (m Model) submit() (tea.Model, tea.Cmd) {
	num := strings.TrimSpace(m.inputs[fieldNumerator].Value())
	den := strings.TrimSpace(m.inputs[fieldDenominator].Value())

	if m.focus == fieldNumerator && num != "" && den == "" {
		return m, m.setFocus(fieldDenominator)
	}

	term, err := parseTerm(num, den)
	if err != nil {
		m.err = err
		return m, nil
	}
	if m.add(term) {
		m.clearInputs()
		return m, m.setFocus(fieldNumerator)
	}
	return m, nil
}

func parseTerm(num, den string) (config.Term, error) {
	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return config.Term{}, apperrors.ValidationError{Field: "numerator", Message: fmt.Sprintf("%q is not an integer", num)}
	}
	d, err := strconv.ParseInt(den, 10, 64)
	if err != nil {
		return config.Term{}, apperrors.ValidationError{Field: "denominator", Message: fmt.Sprintf("%q is not an integer", den)}
	}
	return config.Term{Numerator: n, Denominator: d}, nil
}

// add re-evaluates the history with t appended and keeps t only when the
// new total can be represented.
func (m *Model) add(t config.Term) bool {
	candidate := append(m.history[:len(m.history):len(m.history)], t)
	res := orchestration.Evaluate(m.ctx, candidate, m.opts)
	if m.recorder != nil {
		m.recorder.ObserveEvaluation("tui", len(candidate), res.Duration, res.Err)
	}
	if res.Err != nil {
		m.err = res.Err
		return false
	}
	m.err = nil
	m.history = candidate
	m.total = res
	m.header.SetTerms(len(m.history))
	return true
}

func (m *Model) reset() {
	m.history = nil
	m.err = nil
	m.total = orchestration.Evaluate(m.ctx, nil, m.opts)
	m.header.SetTerms(0)
}

func (m *Model) clearInputs() {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
}

func (m *Model) setFocus(field int) tea.Cmd {
	m.focus = field
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == field {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View renders the accumulator.
func (m Model) View() string {
	labels := [fieldCount]string{"Numerator", "Denominator"}
	rows := make([]string, 0, fieldCount)
	for i := range m.inputs {
		style := labelStyle
		if i == m.focus {
			style = focusedStyle
		}
		rows = append(rows, style.Render(labels[i])+m.inputs[i].View())
	}

	sumStyle := totalStyle
	if m.total.Negative {
		sumStyle = negativeStyle
	}
	total := labelStyle.Render("Total") + sumStyle.Render(m.total.Sum) +
		historyStyle.Render(fmt.Sprintf("  (%d bits)", m.total.Width))

	body := []string{
		m.header.View(),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		total,
	}
	if recent := m.recentTerms(); recent != "" {
		body = append(body, historyStyle.Render(recent))
	}
	if m.err != nil {
		body = append(body, "", errorStyle.Render(errorText(m.err)))
	}
	body = append(body, "", m.help.View(m.keymap))

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}

// recentTerms lists the last historyRows terms, oldest first.
func (m Model) recentTerms() string {
	if len(m.history) == 0 {
		return ""
	}
	start := max(0, len(m.history)-historyRows)
	parts := make([]string, 0, historyRows+1)
	if start > 0 {
		parts = append(parts, "…")
	}
	for _, t := range m.history[start:] {
		parts = append(parts, orchestration.FormatTerm(t))
	}
	return strings.Join(parts, " + ")
}

func errorText(err error) string {
	if apperrors.IsArithmeticError(err) {
		return "Arithmetic error: " + err.Error()
	}
	return "Error: " + err.Error()
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, cfg config.AppConfig, recorder *metrics.Recorder, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, cfg, recorder, version)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
