package confirm

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Action identifies what the user is being asked to approve.
type Action int

const (
	ActionDeleteItem Action = iota
	ActionDeleteTeamGoal
	ActionLogout
	ActionClearAll
)

// ResultMsg is dispatched once the user answers.
type ResultMsg struct {
	Action    Action
	ID        int64
	Confirmed bool
}

// Model is a yes/no dialog.
type Model struct {
	form   *huh.Form
	answer *bool
	action Action
	id     int64
	width  int
}

// New creates an idle dialog.
func New(width int) Model {
	return Model{answer: new(bool), width: width}
}

// Ask shows prompt and remembers which action and target it gates.
func (m *Model) Ask(prompt string, action Action, id int64) tea.Cmd {
	m.action = action
	m.id = id
	*m.answer = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Yes").
				Negative("No").
				Value(m.answer),
		),
	).WithWidth(min(max(m.width-4, 30), 80)).WithShowHelp(false)
	return m.form.Init()
}

// Update handles messages for the dialog.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted, huh.StateAborted:
		res := ResultMsg{
			Action:    m.action,
			ID:        m.id,
			Confirmed: m.form.State == huh.StateCompleted && *m.answer,
		}
		m.form = nil
		return m, func() tea.Msg { return res }
	}

	return m, cmd
}

// Decline closes the dialog with a "no" answer.
func (m *Model) Decline() tea.Cmd {
	res := ResultMsg{Action: m.action, ID: m.id}
	m.form = nil
	return func() tea.Msg { return res }
}

// View renders the dialog.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
}

// SetSize updates the dialog width.
func (m *Model) SetSize(width int) {
	m.width = width
}
