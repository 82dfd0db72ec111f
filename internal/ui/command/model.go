package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/zero-hour/internal/theme"
)

// CommandMsg is emitted when the user executes a command.
type CommandMsg struct {
	Name string
	Arg  string
}

// Parse splits a palette line into a lower-cased command name and the
// remaining argument text.
func Parse(line string) CommandMsg {
	line = strings.TrimSpace(line)
	name, arg, _ := strings.Cut(line, " ")
	return CommandMsg{
		Name: strings.ToLower(name),
		Arg:  strings.TrimSpace(arg),
	}
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "login CODE, business NAME, feedback TEXT, export, clear..."
	ti.Prompt = ": "
	ti.CharLimit = 500
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEnter {
		line := m.input.Value()
		m.input.Reset()
		if strings.TrimSpace(line) == "" {
			return m, nil
		}
		parsed := Parse(line)
		return m, func() tea.Msg { return parsed }
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Command"),
		m.input.View(),
	)

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Prefill focuses the input with text already typed, cursor at the end.
func (m *Model) Prefill(text string) tea.Cmd {
	m.input.SetValue(text)
	m.input.CursorEnd()
	return m.input.Focus()
}

// Value returns the text typed so far.
func (m Model) Value() string {
	return m.input.Value()
}

// Blur releases keyboard focus and discards any half-typed command.
func (m *Model) Blur() {
	m.input.Reset()
	m.input.Blur()
}
