package help

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/zero-hour/internal/keys"
	"github.com/nhle/zero-hour/internal/theme"
)

// paletteCommands lists what the command palette understands.
var paletteCommands = []string{
	"login <code>      switch to a user code",
	"logout            save and forget the user code",
	"business <name>   set the business selector",
	"feedback <text>   report an issue or suggestion",
	"export            write the CSV report",
	"clear             delete all data",
	"quit",
}

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	title  string
	width  int
	height int
}

// New creates a help view. title names the dashboard layout in use.
func New(keys *keys.KeyMap, title string, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:   keys,
		help:   h,
		title:  title,
		width:  width,
		height: height,
	}
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the help overlay.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render(m.title + " shortcuts")

	m.help.Width = m.width - 4
	m.help.ShowAll = true
	helpText := m.help.View(m.keys)

	commands := theme.HelpStyle.Render(lipgloss.JoinVertical(lipgloss.Left, paletteCommands...))

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		helpText,
		"",
		titleStyle.Render("Commands"),
		commands,
	)

	return theme.PanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(content)
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
