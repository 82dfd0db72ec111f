package itemlist

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/zero-hour/internal/theme"
)

// Model is a scrollable list of entries.
type Model struct {
	list          list.Model
	all           []Entry
	hideCompleted bool
	emptyText     string
	width         int
	height        int
}

// New creates a list titled title. emptyText is shown when there is
// nothing to display.
func New(title, emptyText string, width, height int) Model {
	l := list.New([]list.Item{}, Delegate{}, width, height)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:      l,
		emptyText: emptyText,
		width:     width,
		height:    height,
	}
}

// SetEntries replaces the displayed entries, keeping the cursor in range.
func (m *Model) SetEntries(entries []Entry) tea.Cmd {
	m.all = entries
	return m.refresh()
}

func (m *Model) refresh() tea.Cmd {
	items := make([]list.Item, 0, len(m.all))
	for _, e := range m.all {
		if m.hideCompleted && e.Done {
			continue
		}
		items = append(items, e)
	}
	cmd := m.list.SetItems(items)
	if idx := m.list.Index(); idx >= len(items) && len(items) > 0 {
		m.list.Select(len(items) - 1)
	}
	return cmd
}

// ToggleHideCompleted flips whether completed entries are shown.
func (m *Model) ToggleHideCompleted() tea.Cmd {
	m.hideCompleted = !m.hideCompleted
	return m.refresh()
}

// HidingCompleted reports whether completed entries are hidden.
func (m Model) HidingCompleted() bool {
	return m.hideCompleted
}

// Selected returns the entry under the cursor.
func (m Model) Selected() (Entry, bool) {
	e, ok := m.list.SelectedItem().(Entry)
	return e, ok
}

// Len returns the number of visible entries.
func (m Model) Len() int {
	return len(m.list.Items())
}

// Update handles navigation keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}
	return m.list.View()
}

// renderEmptyState shows guidance text when no entries are available.
func (m Model) renderEmptyState() string {
	title := theme.HeaderStyle.Render(m.list.Title)
	body := lipgloss.NewStyle().
		Width(m.width).
		Height(max(m.height-1, 1)).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray).
		Render(m.emptyText)
	return lipgloss.JoinVertical(lipgloss.Left, title, body)
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}
