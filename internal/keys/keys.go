package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the dashboard.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding
	Tab  key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Command palette
	Command key.Binding

	// Help toggle
	Help key.Binding

	// Item actions
	New      key.Binding
	Complete key.Binding
	Delete   key.Binding

	// Team goals (goals layout only)
	NewTeamGoal key.Binding

	// Show or hide completed items
	ToggleCompleted key.Binding

	// Export the CSV report to the working directory
	Export key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch panel"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new item"),
		),
		Complete: key.NewBinding(
			key.WithKeys("x", "enter"),
			key.WithHelp("x", "complete"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		NewTeamGoal: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "new team goal"),
		),
		ToggleCompleted: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "hide completed"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export report"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.New, k.Complete,
		k.Delete, k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Tab, k.Back, k.Quit},
		{k.New, k.Complete, k.Delete, k.ToggleCompleted},
		{k.NewTeamGoal, k.Export, k.Command, k.Help},
	}
}
