package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/zero-hour/internal/state"
)

// stateChangedMsg carries a change notification from the Manager.
type stateChangedMsg struct {
	event state.Event
}

// tickMsg refreshes the clock and countdown.
type tickMsg time.Time

// waitForEvent returns a tea.Cmd that waits for the next change
// notification. It must be re-issued after each stateChangedMsg to keep
// listening.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return stateChangedMsg{event: ev}
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
