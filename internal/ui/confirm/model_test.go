package confirm

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestAbortDeclines(t *testing.T) {
	m := New(80)
	m.Ask("Delete this target?", ActionDeleteItem, 7)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("abort produced no command")
	}
	res, ok := cmd().(ResultMsg)
	if !ok {
		t.Fatalf("got %T, want ResultMsg", cmd())
	}
	if res.Confirmed || res.Action != ActionDeleteItem || res.ID != 7 {
		t.Errorf("result = %+v", res)
	}
	if m.View() != "" {
		t.Error("dialog still visible after answering")
	}
}

func TestDeclineClosesDialog(t *testing.T) {
	m := New(80)
	m.Ask("Delete ALL your data? This cannot be undone!", ActionClearAll, 0)

	res := m.Decline()().(ResultMsg)
	if res.Confirmed || res.Action != ActionClearAll {
		t.Errorf("result = %+v", res)
	}
	if m.View() != "" {
		t.Error("dialog still visible after Decline")
	}
}
