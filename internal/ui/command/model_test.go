package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want CommandMsg
	}{
		{"export", CommandMsg{Name: "export"}},
		{"  Login  abc12 ", CommandMsg{Name: "login", Arg: "abc12"}},
		{"feedback the timer is off by one", CommandMsg{Name: "feedback", Arg: "the timer is off by one"}},
		{"", CommandMsg{}},
	}
	for _, tt := range tests {
		if got := Parse(tt.line); got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.line, got, tt.want)
		}
	}
}

func TestEnterEmitsParsedCommand(t *testing.T) {
	m := New(80, 24)
	m.Focus()
	for _, r := range "business acme" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter returned no command")
	}
	msg, ok := cmd().(CommandMsg)
	if !ok {
		t.Fatalf("got %T, want CommandMsg", cmd())
	}
	if msg.Name != "business" || msg.Arg != "acme" {
		t.Errorf("got %+v", msg)
	}
}
