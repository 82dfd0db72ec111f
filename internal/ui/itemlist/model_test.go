package itemlist

import (
	"strings"
	"testing"

	"github.com/nhle/zero-hour/internal/model"
)

func sampleEntries() []Entry {
	return []Entry{
		FromItem(model.Item{ID: 1, Name: "Call client", Date: "2025-01-01", Time: "09:00", Category: "Sales"}, true),
		FromItem(model.Item{ID: 2, Name: "Ship release", Date: "2025-01-02", Category: "Operations"}, false),
	}
}

func TestFromItemJoinsDateAndTime(t *testing.T) {
	e := sampleEntries()[0]
	if e.When != "2025-01-01 09:00" || !e.Done {
		t.Errorf("got %+v", e)
	}
	g := FromTeamGoal(model.TeamGoal{ID: 3, Name: "Q1 launch", TeamCode: "ALPHA", Deadline: "2025-03-31"})
	if !g.Team || g.Category != "Team: ALPHA" {
		t.Errorf("got %+v", g)
	}
}

func TestHideCompleted(t *testing.T) {
	m := New("Targets", "nothing here", 80, 10)
	m.SetEntries(sampleEntries())
	if m.Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.Len())
	}

	m.ToggleHideCompleted()
	if m.Len() != 1 {
		t.Fatalf("Len after hiding = %d, want 1", m.Len())
	}
	sel, ok := m.Selected()
	if !ok || sel.ID != 2 {
		t.Errorf("selected = %+v, %v; want id 2", sel, ok)
	}
}

func TestEmptyStateText(t *testing.T) {
	m := New("Targets", "No targets yet", 40, 6)
	if !strings.Contains(m.View(), "No targets yet") {
		t.Errorf("empty view = %q", m.View())
	}
}
