package itemform

import (
	"testing"
	"time"

	"github.com/nhle/zero-hour/internal/state"
)

func TestValidators(t *testing.T) {
	if validateDate("2025-01-31") != nil {
		t.Error("valid date rejected")
	}
	if validateDate("31/01/2025") == nil {
		t.Error("invalid date accepted")
	}
	if validateClock("08:05") != nil {
		t.Error("valid time rejected")
	}
	if validateClock("25:00") == nil {
		t.Error("invalid time accepted")
	}
	if validateRequired("Name")("   ") == nil {
		t.Error("blank name accepted")
	}
}

func TestSubmitBuildsItemInput(t *testing.T) {
	m := New(80, 24)
	m.Start(ModeTarget, time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	if m.fb.date != "2025-01-01" {
		t.Fatalf("date seeded as %q", m.fb.date)
	}
	m.fb.name = " Call client "
	m.fb.clock = "10:30"
	m.fb.category = "Sales"

	msg, ok := m.handleSubmit()().(ItemSubmittedMsg)
	if !ok {
		t.Fatal("expected ItemSubmittedMsg")
	}
	want := state.ItemInput{Name: "Call client", Date: "2025-01-01", Time: "10:30", Category: "Sales"}
	if msg.Input != want {
		t.Errorf("input = %+v, want %+v", msg.Input, want)
	}
}

func TestGoalModeDropsTime(t *testing.T) {
	m := New(80, 24)
	m.Start(ModeGoal, time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	m.fb.name = "Read a book"
	m.fb.clock = "10:30"
	m.fb.category = "Personal"

	msg := m.handleSubmit()().(ItemSubmittedMsg)
	if msg.Input.Time != "" {
		t.Errorf("goal input carries time %q", msg.Input.Time)
	}
}

func TestTeamGoalSubmit(t *testing.T) {
	m := New(80, 24)
	m.Start(ModeTeamGoal, time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	m.fb.name = "Q1 launch"
	m.fb.teamCode = "alpha"

	msg, ok := m.handleSubmit()().(TeamGoalSubmittedMsg)
	if !ok {
		t.Fatal("expected TeamGoalSubmittedMsg")
	}
	if msg.Input.TeamCode != "alpha" || msg.Input.Deadline != "2025-01-01" {
		t.Errorf("input = %+v", msg.Input)
	}
}
