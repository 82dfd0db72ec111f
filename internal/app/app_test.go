package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/zero-hour/internal/clock"
	"github.com/nhle/zero-hour/internal/model"
	"github.com/nhle/zero-hour/internal/state"
	"github.com/nhle/zero-hour/internal/ui/command"
	"github.com/nhle/zero-hour/internal/ui/confirm"
	"github.com/nhle/zero-hour/internal/ui/itemform"
	"github.com/nhle/zero-hour/tests/testutil"
)

var epoch = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func newDashboard(t *testing.T, variant model.Variant) (Model, *state.Manager) {
	t.Helper()

	c := clock.Fake(epoch)
	mgr, err := state.New(testutil.NewTestStore(t), variant,
		state.WithClock(c), state.WithLogger(testutil.DiscardLogger()))
	if err != nil {
		t.Fatalf("state.New: %v", err)
	}
	if err := mgr.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	m := New(Options{
		Manager:   mgr,
		Clock:     c,
		Logger:    testutil.DiscardLogger(),
		ExportDir: t.TempDir(),
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return next.(Model), mgr
}

// step feeds msg to m and runs the resulting command once.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(msg)
	if cmd == nil {
		return next.(Model), nil
	}
	return next.(Model), cmd()
}

// drainEvent applies the pending change notification, if any.
func drainEvent(t *testing.T, m Model) Model {
	t.Helper()
	select {
	case ev := <-m.events:
		next, _ := m.Update(stateChangedMsg{event: ev})
		return next.(Model)
	default:
		t.Fatal("no change notification was queued")
		return m
	}
}

func TestDashboardShowsEmptyState(t *testing.T) {
	m, _ := newDashboard(t, model.VariantTargets)

	view := m.View()
	for _, want := range []string{"ZERO HOUR", "viraaj", "No targets", "Success Rate", "0%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestCreateAndCompleteThroughDashboard(t *testing.T) {
	m, mgr := newDashboard(t, model.VariantTargets)

	m, res := step(t, m, itemform.ItemSubmittedMsg{Input: state.ItemInput{
		Name: "Call client", Date: "2025-01-01", Time: "10:30", Category: "Sales",
	}})
	m, _ = step(t, m, res)
	m = drainEvent(t, m)

	if !strings.Contains(m.View(), "Call client") {
		t.Fatal("new item not rendered")
	}
	if !strings.Contains(m.View(), "1h 30m") {
		t.Error("countdown to 10:30 not rendered")
	}

	m, res = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	m, _ = step(t, m, res)
	m = drainEvent(t, m)

	if got := mgr.CompletedIDs(); len(got) != 1 {
		t.Fatalf("completed = %v, want one id", got)
	}
	if !strings.Contains(m.View(), "100%") {
		t.Error("success rate not updated")
	}
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	m, mgr := newDashboard(t, model.VariantTargets)
	if _, err := mgr.CreateItem(context.Background(), state.ItemInput{
		Name: "Call client", Date: "2025-01-01", Time: "10:30", Category: "Sales",
	}); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	m = drainEvent(t, m)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if m.currentView != ViewConfirm {
		t.Fatalf("view = %v, want confirm", m.currentView)
	}

	m, res := step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = step(t, m, res)
	if len(mgr.Items()) != 1 {
		t.Fatal("declined delete removed the item")
	}
	if m.notice != "Cancelled" {
		t.Errorf("notice = %q", m.notice)
	}

	id := mgr.Items()[0].ID
	m, res = step(t, m, confirm.ResultMsg{Action: confirm.ActionDeleteItem, ID: id, Confirmed: true})
	step(t, m, res)
	if len(mgr.Items()) != 0 {
		t.Error("confirmed delete kept the item")
	}
}

func TestTeamGoalKeyRejectedInTargetsLayout(t *testing.T) {
	m, _ := newDashboard(t, model.VariantTargets)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("T")})
	if !m.noticeErr || m.currentView != ViewDashboard {
		t.Errorf("notice = %q (err %v), view %v", m.notice, m.noticeErr, m.currentView)
	}
}

func TestCommandPaletteLogin(t *testing.T) {
	m, mgr := newDashboard(t, model.VariantGoals)

	m, res := step(t, m, commandMsg("login", "abc"))
	m, _ = step(t, m, res)
	m = drainEvent(t, m)

	if mgr.UserCode() != "ABC" {
		t.Fatalf("user code = %q", mgr.UserCode())
	}
	if !strings.Contains(m.View(), "ABC") {
		t.Error("header does not show the user code")
	}
}

func TestNewGoalWithoutLoginOpensLoginPalette(t *testing.T) {
	m, mgr := newDashboard(t, model.VariantGoals)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	m = next.(Model)
	if m.currentView != ViewCommand {
		t.Fatalf("view = %v, want command palette", m.currentView)
	}
	if got := m.commandView.Value(); got != "login " {
		t.Errorf("palette value = %q, want %q", got, "login ")
	}

	for _, r := range "abc" {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	m, res := step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, res = step(t, m, res)
	m, _ = step(t, m, res)
	m = drainEvent(t, m)
	if mgr.UserCode() != "ABC" {
		t.Fatalf("user code = %q, want ABC", mgr.UserCode())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if v := next.(Model).currentView; v != ViewForm {
		t.Errorf("view after login = %v, want form", v)
	}
}

func TestMissingUserCodeResultOpensLoginPalette(t *testing.T) {
	m, _ := newDashboard(t, model.VariantGoals)

	next, _ := m.Update(actionResultMsg{err: state.ErrNoUserCode})
	m = next.(Model)
	if m.currentView != ViewCommand || m.commandView.Value() != "login " {
		t.Errorf("view = %v, palette = %q", m.currentView, m.commandView.Value())
	}
	if !m.noticeErr {
		t.Error("missing user code not reported")
	}
}

func TestExportWritesReport(t *testing.T) {
	m, mgr := newDashboard(t, model.VariantTargets)
	if _, err := mgr.CreateItem(context.Background(), state.ItemInput{
		Name: "Call client", Date: "2025-01-01", Time: "10:30", Category: "Sales",
	}); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	m, res := step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	m, _ = step(t, m, res)
	if m.noticeErr {
		t.Fatalf("export failed: %s", m.notice)
	}

	data, err := os.ReadFile(filepath.Join(m.exportDir, "ZERO_HOUR_Report.csv"))
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if !strings.Contains(string(data), "Call client,2025-01-01,10:30,Sales,In Progress") {
		t.Errorf("report = %q", data)
	}
}

// failingCloser accepts writes and fails on Close.
type failingCloser struct {
	strings.Builder
}

var errClose = errors.New("disk full")

func (f *failingCloser) Close() error { return errClose }

func TestWriteReportReportsCloseError(t *testing.T) {
	st := model.DefaultAppState()
	for _, text := range []bool{false, true} {
		w := &failingCloser{}
		if err := writeReport(w, text, st, epoch); !errors.Is(err, errClose) {
			t.Errorf("writeReport(text=%v) error = %v, want close error", text, err)
		}
		if w.Len() == 0 {
			t.Errorf("writeReport(text=%v) wrote nothing", text)
		}
	}
}

func TestExportIntoMissingDirectoryFails(t *testing.T) {
	m, _ := newDashboard(t, model.VariantTargets)
	m.exportDir = filepath.Join(t.TempDir(), "missing")

	m, res := step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	m, _ = step(t, m, res)
	if !m.noticeErr || strings.Contains(m.notice, "Report saved") {
		t.Errorf("notice = %q (err %v), want failure", m.notice, m.noticeErr)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		pct  int
		want string
	}{
		{0, "[....]"},
		{50, "[##..]"},
		{100, "[####]"},
		{150, "[####]"},
	}
	for _, tt := range tests {
		if got := progressBar(tt.pct, 4); got != tt.want {
			t.Errorf("progressBar(%d) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func commandMsg(name, arg string) tea.Msg {
	return command.CommandMsg{Name: name, Arg: arg}
}
