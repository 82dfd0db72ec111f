package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/zero-hour/internal/model"
	"github.com/nhle/zero-hour/internal/report"
	"github.com/nhle/zero-hour/internal/state"
)

// actionResultMsg reports the outcome of a mutation run off the UI
// goroutine.
type actionResultMsg struct {
	notice string
	err    error
}

// run executes fn in a command and converts its outcome to a notice.
func (m Model) run(fn func(ctx context.Context, mgr *state.Manager) (string, error)) tea.Cmd {
	mgr := m.mgr
	logger := m.logger
	return func() tea.Msg {
		notice, err := fn(context.Background(), mgr)
		if err != nil && !errors.Is(err, state.ErrConfirmationDeclined) {
			logger.Warn("dashboard action failed", "error", err)
		}
		return actionResultMsg{notice: notice, err: err}
	}
}

func (m Model) createItem(in state.ItemInput) tea.Cmd {
	return m.run(func(ctx context.Context, mgr *state.Manager) (string, error) {
		it, err := mgr.CreateItem(ctx, in)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Added %q", it.Name), nil
	})
}

func (m Model) completeItem(id int64) tea.Cmd {
	return m.run(func(ctx context.Context, mgr *state.Manager) (string, error) {
		changed, err := mgr.CompleteItem(ctx, id)
		if err != nil {
			return "", err
		}
		if !changed {
			return "Already completed", nil
		}
		return "Completed", nil
	})
}

func (m Model) deleteItem(id int64) tea.Cmd {
	return m.run(func(ctx context.Context, mgr *state.Manager) (string, error) {
		if _, err := mgr.DeleteItem(ctx, id, state.AlwaysConfirm); err != nil {
			return "", err
		}
		return "Deleted", nil
	})
}

func (m Model) createTeamGoal(in state.TeamGoalInput) tea.Cmd {
	return m.run(func(ctx context.Context, mgr *state.Manager) (string, error) {
		g, err := mgr.CreateTeamGoal(ctx, in)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Team goal %q added for %s", g.Name, g.TeamCode), nil
	})
}

func (m Model) deleteTeamGoal(id int64) tea.Cmd {
	return m.run(func(ctx context.Context, mgr *state.Manager) (string, error) {
		if _, err := mgr.DeleteTeamGoal(ctx, id, state.AlwaysConfirm); err != nil {
			return "", err
		}
		return "Team goal deleted", nil
	})
}

func (m Model) login(code string) tea.Cmd {
	return m.run(func(ctx context.Context, mgr *state.Manager) (string, error) {
		if err := mgr.Login(ctx, code); err != nil {
			return "", err
		}
		return "Logged in as " + mgr.UserCode(), nil
	})
}

func (m Model) logout() tea.Cmd {
	return m.run(func(ctx context.Context, mgr *state.Manager) (string, error) {
		if err := mgr.Logout(ctx, state.AlwaysConfirm); err != nil {
			return "", err
		}
		return "Logged out", nil
	})
}

func (m Model) setBusiness(name string) tea.Cmd {
	return m.run(func(ctx context.Context, mgr *state.Manager) (string, error) {
		if err := mgr.SetBusiness(ctx, name); err != nil {
			return "", err
		}
		return "Business set to " + mgr.CurrentBusiness(), nil
	})
}

func (m Model) submitFeedback(text string) tea.Cmd {
	return m.run(func(ctx context.Context, mgr *state.Manager) (string, error) {
		if _, err := mgr.SubmitFeedback(ctx, text); err != nil {
			return "", err
		}
		return "Thank you for your feedback!", nil
	})
}

func (m Model) clearAll() tea.Cmd {
	return m.run(func(ctx context.Context, mgr *state.Manager) (string, error) {
		if err := mgr.ClearAll(ctx, state.AlwaysConfirm); err != nil {
			return "", err
		}
		return "All data cleared", nil
	})
}

// exportReport writes the CSV report, or the text report in the goals
// layout, into the export directory.
func (m Model) exportReport() tea.Cmd {
	dir := m.exportDir
	now := m.clock.Now()
	goals := m.goals()
	return m.run(func(_ context.Context, mgr *state.Manager) (string, error) {
		st := mgr.Snapshot()
		format := "csv"
		if goals {
			format = "text"
		}
		path := filepath.Join(dir, report.FileName(format, st.UserCode))

		f, err := os.Create(path)
		if err != nil {
			return "", fmt.Errorf("creating report: %w", err)
		}
		if err := writeReport(f, goals, st, now); err != nil {
			_ = os.Remove(path)
			return "", err
		}
		return "Report saved to " + path, nil
	})
}

// writeReport writes the text or CSV report to w and closes it. A failed
// close is reported.
func writeReport(w io.WriteCloser, text bool, st model.AppState, now time.Time) error {
	var err error
	if text {
		_, err = io.WriteString(w, report.Text(st, now))
	} else {
		err = report.WriteCSV(w, report.Build(st, now))
	}
	if closeErr := w.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("closing report: %w", closeErr)
	}
	return err
}
