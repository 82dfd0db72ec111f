package cli

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nhle/zero-hour/internal/metrics"
	"github.com/nhle/zero-hour/internal/model"
	"github.com/nhle/zero-hour/internal/state"
)

// itemNoun is "target" or "goal" depending on the layout.
func (e *env) itemNoun() string {
	if e.mgr != nil && e.mgr.Variant() == model.VariantGoals {
		return "goal"
	}
	return "target"
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func (e *env) addCmd() *cobra.Command {
	var in state.ItemInput
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a target or goal",
		Example: `  zerohour add "Call client" --date 2025-01-01 --time 09:00 --category Sales
  zerohour --variant goals login RAVI
  zerohour --variant goals add "Read a book" --date 2025-02-01 --category Personal`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				in.Name = args[0]
			}
			it, err := e.mgr.CreateItem(cmd.Context(), in)
			if err != nil {
				return finish(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %d: %s\n", e.itemNoun(), it.ID, it.Name)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Date, "date", "", "date (YYYY-MM-DD)")
	f.StringVar(&in.Time, "time", "", "time of day (HH:MM), targets only")
	f.StringVar(&in.Category, "category", "", "category")
	f.StringVar(&in.Description, "description", "", "optional description")
	return cmd
}

func (e *env) completeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete ID",
		Short: "Mark a target or goal as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			changed, err := e.mgr.CompleteItem(cmd.Context(), id)
			if err != nil {
				return finish(cmd, err)
			}
			if !changed {
				fmt.Fprintf(cmd.OutOrStdout(), "Nothing to do: %s %d is unknown or already completed\n", e.itemNoun(), id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed %s %d\n", e.itemNoun(), id)
			return nil
		},
	}
}

func (e *env) deleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a target or goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			removed, err := e.mgr.DeleteItem(cmd.Context(), id, e.confirmer(yes))
			if err != nil {
				return finish(cmd, err)
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "No %s with id %d\n", e.itemNoun(), id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %d\n", e.itemNoun(), id)
			return nil
		},
	}
	addYesFlag(cmd, &yes)
	return cmd
}

func (e *env) listCmd() *cobra.Command {
	var active bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List targets or goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st := e.mgr.Snapshot()
			items := st.Items
			if active {
				items = metrics.ActiveItems(st)
			}
			if len(items) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No %ss yet.\n", e.itemNoun())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), itemTable(items, st.Completed, e.mgr.Variant()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&active, "active", false, "only items not yet completed")
	return cmd
}

// itemTable renders items as a bordered table.
func itemTable(items []model.Item, completed []int64, variant model.Variant) string {
	headers := []string{"ID", "NAME", "DATE", "TIME", "CATEGORY", "STATUS"}
	if variant == model.VariantGoals {
		headers = slices.Delete(headers, 3, 4)
	}

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		status := "In Progress"
		if slices.Contains(completed, it.ID) {
			status = "Completed"
		}
		row := []string{strconv.FormatInt(it.ID, 10), it.Name, it.Date, it.Time, it.Category, status}
		if variant == model.VariantGoals {
			row = slices.Delete(row, 3, 4)
		}
		rows = append(rows, row)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		Render()
}

func (e *env) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show completion metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st := e.mgr.Snapshot()
			sum := metrics.Summarize(st)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total:        %d\n", sum.Total)
			fmt.Fprintf(out, "Completed:    %d\n", sum.Completed)
			fmt.Fprintf(out, "In progress:  %d\n", sum.InProgress)
			fmt.Fprintf(out, "Success rate: %d%%\n", sum.SuccessRate)
			if e.mgr.Variant() == model.VariantTargets {
				fmt.Fprintf(out, "Next target:  %s\n", metrics.NextCountdown(st.Items, e.clock.Now()))
			} else {
				fmt.Fprintf(out, "Team goals:   %d\n", len(st.TeamGoals))
			}
			return nil
		},
	}
}
