package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nhle/zero-hour/internal/state"
)

func (e *env) teamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage team goals (goals layout)",
	}
	cmd.AddCommand(e.teamAddCmd(), e.teamDeleteCmd(), e.teamListCmd())
	return cmd
}

func (e *env) teamAddCmd() *cobra.Command {
	var in state.TeamGoalInput
	cmd := &cobra.Command{
		Use:     "add NAME",
		Short:   "Create a team goal",
		Example: `  zerohour --variant goals team add "Q1 launch" --team alpha --deadline 2025-03-31`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				in.Name = args[0]
			}
			g, err := e.mgr.CreateTeamGoal(cmd.Context(), in)
			if err != nil {
				return finish(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created team goal %d for %s: %s\n", g.ID, g.TeamCode, g.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.TeamCode, "team", "", "team code")
	cmd.Flags().StringVar(&in.Deadline, "deadline", "", "deadline (YYYY-MM-DD)")
	return cmd
}

func (e *env) teamDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a team goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			removed, err := e.mgr.DeleteTeamGoal(cmd.Context(), id, e.confirmer(yes))
			if err != nil {
				return finish(cmd, err)
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "No team goal with id %d\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted team goal %d\n", id)
			return nil
		},
	}
	addYesFlag(cmd, &yes)
	return cmd
}

func (e *env) teamListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List team goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			goals := e.mgr.TeamGoals()
			if len(goals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No team goals yet.")
				return nil
			}
			rows := make([][]string, len(goals))
			for i, g := range goals {
				rows[i] = []string{
					strconv.FormatInt(g.ID, 10),
					g.Name,
					g.TeamCode,
					g.Deadline,
					strings.Join(g.Members, ", "),
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "NAME", "TEAM", "DEADLINE", "MEMBERS").
				Rows(rows...).
				Render())
			return nil
		},
	}
}
