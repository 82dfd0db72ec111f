package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (e *env) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login CODE",
		Short: "Switch to the goals of a user code (goals layout)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.mgr.Login(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", e.mgr.UserCode())
			return nil
		},
	}
}

func (e *env) logoutCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Save and forget the current user code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := e.mgr.Logout(cmd.Context(), e.confirmer(yes)); err != nil {
				return finish(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
	addYesFlag(cmd, &yes)
	return cmd
}

func (e *env) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the current user code and business",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			code := e.mgr.UserCode()
			if code == "" {
				code = "(none)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user code: %s\nbusiness:  %s\nlayout:    %s\n",
				code, e.mgr.CurrentBusiness(), e.mgr.Variant())
			return nil
		},
	}
}

func (e *env) businessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "business [NAME]",
		Short: "Show or set the business selector",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), e.mgr.CurrentBusiness())
				return nil
			}
			if err := e.mgr.SetBusiness(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Business set to %s\n", e.mgr.CurrentBusiness())
			return nil
		},
	}
}

func (e *env) feedbackCmd() *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "feedback [TEXT...]",
		Short: "Report an issue or suggestion",
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				reports, err := e.mgr.Feedback(cmd.Context())
				if err != nil {
					return err
				}
				for _, fb := range reports {
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n",
						fb.Timestamp.Format("2006-01-02 15:04"), fb.ID, fb.Feedback)
				}
				return nil
			}
			if _, err := e.mgr.SubmitFeedback(cmd.Context(), strings.Join(args, " ")); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Thank you for your feedback! We'll review it soon.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "show submitted feedback")
	return cmd
}

func (e *env) clearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := e.mgr.ClearAll(cmd.Context(), e.confirmer(yes)); err != nil {
				return finish(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All data has been cleared.")
			return nil
		},
	}
	addYesFlag(cmd, &yes)
	return cmd
}
