package cli

import (
	"errors"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nhle/zero-hour/internal/state"
)

// addYesFlag registers --yes on cmd.
func addYesFlag(cmd *cobra.Command, yes *bool) {
	cmd.Flags().BoolVarP(yes, "yes", "y", false, "skip the confirmation prompt")
}

// confirmer returns the Confirmer for a destructive command.
func (e *env) confirmer(yes bool) state.Confirmer {
	if yes {
		return state.AlwaysConfirm
	}
	if e.confirm != nil {
		return e.confirm
	}
	return state.ConfirmFunc(promptConfirm)
}

// promptConfirm asks a yes/no question on the terminal. Aborting the
// prompt counts as "no".
func promptConfirm(prompt string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(prompt).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

// promptSecret reads a password without echoing it.
func promptSecret(title string) (string, error) {
	var secret string
	err := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&secret).
		Run()
	return secret, err
}
