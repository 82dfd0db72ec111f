package state

// Confirmer gates destructive operations behind an explicit yes/no answer.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a plain function to the Confirmer interface.
type ConfirmFunc func(prompt string) (bool, error)

// Confirm calls f(prompt).
func (f ConfirmFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

// AlwaysConfirm answers yes without asking. Use it when the caller has
// already obtained consent, e.g. a --yes flag or a confirmation dialog.
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) (bool, error) { return true, nil })

// Prompts shown before destructive operations.
const (
	PromptDeleteTarget   = "Delete this target?"
	PromptDeleteGoal     = "Delete this goal?"
	PromptDeleteTeamGoal = "Delete this team goal?"
	PromptLogout         = "Switch to a different code? Your data will be saved."
	PromptClearAll       = "Delete ALL your data? This cannot be undone!"
)

// confirm asks c and maps a "no" answer to ErrConfirmationDeclined. A nil
// Confirmer declines.
func confirm(c Confirmer, prompt string) error {
	if c == nil {
		return ErrConfirmationDeclined
	}
	ok, err := c.Confirm(prompt)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConfirmationDeclined
	}
	return nil
}
