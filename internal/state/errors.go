package state

import (
	"errors"
	"strings"
)

var (
	// ErrConfirmationDeclined is returned when the user answers "no" to a
	// destructive-action prompt. Nothing was changed.
	ErrConfirmationDeclined = errors.New("confirmation declined")

	// ErrTeamGoalsUnsupported is returned by team goal operations in the
	// targets variant.
	ErrTeamGoalsUnsupported = errors.New("team goals require the goals variant")

	// ErrUserDataUnsupported is returned by user partition operations in
	// the targets variant.
	ErrUserDataUnsupported = errors.New("user data partitions require the goals variant")

	// ErrNoUserCode is returned by goal mutations in the goals variant
	// before a user code is set. Nothing was changed.
	ErrNoUserCode = errors.New("no user code set")
)

// ValidationError reports required input that was missing or malformed.
// The state is never modified when a ValidationError is returned.
type ValidationError struct {
	// Fields names the offending inputs.
	Fields []string

	// Message is the user-facing explanation.
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + " (" + strings.Join(e.Fields, ", ") + ")"
}

// requireFields returns a ValidationError naming every blank value in
// fields, or nil. Keys are checked in the order given.
func requireFields(message string, fields ...[2]string) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			missing = append(missing, f[0])
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Fields: missing, Message: message}
}
