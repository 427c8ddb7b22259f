// Package prompt wraps promptui with the small set of interactions
// chirpctl needs: free text, masked secrets and yes/no confirmation.
// All prompts translate Ctrl+C into ErrAborted so commands can exit
// quietly instead of printing a library error.
package prompt

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user cancels a prompt with Ctrl+C.
var ErrAborted = errors.New("aborted")

// IsAborted reports whether err means the user backed out of a prompt.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted) ||
		errors.Is(err, promptui.ErrInterrupt) ||
		errors.Is(err, promptui.ErrAbort)
}

// wrap normalizes promptui's interrupt errors to ErrAborted.
func wrap(err error) error {
	if err != nil && IsAborted(err) {
		return ErrAborted
	}
	return err
}

// Input prompts for a line of text. An empty answer yields defaultValue.
func Input(label, defaultValue string) (string, error) {
	p := promptui.Prompt{
		Label:   label,
		Default: defaultValue,
	}
	answer, err := p.Run()
	return answer, wrap(err)
}

// InputRequired prompts for a line of text and re-prompts until the
// answer is non-empty.
func InputRequired(label string) (string, error) {
	p := promptui.Prompt{
		Label: label,
		Validate: func(s string) error {
			if s == "" {
				return errors.New("a value is required")
			}
			return nil
		},
	}
	answer, err := p.Run()
	return answer, wrap(err)
}
