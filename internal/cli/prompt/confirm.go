package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// Confirm asks a yes/no question. Pressing enter with no answer yields
// defaultYes, and Ctrl+C returns ErrAborted.
func Confirm(label string, defaultYes bool) (bool, error) {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}

	p := promptui.Prompt{
		Label:     fmt.Sprintf("%s [%s]", label, hint),
		IsConfirm: true,
	}

	answer, err := p.Run()
	switch {
	case err == nil:
		answer = strings.ToLower(answer)
		return answer == "y" || answer == "yes", nil
	case errors.Is(err, promptui.ErrInterrupt):
		return false, ErrAborted
	case errors.Is(err, promptui.ErrAbort):
		// promptui reports both "n" and an empty answer as ErrAbort.
		return answer == "" && defaultYes, nil
	default:
		return false, err
	}
}

// ConfirmWithForce skips the prompt entirely when force is set, for
// commands that take a --force flag.
func ConfirmWithForce(label string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	return Confirm(label, false)
}
