package prompt

import "github.com/manifoldco/promptui"

// Secret prompts for sensitive input with masking. Used for API keys so they
// never echo to the terminal or shell history.
func Secret(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Mask:  '*',
	}

	result, err := prompt.Run()
	return result, wrap(err)
}
