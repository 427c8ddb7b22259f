package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Write a completion script for the named shell to stdout.

Load it for the current session:

  source <(chirpctl completion bash)

Or install it permanently:

  # bash (Linux)
  chirpctl completion bash > /etc/bash_completion.d/chirpctl

  # zsh (compinit must run in your ~/.zshrc)
  chirpctl completion zsh > "${fpath[1]}/_chirpctl"

  # fish
  chirpctl completion fish > ~/.config/fish/completions/chirpctl.fish

  # PowerShell
  chirpctl completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := cmd.Root()
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(os.Stdout)
		case "zsh":
			return root.GenZshCompletion(os.Stdout)
		case "fish":
			return root.GenFishCompletion(os.Stdout, true)
		default:
			return root.GenPowerShellCompletionWithDesc(os.Stdout)
		}
	},
}
