// Package commands implements the chirpctl client CLI.
package commands

import (
	"github.com/chirpnet/chirpd/cmd/chirpctl/cmdutil"
	mediacmd "github.com/chirpnet/chirpd/cmd/chirpctl/commands/media"
	tweetscmd "github.com/chirpnet/chirpd/cmd/chirpctl/commands/tweets"
	userscmd "github.com/chirpnet/chirpd/cmd/chirpctl/commands/users"
	"github.com/spf13/cobra"
)

// Build metadata, overridden via -ldflags at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "chirpctl",
	Short: "Chirpd Control - Command-line client",
	Long: `chirpctl is the command-line client for a chirpd server.

Use this tool to read the feed, publish tweets, manage likes and follows,
and upload media through the chirpd REST API.

Use "chirpctl [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Subcommands read flag values through cmdutil.Flags rather than
		// reaching back into cobra.
		cmdutil.Flags.ServerURL, _ = cmd.Flags().GetString("server")
		cmdutil.Flags.Key, _ = cmd.Flags().GetString("key")
		cmdutil.Flags.Output, _ = cmd.Flags().GetString("output")
		cmdutil.Flags.NoColor, _ = cmd.Flags().GetBool("no-color")
		cmdutil.Flags.Verbose, _ = cmd.Flags().GetBool("verbose")
	},
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("server", "", "Server URL (overrides stored credential)")
	rootCmd.PersistentFlags().String("key", "", "API key (overrides stored credential)")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format (table|json|yaml)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(tweetscmd.Cmd)
	rootCmd.AddCommand(userscmd.Cmd)
	rootCmd.AddCommand(mediacmd.Cmd)
	rootCmd.AddCommand(completionCmd)

	// The hand-rolled completion command replaces cobra's default.
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
