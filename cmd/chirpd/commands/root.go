// Package commands implements the chirpd server CLI.
package commands

import (
	"github.com/chirpnet/chirpd/cmd/chirpd/commands/config"
	"github.com/chirpnet/chirpd/cmd/chirpd/commands/user"
	"github.com/spf13/cobra"
)

// Build metadata, overridden via -ldflags at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "chirpd",
	Short: "Chirpd - Microblogging backend server",
	Long: `Chirpd is a microblogging backend serving a REST API for users,
tweets, likes, follows and media uploads. Uploaded media lands in the blob
store through an asynchronous write pipeline, so publishing never waits on
storage.

Use "chirpd [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/chirpd/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(config.Cmd)
	rootCmd.AddCommand(user.Cmd)
	rootCmd.AddCommand(completionCmd)

	// The hand-rolled completion command replaces cobra's default.
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// GetConfigFile reports the value of the persistent --config flag.
func GetConfigFile() string {
	return cfgFile
}
