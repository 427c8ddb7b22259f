// Package config implements the 'chirpd config' subcommands for inspecting
// and validating server configuration.
package config

import (
	"github.com/spf13/cobra"
)

// Cmd groups the configuration subcommands under 'chirpd config'.
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long: `Inspect and validate chirpd configuration.

The file itself is created with 'chirpd init'. These subcommands work with
an existing configuration:
  show      Print the effective configuration
  validate  Check a configuration file without starting the server
  schema    Emit a JSON schema for editor completion`,
}

func init() {
	Cmd.AddCommand(validateCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(schemaCmd)
}
