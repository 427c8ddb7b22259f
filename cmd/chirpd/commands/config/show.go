package config

import (
	"os"

	"github.com/chirpnet/chirpd/internal/cli/output"
	"github.com/chirpnet/chirpd/pkg/config"
	"github.com/spf13/cobra"
)

var showOutput string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Print the configuration the server would run with.

Defaults, the config file, and CHIRPD_* environment overrides are merged
exactly as 'chirpd start' would merge them, so this shows effective values
rather than file contents.

Examples:
  # Effective config as YAML
  chirpd config show

  # As JSON
  chirpd config show --output json

  # For a specific file
  chirpd config show --config /etc/chirpd/config.yaml`,
	RunE: runConfigShow,
}

func init() {
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "yaml", "Output format (yaml|json)")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	// The --config flag is persistent on the root command.
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.MustLoad(configPath)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(showOutput)
	if err != nil {
		return err
	}
	if format == output.FormatJSON {
		return output.PrintJSON(os.Stdout, cfg)
	}
	return output.PrintYAML(os.Stdout, cfg)
}
