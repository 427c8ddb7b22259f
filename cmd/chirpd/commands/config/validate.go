package config

import (
	"fmt"

	"github.com/chirpnet/chirpd/pkg/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Load the configuration and report problems without starting the server.

Structural errors (bad YAML, unknown enum values, out-of-range ports) fail
the command. Settings that are legal but probably unintended come back as
warnings.

Examples:
  # Validate the default config
  chirpd config validate

  # Validate a candidate file before deploying it
  chirpd config validate --config /etc/chirpd/config.yaml`,
	RunE: runConfigValidate,
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	// The --config flag is persistent on the root command.
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.MustLoad(configPath)
	if err != nil {
		return err
	}

	shown := configPath
	if shown == "" {
		shown = config.GetDefaultConfigPath()
	}

	fmt.Printf("Configuration file: %s\n", shown)
	fmt.Println("Validation: OK")

	if warnings := lintConfig(cfg); len(warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, w := range warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	fmt.Printf("\nConfiguration summary:\n")
	fmt.Printf("  Database type:   %s\n", cfg.Database.Type)
	fmt.Printf("  API port:        %d\n", cfg.Server.Port)
	fmt.Printf("  Media store:     %s\n", cfg.Media.Store.Type)
	fmt.Printf("  Media root:      %s\n", cfg.Media.Root)
	fmt.Printf("  Log level:       %s\n", cfg.Logging.Level)

	return nil
}

// lintConfig flags settings that pass validation but rarely make sense.
func lintConfig(cfg *config.Config) []string {
	var warnings []string

	if cfg.Sentry.Enabled && cfg.Sentry.DSN == "" {
		warnings = append(warnings, "Sentry enabled but no DSN configured - error reporting will fail")
	}
	if cfg.Server.ServeStatic && cfg.Server.StaticDir == "" {
		warnings = append(warnings, "Static serving enabled but static_dir is empty")
	}
	if cfg.Media.MaxUploadSize == 0 {
		warnings = append(warnings, "Media upload size limit is zero - all uploads will be rejected")
	}

	return warnings
}
