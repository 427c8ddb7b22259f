package commands

import (
	"fmt"

	"github.com/chirpnet/chirpd/pkg/config"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Write a starter configuration file with documented defaults.

The file goes to $XDG_CONFIG_HOME/chirpd/config.yaml unless --config names
another location. Existing files are left alone without --force.

Examples:
  # Default location
  chirpd init

  # System-wide install
  chirpd init --config /etc/chirpd/config.yaml

  # Replace an existing file
  chirpd init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := GetConfigFile()

	var err error
	if configPath != "" {
		err = config.InitConfigToPath(configPath, initForce)
	} else {
		configPath, err = config.InitConfig(initForce)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Review the generated settings and adjust paths or ports")
	fmt.Println("  2. Start the server: chirpd start")
	fmt.Println("  3. Create the first account: chirpd user add <name>")

	return nil
}
