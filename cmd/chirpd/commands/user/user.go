// Package user implements local account management commands for chirpd.
package user

import (
	"fmt"

	"github.com/chirpnet/chirpd/pkg/config"
	"github.com/chirpnet/chirpd/pkg/store"
	"github.com/spf13/cobra"
)

// Cmd is the parent command for account management.
var Cmd = &cobra.Command{
	Use:   "user",
	Short: "Account management",
	Long: `Manage accounts directly in the chirpd database.

These commands operate on the configured database without going through
the REST API, so they work while the server is stopped. 'user add' mints
the api key clients authenticate with.

Examples:
  # List all accounts
  chirpd user list

  # Create an account (prints the generated api key)
  chirpd user add alice

  # Remove an account and everything it owns
  chirpd user remove 3`,
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(removeCmd)
}

// openStore loads the configuration and opens the database store.
func openStore(cmd *cobra.Command) (*store.GORMStore, error) {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.MustLoad(configPath)
	if err != nil {
		return nil, err
	}

	db, err := store.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	return db, nil
}
