package users

import (
	"fmt"

	"github.com/chirpnet/chirpd/cmd/chirpctl/cmdutil"
	"github.com/spf13/cobra"
)

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show your own profile",
	Long: `Show the profile belonging to your api key.

Examples:
  # Show your profile
  chirpctl users me

  # Show as JSON
  chirpctl users me -o json`,
	RunE: runMe,
}

func runMe(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	profile, err := client.Me()
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	return printProfile(profile)
}
