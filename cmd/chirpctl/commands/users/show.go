package users

import (
	"fmt"

	"github.com/chirpnet/chirpd/cmd/chirpctl/cmdutil"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a profile",
	Long: `Show the profile of any account by id.

Examples:
  # Show a profile
  chirpctl users show 2

  # Show as JSON
  chirpctl users show 2 -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseUserID(args[0])
	if err != nil {
		return err
	}

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	profile, err := client.GetUser(id)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	return printProfile(profile)
}
