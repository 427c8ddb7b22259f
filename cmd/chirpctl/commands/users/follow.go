package users

import (
	"fmt"

	"github.com/chirpnet/chirpd/cmd/chirpctl/cmdutil"
	"github.com/spf13/cobra"
)

var followCmd = &cobra.Command{
	Use:   "follow <id>",
	Short: "Follow an account",
	Long: `Follow another account on the chirpd server.

Following yourself or an account you already follow is an error.

Examples:
  # Follow user 2
  chirpctl users follow 2`,
	Args: cobra.ExactArgs(1),
	RunE: runFollow,
}

func runFollow(cmd *cobra.Command, args []string) error {
	id, err := parseUserID(args[0])
	if err != nil {
		return err
	}

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	if err := client.FollowUser(id); err != nil {
		return fmt.Errorf("failed to follow user: %w", err)
	}

	cmdutil.PrintSuccess(fmt.Sprintf("Now following user %d", id))
	return nil
}
