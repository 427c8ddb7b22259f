package users

import (
	"fmt"

	"github.com/chirpnet/chirpd/cmd/chirpctl/cmdutil"
	"github.com/spf13/cobra"
)

var unfollowCmd = &cobra.Command{
	Use:   "unfollow <id>",
	Short: "Unfollow an account",
	Long: `Stop following an account on the chirpd server.

Unfollowing an account you do not follow is an error.

Examples:
  # Unfollow user 2
  chirpctl users unfollow 2`,
	Args: cobra.ExactArgs(1),
	RunE: runUnfollow,
}

func runUnfollow(cmd *cobra.Command, args []string) error {
	id, err := parseUserID(args[0])
	if err != nil {
		return err
	}

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	if err := client.UnfollowUser(id); err != nil {
		return fmt.Errorf("failed to unfollow user: %w", err)
	}

	cmdutil.PrintSuccess(fmt.Sprintf("Unfollowed user %d", id))
	return nil
}
