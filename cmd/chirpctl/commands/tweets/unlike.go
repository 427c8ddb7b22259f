package tweets

import (
	"fmt"

	"github.com/chirpnet/chirpd/cmd/chirpctl/cmdutil"
	"github.com/spf13/cobra"
)

var unlikeCmd = &cobra.Command{
	Use:   "unlike <id>",
	Short: "Remove a like from a tweet",
	Long: `Remove your like from a tweet on the chirpd server.

Removing a like you never placed is an error.

Examples:
  # Remove a like
  chirpctl tweets unlike 42`,
	Args: cobra.ExactArgs(1),
	RunE: runUnlike,
}

func runUnlike(cmd *cobra.Command, args []string) error {
	id, err := parseTweetID(args[0])
	if err != nil {
		return err
	}

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	if err := client.UnlikeTweet(id); err != nil {
		return fmt.Errorf("failed to unlike tweet: %w", err)
	}

	cmdutil.PrintSuccess(fmt.Sprintf("Like removed from tweet %d", id))
	return nil
}
