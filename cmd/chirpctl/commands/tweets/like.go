package tweets

import (
	"fmt"

	"github.com/chirpnet/chirpd/cmd/chirpctl/cmdutil"
	"github.com/spf13/cobra"
)

var likeCmd = &cobra.Command{
	Use:   "like <id>",
	Short: "Like a tweet",
	Long: `Like a tweet on the chirpd server.

Liking the same tweet twice is an error.

Examples:
  # Like a tweet
  chirpctl tweets like 42`,
	Args: cobra.ExactArgs(1),
	RunE: runLike,
}

func runLike(cmd *cobra.Command, args []string) error {
	id, err := parseTweetID(args[0])
	if err != nil {
		return err
	}

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	if err := client.LikeTweet(id); err != nil {
		return fmt.Errorf("failed to like tweet: %w", err)
	}

	cmdutil.PrintSuccess(fmt.Sprintf("Tweet %d liked", id))
	return nil
}
