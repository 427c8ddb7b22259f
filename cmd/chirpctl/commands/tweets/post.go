package tweets

import (
	"fmt"
	"os"

	"github.com/chirpnet/chirpd/cmd/chirpctl/cmdutil"
	"github.com/spf13/cobra"
)

var postMedia []int64

var postCmd = &cobra.Command{
	Use:   "post <content>",
	Short: "Publish a tweet",
	Long: `Publish a tweet, optionally with media attachments.

Media ids come from 'chirpctl media upload'. Attachments are linked
immediately even while their content is still being written to the blob
store in the background.

Examples:
  # Publish a tweet
  chirpctl tweets post "hello world"

  # Publish with media attachments
  chirpctl tweets post "sunset at the beach" --media 7,8`,
	Args: cobra.ExactArgs(1),
	RunE: runPost,
}

func init() {
	postCmd.Flags().Int64SliceVarP(&postMedia, "media", "m", nil, "Media ids to attach (from 'chirpctl media upload')")
}

func runPost(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	id, err := client.CreateTweet(args[0], postMedia)
	if err != nil {
		return fmt.Errorf("failed to publish tweet: %w", err)
	}

	result := struct {
		TweetID int64 `json:"tweet_id" yaml:"tweet_id"`
	}{TweetID: id}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, result, fmt.Sprintf("Tweet %d published", id))
}
