package tweets

import (
	"fmt"
	"os"
	"strconv"

	"github.com/chirpnet/chirpd/cmd/chirpctl/cmdutil"
	"github.com/chirpnet/chirpd/pkg/apiclient"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the feed",
	Long: `Show the global feed, newest tweets first.

Examples:
  # Show the feed as a table
  chirpctl tweets list

  # Show as JSON
  chirpctl tweets list -o json`,
	RunE: runList,
}

// TweetList is a feed page for table rendering.
type TweetList []apiclient.Tweet

// Headers implements TableRenderer.
func (tl TweetList) Headers() []string {
	return []string{"ID", "AUTHOR", "CONTENT", "LIKES", "MEDIA"}
}

// Rows implements TableRenderer.
func (tl TweetList) Rows() [][]string {
	rows := make([][]string, 0, len(tl))
	for _, t := range tl {
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			t.Author.Name,
			t.Content,
			strconv.Itoa(len(t.Likes)),
			strconv.Itoa(len(t.Attachments)),
		})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	tweets, err := client.ListTweets()
	if err != nil {
		return fmt.Errorf("failed to list tweets: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, tweets, len(tweets) == 0, "No tweets yet.", TweetList(tweets))
}
