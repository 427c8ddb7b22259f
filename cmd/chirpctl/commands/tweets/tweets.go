// Package tweets implements feed and publishing commands for chirpctl.
package tweets

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// Cmd is the parent command for tweet management.
var Cmd = &cobra.Command{
	Use:   "tweets",
	Short: "Feed and publishing",
	Long: `Read the feed and manage your tweets on the chirpd server.

Examples:
  # Show the feed
  chirpctl tweets list

  # Publish a tweet
  chirpctl tweets post "hello world"

  # Publish with media attachments
  chirpctl tweets post "sunset" --media 7,8

  # Like and unlike
  chirpctl tweets like 42
  chirpctl tweets unlike 42

  # Delete one of your tweets
  chirpctl tweets delete 42`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(postCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(likeCmd)
	Cmd.AddCommand(unlikeCmd)
}

// parseTweetID parses a positive tweet id from a command argument.
func parseTweetID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid tweet id: %s", arg)
	}
	return id, nil
}
