package tweets

import (
	"fmt"

	"github.com/chirpnet/chirpd/cmd/chirpctl/cmdutil"
	"github.com/spf13/cobra"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a tweet",
	Long: `Delete one of your tweets from the chirpd server.

Only the author can delete a tweet. This action is irreversible. You
will be prompted for confirmation unless --force is specified.

Examples:
  # Delete tweet with confirmation
  chirpctl tweets delete 42

  # Delete tweet without confirmation
  chirpctl tweets delete 42 --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseTweetID(args[0])
	if err != nil {
		return err
	}

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	return cmdutil.RunDeleteWithConfirmation("Tweet", args[0], deleteForce, func() error {
		if err := client.DeleteTweet(id); err != nil {
			return fmt.Errorf("failed to delete tweet: %w", err)
		}
		return nil
	})
}
