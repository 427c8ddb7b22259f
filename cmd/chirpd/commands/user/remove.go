package user

import (
	"fmt"
	"strconv"

	"github.com/chirpnet/chirpd/internal/cli/prompt"
	"github.com/spf13/cobra"
)

var removeForce bool

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an account",
	Long: `Remove an account from the chirpd database.

The account's tweets, likes and api key are removed with it, and it is
scrubbed from every other account's follower and following lists. This
action is irreversible. You will be prompted for confirmation unless
--force is specified.

Examples:
  # Remove account with confirmation
  chirpd user remove 3

  # Remove account without confirmation
  chirpd user remove 3 --force`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "Skip confirmation prompt")
}

func runRemove(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return fmt.Errorf("invalid user id: %s", args[0])
	}

	db, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	user, err := db.GetUserByID(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	label := fmt.Sprintf("Remove user '%s' (ID %d) and all their tweets?", user.Name, id)
	confirmed, err := prompt.ConfirmWithForce(label, removeForce)
	if err != nil {
		if prompt.IsAborted(err) {
			fmt.Println("\nAborted.")
			return nil
		}
		return err
	}
	if !confirmed {
		fmt.Println("Aborted.")
		return nil
	}

	if err := db.DeleteUser(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to remove user: %w", err)
	}

	fmt.Printf("User '%s' removed.\n", user.Name)
	return nil
}
