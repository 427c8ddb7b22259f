package user

import (
	"fmt"

	"github.com/chirpnet/chirpd/internal/cli/prompt"
	"github.com/chirpnet/chirpd/pkg/models"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a new account",
	Long: `Create a new account in the chirpd database.

The account name must be unique. A fresh api key is generated and printed
once; it is the only credential clients use against the REST API.

Examples:
  # Create an account
  chirpd user add alice

  # Prompt for the name
  chirpd user add`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	var name string
	if len(args) > 0 {
		name = args[0]
	} else {
		var err error
		name, err = prompt.InputRequired("Name")
		if err != nil {
			if prompt.IsAborted(err) {
				fmt.Println("\nAborted.")
				return nil
			}
			return err
		}
	}

	db, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	apiKey := uuid.New().String()
	user := &models.User{Name: name}

	if err := db.CreateUser(cmd.Context(), user, apiKey); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("User '%s' created (ID %d)\n", user.Name, user.ID)
	fmt.Printf("\n*** IMPORTANT: API key for '%s': %s ***\n", user.Name, apiKey)
	fmt.Println("Please save this key. It will not be shown again.")

	return nil
}
