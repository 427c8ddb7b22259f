package user

import (
	"fmt"
	"os"
	"strconv"

	"github.com/chirpnet/chirpd/internal/cli/output"
	"github.com/spf13/cobra"
)

var listOutput string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts",
	Long: `List all accounts in the chirpd database.

Examples:
  # List accounts as table
  chirpd user list

  # List as JSON
  chirpd user list -o json`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "table", "Output format (table|json|yaml)")
}

// userRow is one account prepared for display.
type userRow struct {
	ID        int64  `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Followers int    `json:"followers" yaml:"followers"`
	Following int    `json:"following" yaml:"following"`
}

// userTable renders accounts as a table.
type userTable []userRow

// Headers implements TableRenderer.
func (t userTable) Headers() []string {
	return []string{"ID", "NAME", "FOLLOWERS", "FOLLOWING"}
}

// Rows implements TableRenderer.
func (t userTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, u := range t {
		rows = append(rows, []string{
			strconv.FormatInt(u.ID, 10),
			u.Name,
			strconv.Itoa(u.Followers),
			strconv.Itoa(u.Following),
		})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	users, err := db.ListUsers(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	rows := make(userTable, 0, len(users))
	for _, u := range users {
		followers, err := u.GetFollowers()
		if err != nil {
			return fmt.Errorf("failed to parse edges for user %d: %w", u.ID, err)
		}
		following, err := u.GetFollowing()
		if err != nil {
			return fmt.Errorf("failed to parse edges for user %d: %w", u.ID, err)
		}
		rows = append(rows, userRow{
			ID:        u.ID,
			Name:      u.Name,
			Followers: len(followers),
			Following: len(following),
		})
	}

	format, err := output.ParseFormat(listOutput)
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, rows)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, rows)
	default:
		if len(rows) == 0 {
			fmt.Println("No users found.")
			return nil
		}
		return output.PrintTable(os.Stdout, rows)
	}
}
