// Package users implements profile and follow commands for chirpctl.
package users

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chirpnet/chirpd/cmd/chirpctl/cmdutil"
	"github.com/chirpnet/chirpd/internal/cli/output"
	"github.com/chirpnet/chirpd/pkg/apiclient"
	"github.com/spf13/cobra"
)

// Cmd is the parent command for profile management.
var Cmd = &cobra.Command{
	Use:   "users",
	Short: "Profiles and follows",
	Long: `Look up profiles and manage who you follow on the chirpd server.

Examples:
  # Show your own profile
  chirpctl users me

  # Show another profile
  chirpctl users show 2

  # Follow and unfollow
  chirpctl users follow 2
  chirpctl users unfollow 2`,
}

func init() {
	Cmd.AddCommand(meCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(followCmd)
	Cmd.AddCommand(unfollowCmd)
}

// parseUserID parses a positive user id from a command argument.
func parseUserID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid user id: %s", arg)
	}
	return id, nil
}

// printProfile renders a profile in the configured output format.
func printProfile(profile *apiclient.UserProfile) error {
	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, profile)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, profile)
	default:
		return output.SimpleTable(os.Stdout, [][2]string{
			{"ID", strconv.FormatInt(profile.ID, 10)},
			{"Name", profile.Name},
			{"Followers", cmdutil.EmptyOr(formatEdges(profile.Followers), "-")},
			{"Following", cmdutil.EmptyOr(formatEdges(profile.Following), "-")},
		})
	}
}

// formatEdges renders follow edges as "name (id)" pairs.
func formatEdges(edges []apiclient.EdgeRef) string {
	parts := make([]string, 0, len(edges))
	for _, e := range edges {
		parts = append(parts, fmt.Sprintf("%s (%d)", e.Name, e.ID))
	}
	return strings.Join(parts, ", ")
}
