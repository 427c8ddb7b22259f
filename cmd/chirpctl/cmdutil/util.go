// Package cmdutil carries the global flag state and the output plumbing
// shared by chirpctl subcommands.
package cmdutil

import (
	"fmt"
	"io"
	"os"

	"github.com/chirpnet/chirpd/internal/cli/credentials"
	"github.com/chirpnet/chirpd/internal/cli/output"
	"github.com/chirpnet/chirpd/internal/cli/prompt"
	"github.com/chirpnet/chirpd/pkg/apiclient"
)

// Flags holds the values of the persistent root flags. Cobra binds them
// once in root.go and every subcommand reads them from here.
var Flags = &GlobalFlags{}

// GlobalFlags mirrors the persistent flags of the root command.
type GlobalFlags struct {
	ServerURL string
	Key       string
	Output    string
	NoColor   bool
	Verbose   bool
}

// GetAuthenticatedClient builds an API client from the --server and --key
// flags or, where those are absent, from the current credential context.
func GetAuthenticatedClient() (*apiclient.Client, error) {
	url, key, err := resolveCredentials()
	if err != nil {
		return nil, err
	}
	return apiclient.New(url).WithKey(key), nil
}

// resolveCredentials merges flag overrides with the stored context. Flags
// win field by field, so --server can point an existing key at another host.
func resolveCredentials() (url, key string, err error) {
	url, key = Flags.ServerURL, Flags.Key
	if url != "" && key != "" {
		return url, key, nil
	}

	store, err := credentials.NewStore()
	if err != nil {
		return "", "", fmt.Errorf("failed to initialize credential store: %w", err)
	}
	ctx, err := store.GetCurrentContext()
	if err != nil {
		return "", "", credentials.ErrNotLoggedIn
	}

	if url == "" {
		url = ctx.ServerURL
	}
	if url == "" {
		return "", "", fmt.Errorf("no server URL configured. Run 'chirpctl login --server <url>' first")
	}
	if key == "" {
		key = ctx.APIKey
	}
	if key == "" {
		return "", "", credentials.ErrNotLoggedIn
	}
	return url, key, nil
}

// GetServerURL resolves the server URL from flags or the stored context.
// Unlike GetAuthenticatedClient it does not require an api key, for
// commands hitting unauthenticated endpoints.
func GetServerURL() (string, error) {
	if Flags.ServerURL != "" {
		return Flags.ServerURL, nil
	}

	store, err := credentials.NewStore()
	if err != nil {
		return "", fmt.Errorf("failed to initialize credential store: %w", err)
	}

	ctx, err := store.GetCurrentContext()
	if err != nil || ctx.ServerURL == "" {
		return "", fmt.Errorf("no server URL configured. Run 'chirpctl login --server <url>' first")
	}

	return ctx.ServerURL, nil
}

// GetOutputFormatParsed parses the --output flag into an output.Format.
func GetOutputFormatParsed() (output.Format, error) {
	return output.ParseFormat(Flags.Output)
}

// IsColorDisabled reports whether --no-color was set.
func IsColorDisabled() bool {
	return Flags.NoColor
}

// IsVerbose reports whether --verbose was set.
func IsVerbose() bool {
	return Flags.Verbose
}

// encode writes data to w as JSON or YAML and reports whether it did.
// Table format returns false so callers can render rows themselves.
func encode(w io.Writer, format output.Format, data any) (bool, error) {
	switch format {
	case output.FormatJSON:
		return true, output.PrintJSON(w, data)
	case output.FormatYAML:
		return true, output.PrintYAML(w, data)
	default:
		return false, nil
	}
}

// PrintOutput renders a listing in the selected format. JSON and YAML get
// the raw data; table format prints emptyMsg when there is nothing to show
// and the renderer's rows otherwise.
func PrintOutput(w io.Writer, data any, isEmpty bool, emptyMsg string, table output.TableRenderer) error {
	format, err := GetOutputFormatParsed()
	if err != nil {
		return err
	}
	if done, err := encode(w, format, data); done || err != nil {
		return err
	}
	if isEmpty {
		_, _ = fmt.Fprintln(w, emptyMsg)
		return nil
	}
	return output.PrintTable(w, table)
}

// PrintSuccess prints a green success line, but only in table format so
// JSON and YAML output stays machine-parseable.
func PrintSuccess(msg string) {
	format, err := GetOutputFormatParsed()
	if err != nil || format != output.FormatTable {
		return
	}
	printer := output.NewPrinter(os.Stdout, format, !IsColorDisabled())
	printer.Success(msg)
}

// PrintResourceWithSuccess reports the outcome of a mutating command.
// JSON and YAML get the created or updated resource; table format gets a
// success line instead.
func PrintResourceWithSuccess(w io.Writer, data any, successMsg string) error {
	format, err := GetOutputFormatParsed()
	if err != nil {
		return err
	}
	if done, err := encode(w, format, data); done || err != nil {
		return err
	}
	PrintSuccess(successMsg)
	return nil
}

// RunDeleteWithConfirmation asks before deleting (unless force is set),
// runs deleteFn, and reports the outcome.
func RunDeleteWithConfirmation(resourceType, name string, force bool, deleteFn func() error) error {
	confirmed, err := prompt.ConfirmWithForce(fmt.Sprintf("Delete %s '%s'?", resourceType, name), force)
	if err != nil {
		return HandleAbort(err)
	}
	if !confirmed {
		fmt.Println("Aborted.")
		return nil
	}

	if err := deleteFn(); err != nil {
		return err
	}

	PrintSuccess(fmt.Sprintf("%s '%s' deleted successfully", resourceType, name))
	return nil
}

// EmptyOr substitutes fallback for an empty value, for table cells that
// should read "-" rather than nothing.
func EmptyOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// HandleAbort turns a Ctrl+C during a prompt into a clean exit. Other
// errors pass through unchanged.
func HandleAbort(err error) error {
	if prompt.IsAborted(err) {
		fmt.Println("\nAborted.")
		return nil
	}
	return err
}
