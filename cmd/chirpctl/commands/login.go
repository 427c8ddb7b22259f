package commands

import (
	"fmt"
	"net/url"

	"github.com/chirpnet/chirpd/cmd/chirpctl/cmdutil"
	"github.com/chirpnet/chirpd/internal/cli/credentials"
	"github.com/chirpnet/chirpd/internal/cli/prompt"
	"github.com/chirpnet/chirpd/pkg/apiclient"
	"github.com/spf13/cobra"
)

var (
	loginServer string
	loginKey    string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with a chirpd server",
	Long: `Authenticate with a chirpd server and store the api key.

On first login, you must specify the server URL. Subsequent logins will
use the stored server URL unless overridden. The key is verified against
the server before it is saved, and the account name is read from the
server.

Api keys are minted on the server with 'chirpd user add'.

Examples:
  # First login to a server
  chirpctl login --server http://localhost:8000

  # Login with the key on the command line (less secure)
  chirpctl login --server http://localhost:8000 -k 1d95b1f8-...

  # Re-login to stored server
  chirpctl login`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginServer, "server", "", "Server URL (required on first login)")
	loginCmd.Flags().StringVarP(&loginKey, "key", "k", "", "API key (prompts if not provided)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}

	serverURL, err := resolveLoginServer(store)
	if err != nil {
		return err
	}

	apiKey := loginKey
	if apiKey == "" {
		apiKey, err = prompt.Secret("API key")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	// A bad key should fail here, not on the first real command. Me also
	// resolves the account name the key belongs to.
	client := apiclient.New(serverURL).WithKey(apiKey)

	fmt.Printf("Logging in to %s...\n", serverURL)
	profile, err := client.Me()
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	contextName := store.GetCurrentContextName()
	if contextName == "" {
		contextName = credentials.GenerateContextName(serverURL)
	}

	err = store.SetContext(contextName, &credentials.Context{
		ServerURL: serverURL,
		Username:  profile.Name,
		APIKey:    apiKey,
	})
	if err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	if err := store.UseContext(contextName); err != nil {
		return fmt.Errorf("failed to set current context: %w", err)
	}

	fmt.Printf("Logged in successfully as %s (user ID %d)\n", profile.Name, profile.ID)
	fmt.Printf("Context: %s\n", contextName)
	fmt.Printf("Credentials saved to: %s\n", store.ConfigPath())

	return nil
}

// resolveLoginServer picks the server URL from the --server flag or the
// stored context, defaulting the scheme to http for bare host:port values.
func resolveLoginServer(store *credentials.Store) (string, error) {
	serverURL := loginServer
	if serverURL == "" {
		ctx, err := store.GetCurrentContext()
		if err != nil || ctx == nil || ctx.ServerURL == "" {
			return "", fmt.Errorf("no server URL specified and no saved context found\n\n" +
				"Specify server URL:\n" +
				"  chirpctl login --server http://localhost:8000")
		}
		serverURL = ctx.ServerURL
	}

	parsed, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}
	if parsed.Scheme == "" {
		parsed.Scheme = "http"
		serverURL = parsed.String()
	}
	return serverURL, nil
}
