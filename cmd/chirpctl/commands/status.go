package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/chirpnet/chirpd/cmd/chirpctl/cmdutil"
	"github.com/chirpnet/chirpd/internal/cli/health"
	"github.com/chirpnet/chirpd/internal/cli/output"
	"github.com/chirpnet/chirpd/internal/cli/timeutil"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server status",
	Long: `Probe the health and readiness endpoints of the connected server.

Reports liveness, uptime, and the media pipeline queue depths. The command
works without an api key since the health endpoints are unauthenticated.

Examples:
  # Check status of connected server
  chirpctl status

  # Output as JSON
  chirpctl status -o json`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// ServerStatus represents the server status for display.
type ServerStatus struct {
	Server     string `json:"server" yaml:"server"`
	Status     string `json:"status" yaml:"status"`
	Healthy    bool   `json:"healthy" yaml:"healthy"`
	Ready      bool   `json:"ready" yaml:"ready"`
	Service    string `json:"service,omitempty" yaml:"service,omitempty"`
	StartedAt  string `json:"started_at,omitempty" yaml:"started_at,omitempty"`
	Uptime     string `json:"uptime,omitempty" yaml:"uptime,omitempty"`
	ReadQueue  int    `json:"read_queue" yaml:"read_queue"`
	WriteQueue int    `json:"write_queue" yaml:"write_queue"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	serverURL, err := cmdutil.GetServerURL()
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 5 * time.Second}
	status := probeServer(client, serverURL)

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, status)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, status)
	default:
		printStatusTable(status)
		return nil
	}
}

// probeServer fills a ServerStatus from the health and readiness endpoints.
// An unreachable server yields status "unreachable" rather than an error,
// so every output format can still render the result.
func probeServer(client *http.Client, serverURL string) ServerStatus {
	status := ServerStatus{
		Server: serverURL,
		Status: "unreachable",
	}

	if cmdutil.IsVerbose() {
		fmt.Fprintf(os.Stderr, "Checking %s/health\n", serverURL)
	}

	if err := fetchHealth(client, serverURL, &status); err != nil {
		status.Error = err.Error()
		return status
	}
	if status.Healthy {
		fetchReadiness(client, serverURL, &status)
	}
	return status
}

func fetchHealth(client *http.Client, serverURL string, status *ServerStatus) error {
	resp, err := client.Get(serverURL + "/health")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	var healthResp health.Response
	if err := json.NewDecoder(resp.Body).Decode(&healthResp); err != nil {
		status.Status = "unknown"
		return errors.New("failed to parse health response")
	}

	status.Status = healthResp.Status
	status.Healthy = healthResp.Status == "healthy"
	status.Service = healthResp.Data.Service
	status.StartedAt = healthResp.Data.StartedAt
	status.Uptime = healthResp.Data.Uptime
	if healthResp.Error != "" {
		status.Error = healthResp.Error
	}
	return nil
}

// fetchReadiness adds the pipeline queue depths. Readiness answers 503 with
// the same envelope when a dependency is down, so the body decodes either way.
func fetchReadiness(client *http.Client, serverURL string, status *ServerStatus) {
	resp, err := client.Get(serverURL + "/health/ready")
	if err != nil {
		return
	}
	defer func() { _ = resp.Body.Close() }()

	var readyResp health.Readiness
	if err := json.NewDecoder(resp.Body).Decode(&readyResp); err != nil {
		return
	}

	status.Ready = readyResp.Status == "healthy"
	status.ReadQueue = readyResp.Data.Pipeline.ReadQueue
	status.WriteQueue = readyResp.Data.Pipeline.WriteQueue
	if readyResp.Error != "" {
		status.Error = readyResp.Error
	}
}

func printStatusTable(status ServerStatus) {
	fmt.Println()
	fmt.Println("Chirpd Server Status")
	fmt.Println("====================")
	fmt.Println()
	fmt.Printf("  Server:     %s\n", status.Server)

	switch {
	case status.Healthy:
		fmt.Printf("  Status:     \033[32m● %s\033[0m\n", status.Status)
	case status.Status == "unreachable":
		fmt.Printf("  Status:     \033[31m○ %s\033[0m\n", status.Status)
	default:
		fmt.Printf("  Status:     \033[33m● %s\033[0m\n", status.Status)
	}

	if status.Service != "" {
		fmt.Printf("  Service:    %s\n", status.Service)
	}
	if status.StartedAt != "" {
		fmt.Printf("  Started:    %s\n", timeutil.FormatTime(status.StartedAt))
	}
	if status.Uptime != "" {
		fmt.Printf("  Uptime:     %s\n", timeutil.FormatUptime(status.Uptime))
	}
	if status.Healthy {
		if status.Ready {
			fmt.Printf("  Ready:      yes (read queue %d, write queue %d)\n", status.ReadQueue, status.WriteQueue)
		} else {
			fmt.Printf("  Ready:      no\n")
		}
	}
	if status.Error != "" {
		fmt.Printf("  Error:      %s\n", status.Error)
	}
	fmt.Println()
}
