package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chirpnet/chirpd/internal/logger"
	"github.com/chirpnet/chirpd/pkg/config"
)

// InitLogger configures the process-wide logger from the logging section
// of the server configuration.
func InitLogger(cfg *config.Config) error {
	err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// GetDefaultStateDir returns the directory for runtime state such as the
// daemon PID and log files, following the XDG base directory convention.
func GetDefaultStateDir() string {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "/tmp"
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}
	return filepath.Join(stateDir, "chirpd")
}
