package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chirpnet/chirpd/internal/bytesize"
)

// yamlSafePath converts a filesystem path to a YAML-safe representation.
// On Windows, backslashes in double-quoted YAML strings are interpreted as
// escape sequences (e.g. \U -> Unicode escape), causing parse errors.
func yamlSafePath(p string) string {
	return filepath.ToSlash(p)
}

func TestLoad_DefaultConfig(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// Write minimal config
	configContent := `
logging:
  level: "INFO"

database:
  type: sqlite
  sqlite:
    path: "` + yamlSafePath(tmpDir) + `/chirpd.db"

server:
  port: 8000
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	// Load config
	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Verify defaults were applied
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Expected default output 'stdout', got %q", cfg.Logging.Output)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected default shutdown_timeout 30s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("Expected server port 8000, got %d", cfg.Server.Port)
	}
	if cfg.Media.MaxUploadSize != 6*bytesize.MiB {
		t.Errorf("Expected default max upload size 6MiB, got %d", cfg.Media.MaxUploadSize)
	}
	if cfg.Pipeline.ReadQueueSize != 10000 {
		t.Errorf("Expected default read queue size 10000, got %d", cfg.Pipeline.ReadQueueSize)
	}
	if cfg.Pipeline.WriteQueueSize != 100000 {
		t.Errorf("Expected default write queue size 100000, got %d", cfg.Pipeline.WriteQueueSize)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	// Loading with no config file returns a valid default config.
	// This allows users to run the server without a config file for quick testing.
	tmpDir := t.TempDir()
	nonExistentPath := filepath.Join(tmpDir, "nonexistent.yaml")

	cfg, err := Load(nonExistentPath)
	if err != nil {
		t.Fatalf("Expected no error when loading default config, got: %v", err)
	}

	// Verify default config is returned
	if cfg == nil {
		t.Fatal("Expected default config to be returned")
	}

	// Verify default API port
	if cfg.Server.Port != 8000 {
		t.Errorf("Expected default API port 8000, got %d", cfg.Server.Port)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	// Write invalid YAML
	configContent := `
logging:
  level: INFO
  invalid yaml here [[[
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	// Should return error
	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Expected error with invalid YAML, got nil")
	}
}

func TestLoad_TOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	configContent := `
[logging]
level = "WARN"
format = "json"

[database]
type = "sqlite"

[database.sqlite]
path = "` + yamlSafePath(tmpDir) + `/chirpd.db"

[server]
port = 8000

[media]
max_upload_size = "10Mi"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load TOML config: %v", err)
	}

	if cfg.Logging.Level != "WARN" {
		t.Errorf("Expected level 'WARN', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Expected format 'json', got %q", cfg.Logging.Format)
	}
	if cfg.Media.MaxUploadSize != 10*bytesize.MiB {
		t.Errorf("Expected max upload size 10Mi, got %d", cfg.Media.MaxUploadSize)
	}
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	// Verify all defaults are set
	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected default log level 'INFO', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default log format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Expected default log output 'stdout', got %q", cfg.Logging.Output)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected default shutdown timeout 30s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("Expected default API port 8000, got %d", cfg.Server.Port)
	}
	if cfg.Media.Root != filepath.Join("static", "images") {
		t.Errorf("Expected default media root 'static/images', got %q", cfg.Media.Root)
	}
	if cfg.Media.Store.Type != "fs" {
		t.Errorf("Expected default media store type 'fs', got %q", cfg.Media.Store.Type)
	}
	if cfg.Pipeline.StopTimeout != 10*time.Second {
		t.Errorf("Expected default pipeline stop timeout 10s, got %v", cfg.Pipeline.StopTimeout)
	}
	if cfg.Sentry.TracesSampleRate != 0.8 {
		t.Errorf("Expected default sentry traces sample rate 0.8, got %v", cfg.Sentry.TracesSampleRate)
	}
}

func TestGetDefaultConfigPath(t *testing.T) {
	path := GetDefaultConfigPath()

	// Should contain chirpd and config.yaml
	if !filepath.IsAbs(path) {
		t.Errorf("Expected absolute path, got %q", path)
	}
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("Expected filename 'config.yaml', got %q", filepath.Base(path))
	}
}

func TestGetConfigDir(t *testing.T) {
	dir := GetConfigDir()

	// Should contain chirpd
	if filepath.Base(dir) != "chirpd" {
		t.Errorf("Expected directory name 'chirpd', got %q", filepath.Base(dir))
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	// Set environment variables
	_ = os.Setenv("CHIRPD_LOGGING_LEVEL", "ERROR")
	_ = os.Setenv("CHIRPD_SERVER_PORT", "9000")
	defer func() {
		_ = os.Unsetenv("CHIRPD_LOGGING_LEVEL")
		_ = os.Unsetenv("CHIRPD_SERVER_PORT")
	}()

	// Create minimal config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
logging:
  level: "INFO"

database:
  type: sqlite
  sqlite:
    path: "` + yamlSafePath(tmpDir) + `/chirpd.db"

server:
  port: 8000
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Verify environment variables override config file
	if cfg.Logging.Level != "ERROR" {
		t.Errorf("Expected level 'ERROR' from env var, got %q", cfg.Logging.Level)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Expected port 9000 from env var, got %d", cfg.Server.Port)
	}
}
