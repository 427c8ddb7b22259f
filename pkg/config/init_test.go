package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// useTempConfigHome points getConfigDir at a fresh temp directory.
// XDG_CONFIG_HOME is used instead of HOME because os.UserHomeDir reads
// USERPROFILE on Windows.
func useTempConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestInitConfig(t *testing.T) {
	useTempConfigHome(t)

	configPath, err := InitConfig(false)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("reading generated config: %v", err)
	}

	for _, section := range []string{
		"# Chirpd Configuration File",
		"logging:",
		"server:",
		"database:",
		"media:",
		"pipeline:",
	} {
		if !strings.Contains(string(content), section) {
			t.Errorf("generated config missing %q", section)
		}
	}

	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		t.Fatalf("generated config is not valid YAML: %v", err)
	}
}

func TestInitConfigRefusesOverwrite(t *testing.T) {
	useTempConfigHome(t)

	if _, err := InitConfig(false); err != nil {
		t.Fatalf("first InitConfig failed: %v", err)
	}

	_, err := InitConfig(false)
	if err == nil {
		t.Fatal("expected error when config already exists")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected 'already exists' error, got: %v", err)
	}

	// force replaces the existing file
	path, err := InitConfig(true)
	if err != nil {
		t.Fatalf("InitConfig with force failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat recreated config: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("recreated config file is empty")
	}
}

func TestInitConfigToPath(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "custom", "config.yaml")

	if err := InitConfigToPath(configPath, false); err != nil {
		t.Fatalf("InitConfigToPath failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("reading generated config: %v", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		t.Fatalf("generated config is not valid YAML: %v", err)
	}
}

func TestInitConfigToPathRefusesOverwrite(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	if err := InitConfigToPath(configPath, false); err != nil {
		t.Fatalf("first InitConfigToPath failed: %v", err)
	}

	err := InitConfigToPath(configPath, false)
	if err == nil {
		t.Fatal("expected error when config already exists")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected 'already exists' error, got: %v", err)
	}

	if err := InitConfigToPath(configPath, true); err != nil {
		t.Fatalf("InitConfigToPath with force failed: %v", err)
	}
}

func TestGeneratedConfigIsLoadable(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	if err := InitConfigToPath(configPath, false); err != nil {
		t.Fatalf("InitConfigToPath failed: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("loading generated config: %v", err)
	}

	if cfg.Logging.Level != "INFO" {
		t.Errorf("log level = %q, want INFO", cfg.Logging.Level)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("server port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Pipeline.ReadQueueSize != 10000 {
		t.Errorf("read queue size = %d, want 10000", cfg.Pipeline.ReadQueueSize)
	}
	if cfg.Media.Store.Type != "fs" {
		t.Errorf("media store type = %q, want fs", cfg.Media.Store.Type)
	}
}
