package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configHeader is prepended to generated configuration files.
const configHeader = `# Chirpd Configuration File
#
# Generated by 'chirpd init'. All values shown are the defaults.
# Any value can be overridden with a CHIRPD_* environment variable,
# e.g. CHIRPD_LOGGING_LEVEL=DEBUG or CHIRPD_SERVER_PORT=9000.

`

// InitConfig creates a configuration file with default values at the
// default location ($XDG_CONFIG_HOME/chirpd/config.yaml).
//
// Returns the path of the created file. Fails if a configuration file
// already exists unless force is true.
func InitConfig(force bool) (string, error) {
	configPath := GetDefaultConfigPath()
	if err := InitConfigToPath(configPath, force); err != nil {
		return "", err
	}
	return configPath, nil
}

// InitConfigToPath creates a configuration file with default values at
// the given path, creating parent directories as needed.
//
// Fails if the file already exists unless force is true.
func InitConfigToPath(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(GetDefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	content := append([]byte(configHeader), data...)
	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
