// Package credentials persists chirpctl's server contexts and API keys
// under the user's XDG config directory. A context pairs a server URL
// with the key obtained at login; the store keeps any number of named
// contexts and tracks which one is current.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

const (
	// DefaultConfigDir is the directory under XDG_CONFIG_HOME holding
	// chirpctl state.
	DefaultConfigDir = "chirpctl"
	// ConfigFileName is the credential file name inside DefaultConfigDir.
	ConfigFileName = "config.json"
	// FilePermissions keeps stored API keys readable by the owner only.
	FilePermissions = 0600
	// DirPermissions applies to the created config directory.
	DirPermissions = 0700
)

var (
	// ErrNoCurrentContext means no context has been selected yet.
	ErrNoCurrentContext = errors.New("no current context set")
	// ErrContextNotFound means the named context does not exist.
	ErrContextNotFound = errors.New("context not found")
	// ErrNotLoggedIn means the current context has no API key.
	ErrNotLoggedIn = errors.New("not logged in - run 'chirpctl login' first")
)

// Context is a named connection to a chirpd server.
type Context struct {
	ServerURL string `json:"server_url"`
	Username  string `json:"username,omitempty"`
	APIKey    string `json:"api_key,omitempty"`
}

// HasAPIKey reports whether this context holds a key.
func (c *Context) HasAPIKey() bool {
	return c.APIKey != ""
}

// Preferences holds per-user display defaults.
type Preferences struct {
	DefaultOutput string `json:"default_output,omitempty"` // table, json, yaml
	Color         string `json:"color,omitempty"`          // auto, always, never
}

// Config is the on-disk shape of the credential file.
type Config struct {
	CurrentContext string              `json:"current_context"`
	Contexts       map[string]*Context `json:"contexts"`
	Preferences    Preferences         `json:"preferences,omitempty"`
}

// Store reads and writes the credential file. Every mutation is written
// back to disk immediately.
type Store struct {
	path   string
	config *Config
}

// NewStore opens the credential file, creating an empty in-memory config
// when none exists yet. Nothing is written until the first mutation.
func NewStore() (*Store, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, err
	}

	cfg, err := readConfig(path)
	if err != nil {
		return nil, err
	}

	return &Store{path: path, config: cfg}, nil
}

// configFilePath resolves XDG_CONFIG_HOME, falling back to ~/.config.
func configFilePath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, DefaultConfigDir, ConfigFileName), nil
}

func readConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{Contexts: make(map[string]*Context)}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("corrupt credential file %s: %w", path, err)
	}
	if cfg.Contexts == nil {
		cfg.Contexts = make(map[string]*Context)
	}
	return &cfg, nil
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), DirPermissions); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := json.MarshalIndent(s.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, FilePermissions)
}

// ConfigPath returns where credentials are stored on disk.
func (s *Store) ConfigPath() string {
	return s.path
}

// GetCurrentContext returns the selected context.
func (s *Store) GetCurrentContext() (*Context, error) {
	if s.config.CurrentContext == "" {
		return nil, ErrNoCurrentContext
	}
	return s.GetContext(s.config.CurrentContext)
}

// GetCurrentContextName returns the selected context's name, or "".
func (s *Store) GetCurrentContextName() string {
	return s.config.CurrentContext
}

// GetContext looks up a context by name.
func (s *Store) GetContext(name string) (*Context, error) {
	ctx, ok := s.config.Contexts[name]
	if !ok {
		return nil, ErrContextNotFound
	}
	return ctx, nil
}

// ListContexts returns the names of all stored contexts.
func (s *Store) ListContexts() []string {
	names := make([]string, 0, len(s.config.Contexts))
	for name := range s.config.Contexts {
		names = append(names, name)
	}
	return names
}

// SetContext stores or replaces a context. The first context added
// becomes the current one.
func (s *Store) SetContext(name string, ctx *Context) error {
	s.config.Contexts[name] = ctx
	if s.config.CurrentContext == "" {
		s.config.CurrentContext = name
	}
	return s.save()
}

// UseContext selects an existing context.
func (s *Store) UseContext(name string) error {
	if _, ok := s.config.Contexts[name]; !ok {
		return ErrContextNotFound
	}
	s.config.CurrentContext = name
	return s.save()
}

// DeleteContext removes a context. Deleting the current context leaves
// no context selected.
func (s *Store) DeleteContext(name string) error {
	if _, ok := s.config.Contexts[name]; !ok {
		return ErrContextNotFound
	}
	delete(s.config.Contexts, name)
	if s.config.CurrentContext == name {
		s.config.CurrentContext = ""
	}
	return s.save()
}

// SetAPIKey records a successful login on the current context.
func (s *Store) SetAPIKey(username, apiKey string) error {
	ctx, err := s.GetCurrentContext()
	if err != nil {
		return err
	}
	ctx.Username = username
	ctx.APIKey = apiKey
	return s.save()
}

// ClearAPIKey logs the current context out, keeping its server URL.
func (s *Store) ClearAPIKey() error {
	ctx, err := s.GetCurrentContext()
	if err != nil {
		return err
	}
	ctx.Username = ""
	ctx.APIKey = ""
	return s.save()
}

// GetPreferences returns the stored display preferences.
func (s *Store) GetPreferences() Preferences {
	return s.config.Preferences
}

// SetPreferences replaces the stored display preferences.
func (s *Store) SetPreferences(prefs Preferences) error {
	s.config.Preferences = prefs
	return s.save()
}

// GenerateContextName derives a context name from a server URL. Local
// servers map to "default" so the common single-server setup reads
// naturally; remote servers use their hostname.
func GenerateContextName(serverURL string) string {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "default"
	}
	switch host := u.Hostname(); host {
	case "", "localhost", "127.0.0.1", "::1":
		return "default"
	default:
		return host
	}
}
