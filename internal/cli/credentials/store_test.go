package credentials

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tempConfigHome redirects the credential file into a fresh temp dir.
func tempConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestContextHasAPIKey(t *testing.T) {
	ctx := &Context{}
	assert.False(t, ctx.HasAPIKey())

	ctx.APIKey = "f7a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6"
	assert.True(t, ctx.HasAPIKey())
}

func TestStoreOperations(t *testing.T) {
	tmpDir := tempConfigHome(t)

	store, err := NewStore()
	require.NoError(t, err)
	assert.NotNil(t, store)

	// Verify config file location
	expectedPath := filepath.Join(tmpDir, DefaultConfigDir, ConfigFileName)
	assert.Equal(t, expectedPath, store.ConfigPath())

	// Test empty state
	_, err = store.GetCurrentContext()
	assert.ErrorIs(t, err, ErrNoCurrentContext)
	assert.Empty(t, store.ListContexts())

	// Add a context
	ctx1 := &Context{
		ServerURL: "http://localhost:8000",
		Username:  "alice",
		APIKey:    "test-key-1",
	}
	err = store.SetContext("default", ctx1)
	require.NoError(t, err)

	// First context becomes current automatically
	assert.Equal(t, "default", store.GetCurrentContextName())

	// Get current context
	current, err := store.GetCurrentContext()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", current.ServerURL)
	assert.Equal(t, "alice", current.Username)

	// Add another context
	ctx2 := &Context{
		ServerURL: "http://production:8000",
		Username:  "ops",
	}
	err = store.SetContext("production", ctx2)
	require.NoError(t, err)

	// List contexts
	contexts := store.ListContexts()
	assert.Len(t, contexts, 2)
	assert.Contains(t, contexts, "default")
	assert.Contains(t, contexts, "production")

	// Switch context
	err = store.UseContext("production")
	require.NoError(t, err)
	assert.Equal(t, "production", store.GetCurrentContextName())

	// Delete context
	err = store.DeleteContext("production")
	require.NoError(t, err)
	assert.Empty(t, store.GetCurrentContextName())

	// Try to get non-existent context
	_, err = store.GetContext("nonexistent")
	assert.ErrorIs(t, err, ErrContextNotFound)

	// Try to use non-existent context
	err = store.UseContext("nonexistent")
	assert.ErrorIs(t, err, ErrContextNotFound)
}

func TestStoreSetAPIKey(t *testing.T) {
	tempConfigHome(t)

	store, err := NewStore()
	require.NoError(t, err)

	// Create and use a context
	ctx := &Context{
		ServerURL: "http://localhost:8000",
	}
	err = store.SetContext("default", ctx)
	require.NoError(t, err)

	// Login stores username and key
	err = store.SetAPIKey("alice", "fresh-key")
	require.NoError(t, err)

	current, err := store.GetCurrentContext()
	require.NoError(t, err)
	assert.Equal(t, "alice", current.Username)
	assert.Equal(t, "fresh-key", current.APIKey)

	// Persisted across store instances
	store2, err := NewStore()
	require.NoError(t, err)
	current2, err := store2.GetCurrentContext()
	require.NoError(t, err)
	assert.Equal(t, "fresh-key", current2.APIKey)
}

func TestStoreClearAPIKey(t *testing.T) {
	tempConfigHome(t)

	store, err := NewStore()
	require.NoError(t, err)

	// Create and use a context with a key
	ctx := &Context{
		ServerURL: "http://localhost:8000",
		Username:  "alice",
		APIKey:    "secret",
	}
	err = store.SetContext("default", ctx)
	require.NoError(t, err)

	// Logout
	err = store.ClearAPIKey()
	require.NoError(t, err)

	// Verify key cleared but server remains
	current, err := store.GetCurrentContext()
	require.NoError(t, err)
	assert.Empty(t, current.APIKey)
	assert.Empty(t, current.Username)
	assert.Equal(t, "http://localhost:8000", current.ServerURL)
}

func TestGenerateContextName(t *testing.T) {
	tests := []struct {
		serverURL string
		want      string
	}{
		{"http://localhost:8000", "default"},
		{"http://127.0.0.1:8000", "default"},
		{"", "default"},
		{"http://chirp.example.com", "chirp.example.com"},
		{"https://chirp.example.com:8443", "chirp.example.com"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GenerateContextName(tt.serverURL), "url %q", tt.serverURL)
	}
}

func TestStorePreferences(t *testing.T) {
	tempConfigHome(t)

	store, err := NewStore()
	require.NoError(t, err)

	// Get default preferences
	prefs := store.GetPreferences()
	assert.Empty(t, prefs.DefaultOutput)
	assert.Empty(t, prefs.Color)

	// Set preferences
	newPrefs := Preferences{
		DefaultOutput: "json",
		Color:         "auto",
	}
	err = store.SetPreferences(newPrefs)
	require.NoError(t, err)

	// Verify preferences persisted
	prefs = store.GetPreferences()
	assert.Equal(t, "json", prefs.DefaultOutput)
	assert.Equal(t, "auto", prefs.Color)
}
