package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetConfigDir validates config directory access
func TestGetConfigDir(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, Init(filepath.Join(tempDir, "test_config")))

	configDir := GetConfigDir()
	require.NotEmpty(t, configDir)

	_, err := os.Stat(configDir)
	assert.NoError(t, err, "config directory should exist")
}

// TestGetCredentialsPath validates credentials path
func TestGetCredentialsPath(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, Init(filepath.Join(tempDir, "test_config")))

	credsPath := GetCredentialsPath()
	assert.True(t, filepath.IsAbs(credsPath), "credentials path should be absolute")
	assert.True(t, strings.HasPrefix(credsPath, GetConfigDir()))
}

// TestInitWithCustomPath validates custom config path
func TestInitWithCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	customConfigPath := filepath.Join(tempDir, "custom", "path", "config.toml")

	require.NoError(t, Init(customConfigPath))
	assert.Equal(t, filepath.Join(tempDir, "custom", "path"), GetConfigDir())
	assert.Equal(t, customConfigPath, GetConfigFilePath())
}

func TestDefaults(t *testing.T) {
	require.NoError(t, Init(filepath.Join(t.TempDir(), "config.toml")))

	assert.Equal(t, "text", GetString("output.format"))
	assert.Equal(t, 30, GetInt("api.timeout"))
	assert.Equal(t, "http://localhost:5000", GetString("api.base_url"))
	assert.Equal(t, "info", GetString("log.level"))
	assert.Equal(t, 5*time.Second, GetMillis("alerts.timeout_ms"))
	assert.Equal(t, time.Minute, GetMillis("views.cooldown_ms"))
	assert.Equal(t, "half", GetString("feed.threshold"))
	assert.Equal(t, 3, GetInt("search.min_length"))
}

func TestRedirectURLDerivesFromBaseURL(t *testing.T) {
	require.NoError(t, Init(filepath.Join(t.TempDir(), "config.toml")))

	Override("api.base_url", "https://blog.example.com/")
	assert.Equal(t, "https://blog.example.com/oauth/_handler", GetString("identity.redirect_url"))

	Override("identity.redirect_url", "https://elsewhere.example.com/cb")
	assert.Equal(t, "https://elsewhere.example.com/cb", GetString("identity.redirect_url"))
}

func TestUserConfigFileIsRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[api]\nbase_url = \"https://blog.example.com\"\n\n[views]\ncooldown_ms = 1000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	require.NoError(t, Init(path))
	assert.Equal(t, "https://blog.example.com", GetString("api.base_url"))
	assert.Equal(t, time.Second, GetMillis("views.cooldown_ms"))
	// untouched keys keep their defaults
	assert.Equal(t, 30, GetInt("api.timeout"))
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("INKBLOOM_API_TIMEOUT", "7")
	require.NoError(t, Init(filepath.Join(t.TempDir(), "config.toml")))

	assert.Equal(t, 7, GetInt("api.timeout"))
}

func TestDotEnvIsLoaded(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("INKBLOOM_SEARCH_DEBOUNCE_MS=50\n"), 0600))
	t.Cleanup(func() { os.Unsetenv("INKBLOOM_SEARCH_DEBOUNCE_MS") })

	require.NoError(t, Init(filepath.Join(dir, "config.toml")))
	assert.Equal(t, 50*time.Millisecond, GetMillis("search.debounce_ms"))
}

func TestSetStringPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, Init(path))

	require.NoError(t, SetString("api.base_url", "https://persisted.example.com"))

	require.NoError(t, Init(path))
	assert.Equal(t, "https://persisted.example.com", GetString("api.base_url"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "state.db"), expandPath("~/state.db"))
	assert.Equal(t, "/abs/state.db", expandPath("/abs/state.db"))
	assert.Equal(t, "", expandPath(""))
}

func TestKeysAreSorted(t *testing.T) {
	require.NoError(t, Init(filepath.Join(t.TempDir(), "config.toml")))

	keys := Keys()
	require.NotEmpty(t, keys)
	for i := 1; i < len(keys); i++ {
		assert.LessOrEqual(t, keys[i-1], keys[i])
	}
	assert.Contains(t, keys, "views.cooldown_ms")
}
