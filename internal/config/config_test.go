package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notionhabit/internal/config"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, config.EnvPrefix+"_") || key == "NOTION_TOKEN" {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_STATE_HOME", "/state")
	dir := t.TempDir()

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, config.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, config.DefaultNotionVersion, cfg.NotionVersion)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 1, cfg.MaxPages)
	assert.Equal(t, 500*time.Millisecond, cfg.Pace)
	assert.Equal(t, filepath.Join("/state", "notionhabit", "logs"), cfg.LogDir)
	assert.ErrorIs(t, cfg.Validate(), config.ErrMissingCredentials)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	yaml := "token: file-token\ndatabase_id: file-db\npace: 2s\nmax_pages: 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0600))

	t.Setenv("NOTION_HABIT_DATABASE_ID", "env-db")

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "file-token", cfg.Token)
	assert.Equal(t, "env-db", cfg.DatabaseID)
	assert.Equal(t, 2*time.Second, cfg.Pace)
	assert.Equal(t, 3, cfg.MaxPages)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NotionTokenFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("NOTION_TOKEN", "secret_fallback")

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "secret_fallback", cfg.Token)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("token: [unclosed\n"), 0600))

	_, err := config.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.New(dir).ConfigPath())
}

func TestLoad_ExpandsLogDir(t *testing.T) {
	clearEnv(t)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("NOTION_HABIT_LOG_DIR", "~/habit-logs")

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "habit-logs"), cfg.LogDir)
}

func TestValidate_ListsMissing(t *testing.T) {
	cfg := config.New(t.TempDir())
	cfg.Token = "secret"

	err := cfg.Validate()
	require.ErrorIs(t, err, config.ErrMissingCredentials)
	assert.Contains(t, err.Error(), "database_id")
	assert.NotContains(t, err.Error(), "token")
}

func TestEnsureLogDir(t *testing.T) {
	cfg := config.New(t.TempDir())
	cfg.LogDir = filepath.Join(t.TempDir(), "nested", "logs")

	created, err := cfg.EnsureLogDir()
	require.NoError(t, err)
	assert.True(t, created)
	assert.DirExists(t, cfg.LogDir)

	created, err = cfg.EnsureLogDir()
	require.NoError(t, err)
	assert.False(t, created)
}

func TestLogFilePath(t *testing.T) {
	cfg := config.New(t.TempDir())
	cfg.LogDir = "/var/log/nh"

	at := time.Date(2024, 3, 14, 9, 5, 7, 0, time.UTC)
	assert.Equal(t, "/var/log/nh/notion-habit-20240314-090507.log", cfg.LogFilePath(at))
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "notionhabit"), config.DefaultConfigDir())
}
