// Package config handles the configuration directory, credentials and log paths.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "notionhabit"

	// ConfigFile is the config file base name (YAML).
	ConfigFile = "config"

	// EnvFile is the optional dotenv file read from the config directory.
	EnvFile = ".env"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "NOTION_HABIT"

	// DefaultBaseURL is the Notion API root.
	DefaultBaseURL = "https://api.notion.com/v1"

	// DefaultNotionVersion is the API version header value.
	DefaultNotionVersion = "2022-06-28"
)

// ErrMissingCredentials is returned when the token or database id is unset.
var ErrMissingCredentials = errors.New("missing credentials")

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Token is the Notion integration secret.
	Token string

	// DatabaseID is the habit database.
	DatabaseID string

	BaseURL       string
	NotionVersion string

	// Timeout bounds each API request. Zero disables it.
	Timeout time.Duration

	// MaxPages bounds query cursor following. 1 means a single request.
	MaxPages int

	// Pace is the delay between successive per-habit analyses.
	Pace time.Duration

	// LogDir receives log files when LogToFile is set.
	LogDir string

	// Verbose enables info logging.
	Verbose bool

	// Debug enables debug logging.
	Debug bool

	// LogToFile additionally writes log output to a timestamped file.
	LogToFile bool
}

// New creates a Config with defaults only, rooted at configDir.
// If configDir is empty, uses XDG_CONFIG_HOME/notionhabit or ~/.config/notionhabit.
func New(configDir string) *Config {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:           dir,
		BaseURL:       DefaultBaseURL,
		NotionVersion: DefaultNotionVersion,
		Timeout:       30 * time.Second,
		MaxPages:      1,
		Pace:          500 * time.Millisecond,
		LogDir:        DefaultLogDir(),
	}
}

// Load reads configuration from defaults, <dir>/config.yaml, <dir>/.env and
// NOTION_HABIT_* environment variables, in increasing priority.
func Load(configDir string) (*Config, error) {
	cfg := New(configDir)

	// Real environment wins over the dotenv file.
	if err := godotenv.Load(cfg.EnvPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", cfg.EnvPath(), err)
	}

	v := viper.New()
	v.SetConfigName(ConfigFile)
	v.SetConfigType("yaml")
	v.AddConfigPath(cfg.Dir)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("base_url", cfg.BaseURL)
	v.SetDefault("notion_version", cfg.NotionVersion)
	v.SetDefault("timeout", cfg.Timeout)
	v.SetDefault("max_pages", cfg.MaxPages)
	v.SetDefault("pace", cfg.Pace)
	v.SetDefault("log_dir", cfg.LogDir)

	// Accept the conventional Notion variable as well.
	if err := v.BindEnv("token", EnvPrefix+"_TOKEN", "NOTION_TOKEN"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read %s: %w", cfg.ConfigPath(), err)
		}
	}

	logDir, err := homedir.Expand(v.GetString("log_dir"))
	if err != nil {
		return nil, fmt.Errorf("invalid log_dir: %w", err)
	}

	cfg.Token = strings.TrimSpace(v.GetString("token"))
	cfg.DatabaseID = strings.TrimSpace(v.GetString("database_id"))
	cfg.BaseURL = v.GetString("base_url")
	cfg.NotionVersion = v.GetString("notion_version")
	cfg.Timeout = v.GetDuration("timeout")
	cfg.MaxPages = v.GetInt("max_pages")
	cfg.Pace = v.GetDuration("pace")
	cfg.LogDir = logDir

	return cfg, nil
}

// Validate checks that the remote store credentials are present.
func (c *Config) Validate() error {
	var missing []string
	if c.Token == "" {
		missing = append(missing, "token ("+EnvPrefix+"_TOKEN)")
	}
	if c.DatabaseID == "" {
		missing = append(missing, "database_id ("+EnvPrefix+"_DATABASE_ID)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := homedir.Dir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// DefaultLogDir returns the default log directory.
// Uses XDG_STATE_HOME if set, otherwise ~/.local/state.
func DefaultLogDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName, "logs")
	}
	home, err := homedir.Dir()
	if err != nil {
		return "logs"
	}
	return filepath.Join(home, ".local", "state", AppName, "logs")
}

// ConfigPath returns the path to the YAML config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile+".yaml")
}

// EnvPath returns the path to the dotenv file.
func (c *Config) EnvPath() string {
	return filepath.Join(c.Dir, EnvFile)
}

// LogFilePath returns the log file path for a run started at t.
func (c *Config) LogFilePath(t time.Time) string {
	return filepath.Join(c.LogDir, "notion-habit-"+t.Format("20060102-150405")+".log")
}

// EnsureLogDir creates the log directory if it doesn't exist.
// Reports whether the directory had to be created.
func (c *Config) EnsureLogDir() (bool, error) {
	if _, err := os.Stat(c.LogDir); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(c.LogDir, 0700); err != nil {
		return false, err
	}
	return true, nil
}
