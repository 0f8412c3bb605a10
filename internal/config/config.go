// Package config handles the XDG configuration directory, file paths and
// the optional config.yaml settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "timemgr"

	// SettingsFile is the optional settings filename.
	SettingsFile = "config.yaml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// TasksFile is the file used by the file storage backend.
	TasksFile = "tasks.json"

	// DatabaseFile is the file used by the sqlite storage backend.
	DatabaseFile = "timemgr.db"
)

// Storage backends.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// Notifier backends.
const (
	NotifierLocal          = "local"
	NotifierGoogleCalendar = "gcal"
	NotifierNone           = "none"
)

// Settings are the values read from config.yaml.
type Settings struct {
	// Storage selects the storage backend: "file" or "sqlite".
	Storage string `yaml:"storage"`

	// Notifier selects the reminder backend: "local", "gcal" or "none".
	Notifier string `yaml:"notifier"`

	// Calendar is the Google calendar summary used by the gcal notifier.
	Calendar string `yaml:"calendar"`

	// Timezone is an IANA zone name used for day boundaries and date input.
	Timezone string `yaml:"timezone"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	Settings
}

// New creates a Config for the default or specified config directory and
// loads config.yaml from it when present.
// If configDir is empty, uses XDG_CONFIG_HOME/timemgr or $HOME/.config/timemgr.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}
	if err := cfg.load(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func (c *Config) load() error {
	data, err := os.ReadFile(c.SettingsPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", SettingsFile, err)
	}
	if err := yaml.Unmarshal(data, &c.Settings); err != nil {
		return fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Storage == "" {
		c.Storage = StorageFile
	}
	if c.Notifier == "" {
		c.Notifier = NotifierLocal
	}
}

func (c *Config) validate() error {
	switch c.Storage {
	case StorageFile, StorageSQLite:
	default:
		return fmt.Errorf("invalid storage in %s: %q", SettingsFile, c.Storage)
	}
	switch c.Notifier {
	case NotifierLocal, NotifierGoogleCalendar, NotifierNone:
	default:
		return fmt.Errorf("invalid notifier in %s: %q", SettingsFile, c.Notifier)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location returns the configured time zone, time.Local when unset.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone in %s: %w", SettingsFile, err)
	}
	return loc, nil
}

// UsesGoogleCalendar reports whether reminders go to Google Calendar.
func (c *Config) UsesGoogleCalendar() bool {
	return c.Notifier == NotifierGoogleCalendar
}

// SettingsPath returns the path to config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// TasksPath returns the path used by the file storage backend.
func (c *Config) TasksPath() string {
	return filepath.Join(c.Dir, TasksFile)
}

// DatabasePath returns the path used by the sqlite storage backend.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Dir, DatabaseFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
