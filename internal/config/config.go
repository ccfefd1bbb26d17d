// Package config handles the XDG configuration directory and config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "taskscreen"

	// SettingsFile is the optional settings filename.
	SettingsFile = "config.yaml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// EnvPrefix prefixes environment overrides, e.g. TASKSCREEN_SEED_SOURCE.
	EnvPrefix = "TASKSCREEN"
)

// Seed sources.
const (
	SeedBuiltin = "builtin"
	SeedFile    = "file"
	SeedGoogle  = "google"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `mapstructure:"-"`

	// Debug enables debug logging.
	Debug bool `mapstructure:"-"`

	// Quiet suppresses informational output.
	Quiet bool `mapstructure:"-"`

	Seed SeedConfig `mapstructure:"seed"`
	Log  LogConfig  `mapstructure:"log"`
}

// SeedConfig selects where the initial task list comes from.
type SeedConfig struct {
	// Source is one of builtin, file or google.
	Source string `mapstructure:"source"`

	// File is the YAML seed path for Source=file. Relative paths are
	// resolved against the config directory.
	File string `mapstructure:"file"`

	// List is the Google Tasks list name for Source=google.
	// Empty selects the default list.
	List string `mapstructure:"list"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `mapstructure:"level"`

	// File, when set, receives JSON log lines instead of stderr.
	File string `mapstructure:"file"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskscreen or $HOME/.config/taskscreen.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:  dir,
		Seed: SeedConfig{Source: SeedBuiltin},
		Log:  LogConfig{Level: "warn"},
	}, nil
}

// Load is New followed by reading config.yaml from the directory, if it
// exists, and applying TASKSCREEN_* environment overrides.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("seed.source", cfg.Seed.Source)
	v.SetDefault("seed.file", "")
	v.SetDefault("seed.list", "")
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", "")

	if _, err := os.Stat(cfg.SettingsPath()); err == nil {
		v.SetConfigFile(cfg.SettingsPath())
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", SettingsFile, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", SettingsFile, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the seed source.
func (c *Config) Validate() error {
	switch c.Seed.Source {
	case SeedBuiltin, SeedGoogle:
		return nil
	case SeedFile:
		if strings.TrimSpace(c.Seed.File) == "" {
			return errors.New("seed.file required when seed.source is file")
		}
		return nil
	}
	return fmt.Errorf("unknown seed source: %s", c.Seed.Source)
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

// SettingsPath returns the path to config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// SeedFilePath returns the seed file path, resolved against Dir when relative.
func (c *Config) SeedFilePath() string {
	if c.Seed.File == "" || filepath.IsAbs(c.Seed.File) {
		return c.Seed.File
	}
	return filepath.Join(c.Dir, c.Seed.File)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
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
