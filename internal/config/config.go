// Package config loads dealflow's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/dealflow/internal/config/colors"
	"github.com/thenoetrevino/dealflow/internal/models"
	"github.com/thenoetrevino/dealflow/internal/renumber"
)

// Config represents the application configuration
type Config struct {
	Stages   []models.Stage `yaml:"stages"`
	Store    StoreConfig    `yaml:"store"`
	Renumber RenumberConfig `yaml:"renumber"`
	Database DatabaseConfig `yaml:"database"`
	Daemon   DaemonConfig   `yaml:"daemon"`
	Log      LogConfig      `yaml:"log"`

	Colors colors.ColorScheme `yaml:"colors"`
}

// StoreConfig controls how stages are read from the store
type StoreConfig struct {
	// PerPage is how many deals a single stage fetch returns
	PerPage int `yaml:"per_page"`
}

// RenumberConfig controls the remote renumber engine
type RenumberConfig struct {
	// AppendPolicy is "past_end" or "dense"
	AppendPolicy string `yaml:"append_policy"`
}

// DatabaseConfig locates the sqlite database
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// DaemonConfig locates the event daemon socket
type DaemonConfig struct {
	SocketPath string `yaml:"socket_path"`
}

// LogConfig controls the log file
type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads config from the user's config directory.
// Returns the default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		c := Default()
		c.applyEnv()
		return c, nil
	}
	return LoadFrom(configPath)
}

// LoadFrom loads config from path, falling back to defaults when it does not exist.
// Environment overrides are applied last.
func LoadFrom(path string) (*Config, error) {
	var c Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	c.applyDefaults()
	c.applyEnv()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &c, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes the config as YAML to path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Validate checks values the rest of the program relies on
func (c *Config) Validate() error {
	if len(c.Stages) == 0 {
		return errors.New("at least one stage is required")
	}

	seen := make(map[string]bool, len(c.Stages))
	for _, s := range c.Stages {
		if s.Value == "" {
			return errors.New("stage value cannot be empty")
		}
		if seen[s.Value] {
			return fmt.Errorf("duplicate stage %q", s.Value)
		}
		seen[s.Value] = true
	}

	if c.Store.PerPage <= 0 {
		return fmt.Errorf("store.per_page must be > 0, got %d", c.Store.PerPage)
	}

	if _, err := renumber.ParseAppendPolicy(c.Renumber.AppendPolicy); err != nil {
		return err
	}
	return c.Colors.Validate()
}

// AppendPolicy returns the parsed renumber append policy
func (c *Config) AppendPolicy() renumber.AppendPolicy {
	p, err := renumber.ParseAppendPolicy(c.Renumber.AppendPolicy)
	if err != nil {
		return renumber.AppendPastEnd
	}
	return p
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "dealflow", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "dealflow", "config.yaml"), nil
}

// dataDir is ~/.dealflow, home of the database, socket and logs
func dataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".dealflow"
	}
	return filepath.Join(homeDir, ".dealflow")
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if len(c.Stages) == 0 {
		c.Stages = append([]models.Stage(nil), models.DefaultStages...)
	}
	for i, s := range c.Stages {
		if s.Label == "" {
			c.Stages[i].Label = s.Value
		}
	}
	if c.Store.PerPage == 0 {
		c.Store.PerPage = models.DefaultPerPage
	}
	if c.Renumber.AppendPolicy == "" {
		c.Renumber.AppendPolicy = string(renumber.AppendPastEnd)
	}
	if c.Database.Path == "" {
		c.Database.Path = filepath.Join(dataDir(), "dealflow.db")
	}
	if c.Daemon.SocketPath == "" {
		c.Daemon.SocketPath = filepath.Join(dataDir(), "dealflow.sock")
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Path == "" {
		c.Log.Path = filepath.Join(dataDir(), "logs", "dealflow.log")
	}
	c.Colors.ApplyDefaults()
}

// applyEnv lets the environment override file values
func (c *Config) applyEnv() {
	if v := os.Getenv("DEALFLOW_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("DEALFLOW_APPEND_POLICY"); v != "" {
		c.Renumber.AppendPolicy = v
	}
	if v := os.Getenv("DEALFLOW_SOCKET"); v != "" {
		c.Daemon.SocketPath = v
	}
	if v := os.Getenv("DEALFLOW_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}
