package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. LOGREPORT_TOP
const EnvPrefix = "LOGREPORT"

// Config holds application configuration
type Config struct {
	Format  string `mapstructure:"format"`
	Verbose bool   `mapstructure:"verbose"`
	Strict  bool   `mapstructure:"strict"`

	// Entries kept in each top-N table
	Top int `mapstructure:"top"`
	// Concurrent file reads; 0 means one per CPU
	Workers int `mapstructure:"workers"`
	// IANA zone for timestamps without an offset
	Timezone    string        `mapstructure:"timezone"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:      "markdown",
		Verbose:     false,
		Strict:      false,
		Top:         3,
		Workers:     0,
		Timezone:    "UTC",
		HTTPTimeout: 30 * time.Second,
	}
}

// Location resolves Timezone
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Top < 1 {
		return fmt.Errorf("top must be at least 1, got %d", c.Top)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout must not be negative, got %s", c.HTTPTimeout)
	}
	_, err := c.Location()
	return err
}

// Load loads configuration from files and environment
// Config file search order (highest precedence first):
// 1. ./.logreport.yaml or ./.logreport.yml
// 2. ~/.logreport.yaml or ~/.logreport.yml
// 3. $XDG_CONFIG_HOME/logreport/config.yaml (or ~/.config/logreport/config.yaml)
// 4. /etc/logreport/config.yaml
// LOGREPORT_* environment variables override file values.
func Load() (*Config, error) {
	return load(findConfigFile())
}

// LoadFromFile loads configuration from a specific file, then applies
// environment overrides
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config file path is empty")
	}
	return load(path)
}

func load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newViper registers every key with its default so AutomaticEnv can see it
func newViper() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("format", d.Format)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("strict", d.Strict)
	v.SetDefault("top", d.Top)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("timezone", d.Timezone)
	v.SetDefault("http_timeout", d.HTTPTimeout)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	names := []string{".logreport.yaml", ".logreport.yml"}

	var searchPaths []string

	// 1. Current directory
	if cwd, err := os.Getwd(); err == nil {
		searchPaths = append(searchPaths, cwd)
	}

	// 2. Home directory
	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, home)
	}

	for _, dir := range searchPaths {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	// 3. Config directory, 4. system config
	var dirs []string
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(configDir, "logreport"))
	}
	dirs = append(dirs, "/etc/logreport")
	for _, dir := range dirs {
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// ConfigFile returns the path to the config file that would be loaded
func ConfigFile() string {
	return findConfigFile()
}
