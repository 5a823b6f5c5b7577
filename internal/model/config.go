package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Storage driver names.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// StorageConfig selects where the goal document is persisted.
type StorageConfig struct {
	// Driver is "file" (a goals.json document) or "sqlite".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Path overrides the data directory. Empty means the OS default.
	Path string `mapstructure:"path" yaml:"path"`
}

// ResetConfig tunes the daily reset pass.
type ResetConfig struct {
	// KeepCompleted keeps instances completed since the previous reset in
	// the regenerated list instead of moving them to history only.
	KeepCompleted bool `mapstructure:"keep_completed" yaml:"keep_completed"`

	// CheckIntervalSec is how often a running session checks for a new day.
	CheckIntervalSec int `mapstructure:"check_interval_sec" yaml:"check_interval_sec"`
}

// LogConfig controls where diagnostics go.
type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Debug bool   `mapstructure:"debug" yaml:"debug"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Reset   ResetConfig   `mapstructure:"reset" yaml:"reset"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/goaltracker/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "goaltracker", "config.yaml")
}

func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Storage: StorageConfig{Driver: DriverFile},
		Reset:   ResetConfig{CheckIntervalSec: 60},
		Log:     LogConfig{File: filepath.Join(os.TempDir(), "goaltracker.log")},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Environment variables prefixed with GOALS_ override file values
// (GOALS_STORAGE_DRIVER, GOALS_RESET_KEEP_COMPLETED, ...). A missing file
// yields the defaults.
func LoadConfig(path string) (*AppConfig, error) {
	def := defaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("GOALS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("storage.driver", def.Storage.Driver)
	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("reset.keep_completed", def.Reset.KeepCompleted)
	v.SetDefault("reset.check_interval_sec", def.Reset.CheckIntervalSec)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("log.debug", def.Log.Debug)

	if err := v.ReadInConfig(); err != nil {
		_, missingFile := err.(*os.PathError)
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !missingFile && !notFound {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated settings and fills zero intervals.
func (c *AppConfig) Validate() error {
	switch c.Storage.Driver {
	case DriverFile, DriverSQLite:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Reset.CheckIntervalSec <= 0 {
		c.Reset.CheckIntervalSec = 60
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("reset", cfg.Reset)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
