package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/thenoetrevino/tablero/internal/config/colors"
	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "TABLERO"

	// Config keys
	keyDataDir       = "data_dir"
	keyDatabaseFile  = "database_file"
	keyBusyTimeoutMS = "busy_timeout_ms"
	keyLogLevel      = "log.level"
	keyLogMaxSize    = "log.max_size_mb"
	keyLogMaxBackups = "log.max_backups"
	keyLogMaxAge     = "log.max_age_days"
	keyThemePreset   = "theme.preset"
)

// Config represents the application configuration
type Config struct {
	DataDir       string             `yaml:"data_dir" mapstructure:"data_dir"`
	DatabaseFile  string             `yaml:"database_file" mapstructure:"database_file"`
	BusyTimeoutMS int                `yaml:"busy_timeout_ms" mapstructure:"busy_timeout_ms"`
	Log           LogConfig          `yaml:"log" mapstructure:"log"`
	ColorScheme   colors.ColorScheme `yaml:"theme" mapstructure:"theme"`
}

// LogConfig controls the rotating log file
type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" mapstructure:"max_age_days"`
}

// Default returns the configuration used when no file or environment overrides exist
func Default() *Config {
	return &Config{
		DataDir:       defaultDataDir(),
		DatabaseFile:  "tablero.db",
		BusyTimeoutMS: 5000,
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  1,
			MaxBackups: 2,
			MaxAgeDays: 30,
		},
		ColorScheme: colors.Preset(colors.PresetDefault),
	}
}

// Load reads config.yaml from the user's config directory and applies
// TABLERO_* environment overrides (e.g. TABLERO_DATA_DIR, TABLERO_LOG_LEVEL).
// A missing config file is not an error.
func Load() (*Config, error) {
	defaults := Default()

	v := viper.New()
	v.SetDefault(keyDataDir, defaults.DataDir)
	v.SetDefault(keyDatabaseFile, defaults.DatabaseFile)
	v.SetDefault(keyBusyTimeoutMS, defaults.BusyTimeoutMS)
	v.SetDefault(keyLogLevel, defaults.Log.Level)
	v.SetDefault(keyLogMaxSize, defaults.Log.MaxSizeMB)
	v.SetDefault(keyLogMaxBackups, defaults.Log.MaxBackups)
	v.SetDefault(keyLogMaxAge, defaults.Log.MaxAgeDays)
	v.SetDefault(keyThemePreset, defaults.ColorScheme.Preset)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if dir, err := configDir(); err == nil {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(dir)

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// DatabasePath returns the full path of the SQLite database file
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, c.DatabaseFile)
}

// LogDir returns the directory holding the rotating log files
func (c *Config) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// Path returns the path to the config file
func Path() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName+"."+configFileType), nil
}

// configDir returns the directory that holds config.yaml
func configDir() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "tablero"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "tablero"), nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tablero"
	}
	return filepath.Join(home, ".tablero")
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	defaults := Default()
	if c.DataDir == "" {
		c.DataDir = defaults.DataDir
	}
	if c.DatabaseFile == "" {
		c.DatabaseFile = defaults.DatabaseFile
	}
	if c.BusyTimeoutMS <= 0 {
		c.BusyTimeoutMS = defaults.BusyTimeoutMS
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	c.ColorScheme.ApplyDefaults()
}
