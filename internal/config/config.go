package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"logreader/internal/app/errors"
)

// Config represents the application configuration
type Config struct {
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		File   string `yaml:"file"`
	}
	Concurrency struct {
		Workers int `yaml:"workers"`
	}
	Watch struct {
		Debounce time.Duration `yaml:"debounce"`
		Poll     time.Duration `yaml:"poll"`
	}
	Events struct {
		Buffer int `yaml:"buffer"`
	}
	Settings struct {
		Path string `yaml:"path"`
	}
	Report struct {
		DSN string `yaml:"dsn"`
	}
	Version int
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cfg := &Config{Version: 1}

	cfg.Logging.Level = DefaultLogLevel
	cfg.Logging.Format = DefaultLogFormat

	cfg.Concurrency.Workers = MaxWorkers

	cfg.Watch.Debounce = WatchDebounce
	cfg.Watch.Poll = WatchPoll

	cfg.Events.Buffer = EventsBufferSize

	cfg.Settings.Path = DefaultSettingsPath()

	return cfg
}

// DefaultSettingsPath returns the per-user settings location, falling back to the working directory
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(SettingsDir, SettingsFile)
	}

	return filepath.Join(home, SettingsDir, SettingsFile)
}

// Load reads .env and logreader.yaml from the working directory and returns the validated config
func Load() (*Config, error) {
	return LoadFile(ConfigFile)
}

// LoadFile loads the configuration from the given path
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(EnvFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToReadEnv, err)
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return nil, errors.ErrFailedToReadConfig
	}

	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, errors.ErrFailedToReadConfig
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.ErrFailedToParseConfig
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	return cfg, nil
}

// ApplyDefaults fills zero values that have a sensible default
func (c *Config) ApplyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}

	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}

	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = WatchDebounce
	}

	if c.Watch.Poll == 0 {
		c.Watch.Poll = WatchPoll
	}

	if c.Settings.Path == "" {
		c.Settings.Path = DefaultSettingsPath()
	}

	c.Settings.Path = os.ExpandEnv(c.Settings.Path)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateConcurrency(); err != nil {
		return err
	}

	if err := c.validateWatch(); err != nil {
		return err
	}

	return c.validateEvents()
}

// validateConcurrency validates concurrency settings
func (c *Config) validateConcurrency() error {
	if c.Concurrency.Workers <= 0 {
		return errors.ErrInvalidConcurrencyWorkers
	}

	return nil
}

// validateWatch validates debounce and poll intervals
func (c *Config) validateWatch() error {
	if c.Watch.Debounce < 0 {
		return errors.ErrInvalidWatchDebounce
	}

	if c.Watch.Poll <= 0 {
		return errors.ErrInvalidWatchPoll
	}

	return nil
}

// validateEvents validates event bus settings
func (c *Config) validateEvents() error {
	if c.Events.Buffer <= 0 {
		return errors.ErrInvalidEventsBuffer
	}

	return nil
}
