package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/xiaomi388/templater/pkg/types"
)

// ConfigPath is set by the --config flag. Empty means <data dir>/config.yaml.
var ConfigPath string

const (
	EnvStoreBackend = "TEMPLATER_STORE_BACKEND"
	EnvStorePath    = "TEMPLATER_STORE_PATH"
	EnvLogLevel     = "TEMPLATER_LOG_LEVEL"
	EnvLogFile      = "TEMPLATER_LOG_FILE"
	EnvWatch        = "TEMPLATER_WATCH"
)

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type DisplayConfig struct {
	Width int `yaml:"width"`
}

type Config struct {
	Storage types.StorageConfig `yaml:"storage"`
	Log     LogConfig           `yaml:"log"`
	Display DisplayConfig       `yaml:"display"`
	Watch   bool                `yaml:"watch"`
}

func Default() *Config {
	return &Config{
		Storage: types.StorageConfig{Backend: types.StorageBackendJSON},
		Log:     LogConfig{Level: "info"},
		Display: DisplayConfig{Width: types.DefaultSummaryWidth},
		Watch:   true,
	}
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case types.StorageBackendJSON, types.StorageBackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend: %q", c.Storage.Backend)
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	if c.Display.Width <= 0 {
		return fmt.Errorf("display width must be positive, got %d", c.Display.Width)
	}

	return nil
}

// Load reads the config file at configPath on top of the defaults. A missing
// file is not an error. Environment variables, optionally from a .env file in
// the working directory, override file values.
func Load(configPath string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	applyEnv(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func Dump(configPath string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}

	return nil
}

func applyEnv(config *Config) {
	if v := os.Getenv(EnvStoreBackend); v != "" {
		config.Storage.Backend = types.StorageBackend(v)
	}
	if v := os.Getenv(EnvStorePath); v != "" {
		config.Storage.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		config.Log.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		config.Log.File = v
	}
	if v := os.Getenv(EnvWatch); v != "" {
		if watch, err := strconv.ParseBool(v); err == nil {
			config.Watch = watch
		}
	}
}
