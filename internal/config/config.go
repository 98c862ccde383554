// Package config loads runcache configuration from a YAML file with
// environment variable overrides.
//
// Resolution order for every setting: CLI flag > environment variable >
// config file > built-in default. The config file lives at
// $RUNCACHE_HOME/config.yaml, defaulting to ~/.runcache/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variable names recognized by runcache.
const (
	// EnvHome overrides the runcache home directory (config file location).
	EnvHome = "RUNCACHE_HOME"

	// EnvCacheDir overrides the cache entry directory.
	EnvCacheDir = "RUNCACHE_CACHE_DIR"

	// EnvTTLSeconds overrides the default TTL in seconds.
	EnvTTLSeconds = "RUNCACHE_TTL_SECONDS"

	// EnvLogLevel overrides the log level.
	EnvLogLevel = "RUNCACHE_LOG_LEVEL"
)

// DefaultTTLSeconds is the TTL used when neither flag, env var, nor config
// file specify one (1 hour).
const DefaultTTLSeconds int64 = 3600

// configFileName is the name of the YAML config file under the home dir.
const configFileName = "config.yaml"

// CacheConfig holds cache storage settings.
type CacheConfig struct {
	// Dir is the directory holding cache entry files.
	Dir string `yaml:"dir"`

	// TTLSeconds is the default entry TTL when --ttl is not given.
	TTLSeconds int64 `yaml:"ttl_seconds"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is a zerolog level name. Defaults to "warn".
	Level string `yaml:"level"`

	// Format is "console", "json", or empty for auto-detection.
	Format string `yaml:"format"`

	// File, when set, receives a copy of all log events.
	File string `yaml:"file"`
}

// Config is the resolved runcache configuration. It is passed explicitly to
// the components that need it; there is no process-wide config singleton.
type Config struct {
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
}

// New returns the configuration resolved from the config file, environment,
// and defaults. A missing or unreadable config file is not an error; a
// present but malformed one is, so a typo does not silently revert the user
// to defaults.
func New() (*Config, error) {
	cfg := defaults()

	path := filepath.Join(HomeDir(), configFileName)
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No config file, defaults apply.
	case err != nil:
		// Unreadable (permissions etc.) is treated like absent.
	default:
		if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, unmarshalErr)
		}
	}

	applyEnvOverrides(cfg)
	normalize(cfg)
	return cfg, nil
}

// HomeDir returns the runcache home directory ($RUNCACHE_HOME or
// ~/.runcache). It does not create the directory.
func HomeDir() string {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".runcache"
	}
	return filepath.Join(home, ".runcache")
}

// DefaultCacheDir returns the platform cache directory for runcache entries
// (e.g. ~/.cache/runcache on Linux). Falls back to a directory under the
// runcache home when the platform cache root cannot be determined.
func DefaultCacheDir() string {
	root, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(HomeDir(), "cache")
	}
	return filepath.Join(root, "runcache")
}

// defaults returns the built-in configuration.
func defaults() *Config {
	return &Config{
		Cache: CacheConfig{
			Dir:        DefaultCacheDir(),
			TTLSeconds: DefaultTTLSeconds,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// applyEnvOverrides layers environment variables over cfg. Invalid values
// are ignored rather than failing the command.
func applyEnvOverrides(cfg *Config) {
	if dir := os.Getenv(EnvCacheDir); dir != "" {
		cfg.Cache.Dir = dir
	}
	if raw := os.Getenv(EnvTTLSeconds); raw != "" {
		if ttl, err := strconv.ParseInt(raw, 10, 64); err == nil && ttl >= 0 {
			cfg.Cache.TTLSeconds = ttl
		}
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Logging.Level = level
	}
}

// normalize restores defaults for fields an explicit config file left empty
// or set to nonsense.
func normalize(cfg *Config) {
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = DefaultCacheDir()
	}
	if cfg.Cache.TTLSeconds < 0 {
		cfg.Cache.TTLSeconds = DefaultTTLSeconds
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "warn"
	}
}
