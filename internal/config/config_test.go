package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, DefaultTTLSeconds, cfg.Cache.TTLSeconds)
	assert.NotEmpty(t, cfg.Cache.Dir)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestNewFromFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)

	content := `cache:
  dir: /tmp/custom-cache
  ttl_seconds: 120
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(content), 0600))

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom-cache", cfg.Cache.Dir)
	assert.Equal(t, int64(120), cfg.Cache.TTLSeconds)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestNewMalformedFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)

	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("cache: ["), 0600))

	_, err := New()
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)

	content := `cache:
  dir: /tmp/from-file
  ttl_seconds: 120
`
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(content), 0600))

	t.Setenv(EnvCacheDir, "/tmp/from-env")
	t.Setenv(EnvTTLSeconds, "45")
	t.Setenv(EnvLogLevel, "info")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/from-env", cfg.Cache.Dir)
	assert.Equal(t, int64(45), cfg.Cache.TTLSeconds)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestEnvOverridesInvalidTTLIgnored(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	t.Setenv(EnvTTLSeconds, "not-a-number")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, DefaultTTLSeconds, cfg.Cache.TTLSeconds)

	t.Setenv(EnvTTLSeconds, "-5")
	cfg, err = New()
	require.NoError(t, err)
	assert.Equal(t, DefaultTTLSeconds, cfg.Cache.TTLSeconds)
}

func TestHomeDir(t *testing.T) {
	t.Setenv(EnvHome, "/tmp/runcache-home")
	assert.Equal(t, "/tmp/runcache-home", HomeDir())
}

func TestNormalizeEmptyFields(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)

	// Explicit empty values in the file should fall back to defaults.
	content := `cache:
  dir: ""
logging:
  level: ""
`
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(content), 0600))

	cfg, err := New()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Cache.Dir)
	assert.Equal(t, "warn", cfg.Logging.Level)
}
