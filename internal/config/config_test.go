package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
wordpress:
  url: https://blog.example
  username: svc
  password: secret
  timeout: 15s
server:
  port: 9090
reconcile:
  enabled: false
log_level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://blog.example", cfg.WordPress.URL)
	assert.Equal(t, 15*time.Second, cfg.WordPress.Timeout)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.Reconcile.Enabled)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Defaults survive partial files.
	assert.Equal(t, "./pressdesk.db", cfg.Database.Path)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WORDPRESS_URL", "https://env.example")
	t.Setenv("WORDPRESS_USERNAME", "env-user")
	t.Setenv("WORDPRESS_PASSWORD", "env-pass")
	t.Setenv("PRESSDESK_PORT", "7070")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://env.example", cfg.WordPress.URL)
	assert.Equal(t, "env-user", cfg.WordPress.Username)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestMissingCredentialsRejected(t *testing.T) {
	t.Setenv("WORDPRESS_URL", "https://env.example")
	t.Setenv("WORDPRESS_USERNAME", "")
	t.Setenv("WORDPRESS_PASSWORD", "")

	_, err := Load("")
	require.Error(t, err)
}

func TestParseIntervalFallback(t *testing.T) {
	assert.Equal(t, time.Hour, ReconcileConfig{Interval: "bogus"}.ParseInterval())
	assert.Equal(t, 30*time.Minute, ReconcileConfig{Interval: "30m"}.ParseInterval())
}
