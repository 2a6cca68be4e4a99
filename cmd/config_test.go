package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 16, cfg.FanoutConcurrency)
	assert.Equal(t, 5*time.Second, cfg.PushTimeout)
	assert.Equal(t, 30*24*time.Hour, cfg.NotificationRetention)
	assert.False(t, cfg.PushEnabled)
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HTTP_PORT=9090\nPUSH_ENABLED=true\nPUSH_TIMEOUT=2s\n"), 0o600))
	t.Setenv("FANOUT_CONCURRENCY", "4")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.True(t, cfg.PushEnabled)
	assert.Equal(t, 2*time.Second, cfg.PushTimeout)
	assert.Equal(t, 4, cfg.FanoutConcurrency)

	for _, key := range []string{"HTTP_PORT", "PUSH_ENABLED", "PUSH_TIMEOUT"} {
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfigRejectsMalformedValues(t *testing.T) {
	t.Setenv("NOTIFICATION_RETENTION", "a month")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOTIFICATION_RETENTION")
}

func TestDSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "n", DBSslMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", cfg.DSN())
}
