package api

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "POSTGRES_DSN", "TEMPORAL_ADDRESS", "TEMPORAL_NAMESPACE", "TEMPORAL_DISABLED",
		"ENVIRONMENT", "LOG_LEVEL", "OTEL_TRACES_EXPORTER", "SHUTDOWN_TIMEOUT_SECONDS",
		"MIGRATE_ON_START", ConfigFileEnv,
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, client.DefaultHostPort, cfg.TemporalAddress)
	assert.Equal(t, client.DefaultNamespace, cfg.TemporalNamespace)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout())
	assert.False(t, cfg.TemporalDisabled)
	assert.False(t, cfg.MigrateOnStart)
	assert.Empty(t, cfg.PostgresDSN)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("POSTGRES_DSN", " postgres://u:p@localhost:5432/db ")
	t.Setenv("TEMPORAL_DISABLED", "yes")
	t.Setenv("MIGRATE_ON_START", "true")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "postgres://u:p@localhost:5432/db", cfg.PostgresDSN)
	assert.True(t, cfg.TemporalDisabled)
	assert.True(t, cfg.MigrateOnStart)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout())
}

func TestLoadConfig_FileUnderEnv(t *testing.T) {
	clearConfigEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"7000\"\nenvironment: staging\nlog_level: debug\n"), 0o600))
	t.Setenv(ConfigFileEnv, path)
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"non numeric port": {"PORT": "http"},
		"port out of range": {"PORT": "70000"},
		"zero shutdown":     {"SHUTDOWN_TIMEOUT_SECONDS": "0"},
		"missing file":      {ConfigFileEnv: "/does/not/exist.yaml"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestIsTruthy(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", " yes "} {
		assert.True(t, isTruthy(v), v)
	}
	for _, v := range []string{"", "0", "false", "no", "on"} {
		assert.False(t, isTruthy(v), v)
	}
}
