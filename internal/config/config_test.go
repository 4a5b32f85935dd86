package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every key so the host environment cannot leak in
func clearEnv(t *testing.T) {
	t.Helper()
	for key := range defaults {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageType)
	assert.Equal(t, 2*time.Hour, cfg.GameTTL)
	assert.Equal(t, 5*time.Second, cfg.LockTTL)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, time.Minute, cfg.HubCleanupInterval)
	assert.False(t, cfg.FeedbackEnabled())

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_TYPE", "Redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("GAME_TTL", "30m")
	t.Setenv("LOCK_TTL", "2s")
	t.Setenv("FEEDBACK_API_KEY", "sk-test")
	t.Setenv("FEEDBACK_MODEL", "gpt-test")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, StorageRedis, cfg.StorageType)
	assert.Equal(t, 30*time.Minute, cfg.GameTTL)
	assert.Equal(t, 2*time.Second, cfg.LockTTL)
	assert.True(t, cfg.FeedbackEnabled())
	assert.Equal(t, "gpt-test", cfg.Feedback().Model)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis().URL)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7000\nSESSION_SECRET=from-file\n"), 0o600))
	t.Setenv("PORT", "7001")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7001, cfg.Port, "environment wins over the file")
	assert.Equal(t, "from-file", cfg.Auth().Secret)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"redis without url", func(c *Config) { c.StorageType = StorageRedis }, "REDIS_URL required"},
		{"unknown storage", func(c *Config) { c.StorageType = "etcd" }, "STORAGE_TYPE"},
		{"bad port", func(c *Config) { c.Port = 0 }, "PORT"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "LOG_LEVEL"},
		{"zero lock ttl", func(c *Config) { c.LockTTL = 0 }, "LOCK_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Port:        8080,
				StorageType: StorageMemory,
				GameTTL:     time.Hour,
				LockTTL:     time.Second,
				LogLevel:    "info",
			}
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
