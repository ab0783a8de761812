package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Store.Backend)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, time.Minute, cfg.Rollover.PollInterval)
	assert.Equal(t, "127.0.0.1:8787", cfg.HTTP.Addr)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := []byte(`
store:
  backend: sqlite
  path: /tmp/ledger.db
log:
  level: debug
rollover:
  poll_interval: 5m
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	t.Setenv("POINTLEDGER_LOG_LEVEL", "warn")
	t.Setenv("POINTLEDGER_REDIS_DB", "2")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "/tmp/ledger.db", cfg.Store.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 2, cfg.Store.RedisDB)
	assert.Equal(t, 5*time.Minute, cfg.Rollover.PollInterval)
}

func TestPollIntervalIsNeverFinerThanAMinute(t *testing.T) {
	t.Setenv("POINTLEDGER_POLL_INTERVAL", "5s")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, MinPollInterval, cfg.Rollover.PollInterval)
}

func TestLoadErrors(t *testing.T) {
	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("store: [unterminated"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})
	t.Run("bad env duration", func(t *testing.T) {
		t.Setenv("POINTLEDGER_POLL_INTERVAL", "soon")
		_, err := Load("")
		assert.Error(t, err)
	})
}
