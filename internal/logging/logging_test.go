package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/bryan-cox/pointledger/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestNewWritesConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "pointledger.log")

	log := New(config.LogConfig{Level: "warn", Path: path, MaxSizeMB: 1}, &console)
	log.Info("hidden")
	log.Warn("state write failed")
	require.NoError(t, log.Sync())

	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), `"msg":"state write failed"`)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "state write failed")
}
