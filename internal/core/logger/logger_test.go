package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewWithRotate_WritesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	l, cleanup := NewWithRotate("info", true, file, 1, 1, 1, false)

	l.Info("hello", zap.String("k", "v"))
	l.Debug("dropped")
	cleanup()

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
	assert.NotContains(t, string(b), "dropped")
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	l, cleanup := New("loud", false)
	defer cleanup()

	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestToWriter_TrimsNewlines(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	w := ToWriter(zap.New(core), zapcore.WarnLevel)

	n, err := w.Write([]byte("gin warning\n"))
	require.NoError(t, err)
	assert.Equal(t, len("gin warning\n"), n)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "gin warning", entry.Message)
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
}
