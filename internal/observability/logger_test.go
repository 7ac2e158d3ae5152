package observability

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mwarner-dev/postpilot/internal/config"
)

func testLoggerConfig() config.LoggerConfig {
	return config.LoggerConfig{
		Level:       "debug",
		Format:      "json",
		ServiceName: "postpilot-test",
	}
}

func TestInitialize(t *testing.T) {
	t.Run("Writes structured entries to the console writer", func(t *testing.T) {
		ResetForTest()
		t.Cleanup(ResetForTest)

		var buf bytes.Buffer
		Initialize(testLoggerConfig(), zapcore.AddSync(&buf))

		GetLogger().Info("hello", zap.String("k", "v"))

		out := buf.String()
		assert.Contains(t, out, `"hello"`)
		assert.Contains(t, out, `"k":"v"`)
		assert.Contains(t, out, "postpilot-test")
	})

	t.Run("Invalid level falls back to info", func(t *testing.T) {
		ResetForTest()
		t.Cleanup(ResetForTest)

		cfg := testLoggerConfig()
		cfg.Level = "nonsense"
		var buf bytes.Buffer
		Initialize(cfg, zapcore.AddSync(&buf))

		GetLogger().Debug("invisible")
		GetLogger().Info("visible")

		assert.NotContains(t, buf.String(), "invisible")
		assert.Contains(t, buf.String(), "visible")
	})

	t.Run("Second initialization is a no-op", func(t *testing.T) {
		ResetForTest()
		t.Cleanup(ResetForTest)

		var first, second bytes.Buffer
		Initialize(testLoggerConfig(), zapcore.AddSync(&first))
		Initialize(testLoggerConfig(), zapcore.AddSync(&second))

		GetLogger().Info("routed")

		assert.Contains(t, first.String(), "routed")
		assert.Empty(t, second.String())
	})

	t.Run("File core writes alongside the console", func(t *testing.T) {
		ResetForTest()
		t.Cleanup(ResetForTest)

		cfg := testLoggerConfig()
		cfg.LogFile = filepath.Join(t.TempDir(), "test.log")
		var buf bytes.Buffer
		Initialize(cfg, zapcore.AddSync(&buf))

		GetLogger().Info("dual write")
		Sync()

		assert.Contains(t, buf.String(), "dual write")
	})
}

func TestGetLoggerBeforeInitialize(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	logger := GetLogger()
	require.NotNil(t, logger, "must never hand out a nil logger")
}
