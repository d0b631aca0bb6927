package jwtauth

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	logger := NewZapLogger(zap.New(core).Sugar())

	logger.Debug("debug message", "reason", "none")
	assert.Equal(t, 0, recorded.Len(), "Debug message should not be recorded at Info level")

	logger.Info("info message", "source", "header")
	logger.Warn("token rejected", "reason", "token_expired")
	logger.Error("error message")

	require.Equal(t, 3, recorded.Len())
	assert.Equal(t, "info message", recorded.All()[0].Message)
	assert.Equal(t, "header", recorded.All()[0].ContextMap()["source"])
	assert.Equal(t, zapcore.WarnLevel, recorded.All()[1].Level)
	assert.Equal(t, "token_expired", recorded.All()[1].ContextMap()["reason"])
	assert.Equal(t, zapcore.ErrorLevel, recorded.All()[2].Level)
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf))

	logger.Debug("debug message", "source", "cookie")
	logger.Info("info message")
	logger.Warn("warn message", "reason", "invalid_issuer")
	logger.Error("error message")

	logOutput := buf.String()
	assert.Contains(t, logOutput, `"message":"debug message"`)
	assert.Contains(t, logOutput, `"source":"cookie"`)
	assert.Contains(t, logOutput, `"level":"warn"`)
	assert.Contains(t, logOutput, `"reason":"invalid_issuer"`)
	assert.Contains(t, logOutput, "error message")
}

func TestLogrusLogger(t *testing.T) {
	logrusLogger, hook := test.NewNullLogger()
	logrusLogger.SetLevel(logrus.InfoLevel)
	logger := NewLogrusLogger(logrusLogger)

	logger.Debug("debug message")
	assert.Empty(t, hook.AllEntries(), "Debug messages should not be logged at Info level")

	logger.Info("info message", "source", "header")
	logger.Warn("warn message", "reason", "token_malformed")
	logger.Error("error message")

	entries := hook.AllEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, "header", entries[0].Data["source"])
	assert.Equal(t, logrus.WarnLevel, entries[1].Level)
	assert.Equal(t, "token_malformed", entries[1].Data["reason"])
	assert.Equal(t, logrus.ErrorLevel, entries[2].Level)

	logrusLogger.SetLevel(logrus.DebugLevel)
	logger.Debug("debug message")
	assert.Equal(t, "debug message", hook.LastEntry().Message)
}

func Test_fields(t *testing.T) {
	assert.Equal(t, map[string]any{}, fields(nil))
	assert.Equal(t, map[string]any{"a": 1, "b": "two"}, fields([]any{"a", 1, "b", "two"}))
	assert.Equal(t, map[string]any{"7": true}, fields([]any{7, true}))
	assert.Equal(t, map[string]any{"a": 1, "!BADKEY": "dangling"}, fields([]any{"a", 1, "dangling"}))
}
