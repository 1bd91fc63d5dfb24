package xlog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLogLevelMapping(t *testing.T) {
	require.Equal(t, zapcore.DebugLevel, LogLevelDebug.zapLevel())
	require.Equal(t, zapcore.InfoLevel, LogLevelInfo.zapLevel())
	require.Equal(t, zapcore.WarnLevel, LogLevelWarn.zapLevel())
	require.Equal(t, zapcore.ErrorLevel, LogLevelError.zapLevel())
	require.Equal(t, zapcore.DebugLevel, LogLevel("bogus").zapLevel())
	require.Equal(t, "INFO", LogLevelInfo.String())
}

func TestConsoleLogger(t *testing.T) {
	logger := NewConsoleLogger(LogLevelDebug, "xlog-test")
	logger.Debug("debug msg", zap.Int("i", 1))
	logger.Info("info msg")
	logger.Warn("warn msg")
	logger.Error(errors.New("boom"), "error msg")
	logger.Error(nil, "error msg without cause")
	_ = logger.Sync()
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("dropped")
	logger.Error(errors.New("dropped"), "dropped")
	require.NoError(t, logger.Sync())
}
