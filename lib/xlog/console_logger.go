package xlog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	_ XLogger = (*consoleLogger)(nil)
	_ XLogger = (*nopLogger)(nil)
)

type consoleLogger struct {
	logger *zap.Logger
}

func (l *consoleLogger) Sync() error {
	return l.logger.Sync()
}

func (l *consoleLogger) Debug(msg string, fields ...zap.Field) {
	l.logger.Debug(msg, fields...)
}

func (l *consoleLogger) Info(msg string, fields ...zap.Field) {
	l.logger.Info(msg, fields...)
}

func (l *consoleLogger) Warn(msg string, fields ...zap.Field) {
	l.logger.Warn(msg, fields...)
}

func (l *consoleLogger) Error(err error, msg string, fields ...zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	l.logger.Error(msg, fields...)
}

func NewConsoleLogger(lvl LogLevel, component string) XLogger {
	config := zapcore.EncoderConfig{
		MessageKey:   "msg",
		LevelKey:     "lvl",
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		TimeKey:      "ts",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		NameKey:      "component",
		EncodeName:   zapcore.FullNameEncoder,
		CallerKey:    "callAt",
		EncodeCaller: zapcore.ShortCallerEncoder,
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(config),
		zapcore.Lock(os.Stdout),
		zap.LevelEnablerFunc(func(level zapcore.Level) bool {
			return level >= lvl.zapLevel()
		}),
	)
	return &consoleLogger{
		logger: zap.New(core, zap.AddCaller()).Named(component),
	}
}

type nopLogger struct{}

func (l *nopLogger) Sync() error                                { return nil }
func (l *nopLogger) Debug(msg string, fields ...zap.Field)      {}
func (l *nopLogger) Info(msg string, fields ...zap.Field)       {}
func (l *nopLogger) Warn(msg string, fields ...zap.Field)       {}
func (l *nopLogger) Error(err error, msg string, f ...zap.Field) {}

// NewNopLogger returns a logger that discards everything. It is the
// default tracer for containers that support optional tracing.
func NewNopLogger() XLogger {
	return &nopLogger{}
}
