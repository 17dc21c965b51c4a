package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func parseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return l, fmt.Errorf("invalid log level %q", level)
	}
	return l, nil
}

// NewLogger builds the process logger. The terminal belongs to the report,
// so logs go to LogFile as JSON; without a file logging is disabled.
func (c Config) NewLogger() (*zap.Logger, error) {
	if c.LogFile == "" {
		return zap.NewNop(), nil
	}
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{c.LogFile}
	zc.ErrorOutputPaths = []string{c.LogFile}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("NewLogger: %w", err)
	}
	return logger, nil
}
