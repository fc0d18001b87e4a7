package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a sampled JSON logger in production and a colored console
// logger elsewhere. Fields are attached to every entry.
func NewLogger(environment, level string, fields ...zap.Field) (*zap.Logger, error) {
	var config zap.Config
	if environment == "production" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.MessageKey = "message"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	}
	config.Level = zap.NewAtomicLevelAt(ParseLevel(level))

	return config.Build(zap.Fields(fields...))
}

// ParseLevel maps LOG_LEVEL values onto zap levels, falling back to info.
func ParseLevel(level string) zapcore.Level {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		return zapcore.InfoLevel
	}
	if l < zapcore.DebugLevel || l > zapcore.FatalLevel {
		return zapcore.InfoLevel
	}
	return l
}
