// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ LoggerInterface = (*Logger)(nil)

type Logger struct {
	*zap.SugaredLogger

	security *SecurityLogger
}

func (l *Logger) Security() SecurityLoggerInterface {
	return l.security
}

func levelFromString(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.ErrorLevel
	}
}

// NewLogger creates a json logger writing to stdout at the given level.
// Unknown levels fall back to error.
func NewLogger(l string) *Logger {
	c := zap.NewProductionConfig()
	c.Level = zap.NewAtomicLevelAt(levelFromString(l))
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	c.EncoderConfig.TimeKey = "@timestamp"
	c.OutputPaths = []string{"stdout"}
	c.ErrorOutputPaths = []string{"stderr"}

	z, err := c.Build()
	if err != nil {
		panic(err)
	}

	return &Logger{
		SugaredLogger: z.Sugar(),
		security:      &SecurityLogger{l: z.With(zap.String("type", "security"))},
	}
}
