// pkg/logger/config.go

package logger

import (
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

// ParseLogLevel maps a LOG_LEVEL value onto a zap level. Unknown values and
// the empty string mean info.
func ParseLogLevel(raw string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "TRACE", "DEBUG":
		return zapcore.DebugLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	case "DPANIC":
		return zapcore.DPanicLevel
	case "PANIC":
		return zapcore.PanicLevel
	case "FATAL":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func levelFromEnv() zapcore.Level {
	return ParseLogLevel(os.Getenv("LOG_LEVEL"))
}

// DefaultConsoleEncoderConfig renders compact, colored console lines.
func DefaultConsoleEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		NameKey:        "N",
		CallerKey:      "C",
		MessageKey:     "M",
		StacktraceKey:  "S",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}
