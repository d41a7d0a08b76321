// pkg/logger/fallback.go

package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewFallbackLogger builds a console-only logger for the window before full
// initialization, and for hosts where no log file location is writable.
func NewFallbackLogger() *zap.Logger {
	encoder := zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), levelFromEnv())
	return zap.New(newTerminalConsoleCore(core))
}

// InitFallback installs the console-only logger as the process logger.
func InitFallback() {
	SetLogger(NewFallbackLogger())
}

// InitializeWithFallback builds the full logger: colored console output
// teed with a structured JSON file. When no file location is writable it
// degrades to console only rather than failing.
func InitializeWithFallback() {
	consoleEncoder := zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig())
	consoleCore := zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), levelFromEnv())

	cores := []zapcore.Core{consoleCore}

	if path, ok := FindWritableLogPath(); ok {
		ws, err := GetLogFileWriter(path)
		if err == nil {
			jsonCfg := zap.NewProductionEncoderConfig()
			jsonCfg.EncodeTime = zapcore.ISO8601TimeEncoder
			cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), ws, zapcore.DebugLevel))
		} else {
			fmt.Fprintf(os.Stderr, "⚠️  could not open log file %s: %v\n", path, err)
		}
	}

	SetLogger(zap.New(newTerminalConsoleCore(zapcore.NewTee(cores...))))
}
