// pkg/logger/writer.go

package logger

import (
	"os"

	"go.uber.org/zap/zapcore"
)

// FindWritableLogPath returns the first candidate location that can
// actually be opened for append.
func FindWritableLogPath() (string, bool) {
	for _, path := range PlatformLogPaths() {
		if err := EnsureLogPermissions(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// GetLogFileWriter opens path for appending with owner-only permissions.
func GetLogFileWriter(path string) (zapcore.WriteSyncer, error) {
	if err := EnsureLogPermissions(path); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	return zapcore.AddSync(f), nil
}
