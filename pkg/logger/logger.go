// pkg/logger/logger.go

package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var (
	mu          sync.RWMutex
	current     *zap.Logger
	initialized bool
)

// L returns the process logger. Before initialization it falls back to the
// zap global so early callers never get nil.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if current != nil {
		return current
	}
	return zap.L()
}

// SetLogger installs l as both the package and the zap global logger.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	current = l
	initialized = true
	zap.ReplaceGlobals(l)
}

// EnsureInitialized installs the console fallback if no logger has been set
// yet. Safe to call from every command entry point.
func EnsureInitialized() {
	mu.RLock()
	ready := initialized
	mu.RUnlock()
	if !ready {
		InitFallback()
	}
}

// Sync flushes buffered entries. Sync errors from terminal streams are not
// real failures and are dropped.
func Sync() error {
	err := L().Sync()
	if err == nil || isTerminalSyncError(err) {
		return nil
	}
	return err
}

func isTerminalSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "invalid argument") ||
		strings.Contains(msg, "inappropriate ioctl for device") ||
		strings.Contains(msg, "bad file descriptor")
}

// EnsureLogPermissions creates the log location with owner-only access:
// directory 0700, file 0600.
func EnsureLogPermissions(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	if err := os.Chmod(dir, 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Chmod(path, 0o600)
}
