// pkg/logger/paths.go

package logger

import (
	"os"
	"path/filepath"
	"runtime"
)

// PlatformLogPaths lists candidate log file locations in priority order.
// Root gets /var/log; unprivileged runs land in the user's state dir.
func PlatformLogPaths() []string {
	switch runtime.GOOS {
	case "darwin":
		var paths []string
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, "Library", "Logs", "argus", "argus.log"))
		}
		return append(paths, filepath.Join(os.TempDir(), "argus", "argus.log"))
	case "windows":
		var paths []string
		if programData := os.Getenv("ProgramData"); programData != "" {
			paths = append(paths, filepath.Join(programData, "argus", "argus.log"))
		}
		return append(paths, filepath.Join(os.TempDir(), "argus", "argus.log"))
	default:
		paths := []string{"/var/log/argus/argus.log"}
		if state := os.Getenv("XDG_STATE_HOME"); state != "" {
			paths = append(paths, filepath.Join(state, "argus", "argus.log"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, ".local", "state", "argus", "argus.log"))
		}
		return append(paths, filepath.Join(os.TempDir(), "argus", "argus.log"))
	}
}
