// pkg/shared/version.go

package shared

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is stamped at release time via -ldflags.
var Version = "dev"

// SafeSync flushes the global logger. Sync on a terminal stdout returns
// EINVAL or ENOTTY depending on the platform, so the error is dropped.
func SafeSync() {
	_ = zap.L().Sync()
}

// SafeHelp renders cobra help without letting a render failure take the
// process down.
func SafeHelp(cmd *cobra.Command) {
	if err := cmd.Help(); err != nil {
		zap.L().Warn("Failed to render help", zap.Error(err))
	}
}
