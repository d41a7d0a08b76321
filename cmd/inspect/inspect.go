// cmd/inspect/inspect.go

package inspect

import (
	"github.com/CodeMonkeyCybersecurity/argus/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/shared"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// InspectCmd is the root command for read-only inspection.
var InspectCmd = &cobra.Command{
	Use:     "inspect",
	Short:   "Inspect resources without changing them",
	Long:    `The inspect command reports the state of resources argus manages, such as the Netdata agent.`,
	Aliases: []string{"read", "get", "list", "ls"},
	Run: func(cmd *cobra.Command, args []string) {
		logger.L().Info("No subcommand provided for inspect", zap.String("command", cmd.Use))
		shared.SafeHelp(cmd)
	},
}
