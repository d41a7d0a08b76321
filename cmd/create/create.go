// cmd/create/create.go

package create

import (
	"github.com/CodeMonkeyCybersecurity/argus/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/shared"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// CreateCmd is the root command for create operations.
var CreateCmd = &cobra.Command{
	Use:     "create",
	Short:   "Create and provision resources (e.g., the monitoring agent)",
	Long:    `The create command provisions resources on this host, such as the Netdata monitoring agent.`,
	Aliases: []string{"add", "install"},
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.L()
		if len(args) == 0 {
			log.Warn("No subcommand specified for 'create'. Use a subcommand like 'netdata'.")
		} else {
			log.Info("Create command invoked without a known subcommand", zap.Strings("args", args))
		}
		shared.SafeHelp(cmd)
	},
}
