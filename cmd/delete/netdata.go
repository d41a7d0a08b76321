// cmd/delete/netdata.go

package delete

import (
	argus "github.com/CodeMonkeyCybersecurity/argus/pkg/argus_cli"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_err"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/interaction"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/netdata"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

var DeleteNetdataCmd = &cobra.Command{
	Use:          "netdata",
	SilenceUsage: true,
	Short:        "Remove the Netdata agent and its artifacts",
	Long: `Remove the Netdata monitoring agent from this host.

This command will:
- Stop and disable the netdata service
- Remove and purge the netdata package
- Remove the vendor APT repository and its signing key
- Delete state directories (unless --keep-data preserves config and metrics)

By default the command prompts for confirmation before removing data.

EXAMPLES:
  # Remove Netdata with a confirmation prompt
  argus delete netdata

  # Remove without confirmation (use with caution)
  argus delete netdata --yes

  # Remove the package but keep configuration and the metrics database
  argus delete netdata --keep-data --yes`,
	RunE: argus.Wrap(runDeleteNetdata),
}

var (
	deleteNetdataYes      bool
	deleteNetdataKeepData bool
	deleteNetdataDryRun   bool
)

func runDeleteNetdata(rc *argus_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	logger := otelzap.Ctx(rc.Ctx)

	if !deleteNetdataYes && !deleteNetdataDryRun {
		if !interaction.IsTTY() {
			return argus_err.NewUserError("refusing to remove without confirmation: pass --yes in non-interactive runs")
		}
		prompt := "Are you sure you want to remove Netdata"
		if deleteNetdataKeepData {
			prompt += " (configuration and metrics data will be kept)?"
		} else {
			prompt += " (all configuration and metrics data will be deleted)?"
		}
		if !interaction.PromptYesNo(rc.Ctx, prompt, false) {
			logger.Info("terminal prompt: Removal cancelled")
			return nil
		}
	}

	cfg := netdata.DefaultInstallConfig()
	cfg.DryRun = deleteNetdataDryRun
	execute.DefaultDryRun = cfg.DryRun

	return netdata.NewInstaller(rc, cfg).Remove(deleteNetdataKeepData)
}

func init() {
	flags := DeleteNetdataCmd.Flags()
	flags.BoolVarP(&deleteNetdataYes, "yes", "y", false, "Skip the confirmation prompt")
	flags.BoolVar(&deleteNetdataKeepData, "keep-data", false,
		"Preserve /etc/netdata and the metrics database in /var/lib/netdata")
	flags.BoolVar(&deleteNetdataDryRun, "dry-run", false,
		"Log every step without changing the host")

	DeleteCmd.AddCommand(DeleteNetdataCmd)
}
