// cmd/inspect/netdata.go

package inspect

import (
	argus "github.com/CodeMonkeyCybersecurity/argus/pkg/argus_cli"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/netdata"
	"github.com/spf13/cobra"
)

var InspectNetdataCmd = &cobra.Command{
	Use:          "netdata",
	SilenceUsage: true,
	Short:        "Report the state of the Netdata agent on this host",
	Long: `Report whether Netdata is installed, its service state, agent version,
and whether the local dashboard answers. Inspection never changes the host
and an absent agent is reported, not treated as an error.

EXAMPLES:
  # Human-readable status report
  argus inspect netdata

  # Also write the status as YAML for fleet tooling
  argus inspect netdata --export /tmp/netdata-status.yaml`,
	RunE: argus.Wrap(runInspectNetdata),
}

func runInspectNetdata(rc *argus_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	in := netdata.NewInstaller(rc, netdata.DefaultInstallConfig())

	st, err := in.Inspect()
	if err != nil {
		return err
	}
	in.PrintStatus(st)

	if exportPath := argus.GetStringOrEmpty(cmd, "export"); exportPath != "" {
		return in.ExportStatus(st, exportPath)
	}
	return nil
}

func init() {
	argus.AddStringFlag(InspectNetdataCmd, "export", "", "",
		"Write the status snapshot as YAML to this path", false)

	InspectCmd.AddCommand(InspectNetdataCmd)
}
