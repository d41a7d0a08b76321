// cmd/create/netdata.go

package create

import (
	argus "github.com/CodeMonkeyCybersecurity/argus/pkg/argus_cli"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_err"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/netdata"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var CreateNetdataCmd = &cobra.Command{
	Use:          "netdata",
	SilenceUsage: true,
	Short:        "Install the Netdata monitoring agent with repository, alerting and firewall setup",
	Long: `Install the Netdata monitoring agent on this Ubuntu host.

This command will:
- Remove any prior Netdata installation (package, state directories, stale repository)
- Register the vendor APT repository with its signing key
- Install the netdata package and verify the installation
- Enable and start the service, with a one-shot permission repair if activation fails
- Apply a CPU utilization health alert (warn above 80%, critical above 90%)
- Deploy the bundled apps_groups.conf and python.d apps collector configs
- Open the dashboard port (19999/tcp) when ufw is present
- Print the dashboard URLs and a host summary

Activation failures at the checkpoints listed in --remediate trigger one
permission repair per run: state directories are re-owned to the netdata
user and the cache directory mode is fixed, then the service is restarted.

EXAMPLES:
  # Standard installation from the stable channel
  argus create netdata

  # Nightly builds, no firewall changes
  argus create netdata --channel edge --skip-firewall

  # Show what would happen without touching the host
  argus create netdata --dry-run

  # Load settings from a profile, allow remediation at every checkpoint
  argus create netdata --profile ./netdata.yaml --remediate install,health-rule,custom-config`,
	RunE: argus.Wrap(runCreateNetdata),
}

var (
	createNetdataChannel           string
	createNetdataConfigsDir        string
	createNetdataPollInterval      = netdata.DefaultInstallConfig().PollInterval
	createNetdataActivationTimeout = netdata.DefaultInstallConfig().ActivationTimeout
	createNetdataRemediate         []string
	createNetdataSkipCleanup       bool
	createNetdataSkipFirewall      bool
	createNetdataDryRun            bool
	createNetdataProfile           string
)

func runCreateNetdata(rc *argus_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	logger := otelzap.Ctx(rc.Ctx)

	cfg := netdata.DefaultInstallConfig()
	if createNetdataProfile != "" {
		if err := cfg.LoadProfile(rc, createNetdataProfile); err != nil {
			// The profile path came from the operator; a bad one is not a bug.
			return argus_err.NewExpectedError(rc.Ctx, err)
		}
	}

	// Explicit flags win over profile values.
	if cmd.Flags().Changed("channel") {
		cfg.Channel = createNetdataChannel
	}
	if cmd.Flags().Changed("configs-dir") {
		cfg.ConfigsDir = createNetdataConfigsDir
	}
	if cmd.Flags().Changed("poll-interval") {
		cfg.PollInterval = createNetdataPollInterval
	}
	if cmd.Flags().Changed("activation-timeout") {
		cfg.ActivationTimeout = createNetdataActivationTimeout
	}
	if cmd.Flags().Changed("remediate") {
		cfg.Remediate = createNetdataRemediate
	}
	if cmd.Flags().Changed("skip-cleanup") {
		cfg.SkipCleanup = createNetdataSkipCleanup
	}
	if cmd.Flags().Changed("skip-firewall") {
		cfg.SkipFirewall = createNetdataSkipFirewall
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = createNetdataDryRun
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	execute.DefaultDryRun = cfg.DryRun
	if cfg.DryRun {
		logger.Info("terminal prompt: Dry run: commands are logged, nothing is changed")
	}

	logger.Info("Starting Netdata provisioning",
		zap.String("channel", cfg.Channel),
		zap.Strings("remediate", cfg.Remediate),
		zap.Bool("dry_run", cfg.DryRun))

	return netdata.NewInstaller(rc, cfg).Install()
}

func init() {
	flags := CreateNetdataCmd.Flags()
	flags.StringVar(&createNetdataChannel, "channel", netdata.ChannelStable,
		"Vendor release channel (stable or edge)")
	flags.StringVar(&createNetdataConfigsDir, "configs-dir", netdata.DefaultInstallConfig().ConfigsDir,
		"Directory holding the collector configs to deploy (apps_groups.conf, python.d/apps.conf)")
	flags.DurationVar(&createNetdataPollInterval, "poll-interval", createNetdataPollInterval,
		"How often to poll the unit state during activation checks")
	flags.DurationVar(&createNetdataActivationTimeout, "activation-timeout", createNetdataActivationTimeout,
		"How long to wait for the unit to become active before remediation kicks in")
	flags.StringSliceVar(&createNetdataRemediate, "remediate", netdata.DefaultInstallConfig().Remediate,
		"Checkpoints where the one-shot permission repair may run (install, health-rule, custom-config, none)")
	flags.BoolVar(&createNetdataSkipCleanup, "skip-cleanup", false,
		"Leave any prior Netdata installation in place")
	flags.BoolVar(&createNetdataSkipFirewall, "skip-firewall", false,
		"Do not open the dashboard port in ufw")
	flags.BoolVar(&createNetdataDryRun, "dry-run", false,
		"Log every step without changing the host")
	flags.StringVar(&createNetdataProfile, "profile", "",
		"YAML profile with install settings (flags override it)")

	CreateCmd.AddCommand(CreateNetdataCmd)
}
