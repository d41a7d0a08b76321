// pkg/netdata/install.go

package netdata

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/apt"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/firewall"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/platform"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/preflight"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/privilege_check"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/sysinfo"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/systemd"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// prerequisitePackages must be present before the vendor repository can be
// registered.
var prerequisitePackages = []string{"curl", "gnupg", "ca-certificates"}

// prerequisiteTools are verified on PATH after the prerequisite install.
var prerequisiteTools = []string{"curl", "gpg"}

// Installer drives the provisioning flow against the host subsystems. All
// external effects go through the injected interfaces and function seams so
// the flow can be exercised end to end in tests.
type Installer struct {
	rc  *argus_io.RuntimeContext
	cfg *InstallConfig

	pkgs apt.Manager
	svc  systemd.Manager
	fw   firewall.Firewall
	host sysinfo.Collector

	requireRoot   func(*argus_io.RuntimeContext) error
	lookPath      func(string) (string, error)
	detectRelease func(*argus_io.RuntimeContext) (*platform.UbuntuRelease, error)
	hostChecks    func(*argus_io.RuntimeContext) []preflight.Check
	chownTo       func(ctx context.Context, recursive bool, paths ...string) error
	killPattern   func(ctx context.Context, pattern string) error

	recovery           RecoveryAction
	remediationApplied bool

	// dashboardURL overrides the probe target; empty means localhost on
	// the dashboard port.
	dashboardURL string
}

// NewInstaller wires an Installer to the production host subsystems.
func NewInstaller(rc *argus_io.RuntimeContext, cfg *InstallConfig) *Installer {
	in := &Installer{
		rc:            rc,
		cfg:           cfg,
		pkgs:          apt.NewManager(),
		svc:           systemd.NewManager(),
		fw:            firewall.NewUFW(),
		host:          sysinfo.NewCollector(),
		requireRoot:   privilege_check.RequireRoot,
		lookPath:      exec.LookPath,
		detectRelease: platform.DetectUbuntuRelease,
		hostChecks:    preflight.HostChecks,
		chownTo:       chownServiceUser,
		killPattern:   killByPattern,
	}
	in.recovery = in.permissionRepair()
	return in
}

// Install runs the full provisioning flow. The first failed stage aborts the
// run; the firewall stage alone degrades to a notice instead of failing.
func (in *Installer) Install() error {
	logger := otelzap.Ctx(in.rc.Ctx)

	logger.Info("terminal prompt: Netdata agent provisioning")
	logger.Info("terminal prompt: Channel: " + in.cfg.Channel)
	if in.cfg.DryRun {
		logger.Info("terminal prompt: Dry run: no changes will be made")
	}

	type stage struct {
		name string
		run  func() error
	}
	stages := []stage{
		{"Checking privileges", in.checkPrivileges},
		{"Verifying prerequisites", in.prerequisites},
		{"Removing prior installation", in.cleanup},
		{"Registering vendor repository", in.registerRepository},
		{"Installing the agent", in.installAgent},
		{"Activating the service", in.activateService},
		{"Applying CPU health rule", in.applyHealthRule},
		{"Deploying collector configs", in.deployCustomConfigs},
		{"Opening dashboard port", in.configureFirewall},
		{"Summarizing", in.printSummary},
	}

	for i, s := range stages {
		logger.Info(fmt.Sprintf("terminal prompt: [%d/%d] %s", i+1, len(stages), s.name))
		if err := s.run(); err != nil {
			logger.Error("Provisioning stage failed",
				zap.Int("stage", i+1),
				zap.String("name", s.name),
				zap.Error(err))
			return err
		}
	}

	return nil
}

func (in *Installer) checkPrivileges() error {
	return in.requireRoot(in.rc)
}

func (in *Installer) prerequisites() error {
	logger := otelzap.Ctx(in.rc.Ctx)
	ctx := in.rc.Ctx

	if _, err := preflight.RunChecks(in.rc, in.hostChecks(in.rc)); err != nil {
		return err
	}

	if err := in.pkgs.Update(ctx); err != nil {
		return err
	}
	if err := in.pkgs.Install(ctx, prerequisitePackages...); err != nil {
		return err
	}

	if in.cfg.DryRun {
		return nil
	}
	for _, tool := range prerequisiteTools {
		if _, err := in.lookPath(tool); err != nil {
			return cerr.Wrapf(err, "%s not on PATH after prerequisite install", tool)
		}
	}
	logger.Debug("Prerequisite tooling verified", zap.Strings("tools", prerequisiteTools))
	return nil
}

func (in *Installer) registerRepository() error {
	logger := otelzap.Ctx(in.rc.Ctx)

	release, err := in.detectRelease(in.rc)
	if err != nil {
		return cerr.Wrap(err, "detect Ubuntu release")
	}
	if err := platform.ValidateUbuntuVersion(release); err != nil {
		return err
	}

	repo := in.cfg.Paths.Repository(in.cfg.Channel, release.Codename)
	logger.Info("terminal prompt: Repository: " + repo.Line)

	if in.cfg.DryRun {
		logger.Info("terminal prompt: dry run - would register signing key and apt source")
		return nil
	}
	return in.pkgs.RegisterRepository(in.rc.Ctx, repo)
}

func (in *Installer) installAgent() error {
	logger := otelzap.Ctx(in.rc.Ctx)
	ctx := in.rc.Ctx

	if err := in.pkgs.Install(ctx, PackageName); err != nil {
		return err
	}

	if in.cfg.DryRun {
		return nil
	}

	// The binary resolving on PATH is the installation-correctness check;
	// service health is the activator's job.
	path, err := in.lookPath(BinaryName)
	if err != nil {
		return cerr.Wrapf(err,
			"%s not on PATH after install; inspect `journalctl -u %s` and %s",
			BinaryName, UnitName, filepath.Join(in.cfg.Paths.LogDir, "error.log"))
	}
	logger.Info("Agent binary installed", zap.String("path", path))
	return nil
}

func (in *Installer) activateService() error {
	logger := otelzap.Ctx(in.rc.Ctx)
	ctx := in.rc.Ctx

	if in.cfg.DryRun {
		logger.Info("terminal prompt: dry run - would enable and start " + UnitName)
		return nil
	}

	if err := in.svc.DaemonReload(ctx); err != nil {
		return err
	}
	if err := in.svc.Enable(ctx, UnitName); err != nil {
		return err
	}
	if err := in.svc.Start(ctx, UnitName); err != nil {
		return err
	}
	return in.verifyActive(CheckpointInstall)
}

func (in *Installer) configureFirewall() error {
	logger := otelzap.Ctx(in.rc.Ctx)
	ctx := in.rc.Ctx
	spec := firewall.PortSpec(PortDashboard, "tcp")

	if in.cfg.SkipFirewall {
		logger.Info("terminal prompt: Skipping firewall configuration (--skip-firewall)")
		return nil
	}
	if in.cfg.DryRun {
		logger.Info("terminal prompt: dry run - would allow " + spec + " via ufw")
		return nil
	}
	if !in.fw.Present(ctx) {
		logger.Info("terminal prompt: No ufw frontend detected. Open " + spec + " with your firewall manually if the dashboard should be reachable remotely.")
		return nil
	}
	if err := in.fw.AllowPort(ctx, PortDashboard, "tcp", FirewallComment); err != nil {
		// A firewall hiccup must not undo an otherwise working install.
		logger.Warn("Failed to add firewall rule", zap.String("rule", spec), zap.Error(err))
		logger.Info("terminal prompt: Could not add the ufw rule. Open " + spec + " manually.")
		return nil
	}
	logger.Info("terminal prompt: Firewall rule added: allow " + spec)
	return nil
}

// chownServiceUser hands ownership of the given paths to the agent's
// dedicated user. The package creates the user, so this shells out rather
// than resolving uids in-process.
func chownServiceUser(ctx context.Context, recursive bool, paths ...string) error {
	args := make([]string, 0, len(paths)+2)
	if recursive {
		args = append(args, "-R")
	}
	args = append(args, ServiceUser+":"+ServiceGroup)
	args = append(args, paths...)
	return execute.RunSimple(ctx, "chown", args...)
}

func killByPattern(ctx context.Context, pattern string) error {
	return execute.RunSimple(ctx, "pkill", "-f", pattern)
}

// FirewallComment labels the ufw rule so its owner is obvious in listings.
const FirewallComment = "Netdata agent dashboard"

// ownPaths applies ownership best effort and logs instead of failing, since
// a chown problem surfaces later as an activation failure with better
// diagnostics attached.
func (in *Installer) ownPaths(recursive bool, paths ...string) {
	if err := in.chownTo(in.rc.Ctx, recursive, paths...); err != nil {
		otelzap.Ctx(in.rc.Ctx).Warn("Failed to set ownership",
			zap.Strings("paths", paths),
			zap.String("owner", ServiceUser+":"+ServiceGroup),
			zap.Error(err))
	}
}
