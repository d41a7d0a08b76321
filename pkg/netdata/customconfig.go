// pkg/netdata/customconfig.go

package netdata

import (
	"os"
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_err"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/shared"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// configDeployment maps one local collector config to its destination on
// the host.
type configDeployment struct {
	Source string // relative to InstallConfig.ConfigsDir
	Dest   func(Paths) string
}

// deployments lists the collector configs provisioning ships: process
// grouping for the apps plugin and the python.d apps collector settings.
var deployments = []configDeployment{
	{Source: "apps_groups.conf", Dest: Paths.AppsGroupsPath},
	{Source: filepath.Join("python.d", "apps.conf"), Dest: Paths.PythonAppsPath},
}

// deployCustomConfigs copies the bundled collector configs onto the host and
// restarts the agent so they load. Destination files always end up 0644 and
// their directories 0755, whatever the modes of the sources.
func (in *Installer) deployCustomConfigs() error {
	logger := otelzap.Ctx(in.rc.Ctx)
	paths := in.cfg.Paths

	if in.cfg.DryRun {
		for _, d := range deployments {
			logger.Info("terminal prompt: dry run - would copy " +
				filepath.Join(in.cfg.ConfigsDir, d.Source) + " to " + d.Dest(paths))
		}
		return nil
	}

	for _, dir := range []string{paths.ConfigDir, paths.PythonDDir()} {
		if err := os.MkdirAll(dir, shared.DirPermStandard); err != nil {
			return cerr.Wrapf(err, "create config directory %s", dir)
		}
		// MkdirAll leaves pre-existing directories' modes alone, so pin them.
		if err := os.Chmod(dir, shared.DirPermStandard); err != nil {
			return cerr.Wrapf(err, "chmod config directory %s", dir)
		}
	}

	deployed := make([]string, 0, len(deployments))
	for _, d := range deployments {
		src := filepath.Join(in.cfg.ConfigsDir, d.Source)
		dst := d.Dest(paths)
		if err := copyConfigFile(src, dst); err != nil {
			return err
		}
		logger.Info("Collector config deployed",
			zap.String("source", src),
			zap.String("dest", dst))
		deployed = append(deployed, dst)
	}
	in.ownPaths(false, append(deployed, paths.ConfigDir, paths.PythonDDir())...)

	return in.restartAndVerify(CheckpointCustomConfig)
}

// copyConfigFile copies src to dst with the standard config mode. A missing
// source means the operator pointed --configs-dir somewhere wrong, so it is
// reported as a user error rather than a bug.
func copyConfigFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return argus_err.NewUserError("collector config %s not found (check --configs-dir)", src)
		}
		return cerr.Wrapf(err, "read collector config %s", src)
	}
	if err := os.WriteFile(dst, data, shared.FilePermStandard); err != nil {
		return cerr.Wrapf(err, "write collector config %s", dst)
	}
	if err := os.Chmod(dst, shared.FilePermStandard); err != nil {
		return cerr.Wrapf(err, "chmod collector config %s", dst)
	}
	return nil
}
