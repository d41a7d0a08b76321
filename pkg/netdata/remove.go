// pkg/netdata/remove.go

package netdata

import (
	"os"

	cerr "github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Remove tears down an installed agent: service, package, repository
// artifacts and state directories. With keepData the agent's configuration
// and metrics database are preserved so a later install picks them up.
func (in *Installer) Remove(keepData bool) error {
	logger := otelzap.Ctx(in.rc.Ctx)
	ctx := in.rc.Ctx

	if err := in.requireRoot(in.rc); err != nil {
		return err
	}

	state := in.assessState()
	if !state.Detected() {
		logger.Info("terminal prompt: Nothing to remove: no Netdata installation detected")
		return nil
	}

	if in.cfg.DryRun {
		logger.Info("terminal prompt: dry run - would stop the service, purge the package and remove its artifacts")
		return nil
	}

	if state.UnitKnown {
		if err := in.svc.Stop(ctx, UnitName); err != nil {
			logger.Warn("Failed to stop service", zap.Error(err))
		}
		if err := in.svc.Disable(ctx, UnitName); err != nil {
			logger.Warn("Failed to disable service", zap.Error(err))
		}
	}
	if err := in.killPattern(ctx, BinaryName); err != nil {
		logger.Debug("No stray agent processes found", zap.Error(err))
	}

	if state.PackageInstalled {
		if err := in.pkgs.Remove(ctx, PackageName); err != nil {
			return err
		}
		if err := in.pkgs.Purge(ctx, PackageName); err != nil {
			return err
		}
	}
	if err := in.pkgs.AutoRemove(ctx); err != nil {
		logger.Warn("autoremove failed", zap.Error(err))
	}

	if err := in.pkgs.RemoveRepository(ctx, in.cfg.Paths.RepositoryArtifacts()); err != nil {
		logger.Warn("Failed to remove repository artifacts", zap.Error(err))
	}
	// Refresh the index so the vendor's packages drop out of the candidate
	// list now that the source is gone.
	if err := in.pkgs.Update(ctx); err != nil {
		logger.Warn("Package list refresh after removal failed", zap.Error(err))
	}

	for _, dir := range in.removableDirs(keepData) {
		if err := os.RemoveAll(dir); err != nil {
			logger.Warn("Failed to remove directory", zap.String("dir", dir), zap.Error(err))
		}
	}
	if keepData {
		logger.Info("terminal prompt: Keeping configuration and metrics data (--keep-data)")
		logger.Info("Preserved data directories",
			zap.String("config", in.cfg.Paths.ConfigDir),
			zap.String("lib", in.cfg.Paths.LibDir))
	}

	if err := in.svc.DaemonReload(ctx); err != nil {
		logger.Warn("daemon-reload after removal failed", zap.Error(err))
	}

	if err := in.verifyRemoval(keepData); err != nil {
		return err
	}
	logger.Info("terminal prompt: Netdata removed")
	return nil
}

// removableDirs returns the state directories removal may delete. With
// keepData the config directory and the metrics database stay.
func (in *Installer) removableDirs(keepData bool) []string {
	paths := in.cfg.Paths
	if keepData {
		return []string{paths.CacheDir, paths.LogDir, paths.PluginsDir}
	}
	return paths.StateDirs()
}

// verifyRemoval re-probes the host and aggregates every remaining artifact
// into one error, so a partially failed removal is visible in the exit code
// rather than buried in warnings.
func (in *Installer) verifyRemoval(keepData bool) error {
	ctx := in.rc.Ctx

	var residue *multierror.Error
	if installed, err := in.pkgs.IsInstalled(ctx, PackageName); err == nil && installed {
		residue = multierror.Append(residue, cerr.Newf("package %s still installed", PackageName))
	}
	for _, dir := range in.removableDirs(keepData) {
		if _, err := os.Stat(dir); err == nil {
			residue = multierror.Append(residue, cerr.Newf("directory %s still present", dir))
		}
	}
	for _, path := range []string{in.cfg.Paths.SourcesPath, in.cfg.Paths.KeyringPath} {
		if _, err := os.Stat(path); err == nil {
			residue = multierror.Append(residue, cerr.Newf("repository artifact %s still present", path))
		}
	}

	if err := residue.ErrorOrNil(); err != nil {
		return cerr.Wrap(err, "removal incomplete")
	}
	return nil
}
