// pkg/netdata/cleanup.go

package netdata

import (
	"os"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// installState captures what an assessment found on the host before any
// mutation. Every probe is read-only.
type installState struct {
	PackageInstalled bool
	UnitKnown        bool
	BinaryOnPath     bool
	ConfigDirExists  bool
}

// Detected reports whether any trace of a prior installation was found.
func (s installState) Detected() bool {
	return s.PackageInstalled || s.UnitKnown || s.BinaryOnPath || s.ConfigDirExists
}

// assessState probes the package database, the service supervisor, PATH and
// the config directory for traces of an existing installation.
func (in *Installer) assessState() installState {
	logger := otelzap.Ctx(in.rc.Ctx)
	ctx := in.rc.Ctx

	var state installState
	if installed, err := in.pkgs.IsInstalled(ctx, PackageName); err == nil {
		state.PackageInstalled = installed
	}
	state.UnitKnown = in.svc.UnitExists(ctx, UnitName)
	if _, err := in.lookPath(BinaryName); err == nil {
		state.BinaryOnPath = true
	}
	if _, err := os.Stat(in.cfg.Paths.ConfigDir); err == nil {
		state.ConfigDirExists = true
	}

	logger.Debug("Assessed existing installation",
		zap.Bool("package_installed", state.PackageInstalled),
		zap.Bool("unit_known", state.UnitKnown),
		zap.Bool("binary_on_path", state.BinaryOnPath),
		zap.Bool("config_dir_exists", state.ConfigDirExists))
	return state
}

// cleanup removes every trace of a prior installation so the fresh install
// starts from a blank slate. Individual teardown steps are best effort; only
// package operations abort the run.
func (in *Installer) cleanup() error {
	logger := otelzap.Ctx(in.rc.Ctx)
	ctx := in.rc.Ctx

	if in.cfg.SkipCleanup {
		logger.Info("terminal prompt: Skipping prior-install cleanup (--skip-cleanup)")
		return nil
	}

	state := in.assessState()
	if !state.Detected() {
		logger.Info("terminal prompt: No prior installation detected")
		return nil
	}
	logger.Info("terminal prompt: Prior installation detected, removing it")

	if in.cfg.DryRun {
		logger.Info("terminal prompt: dry run - would stop the service, purge the package and delete state directories")
		return nil
	}

	if state.UnitKnown {
		if err := in.svc.Stop(ctx, UnitName); err != nil {
			logger.Warn("Failed to stop existing service", zap.Error(err))
		}
		if err := in.svc.Disable(ctx, UnitName); err != nil {
			logger.Warn("Failed to disable existing service", zap.Error(err))
		}
	}

	// Orphaned collectors survive a unit stop after a botched uninstall.
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

	for _, dir := range in.cfg.Paths.StateDirs() {
		if err := os.RemoveAll(dir); err != nil {
			logger.Warn("Failed to remove state directory",
				zap.String("dir", dir), zap.Error(err))
		} else {
			logger.Debug("Removed state directory", zap.String("dir", dir))
		}
	}

	// A stale source would shadow the freshly registered one later on.
	if err := in.pkgs.RemoveRepository(ctx, in.cfg.Paths.RepositoryArtifacts()); err != nil {
		logger.Warn("Failed to remove stale repository artifacts", zap.Error(err))
	}

	if err := in.svc.DaemonReload(ctx); err != nil {
		logger.Warn("daemon-reload after cleanup failed", zap.Error(err))
	}

	logger.Info("terminal prompt: Prior installation removed")
	return nil
}
