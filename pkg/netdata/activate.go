// pkg/netdata/activate.go

package netdata

import (
	"os"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/systemd"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// RecoveryAction is a named repair applied when the unit fails an activation
// check. One run applies at most one recovery, once, across all checkpoints.
type RecoveryAction struct {
	Name  string
	Apply func(rc *argus_io.RuntimeContext) error
}

// permissionRepair fixes the most common activation failure after a dirty
// reinstall: state directories left owned by root, which the agent cannot
// write to once it drops privileges.
func (in *Installer) permissionRepair() RecoveryAction {
	return RecoveryAction{
		Name: "state-permission-repair",
		Apply: func(rc *argus_io.RuntimeContext) error {
			paths := in.cfg.Paths
			if err := in.chownTo(rc.Ctx, true, paths.LibDir, paths.CacheDir); err != nil {
				return cerr.Wrap(err, "reset state directory ownership")
			}
			if err := os.Chmod(paths.CacheDir, shared.DirPermStandard); err != nil {
				return cerr.Wrapf(err, "chmod %s", paths.CacheDir)
			}
			return nil
		},
	}
}

// verifyActive polls the unit until it is active. On failure it captures
// diagnostics and, when the checkpoint allows it and no recovery has run yet
// this invocation, applies the recovery action and re-polls once. A second
// failure is terminal.
func (in *Installer) verifyActive(checkpoint string) error {
	logger := otelzap.Ctx(in.rc.Ctx)
	ctx := in.rc.Ctx

	err := systemd.WaitActive(ctx, in.svc, UnitName, in.cfg.PollInterval, in.cfg.ActivationTimeout)
	if err == nil {
		logger.Info("Service is active",
			zap.String("unit", UnitName),
			zap.String("checkpoint", checkpoint))
		return nil
	}

	logger.Warn("Service failed activation check",
		zap.String("unit", UnitName),
		zap.String("checkpoint", checkpoint),
		zap.Error(err))
	systemd.CaptureDiagnostics(ctx, in.svc, UnitName).Emit(logger)

	if !in.cfg.RemediateAt(checkpoint) {
		return cerr.Wrapf(err, "unit %s failed the %s activation check (remediation not configured for this checkpoint)",
			UnitName, checkpoint)
	}
	if in.remediationApplied {
		return cerr.Wrapf(err, "unit %s failed the %s activation check after remediation already ran",
			UnitName, checkpoint)
	}

	in.remediationApplied = true
	logger.Warn("Applying one-shot remediation",
		zap.String("action", in.recovery.Name),
		zap.String("checkpoint", checkpoint))
	logger.Info("terminal prompt: Attempting repair: " + in.recovery.Name)

	if aerr := in.recovery.Apply(in.rc); aerr != nil {
		return cerr.Wrapf(aerr, "remediation %s failed", in.recovery.Name)
	}
	if rerr := in.svc.Restart(ctx, UnitName); rerr != nil {
		return cerr.Wrapf(rerr, "restart %s after remediation", UnitName)
	}

	if err := systemd.WaitActive(ctx, in.svc, UnitName, in.cfg.PollInterval, in.cfg.ActivationTimeout); err != nil {
		systemd.CaptureDiagnostics(ctx, in.svc, UnitName).Emit(logger)
		return cerr.Wrapf(err, "unit %s still not active after %s", UnitName, in.recovery.Name)
	}

	logger.Info("Service recovered after remediation",
		zap.String("unit", UnitName),
		zap.String("action", in.recovery.Name))
	return nil
}

// restartAndVerify restarts the unit so a config change takes effect, then
// re-runs the activation check for the given checkpoint.
func (in *Installer) restartAndVerify(checkpoint string) error {
	if err := in.svc.Restart(in.rc.Ctx, UnitName); err != nil {
		return cerr.Wrapf(err, "restart %s after %s change", UnitName, checkpoint)
	}
	return in.verifyActive(checkpoint)
}
