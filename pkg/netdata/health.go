// pkg/netdata/health.go

package netdata

import (
	"os"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/shared"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const healthRuleFileName = "cpu_usage.conf"

// cpuHealthRule alerts on sustained CPU saturation: a 3-second rolling
// average of the busy dimensions, checked every 10 seconds, warning above
// 80% and critical above 90%. The content is fixed; re-runs overwrite the
// file with the same definition.
const cpuHealthRule = ` alarm: cpu_usage
    on: system.cpu
lookup: average -3s unaligned of user,system,softirq,irq
 units: %
 every: 10s
  warn: $this > 80
  crit: $this > 90
  info: CPU utilization averaged over the last 3 seconds
`

// CPUHealthRule returns the threshold-alert definition written to the
// agent's health rules directory.
func CPUHealthRule() string {
	return cpuHealthRule
}

// applyHealthRule writes the CPU alert definition and restarts the agent so
// it takes effect. Activation failure here is terminal unless the operator
// opted the health-rule checkpoint into remediation.
func (in *Installer) applyHealthRule() error {
	logger := otelzap.Ctx(in.rc.Ctx)
	path := in.cfg.Paths.HealthRulePath()

	if in.cfg.DryRun {
		logger.Info("terminal prompt: dry run - would write CPU alert rule to " + path)
		return nil
	}

	if err := os.MkdirAll(in.cfg.Paths.HealthDir(), shared.DirPermStandard); err != nil {
		return cerr.Wrapf(err, "create health rules directory %s", in.cfg.Paths.HealthDir())
	}
	if err := os.WriteFile(path, []byte(cpuHealthRule), shared.FilePermStandard); err != nil {
		return cerr.Wrapf(err, "write health rule %s", path)
	}
	// WriteFile leaves existing files' modes alone, so pin them.
	if err := os.Chmod(path, shared.FilePermStandard); err != nil {
		return cerr.Wrapf(err, "chmod health rule %s", path)
	}
	in.ownPaths(false, path)

	logger.Info("CPU health rule written",
		zap.String("path", path),
		zap.Int("warn_percent", 80),
		zap.Int("crit_percent", 90))

	return in.restartAndVerify(CheckpointHealthRule)
}
