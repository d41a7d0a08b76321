// pkg/netdata/summary.go

package netdata

import (
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// printSummary tells the operator where the dashboard lives, what was
// configured, and which commands to reach for first when something looks
// off. Nothing here can fail the run.
func (in *Installer) printSummary() error {
	logger := otelzap.Ctx(in.rc.Ctx)
	ctx := in.rc.Ctx

	ip, err := in.host.PrimaryIP(ctx)
	if err != nil || ip == "" {
		ip = "127.0.0.1"
	}

	logger.Info("terminal prompt: ")
	logger.Info("terminal prompt: Netdata agent provisioned")
	logger.Info(fmt.Sprintf("terminal prompt:   Dashboard:   http://%s:%d/", ip, PortDashboard))
	logger.Info(fmt.Sprintf("terminal prompt:                http://127.0.0.1:%d/", PortDashboard))
	logger.Info("terminal prompt:   CPU alerts:  warn above 80%, critical above 90% (3s average, checked every 10s)")
	logger.Info("terminal prompt:   Alert rule:  " + in.cfg.Paths.HealthRulePath())
	logger.Info("terminal prompt:   Configs:     " + in.cfg.Paths.AppsGroupsPath())
	logger.Info("terminal prompt:                " + in.cfg.Paths.PythonAppsPath())
	logger.Info("terminal prompt: ")
	logger.Info("terminal prompt: Useful follow-ups:")
	logger.Info("terminal prompt:   systemctl status " + UnitName)
	logger.Info("terminal prompt:   journalctl -u " + UnitName + " -f")
	logger.Info(fmt.Sprintf("terminal prompt:   curl -s http://127.0.0.1:%d/api/v1/info", PortDashboard))

	if facts, err := in.host.HostInfo(ctx); err == nil {
		logger.Info("Host facts",
			zap.String("hostname", facts.Hostname),
			zap.String("platform", facts.Platform),
			zap.String("platform_version", facts.PlatformVersion),
			zap.String("kernel", facts.KernelVersion),
			zap.Uint64("uptime_seconds", facts.UptimeSeconds))
	} else {
		logger.Debug("Host facts unavailable", zap.Error(err))
	}

	return nil
}
