// pkg/netdata/inspect.go

package netdata

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/sysinfo"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/systemd"
	cerr "github.com/cockroachdb/errors"
	goversion "github.com/hashicorp/go-version"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// MinimumAgentVersion is the oldest agent release the vendor still patches;
// older installs get flagged in inspect output.
const MinimumAgentVersion = "1.40.0"

const dashboardProbeTimeout = 3 * time.Second

// Status is the read-only picture inspect assembles. Absence of the agent is
// a valid status, not an error.
type Status struct {
	PackageInstalled   bool               `yaml:"package_installed"`
	UnitKnown          bool               `yaml:"unit_known"`
	ServiceState       string             `yaml:"service_state"`
	BinaryPath         string             `yaml:"binary_path,omitempty"`
	AgentVersion       string             `yaml:"agent_version,omitempty"`
	VersionSupported   bool               `yaml:"version_supported"`
	DashboardReachable bool               `yaml:"dashboard_reachable"`
	MemoryTotalMB      uint64             `yaml:"memory_total_mb,omitempty"`
	Host               *sysinfo.HostFacts `yaml:"host,omitempty"`
}

// Inspect probes the host without mutating anything.
func (in *Installer) Inspect() (*Status, error) {
	logger := otelzap.Ctx(in.rc.Ctx)
	ctx := in.rc.Ctx

	state := in.assessState()
	st := &Status{
		PackageInstalled: state.PackageInstalled,
		UnitKnown:        state.UnitKnown,
		ServiceState:     in.svc.ActiveState(ctx, UnitName),
	}

	if path, err := in.lookPath(BinaryName); err == nil {
		st.BinaryPath = path
		output, err := execute.Run(ctx, execute.Options{
			Command: BinaryName,
			Args:    []string{"-v"},
			Capture: true,
		})
		if err != nil {
			logger.Debug("Agent version query failed", zap.Error(err))
		} else if v, perr := ParseAgentVersion(output); perr != nil {
			logger.Debug("Unrecognized agent version output",
				zap.String("output", output), zap.Error(perr))
		} else {
			st.AgentVersion = v
			supported, verr := VersionSupported(v)
			if verr != nil {
				logger.Debug("Version comparison failed", zap.Error(verr))
			}
			st.VersionSupported = supported
		}
	}

	st.DashboardReachable = in.probeDashboard()

	if mb, err := in.host.MemoryTotalMB(ctx); err == nil {
		st.MemoryTotalMB = mb
	}
	if facts, err := in.host.HostInfo(ctx); err == nil {
		st.Host = facts
	} else {
		logger.Debug("Host facts unavailable", zap.Error(err))
	}

	return st, nil
}

// PrintStatus renders the status for the operator.
func (in *Installer) PrintStatus(st *Status) {
	logger := otelzap.Ctx(in.rc.Ctx)

	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}

	logger.Info("terminal prompt: Netdata status")
	logger.Info("terminal prompt:   Package installed:   " + yesNo(st.PackageInstalled))
	logger.Info("terminal prompt:   Unit known:          " + yesNo(st.UnitKnown))
	logger.Info("terminal prompt:   Service state:       " + st.ServiceState)
	if st.ServiceState == systemd.StateFailed {
		logger.Info("terminal prompt:     unit is failed; try: journalctl -u " + UnitName + " -n 50")
	}
	if st.BinaryPath != "" {
		logger.Info("terminal prompt:   Binary:              " + st.BinaryPath)
	} else {
		logger.Info("terminal prompt:   Binary:              not on PATH")
	}
	if st.AgentVersion != "" {
		line := "terminal prompt:   Agent version:       v" + st.AgentVersion
		if !st.VersionSupported {
			line += " (older than v" + MinimumAgentVersion + ", consider upgrading)"
		}
		logger.Info(line)
	}
	logger.Info(fmt.Sprintf("terminal prompt:   Dashboard (:%d):  %s", PortDashboard, yesNo(st.DashboardReachable)))
	if st.MemoryTotalMB > 0 {
		logger.Info(fmt.Sprintf("terminal prompt:   Memory:              %d MB", st.MemoryTotalMB))
	}
	if st.Host != nil {
		logger.Info(fmt.Sprintf("terminal prompt:   Host:                %s (%s %s, kernel %s)",
			st.Host.Hostname, st.Host.Platform, st.Host.PlatformVersion, st.Host.KernelVersion))
	}
}

// ExportStatus writes the status snapshot as YAML, for fleet tooling that
// wants machine-readable output instead of the terminal report.
func (in *Installer) ExportStatus(st *Status, path string) error {
	if err := argus_io.WriteYAML(in.rc.Ctx, path, st); err != nil {
		return cerr.Wrapf(err, "export status to %s", path)
	}
	otelzap.Ctx(in.rc.Ctx).Info("terminal prompt: Status written to " + path)
	return nil
}

// probeDashboard checks whether the agent's HTTP API answers locally.
func (in *Installer) probeDashboard() bool {
	url := in.dashboardURL
	if url == "" {
		url = fmt.Sprintf("http://127.0.0.1:%d", PortDashboard)
	}

	req, err := http.NewRequestWithContext(in.rc.Ctx, http.MethodGet, url+"/api/v1/info", nil)
	if err != nil {
		return false
	}
	client := &http.Client{Timeout: dashboardProbeTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode == http.StatusOK
}

// ParseAgentVersion extracts the semantic version from `netdata -v` output,
// which looks like "netdata v1.45.2".
func ParseAgentVersion(output string) (string, error) {
	for _, field := range strings.Fields(output) {
		v := strings.TrimPrefix(field, "v")
		if v == field {
			continue
		}
		if _, err := goversion.NewVersion(v); err == nil {
			return v, nil
		}
	}
	return "", cerr.Newf("no version found in %q", strings.TrimSpace(output))
}

// VersionSupported reports whether the given agent version meets the
// minimum supported release.
func VersionSupported(v string) (bool, error) {
	current, err := goversion.NewVersion(v)
	if err != nil {
		return false, cerr.Wrapf(err, "parse agent version %q", v)
	}
	minimum, err := goversion.NewVersion(MinimumAgentVersion)
	if err != nil {
		return false, cerr.Wrap(err, "parse minimum version")
	}
	return current.GreaterThanOrEqual(minimum), nil
}
