// pkg/preflight/checks.go

// Package preflight runs named host checks before installation starts.
// Required failures abort the run; optional failures only warn, so a small
// host can still install with degraded headroom.
package preflight

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/platform"
	cerr "github.com/cockroachdb/errors"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// checkTimeout bounds each individual check.
const checkTimeout = 10 * time.Second

// Check represents a single preflight check.
type Check struct {
	Name        string
	Description string
	Check       func(context.Context) error
	Required    bool
}

// CheckResult contains the result of one executed check.
type CheckResult struct {
	Name    string
	Passed  bool
	Error   error
	Warning string
}

// RunChecks executes all preflight checks and returns their results.
// Following Assess → Intervene → Evaluate pattern.
func RunChecks(rc *argus_io.RuntimeContext, checks []Check) ([]CheckResult, error) {
	logger := otelzap.Ctx(rc.Ctx)

	logger.Info("Running preflight checks", zap.Int("total_checks", len(checks)))

	results := make([]CheckResult, 0, len(checks))
	criticalFailures := 0

	for _, check := range checks {
		logger.Debug("Running check", zap.String("check", check.Name))

		result := CheckResult{Name: check.Name}

		checkCtx, cancel := context.WithTimeout(rc.Ctx, checkTimeout)
		err := check.Check(checkCtx)
		cancel()

		if err != nil {
			result.Error = err
			if check.Required {
				logger.Error("Check failed (required)",
					zap.String("check", check.Name),
					zap.Error(err))
				criticalFailures++
			} else {
				logger.Warn("Check failed (optional)",
					zap.String("check", check.Name),
					zap.Error(err))
				result.Warning = err.Error()
			}
		} else {
			result.Passed = true
			logger.Info("Check passed", zap.String("check", check.Name))
		}

		results = append(results, result)
	}

	if criticalFailures > 0 {
		return results, cerr.Newf("%d required preflight check(s) failed", criticalFailures)
	}

	logger.Info("All required preflight checks passed")
	return results, nil
}

// CheckCommand verifies a command resolves on PATH.
func CheckCommand(name string) func(context.Context) error {
	return func(ctx context.Context) error {
		if _, err := exec.LookPath(name); err != nil {
			return cerr.Wrapf(err, "%s not found on PATH", name)
		}
		return nil
	}
}

// CheckDebianFamily verifies the host uses dpkg/apt package management.
func CheckDebianFamily(rc *argus_io.RuntimeContext) func(context.Context) error {
	return func(ctx context.Context) error {
		debian, err := platform.IsDebianBased(rc)
		if err != nil {
			return cerr.Wrap(err, "could not read OS release information")
		}
		if !debian {
			return cerr.New("host is not Debian-based; only apt-managed systems are supported")
		}
		return nil
	}
}

// CheckMemory verifies the host has at least minMB of physical memory.
func CheckMemory(minMB uint64) func(context.Context) error {
	return func(ctx context.Context) error {
		vm, err := mem.VirtualMemoryWithContext(ctx)
		if err != nil {
			return cerr.Wrap(err, "could not read memory information")
		}
		totalMB := vm.Total / 1024 / 1024
		if totalMB < minMB {
			return fmt.Errorf("low memory: %dMB total (%dMB recommended)", totalMB, minMB)
		}
		return nil
	}
}

// CheckDiskSpace verifies at least requiredMB is free at path.
func CheckDiskSpace(path string, requiredMB uint64) func(context.Context) error {
	return func(ctx context.Context) error {
		var stat unix.Statfs_t
		if err := unix.Statfs(path, &stat); err != nil {
			return cerr.Wrapf(err, "could not stat filesystem at %s", path)
		}
		availableMB := stat.Bavail * uint64(stat.Bsize) / 1024 / 1024
		if availableMB < requiredMB {
			return fmt.Errorf("low disk space on %s: %dMB available (%dMB recommended)",
				path, availableMB, requiredMB)
		}
		return nil
	}
}

// HostChecks returns the check set the agent installer runs before its first
// mutating stage. The tool checks are required because every later stage
// shells out to them; memory and disk are advisory only.
func HostChecks(rc *argus_io.RuntimeContext) []Check {
	return []Check{
		{
			Name:        "debian-family",
			Description: "Host uses apt/dpkg package management",
			Check:       CheckDebianFamily(rc),
			Required:    true,
		},
		{
			Name:        "apt-get",
			Description: "apt-get is available on PATH",
			Check:       CheckCommand("apt-get"),
			Required:    true,
		},
		{
			Name:        "systemctl",
			Description: "systemctl is available on PATH",
			Check:       CheckCommand("systemctl"),
			Required:    true,
		},
		{
			Name:        "memory",
			Description: "At least 256MB of physical memory",
			Check:       CheckMemory(256),
			Required:    false,
		},
		{
			Name:        "disk-space",
			Description: "At least 500MB free under /var",
			Check:       CheckDiskSpace("/var", 500),
			Required:    false,
		},
	}
}
