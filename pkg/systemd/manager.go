// pkg/systemd/manager.go

// Package systemd wraps service supervision behind a narrow interface so
// provisioning flows can be exercised against fakes. The production
// implementation shells out to systemctl and journalctl through pkg/execute.
package systemd

import (
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/execute"
	cerr "github.com/cockroachdb/errors"
)

// Unit activation states as reported by systemctl is-active.
const (
	StateActive   = "active"
	StateInactive = "inactive"
	StateFailed   = "failed"
	StateUnknown  = "unknown"
)

// DefaultJournalLines is how much recent journal output diagnostics capture.
const DefaultJournalLines = 50

// Manager is the service-supervision surface provisioning flows depend on.
type Manager interface {
	// DaemonReload reloads unit definitions after units change on disk.
	DaemonReload(ctx context.Context) error

	// Enable marks a unit to start at boot.
	Enable(ctx context.Context, unit string) error

	// Disable unmarks a unit from starting at boot.
	Disable(ctx context.Context, unit string) error

	// Start starts a unit.
	Start(ctx context.Context, unit string) error

	// Stop stops a unit.
	Stop(ctx context.Context, unit string) error

	// Restart restarts a unit.
	Restart(ctx context.Context, unit string) error

	// IsActive reports whether the unit is currently active. The error is
	// reserved for failures to query the supervisor itself; an inactive or
	// failed unit is (false, nil).
	IsActive(ctx context.Context, unit string) (bool, error)

	// ActiveState returns the raw activation state string, or StateUnknown
	// when it cannot be determined.
	ActiveState(ctx context.Context, unit string) string

	// UnitExists reports whether the supervisor knows the unit at all.
	UnitExists(ctx context.Context, unit string) bool

	// Status returns the human-oriented status output for the unit.
	// Best effort: an empty string means nothing could be captured.
	Status(ctx context.Context, unit string) string

	// RecentLogs returns the last lines of journal output for the unit.
	// Best effort, like Status.
	RecentLogs(ctx context.Context, unit string, lines int) string
}

// systemctl is the production Manager backed by the host's systemctl binary.
type systemctl struct{}

// NewManager returns a Manager that drives the host's systemctl.
func NewManager() Manager {
	return &systemctl{}
}

func (s *systemctl) run(ctx context.Context, args ...string) error {
	if err := execute.RunSimple(ctx, "systemctl", args...); err != nil {
		return cerr.Wrapf(err, "systemctl %s failed", strings.Join(args, " "))
	}
	return nil
}

func (s *systemctl) DaemonReload(ctx context.Context) error {
	return s.run(ctx, "daemon-reload")
}

func (s *systemctl) Enable(ctx context.Context, unit string) error {
	return s.run(ctx, "enable", unit)
}

func (s *systemctl) Disable(ctx context.Context, unit string) error {
	return s.run(ctx, "disable", unit)
}

func (s *systemctl) Start(ctx context.Context, unit string) error {
	return s.run(ctx, "start", unit)
}

func (s *systemctl) Stop(ctx context.Context, unit string) error {
	return s.run(ctx, "stop", unit)
}

func (s *systemctl) Restart(ctx context.Context, unit string) error {
	return s.run(ctx, "restart", unit)
}

func (s *systemctl) IsActive(ctx context.Context, unit string) (bool, error) {
	// is-active exits non-zero for every state except active, so the exit
	// code alone cannot distinguish "inactive" from "systemctl broke".
	output, err := execute.Run(ctx, execute.Options{
		Command: "systemctl",
		Args:    []string{"is-active", unit},
		Capture: true,
	})
	state := strings.TrimSpace(output)
	if state == "" && err != nil {
		return false, cerr.Wrapf(err, "query activation state of %s", unit)
	}
	return state == StateActive, nil
}

func (s *systemctl) ActiveState(ctx context.Context, unit string) string {
	output, _ := execute.Run(ctx, execute.Options{
		Command: "systemctl",
		Args:    []string{"is-active", unit},
		Capture: true,
	})
	if state := strings.TrimSpace(output); state != "" {
		return state
	}
	return StateUnknown
}

func (s *systemctl) UnitExists(ctx context.Context, unit string) bool {
	if _, err := exec.LookPath("systemctl"); err != nil {
		return false
	}
	// cat exits non-zero when no unit file is known under that name.
	_, err := execute.Run(ctx, execute.Options{
		Command: "systemctl",
		Args:    []string{"cat", unit},
		Capture: true,
	})
	return err == nil
}

func (s *systemctl) Status(ctx context.Context, unit string) string {
	// status exits 3 for inactive units; the output is still the point.
	output, _ := execute.Run(ctx, execute.Options{
		Command: "systemctl",
		Args:    []string{"status", unit, "-l", "--no-pager"},
		Capture: true,
	})
	return strings.TrimSpace(output)
}

func (s *systemctl) RecentLogs(ctx context.Context, unit string, lines int) string {
	if lines <= 0 {
		lines = DefaultJournalLines
	}
	output, _ := execute.Run(ctx, execute.Options{
		Command: "journalctl",
		Args:    []string{"-u", unit, "-n", strconv.Itoa(lines), "--no-pager"},
		Capture: true,
	})
	return strings.TrimSpace(output)
}
