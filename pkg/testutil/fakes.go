// pkg/testutil/fakes.go

package testutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/apt"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/firewall"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/sysinfo"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/systemd"
)

// FakePackageManager implements apt.Manager in memory. Mutating calls are
// recorded in Calls in order; read-only queries are not, so tests can assert
// "no mutations happened" without tripping over assessment reads.
type FakePackageManager struct {
	Installed map[string]bool
	Repos     []apt.Repository
	Calls     []string

	// Errs injects a failure for the exact recorded call string, e.g.
	// "install netdata". The state mutation is skipped for failed calls.
	Errs map[string]error
}

var _ apt.Manager = (*FakePackageManager)(nil)

func NewFakePackageManager() *FakePackageManager {
	return &FakePackageManager{
		Installed: make(map[string]bool),
		Errs:      make(map[string]error),
	}
}

func (f *FakePackageManager) record(call string) error {
	f.Calls = append(f.Calls, call)
	return f.Errs[call]
}

func (f *FakePackageManager) Update(ctx context.Context) error {
	return f.record("update")
}

func (f *FakePackageManager) Install(ctx context.Context, packages ...string) error {
	if err := f.record("install " + strings.Join(packages, " ")); err != nil {
		return err
	}
	for _, p := range packages {
		f.Installed[p] = true
	}
	return nil
}

func (f *FakePackageManager) Remove(ctx context.Context, pkg string) error {
	if err := f.record("remove " + pkg); err != nil {
		return err
	}
	f.Installed[pkg] = false
	return nil
}

func (f *FakePackageManager) Purge(ctx context.Context, pkg string) error {
	if err := f.record("purge " + pkg); err != nil {
		return err
	}
	f.Installed[pkg] = false
	return nil
}

func (f *FakePackageManager) AutoRemove(ctx context.Context) error {
	return f.record("autoremove")
}

func (f *FakePackageManager) IsInstalled(ctx context.Context, pkg string) (bool, error) {
	return f.Installed[pkg], nil
}

func (f *FakePackageManager) RegisterRepository(ctx context.Context, repo apt.Repository) error {
	if err := f.record("register-repo " + repo.Name); err != nil {
		return err
	}
	f.Repos = append(f.Repos, repo)
	return nil
}

func (f *FakePackageManager) RemoveRepository(ctx context.Context, repo apt.Repository) error {
	return f.record("remove-repo " + repo.Name)
}

// FakeServiceManager implements systemd.Manager in memory. Healthy controls
// whether Start and Restart bring the unit up, so a test can model a service
// that needs repair by flipping Healthy from its remediation hook.
type FakeServiceManager struct {
	Healthy bool
	Active  bool
	Exists  bool
	Calls   []string

	StatusText  string
	JournalText string

	// Errs injects a failure for the exact recorded call string, e.g.
	// "restart netdata".
	Errs map[string]error
}

var _ systemd.Manager = (*FakeServiceManager)(nil)

func NewFakeServiceManager() *FakeServiceManager {
	return &FakeServiceManager{
		Healthy:     true,
		Exists:      true,
		StatusText:  "fake unit status",
		JournalText: "fake journal output",
		Errs:        make(map[string]error),
	}
}

func (f *FakeServiceManager) record(call string) error {
	f.Calls = append(f.Calls, call)
	return f.Errs[call]
}

func (f *FakeServiceManager) DaemonReload(ctx context.Context) error {
	return f.record("daemon-reload")
}

func (f *FakeServiceManager) Enable(ctx context.Context, unit string) error {
	return f.record("enable " + unit)
}

func (f *FakeServiceManager) Disable(ctx context.Context, unit string) error {
	return f.record("disable " + unit)
}

func (f *FakeServiceManager) Start(ctx context.Context, unit string) error {
	if err := f.record("start " + unit); err != nil {
		return err
	}
	f.Active = f.Healthy
	return nil
}

func (f *FakeServiceManager) Stop(ctx context.Context, unit string) error {
	if err := f.record("stop " + unit); err != nil {
		return err
	}
	f.Active = false
	return nil
}

func (f *FakeServiceManager) Restart(ctx context.Context, unit string) error {
	if err := f.record("restart " + unit); err != nil {
		return err
	}
	f.Active = f.Healthy
	return nil
}

func (f *FakeServiceManager) IsActive(ctx context.Context, unit string) (bool, error) {
	return f.Active, nil
}

func (f *FakeServiceManager) ActiveState(ctx context.Context, unit string) string {
	if f.Active {
		return systemd.StateActive
	}
	return systemd.StateInactive
}

func (f *FakeServiceManager) UnitExists(ctx context.Context, unit string) bool {
	return f.Exists
}

func (f *FakeServiceManager) Status(ctx context.Context, unit string) string {
	return f.StatusText
}

func (f *FakeServiceManager) RecentLogs(ctx context.Context, unit string, lines int) string {
	return f.JournalText
}

// FakeFirewall records allowed rules in memory.
type FakeFirewall struct {
	Installed bool
	Rules     []string
	Err       error
}

var _ firewall.Firewall = (*FakeFirewall)(nil)

func NewFakeFirewall() *FakeFirewall {
	return &FakeFirewall{Installed: true}
}

func (f *FakeFirewall) Present(ctx context.Context) bool {
	return f.Installed
}

func (f *FakeFirewall) AllowPort(ctx context.Context, port int, proto, comment string) error {
	if f.Err != nil {
		return f.Err
	}
	f.Rules = append(f.Rules, fmt.Sprintf("%d/%s %s", port, proto, comment))
	return nil
}

// FakeCollector serves canned host facts.
type FakeCollector struct {
	Facts sysinfo.HostFacts
	MemMB uint64
	IP    string
	Err   error
}

var _ sysinfo.Collector = (*FakeCollector)(nil)

func NewFakeCollector() *FakeCollector {
	return &FakeCollector{
		Facts: sysinfo.HostFacts{
			Hostname:        "test-host",
			Platform:        "ubuntu",
			PlatformVersion: "24.04",
			KernelVersion:   "6.8.0",
			UptimeSeconds:   3600,
		},
		MemMB: 2048,
		IP:    "192.0.2.10",
	}
}

func (f *FakeCollector) HostInfo(ctx context.Context) (*sysinfo.HostFacts, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	facts := f.Facts
	return &facts, nil
}

func (f *FakeCollector) MemoryTotalMB(ctx context.Context) (uint64, error) {
	if f.Err != nil {
		return 0, f.Err
	}
	return f.MemMB, nil
}

func (f *FakeCollector) PrimaryIP(ctx context.Context) (string, error) {
	if f.IP == "" {
		return "127.0.0.1", nil
	}
	return f.IP, nil
}
