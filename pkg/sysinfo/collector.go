// pkg/sysinfo/collector.go

// Package sysinfo gathers host facts for preflight checks and the final
// summary banner. It sits behind an interface so the installer pipeline can
// run against a fake in tests.
package sysinfo

import (
	"context"
	"strings"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/execute"
	cerr "github.com/cockroachdb/errors"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// HostFacts is the subset of host information the summary reports.
type HostFacts struct {
	Hostname        string `yaml:"hostname"`
	Platform        string `yaml:"platform"`
	PlatformVersion string `yaml:"platform_version"`
	KernelVersion   string `yaml:"kernel_version"`
	UptimeSeconds   uint64 `yaml:"uptime_seconds"`
}

// Collector abstracts host information gathering for testability.
type Collector interface {
	// HostInfo returns platform, kernel and uptime facts.
	HostInfo(ctx context.Context) (*HostFacts, error)

	// MemoryTotalMB returns total physical memory in megabytes.
	MemoryTotalMB(ctx context.Context) (uint64, error)

	// PrimaryIP returns the host's primary IPv4 address: the first field of
	// `hostname -I`. Falls back to loopback when nothing is reported.
	PrimaryIP(ctx context.Context) (string, error)
}

// NewCollector returns a Collector backed by gopsutil and the hostname tool.
func NewCollector() Collector {
	return &hostCollector{}
}

type hostCollector struct{}

func (c *hostCollector) HostInfo(ctx context.Context) (*HostFacts, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, cerr.Wrap(err, "reading host information")
	}
	return &HostFacts{
		Hostname:        info.Hostname,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelVersion:   info.KernelVersion,
		UptimeSeconds:   info.Uptime,
	}, nil
}

func (c *hostCollector) MemoryTotalMB(ctx context.Context) (uint64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, cerr.Wrap(err, "reading memory information")
	}
	return vm.Total / 1024 / 1024, nil
}

func (c *hostCollector) PrimaryIP(ctx context.Context) (string, error) {
	output, err := execute.Run(ctx, execute.Options{
		Command: "hostname",
		Args:    []string{"-I"},
		Capture: true,
	})
	if err != nil {
		return "127.0.0.1", nil
	}
	return FirstAddress(output), nil
}

// FirstAddress extracts the first address token from `hostname -I` output,
// defaulting to loopback when the output is empty.
func FirstAddress(output string) string {
	fields := strings.Fields(output)
	if len(fields) == 0 {
		return "127.0.0.1"
	}
	return fields[0]
}
