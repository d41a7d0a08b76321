// pkg/netdata/netdata.go

// Package netdata provisions the Netdata monitoring agent on Ubuntu hosts.
// The create flow tears down prior installs, registers the vendor apt
// repository, installs and activates the agent, deploys a CPU alert rule and
// custom collector configs, opens the dashboard port, and prints a summary.
// Delete and inspect flows share the same assessment logic.
package netdata

import (
	"fmt"
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/apt"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/shared"
)

// PortDashboard is the TCP port the agent's dashboard listens on.
const PortDashboard = shared.PortNetdata

const (
	// PackageName is the apt package that ships the agent.
	PackageName = "netdata"

	// UnitName is the systemd unit the package installs.
	UnitName = "netdata"

	// BinaryName is the agent daemon expected on PATH after installation.
	BinaryName = "netdata"

	// ServiceUser and ServiceGroup own the agent's state on disk. The
	// package creates them; provisioning only ever chowns to them.
	ServiceUser  = "netdata"
	ServiceGroup = "netdata"

	// RepoKeyURL is the vendor's ASCII-armored repository signing key.
	RepoKeyURL = "https://repo.netdata.cloud/netdatabot.gpg.key"

	// repoURLFormat expands to the per-channel Ubuntu repository URL.
	repoURLFormat = "https://repo.netdata.cloud/repos/%s/ubuntu/"
)

// Release channels the vendor publishes.
const (
	ChannelStable = "stable"
	ChannelEdge   = "edge"
)

// Paths collects every filesystem location provisioning touches. Tests remap
// them under a temp root; production uses DefaultPaths.
type Paths struct {
	ConfigDir   string
	LibDir      string
	CacheDir    string
	LogDir      string
	PluginsDir  string
	KeyringPath string
	SourcesPath string
}

// DefaultPaths returns the locations the Debian packaging uses.
func DefaultPaths() Paths {
	return Paths{
		ConfigDir:   "/etc/netdata",
		LibDir:      "/var/lib/netdata",
		CacheDir:    "/var/cache/netdata",
		LogDir:      "/var/log/netdata",
		PluginsDir:  "/usr/libexec/netdata",
		KeyringPath: "/usr/share/keyrings/netdata-archive-keyring.gpg",
		SourcesPath: "/etc/apt/sources.list.d/netdata.list",
	}
}

// StateDirs returns every directory the agent owns, config first.
func (p Paths) StateDirs() []string {
	return []string{p.ConfigDir, p.LibDir, p.CacheDir, p.LogDir, p.PluginsDir}
}

// HealthDir is where health alert definitions live.
func (p Paths) HealthDir() string {
	return filepath.Join(p.ConfigDir, "health.d")
}

// HealthRulePath is the CPU alert rule file provisioning writes.
func (p Paths) HealthRulePath() string {
	return filepath.Join(p.HealthDir(), healthRuleFileName)
}

// PythonDDir holds per-collector configuration for the python.d plugin.
func (p Paths) PythonDDir() string {
	return filepath.Join(p.ConfigDir, "python.d")
}

// AppsGroupsPath is the destination of the process-grouping config.
func (p Paths) AppsGroupsPath() string {
	return filepath.Join(p.ConfigDir, "apps_groups.conf")
}

// PythonAppsPath is the destination of the python.d apps collector config.
func (p Paths) PythonAppsPath() string {
	return filepath.Join(p.PythonDDir(), "apps.conf")
}

// Repository builds the apt source definition for a release channel and
// Ubuntu codename. The vendor publishes flat per-codename suites, hence the
// trailing slash.
func (p Paths) Repository(channel, codename string) apt.Repository {
	url := fmt.Sprintf(repoURLFormat, channel)
	return apt.Repository{
		Name:        PackageName,
		KeyURL:      RepoKeyURL,
		KeyringPath: p.KeyringPath,
		SourcesPath: p.SourcesPath,
		Line:        apt.SignedByLine(p.KeyringPath, url, codename+"/"),
	}
}

// RepositoryArtifacts identifies just the on-disk repository files, for
// removal paths that never need the channel or codename.
func (p Paths) RepositoryArtifacts() apt.Repository {
	return apt.Repository{
		Name:        PackageName,
		KeyringPath: p.KeyringPath,
		SourcesPath: p.SourcesPath,
	}
}
