// pkg/apt/manager.go

// Package apt wraps the Debian package toolchain (apt-get, dpkg-query, gpg)
// behind a narrow interface so provisioning flows can be exercised against
// fakes. The production implementation shells out through pkg/execute and
// never invokes a shell.
package apt

import (
	"context"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/execute"
	cerr "github.com/cockroachdb/errors"
)

const (
	// Package lists and installs routinely exceed the execute default, so
	// every apt-get invocation carries its own timeout.
	updateTimeout  = 5 * time.Minute
	installTimeout = 10 * time.Minute
	removeTimeout  = 5 * time.Minute
	queryTimeout   = 30 * time.Second
)

// installedStatus is what dpkg-query reports for a fully installed package.
const installedStatus = "install ok installed"

// Manager is the package-management surface provisioning flows depend on.
type Manager interface {
	// Update refreshes the package lists.
	Update(ctx context.Context) error

	// Install installs one or more packages non-interactively.
	Install(ctx context.Context, packages ...string) error

	// Remove removes a package, keeping its configuration files.
	Remove(ctx context.Context, pkg string) error

	// Purge removes a package together with its configuration files.
	Purge(ctx context.Context, pkg string) error

	// AutoRemove removes packages that were installed as dependencies and
	// are no longer needed.
	AutoRemove(ctx context.Context) error

	// IsInstalled reports whether the package database shows the package
	// fully installed. An unknown package is (false, nil), not an error.
	IsInstalled(ctx context.Context, pkg string) (bool, error)

	// RegisterRepository installs the repository signing key and apt
	// source, then refreshes the package lists.
	RegisterRepository(ctx context.Context, repo Repository) error

	// RemoveRepository deletes the repository source and keyring. Missing
	// files are not an error.
	RemoveRepository(ctx context.Context, repo Repository) error
}

// aptGet is the production Manager backed by the host's apt toolchain.
type aptGet struct{}

// NewManager returns a Manager that drives the host's apt-get and dpkg-query.
func NewManager() Manager {
	return &aptGet{}
}

func (a *aptGet) Update(ctx context.Context) error {
	_, err := execute.Run(ctx, execute.Options{
		Command: "apt-get",
		Args:    []string{"update"},
		Timeout: updateTimeout,
	})
	if err != nil {
		return cerr.Wrap(err, "apt-get update failed")
	}
	return nil
}

func (a *aptGet) Install(ctx context.Context, packages ...string) error {
	if len(packages) == 0 {
		return cerr.AssertionFailedf("install called without packages")
	}
	args := append([]string{"install", "-y"}, packages...)
	_, err := execute.Run(ctx, execute.Options{
		Command: "apt-get",
		Args:    args,
		Timeout: installTimeout,
	})
	if err != nil {
		return cerr.Wrapf(err, "apt-get install %s failed", strings.Join(packages, " "))
	}
	return nil
}

func (a *aptGet) Remove(ctx context.Context, pkg string) error {
	_, err := execute.Run(ctx, execute.Options{
		Command: "apt-get",
		Args:    []string{"remove", "-y", pkg},
		Timeout: removeTimeout,
	})
	if err != nil {
		return cerr.Wrapf(err, "apt-get remove %s failed", pkg)
	}
	return nil
}

func (a *aptGet) Purge(ctx context.Context, pkg string) error {
	_, err := execute.Run(ctx, execute.Options{
		Command: "apt-get",
		Args:    []string{"purge", "-y", pkg},
		Timeout: removeTimeout,
	})
	if err != nil {
		return cerr.Wrapf(err, "apt-get purge %s failed", pkg)
	}
	return nil
}

func (a *aptGet) AutoRemove(ctx context.Context) error {
	_, err := execute.Run(ctx, execute.Options{
		Command: "apt-get",
		Args:    []string{"autoremove", "-y"},
		Timeout: removeTimeout,
	})
	if err != nil {
		return cerr.Wrap(err, "apt-get autoremove failed")
	}
	return nil
}

func (a *aptGet) IsInstalled(ctx context.Context, pkg string) (bool, error) {
	output, err := execute.Run(ctx, execute.Options{
		Command: "dpkg-query",
		Args:    []string{"-W", "-f=${Status}", pkg},
		Capture: true,
		Timeout: queryTimeout,
	})
	if err != nil {
		// dpkg-query exits non-zero for packages it has never seen.
		return false, nil
	}
	return StatusInstalled(output), nil
}

// StatusInstalled reports whether a dpkg-query ${Status} string describes a
// fully installed package. Partial states such as "deinstall ok config-files"
// do not count.
func StatusInstalled(status string) bool {
	return strings.Contains(strings.TrimSpace(status), installedStatus)
}
