// pkg/netdata/cleanup_test.go

package netdata

import (
	"errors"
	"os"
	"testing"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedPriorInstall makes the fakes and filesystem look like a host that
// already runs the agent.
func seedPriorInstall(t *testing.T, ti *testInstaller) {
	t.Helper()
	ti.pkgs.Installed[PackageName] = true
	ti.svc.Exists = true
	ti.svc.Active = true
	for _, dir := range ti.in.cfg.Paths.StateDirs() {
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}
}

func TestCleanupRemovesPriorInstall(t *testing.T) {
	ti := newTestInstaller(t)
	seedPriorInstall(t, ti)

	require.NoError(t, ti.in.cleanup())

	assert.Equal(t, []string{"stop netdata", "disable netdata", "daemon-reload"}, ti.svc.Calls)
	assert.Equal(t, []string{"netdata"}, ti.killed)
	assert.Equal(t, []string{
		"remove netdata",
		"purge netdata",
		"autoremove",
		"remove-repo netdata",
	}, ti.pkgs.Calls)
	for _, dir := range ti.in.cfg.Paths.StateDirs() {
		testutil.AssertFileNotExists(t, dir)
	}
}

func TestCleanupFreshHostMakesNoChanges(t *testing.T) {
	ti := newTestInstaller(t)

	require.NoError(t, ti.in.cleanup())

	assert.Empty(t, ti.pkgs.Calls)
	assert.Empty(t, ti.svc.Calls)
	assert.Empty(t, ti.killed)
}

func TestCleanupConfigDirAloneTriggersTeardown(t *testing.T) {
	ti := newTestInstaller(t)
	// Leftover config directory from a botched uninstall, nothing else.
	require.NoError(t, os.MkdirAll(ti.in.cfg.Paths.ConfigDir, 0o755))

	require.NoError(t, ti.in.cleanup())

	// No unit to stop, no package to purge, but the residue still goes.
	assert.Equal(t, []string{"daemon-reload"}, ti.svc.Calls)
	assert.Equal(t, []string{"autoremove", "remove-repo netdata"}, ti.pkgs.Calls)
	testutil.AssertFileNotExists(t, ti.in.cfg.Paths.ConfigDir)
}

func TestCleanupSkipFlag(t *testing.T) {
	ti := newTestInstaller(t)
	seedPriorInstall(t, ti)
	ti.in.cfg.SkipCleanup = true

	require.NoError(t, ti.in.cleanup())

	assert.Empty(t, ti.pkgs.Calls)
	assert.Empty(t, ti.svc.Calls)
	testutil.AssertFileExists(t, ti.in.cfg.Paths.ConfigDir)
}

func TestCleanupDryRun(t *testing.T) {
	ti := newTestInstaller(t)
	seedPriorInstall(t, ti)
	ti.in.cfg.DryRun = true

	require.NoError(t, ti.in.cleanup())

	assert.Empty(t, ti.pkgs.Calls)
	assert.Empty(t, ti.svc.Calls)
	assert.Empty(t, ti.killed)
	testutil.AssertFileExists(t, ti.in.cfg.Paths.ConfigDir)
}

func TestCleanupAbortsWhenPackageRemovalFails(t *testing.T) {
	ti := newTestInstaller(t)
	seedPriorInstall(t, ti)
	ti.pkgs.Errs["remove netdata"] = errors.New("apt-get remove netdata failed")

	err := ti.in.cleanup()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "apt-get remove netdata failed")
	assert.NotContains(t, ti.pkgs.Calls, "purge netdata")
}
