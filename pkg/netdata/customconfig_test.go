// pkg/netdata/customconfig_test.go

package netdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_err"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeployCustomConfigs(t *testing.T) {
	ti := newTestInstaller(t)
	ti.svc.Active = true

	require.NoError(t, ti.in.deployCustomConfigs())

	paths := ti.in.cfg.Paths
	testutil.AssertFileContent(t, paths.AppsGroupsPath(), "# process groups\n")
	testutil.AssertFileContent(t, paths.PythonAppsPath(), "# python apps collector\n")
	testutil.AssertFilePermissions(t, paths.AppsGroupsPath(), 0o644)
	testutil.AssertFilePermissions(t, paths.PythonAppsPath(), 0o644)
	testutil.AssertFilePermissions(t, paths.ConfigDir, 0o755)
	testutil.AssertFilePermissions(t, paths.PythonDDir(), 0o755)
	assert.Equal(t, []string{"restart netdata"}, ti.svc.Calls)
}

func TestDeployCustomConfigsNormalizesModes(t *testing.T) {
	ti := newTestInstaller(t)
	ti.svc.Active = true

	// Source files carry odd modes; destinations must not inherit them.
	require.NoError(t, os.Chmod(filepath.Join(ti.in.cfg.ConfigsDir, "apps_groups.conf"), 0o600))
	require.NoError(t, os.Chmod(filepath.Join(ti.in.cfg.ConfigsDir, "python.d", "apps.conf"), 0o777))

	// A pre-existing destination tree with wrong modes gets pinned too.
	testutil.CreateTestDir(t, ti.in.cfg.Paths.ConfigDir, "python.d", 0o700)
	testutil.CreateTestFile(t, ti.in.cfg.Paths.ConfigDir, "apps_groups.conf", "stale\n", 0o600)

	require.NoError(t, ti.in.deployCustomConfigs())

	paths := ti.in.cfg.Paths
	testutil.AssertFilePermissions(t, paths.AppsGroupsPath(), 0o644)
	testutil.AssertFilePermissions(t, paths.PythonAppsPath(), 0o644)
	testutil.AssertFilePermissions(t, paths.PythonDDir(), 0o755)
	testutil.AssertFileContent(t, paths.AppsGroupsPath(), "# process groups\n")
}

func TestDeployCustomConfigsMissingSource(t *testing.T) {
	ti := newTestInstaller(t)
	require.NoError(t, os.Remove(filepath.Join(ti.in.cfg.ConfigsDir, "apps_groups.conf")))

	err := ti.in.deployCustomConfigs()

	require.Error(t, err)
	assert.True(t, argus_err.IsExpectedUserError(err))
	assert.Contains(t, err.Error(), "check --configs-dir")
	assert.Empty(t, ti.svc.Calls, "no restart when deployment failed")
}

func TestDeployCustomConfigsDryRun(t *testing.T) {
	ti := newTestInstaller(t)
	ti.in.cfg.DryRun = true

	require.NoError(t, ti.in.deployCustomConfigs())

	testutil.AssertFileNotExists(t, ti.in.cfg.Paths.AppsGroupsPath())
	assert.Empty(t, ti.svc.Calls)
}
