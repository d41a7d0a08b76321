// pkg/netdata/config_test.go

package netdata

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultInstallConfig(t *testing.T) {
	cfg := DefaultInstallConfig()

	assert.Equal(t, ChannelStable, cfg.Channel)
	assert.Equal(t, "configs", cfg.ConfigsDir)
	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.Equal(t, 30*time.Second, cfg.ActivationTimeout)
	assert.Equal(t, []string{CheckpointInstall}, cfg.Remediate)
	assert.Equal(t, "/etc/netdata", cfg.Paths.ConfigDir)

	require.NoError(t, cfg.Validate())
}

func TestInstallConfigValidate(t *testing.T) {
	t.Run("rejects unknown channel", func(t *testing.T) {
		cfg := DefaultInstallConfig()
		cfg.Channel = "nightly"
		require.Error(t, cfg.Validate())
	})

	t.Run("rejects unknown remediation checkpoint", func(t *testing.T) {
		cfg := DefaultInstallConfig()
		cfg.Remediate = []string{"reboot"}
		require.Error(t, cfg.Validate())
	})

	t.Run("rejects timeout not exceeding poll interval", func(t *testing.T) {
		cfg := DefaultInstallConfig()
		cfg.PollInterval = 10 * time.Second
		cfg.ActivationTimeout = 10 * time.Second
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be longer than the poll interval")
	})

	t.Run("accepts edge channel", func(t *testing.T) {
		cfg := DefaultInstallConfig()
		cfg.Channel = ChannelEdge
		require.NoError(t, cfg.Validate())
	})
}

func TestRemediateAt(t *testing.T) {
	cfg := DefaultInstallConfig()

	assert.True(t, cfg.RemediateAt(CheckpointInstall))
	assert.False(t, cfg.RemediateAt(CheckpointHealthRule))
	assert.False(t, cfg.RemediateAt(CheckpointCustomConfig))

	cfg.Remediate = []string{CheckpointInstall, CheckpointHealthRule}
	assert.True(t, cfg.RemediateAt(CheckpointHealthRule))

	cfg.Remediate = []string{"none"}
	assert.False(t, cfg.RemediateAt(CheckpointInstall))

	// none switches remediation off even when combined with checkpoints.
	cfg.Remediate = []string{"none", CheckpointInstall}
	assert.False(t, cfg.RemediateAt(CheckpointInstall))
}

func TestLoadProfile(t *testing.T) {
	rc := testutil.TestRuntimeContext(t)
	dir := t.TempDir()

	profile := "" +
		"channel: edge\n" +
		"poll_interval: 2s\n" +
		"activation_timeout: 1m\n" +
		"remediate:\n" +
		"  - install\n" +
		"  - health-rule\n" +
		"skip_firewall: true\n"
	path := testutil.CreateTestFile(t, dir, "netdata.yaml", profile, 0o644)

	cfg := DefaultInstallConfig()
	require.NoError(t, cfg.LoadProfile(rc, path))

	assert.Equal(t, ChannelEdge, cfg.Channel)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, time.Minute, cfg.ActivationTimeout)
	assert.Equal(t, []string{CheckpointInstall, CheckpointHealthRule}, cfg.Remediate)
	assert.True(t, cfg.SkipFirewall)
	// Fields absent from the profile keep their defaults.
	assert.Equal(t, "configs", cfg.ConfigsDir)
	require.NoError(t, cfg.Validate())
}

func TestLoadProfileMissingFile(t *testing.T) {
	rc := testutil.TestRuntimeContext(t)
	cfg := DefaultInstallConfig()

	err := cfg.LoadProfile(rc, filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
