// pkg/argus_cli/flags_test.go

package argus_cli

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	AddStringFlag(cmd, "channel", "", "stable", "release channel", false)
	AddBoolFlag(cmd, "dry-run", "", false, "log actions without mutating the system")
	return cmd
}

func TestAddDurationFlag(t *testing.T) {
	cmd := newTestCommand()
	AddDurationFlag(cmd, "activation-timeout", "", 30*time.Second, "activation wait")

	got, err := cmd.Flags().GetDuration("activation-timeout")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, got)

	require.NoError(t, cmd.Flags().Set("activation-timeout", "1m"))
	got, err = cmd.Flags().GetDuration("activation-timeout")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, got)
}

func TestAddStringSliceFlag(t *testing.T) {
	cmd := newTestCommand()
	AddStringSliceFlag(cmd, "remediate", "", []string{"install"}, "remediation checkpoints")

	require.NoError(t, cmd.Flags().Set("remediate", "install,health-rule"))
	got, err := cmd.Flags().GetStringSlice("remediate")
	require.NoError(t, err)
	assert.Equal(t, []string{"install", "health-rule"}, got)
}

func TestBindFlagsToViper(t *testing.T) {
	cmd := newTestCommand()
	v := viper.New()

	require.NoError(t, BindFlagsToViper(cmd, v))
	assert.Equal(t, "stable", v.GetString("channel"))
	assert.False(t, v.GetBool("dry-run"))

	require.NoError(t, cmd.Flags().Set("channel", "edge"))
	assert.Equal(t, "edge", v.GetString("channel"))
}

func TestSetViperEnvPrefix(t *testing.T) {
	t.Setenv("ARGUS_DRY_RUN", "true")

	cmd := newTestCommand()
	v := viper.New()
	SetViperEnvPrefix(v, "ARGUS")
	require.NoError(t, BindFlagsToViper(cmd, v))

	assert.True(t, v.GetBool("dry-run"), "env var should satisfy the dashed flag name")
}

func TestGetStringOrEmpty(t *testing.T) {
	cmd := newTestCommand()

	assert.Equal(t, "stable", GetStringOrEmpty(cmd, "channel"))
	assert.Equal(t, "", GetStringOrEmpty(cmd, "no-such-flag"))
}
