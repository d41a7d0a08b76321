// pkg/preflight/checks_test.go

package preflight

import (
	"context"
	"errors"
	"testing"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunChecksAllPass(t *testing.T) {
	rc := argus_io.NewContext(context.Background(), "test")

	checks := []Check{
		{Name: "one", Check: func(context.Context) error { return nil }, Required: true},
		{Name: "two", Check: func(context.Context) error { return nil }, Required: false},
	}

	results, err := RunChecks(rc, checks)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.Passed, "check %s should pass", r.Name)
	}
}

func TestRunChecksRequiredFailureAborts(t *testing.T) {
	rc := argus_io.NewContext(context.Background(), "test")

	boom := errors.New("no apt here")
	checks := []Check{
		{Name: "ok", Check: func(context.Context) error { return nil }, Required: true},
		{Name: "broken", Check: func(context.Context) error { return boom }, Required: true},
	}

	results, err := RunChecks(rc, checks)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 required preflight check(s) failed")
	require.Len(t, results, 2, "all checks still run so the operator sees the full picture")
	assert.False(t, results[1].Passed)
	assert.Equal(t, boom, results[1].Error)
}

func TestRunChecksOptionalFailureWarnsOnly(t *testing.T) {
	rc := argus_io.NewContext(context.Background(), "test")

	checks := []Check{
		{Name: "advisory", Check: func(context.Context) error { return errors.New("low memory") }, Required: false},
	}

	results, err := RunChecks(rc, checks)
	require.NoError(t, err, "optional failures must not abort the run")
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
	assert.Equal(t, "low memory", results[0].Warning)
}

func TestCheckCommand(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	require.NoError(t, CheckCommand("sh")(ctx), "sh should exist on any test host")

	err := CheckCommand("definitely-not-a-real-command-xyz")(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found on PATH")
}

func TestCheckDiskSpaceHugeRequirement(t *testing.T) {
	t.Parallel()

	// An absurd requirement should fail with the advisory wording.
	err := CheckDiskSpace(t.TempDir(), 1<<40)(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "low disk space")
}

func TestCheckDiskSpaceSatisfied(t *testing.T) {
	t.Parallel()
	require.NoError(t, CheckDiskSpace(t.TempDir(), 1)(context.Background()))
}

func TestHostChecksShape(t *testing.T) {
	rc := argus_io.NewContext(context.Background(), "test")

	checks := HostChecks(rc)
	require.NotEmpty(t, checks)

	required := map[string]bool{}
	for _, c := range checks {
		required[c.Name] = c.Required
		assert.NotNil(t, c.Check, "check %s has no function", c.Name)
	}

	assert.True(t, required["apt-get"], "apt-get presence is mandatory")
	assert.True(t, required["systemctl"], "systemctl presence is mandatory")
	assert.False(t, required["memory"], "memory is advisory")
	assert.False(t, required["disk-space"], "disk space is advisory")
}
