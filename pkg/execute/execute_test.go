// pkg/execute/execute_test.go

package execute

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRunCapturesOutput(t *testing.T) {
	ctx := context.Background()

	out, err := Run(ctx, Options{
		Command: "echo",
		Args:    []string{"hello", "world"},
		Capture: true,
		Logger:  zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	assert.Equal(t, "hello world", strings.TrimSpace(out))
}

func TestRunDryRunSkipsExecution(t *testing.T) {
	ctx := context.Background()

	out, err := Run(ctx, Options{
		Command: "false",
		DryRun:  true,
		Capture: true,
		Logger:  zaptest.NewLogger(t),
	})
	require.NoError(t, err, "dry run must not execute the failing command")
	assert.Empty(t, out)
}

func TestRunGlobalDryRun(t *testing.T) {
	DefaultDryRun = true
	defer func() { DefaultDryRun = false }()

	_, err := Run(context.Background(), Options{
		Command: "false",
		Logger:  zaptest.NewLogger(t),
	})
	require.NoError(t, err)
}

func TestRunShellModeRejected(t *testing.T) {
	ctx := context.Background()

	_, err := Run(ctx, Options{
		Command: "echo",
		Args:    []string{"hi"},
		Shell:   true,
		Logger:  zaptest.NewLogger(t),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shell execution mode disabled")
}

func TestRunArgsNotShellInterpreted(t *testing.T) {
	ctx := context.Background()

	// Metacharacters must come back as literal text, never expanded.
	out, err := Run(ctx, Options{
		Command: "echo",
		Args:    []string{"$(whoami)", "&&", "id"},
		Capture: true,
		Logger:  zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	assert.Contains(t, out, "$(whoami)")
	assert.NotContains(t, out, "uid=")
}

func TestRunRetriesExhausted(t *testing.T) {
	ctx := context.Background()

	start := time.Now()
	_, err := Run(ctx, Options{
		Command: "false",
		Retries: 3,
		Delay:   10 * time.Millisecond,
		Logger:  zaptest.NewLogger(t),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command failed after 3 attempts")
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond, "delays between attempts should apply")
}

func TestRunSimple(t *testing.T) {
	require.NoError(t, RunSimple(context.Background(), "true"))
	require.Error(t, RunSimple(context.Background(), "false"))
}

func TestDefaultTimeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, defaultTimeout(0))
	assert.Equal(t, time.Minute, defaultTimeout(time.Minute))
}

func TestBuildCommandString(t *testing.T) {
	assert.Equal(t, "apt-get install -y netdata", buildCommandString("apt-get", "install", "-y", "netdata"))
}
