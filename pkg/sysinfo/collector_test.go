// pkg/sysinfo/collector_test.go

package sysinfo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstAddress(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		output string
		want   string
	}{
		{"single address", "192.168.1.50\n", "192.168.1.50"},
		{"multiple addresses take first", "10.0.0.5 172.17.0.1 fe80::1\n", "10.0.0.5"},
		{"empty output falls back to loopback", "", "127.0.0.1"},
		{"whitespace only", "   \n", "127.0.0.1"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, FirstAddress(tc.output))
		})
	}
}

func TestHostCollectorFacts(t *testing.T) {
	ctx := context.Background()
	c := NewCollector()

	facts, err := c.HostInfo(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, facts.Hostname)
	assert.NotEmpty(t, facts.KernelVersion)

	total, err := c.MemoryTotalMB(ctx)
	require.NoError(t, err)
	assert.Greater(t, total, uint64(0))
}

func TestPrimaryIPNeverEmpty(t *testing.T) {
	ctx := context.Background()
	c := NewCollector()

	ip, err := c.PrimaryIP(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, ip, "PrimaryIP falls back to loopback rather than returning empty")
}
