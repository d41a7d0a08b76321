// pkg/firewall/firewall_test.go

package firewall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortSpec(t *testing.T) {
	assert.Equal(t, "19999/tcp", PortSpec(19999, "tcp"))
	assert.Equal(t, "53/udp", PortSpec(53, "udp"))
}

func TestAllowArgs(t *testing.T) {
	t.Run("with comment", func(t *testing.T) {
		args, err := allowArgs(19999, "tcp", "Netdata agent dashboard")
		require.NoError(t, err)
		assert.Equal(t, []string{"allow", "19999/tcp", "comment", "Netdata agent dashboard"}, args)
	})

	t.Run("without comment", func(t *testing.T) {
		args, err := allowArgs(8080, "tcp", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"allow", "8080/tcp"}, args)
	})

	t.Run("rejects out-of-range port", func(t *testing.T) {
		_, err := allowArgs(0, "tcp", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "out of range")

		_, err = allowArgs(70000, "tcp", "")
		require.Error(t, err)
	})

	t.Run("rejects unknown protocol", func(t *testing.T) {
		_, err := allowArgs(19999, "icmp", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported protocol")
	})
}
