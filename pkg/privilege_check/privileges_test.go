// pkg/privilege_check/privileges_test.go

package privilege_check

import (
	"context"
	"testing"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_err"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withEuid(t *testing.T, uid int) {
	t.Helper()
	original := geteuid
	geteuid = func() int { return uid }
	t.Cleanup(func() { geteuid = original })
}

func TestRequireRootAsRoot(t *testing.T) {
	withEuid(t, 0)

	rc := argus_io.NewContext(context.Background(), "test")
	require.NoError(t, RequireRoot(rc))
}

func TestRequireRootAsRegularUser(t *testing.T) {
	withEuid(t, 1000)

	rc := argus_io.NewContext(context.Background(), "test")
	err := RequireRoot(rc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be run as root")
	assert.True(t, argus_err.IsExpectedUserError(err), "privilege failures are user errors, not bugs")
}

func TestCheckPrivileges(t *testing.T) {
	withEuid(t, 0)

	rc := argus_io.NewContext(context.Background(), "test")
	check, err := CheckPrivileges(rc)
	require.NoError(t, err)

	assert.True(t, check.IsRoot)
	assert.Equal(t, PrivilegeLevelRoot, check.Level)
	assert.Equal(t, 0, check.UserID)
	assert.NotEmpty(t, check.Username)
	assert.False(t, check.Timestamp.IsZero())
}

func TestCheckPrivilegesRegularUser(t *testing.T) {
	withEuid(t, 4242)

	rc := argus_io.NewContext(context.Background(), "test")
	check, err := CheckPrivileges(rc)
	require.NoError(t, err)

	assert.False(t, check.IsRoot)
	assert.Equal(t, PrivilegeLevelRegular, check.Level)
	assert.Equal(t, 4242, check.UserID)
}

func TestIsRoot(t *testing.T) {
	withEuid(t, 0)
	assert.True(t, IsRoot())

	withEuid(t, 1)
	assert.False(t, IsRoot())
}
