// pkg/testutil/filesystem.go

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CreateTestFile writes a file with the given content and permissions under
// dir, creating parent directories as needed, and returns its path.
func CreateTestFile(t *testing.T, dir, filename, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	// WriteFile honors umask, so force the requested bits.
	require.NoError(t, os.Chmod(path, perm))
	return path
}

// CreateTestDir creates a directory with the given permissions under dir and
// returns its path.
func CreateTestDir(t *testing.T, dir, dirname string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, dirname)
	require.NoError(t, os.MkdirAll(path, perm))
	require.NoError(t, os.Chmod(path, perm))
	return path
}

// AssertFileExists verifies that a file exists.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("expected file to exist: %s", path)
	}
}

// AssertFileNotExists verifies that a file does not exist.
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Fatalf("expected file to not exist: %s", path)
	}
}

// AssertFilePermissions verifies the permission bits of a file or directory.
func AssertFilePermissions(t *testing.T, path string, expected os.FileMode) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	actual := info.Mode().Perm()
	if actual != expected {
		t.Fatalf("expected permissions %o, got %o for %s", expected, actual, path)
	}
}

// AssertFileContent verifies file content matches expected exactly.
func AssertFileContent(t *testing.T, path, expected string) {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, expected, string(content))
}
