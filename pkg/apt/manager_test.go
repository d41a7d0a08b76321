// pkg/apt/manager_test.go

package apt

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusInstalled(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   bool
	}{
		{
			name:   "fully installed",
			status: "install ok installed",
			want:   true,
		},
		{
			name:   "installed with surrounding whitespace",
			status: "  install ok installed\n",
			want:   true,
		},
		{
			name:   "removed but config files remain",
			status: "deinstall ok config-files",
			want:   false,
		},
		{
			name:   "half configured",
			status: "install ok half-configured",
			want:   false,
		},
		{
			name:   "empty output",
			status: "",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusInstalled(tt.status))
		})
	}
}

func TestSignedByLine(t *testing.T) {
	t.Run("suite only", func(t *testing.T) {
		line := SignedByLine(
			"/usr/share/keyrings/netdata-archive-keyring.gpg",
			"https://repo.netdata.cloud/repos/stable/ubuntu/",
			"noble/",
		)
		assert.Equal(t,
			"deb [signed-by=/usr/share/keyrings/netdata-archive-keyring.gpg] https://repo.netdata.cloud/repos/stable/ubuntu/ noble/",
			line)
	})

	t.Run("suite with components", func(t *testing.T) {
		line := SignedByLine(
			"/usr/share/keyrings/example-keyring.gpg",
			"https://apt.example.com",
			"jammy",
			"main", "contrib",
		)
		assert.Equal(t,
			"deb [signed-by=/usr/share/keyrings/example-keyring.gpg] https://apt.example.com jammy main contrib",
			line)
	})
}

func TestRemoveRepository(t *testing.T) {
	ctx := context.Background()
	mgr := &aptGet{}

	t.Run("removes sources and keyring", func(t *testing.T) {
		dir := t.TempDir()
		repo := Repository{
			Name:        "example",
			KeyringPath: filepath.Join(dir, "example-keyring.gpg"),
			SourcesPath: filepath.Join(dir, "example.list"),
		}
		require.NoError(t, os.WriteFile(repo.KeyringPath, []byte("key"), 0o644))
		require.NoError(t, os.WriteFile(repo.SourcesPath, []byte("deb ...\n"), 0o644))

		require.NoError(t, mgr.RemoveRepository(ctx, repo))

		assert.NoFileExists(t, repo.KeyringPath)
		assert.NoFileExists(t, repo.SourcesPath)
	})

	t.Run("missing artifacts are not an error", func(t *testing.T) {
		dir := t.TempDir()
		repo := Repository{
			Name:        "example",
			KeyringPath: filepath.Join(dir, "gone.gpg"),
			SourcesPath: filepath.Join(dir, "gone.list"),
		}
		assert.NoError(t, mgr.RemoveRepository(ctx, repo))
	})

	t.Run("empty paths are skipped", func(t *testing.T) {
		assert.NoError(t, mgr.RemoveRepository(ctx, Repository{Name: "bare"}))
	})
}
