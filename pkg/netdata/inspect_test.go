// pkg/netdata/inspect_test.go

package netdata

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAgentVersion(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    string
		wantErr bool
	}{
		{name: "standard output", output: "netdata v1.45.2", want: "1.45.2"},
		{name: "trailing newline", output: "netdata v1.40.0\n", want: "1.40.0"},
		{name: "bare version", output: "v2.1.0", want: "2.1.0"},
		{name: "missing v prefix", output: "netdata 1.45.2", wantErr: true},
		{name: "empty", output: "", wantErr: true},
		{name: "garbage", output: "command not found", wantErr: true},
		{name: "v prefix without version", output: "vnothing here", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAgentVersion(tt.output)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersionSupported(t *testing.T) {
	tests := []struct {
		version string
		want    bool
		wantErr bool
	}{
		{version: "1.39.9", want: false},
		{version: MinimumAgentVersion, want: true},
		{version: "1.45.2", want: true},
		{version: "2.0.0", want: true},
		{version: "not-a-version", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			got, err := VersionSupported(tt.version)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInspectFreshHost(t *testing.T) {
	ti := newTestInstaller(t)
	ti.in.dashboardURL = deadDashboard(t)

	st, err := ti.in.Inspect()

	require.NoError(t, err)
	assert.False(t, st.PackageInstalled)
	assert.False(t, st.UnitKnown)
	assert.Equal(t, "inactive", st.ServiceState)
	assert.Empty(t, st.BinaryPath)
	assert.False(t, st.DashboardReachable)
	assert.Equal(t, uint64(2048), st.MemoryTotalMB)
	require.NotNil(t, st.Host)
	assert.Equal(t, "test-host", st.Host.Hostname)

	// Inspection never mutates.
	assert.Empty(t, ti.pkgs.Calls)
	assert.Empty(t, ti.svc.Calls)
}

func TestInspectInstalledHost(t *testing.T) {
	ti := newTestInstaller(t)
	seedPriorInstall(t, ti)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/info", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	ti.in.dashboardURL = srv.URL

	st, err := ti.in.Inspect()

	require.NoError(t, err)
	assert.True(t, st.PackageInstalled)
	assert.True(t, st.UnitKnown)
	assert.Equal(t, "active", st.ServiceState)
	assert.Equal(t, "/usr/bin/netdata", st.BinaryPath)
	assert.True(t, st.DashboardReachable)
}

func TestInspectDashboardErrorStatus(t *testing.T) {
	ti := newTestInstaller(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	ti.in.dashboardURL = srv.URL

	st, err := ti.in.Inspect()

	require.NoError(t, err)
	assert.False(t, st.DashboardReachable, "non-200 API answer is not a healthy dashboard")
}

func TestExportStatus(t *testing.T) {
	ti := newTestInstaller(t)
	st := &Status{
		PackageInstalled: true,
		UnitKnown:        true,
		ServiceState:     "active",
		BinaryPath:       "/usr/bin/netdata",
		AgentVersion:     "1.45.2",
		VersionSupported: true,
	}
	path := filepath.Join(t.TempDir(), "status.yaml")

	require.NoError(t, ti.in.ExportStatus(st, path))

	var got Status
	require.NoError(t, argus_io.ReadYAML(ti.in.rc.Ctx, path, &got))
	assert.Equal(t, *st, got)
}

// deadDashboard returns a URL nothing listens on.
func deadDashboard(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}
