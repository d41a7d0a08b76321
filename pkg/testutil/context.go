// pkg/testutil/context.go

// Package testutil provides runtime-context helpers, filesystem assertions
// and fakes for the subsystem interfaces provisioning flows depend on.
package testutil

import (
	"context"
	"testing"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
)

// TestRuntimeContext returns a RuntimeContext suitable for exercising
// command logic in tests. Logging goes to the no-op global logger unless the
// test replaces it.
func TestRuntimeContext(t *testing.T) *argus_io.RuntimeContext {
	t.Helper()
	return argus_io.NewContext(context.Background(), "test")
}
