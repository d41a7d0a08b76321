// pkg/systemd/diagnostics.go

package systemd

import (
	"context"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

// Diagnostics holds the status and journal output captured when a unit
// misbehaves, so activation failures are debuggable straight from the
// command output.
type Diagnostics struct {
	Unit    string
	Status  string
	Journal string
}

// CaptureDiagnostics collects best-effort status and recent journal output
// for the unit. Empty fields mean nothing could be captured.
func CaptureDiagnostics(ctx context.Context, m Manager, unit string) Diagnostics {
	return Diagnostics{
		Unit:    unit,
		Status:  m.Status(ctx, unit),
		Journal: m.RecentLogs(ctx, unit, DefaultJournalLines),
	}
}

// Emit prints the captured output to the operator.
func (d Diagnostics) Emit(logger otelzap.LoggerWithCtx) {
	logger.Info("terminal prompt: --- systemctl status " + d.Unit + " ---")
	if d.Status != "" {
		logger.Info("terminal prompt: " + d.Status)
	} else {
		logger.Info("terminal prompt: (no status output captured)")
	}
	logger.Info("terminal prompt: --- recent journal entries for " + d.Unit + " ---")
	if d.Journal != "" {
		logger.Info("terminal prompt: " + d.Journal)
	} else {
		logger.Info("terminal prompt: (no journal output captured)")
	}
}
