// pkg/argus_cli/wrap.go

package argus_cli

import (
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_err"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// Wrap adapts a RuntimeContext-based handler to cobra's RunE signature.
// It guarantees panic recovery, a final telemetry span and a log flush no
// matter how the handler exits.
func Wrap(fn func(rc *argus_io.RuntimeContext, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		logger.EnsureInitialized()

		rc := argus_io.NewContext(cmd.Context(), cmd.Name())
		defer rc.End(&err)
		defer rc.HandlePanic(&err)

		argus_io.LogRuntimeExecutionContext()

		rc.Attributes["anon_id"] = telemetry.AnonTelemetryID()

		err = fn(rc, cmd, args)
		if err != nil && !argus_err.IsExpectedUserError(err) {
			err = cerr.WithStack(err)
		}
		return err
	}
}
