// pkg/execute/execute.go

// Package execute provides command execution with structured logging.
// Shell execution is disabled: callers pass argv-style Args so nothing is
// ever interpreted by a shell.
package execute

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_err"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DefaultLogger is used when Options.Logger is nil.
var DefaultLogger *zap.Logger

// DefaultDryRun makes every Run a no-op when set. The --dry-run flag flips it.
var DefaultDryRun bool

// Options describes one command invocation.
type Options struct {
	Command string
	Args    []string
	Dir     string
	Timeout time.Duration
	Retries int
	Delay   time.Duration
	Capture bool
	DryRun  bool
	Shell   bool
	Logger  *zap.Logger
}

// Run executes a command, streaming combined output and returning it when
// Capture is set. Retries > 1 re-runs the command after Delay on failure.
func Run(ctx context.Context, opts Options) (string, error) {
	cmdStr := buildCommandString(opts.Command, opts.Args...)

	logger := opts.Logger
	if logger == nil {
		logger = DefaultLogger
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	rc, cancel := context.WithTimeout(ctx, defaultTimeout(opts.Timeout))
	defer cancel()

	rc, span := telemetry.Start(rc, "execute.Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("command", opts.Command),
		attribute.String("args", strings.Join(opts.Args, " ")),
	)

	if opts.Shell {
		logger.Warn("Shell execution mode is disabled due to injection risks",
			zap.String("command", opts.Command))
		return "", fmt.Errorf("shell execution mode disabled for security - use Args instead")
	}

	if opts.DryRun || DefaultDryRun {
		logInfo(logger, "Dry run mode - command not executed", zap.String("command", cmdStr))
		return "", nil
	}

	logInfo(logger, "Starting execution", zap.String("command", cmdStr))

	attempts := max(1, opts.Retries)
	var output string
	var err error

	for i := 1; i <= attempts; i++ {
		cmd := exec.CommandContext(rc, opts.Command, opts.Args...)
		if opts.Dir != "" {
			cmd.Dir = opts.Dir
		}

		var buf bytes.Buffer
		writer := io.MultiWriter(os.Stdout, &buf)
		cmd.Stdout = writer
		cmd.Stderr = writer

		err = cmd.Run()
		output = buf.String()

		if err == nil {
			logInfo(logger, "Execution succeeded", zap.String("command", cmdStr))
			break
		}

		summary := argus_err.ExtractSummary(ctx, output, 2)
		span.RecordError(err)
		logError(logger, "Execution failed", err,
			zap.Int("attempt", i),
			zap.String("command", cmdStr),
			zap.String("summary", summary),
		)

		if i < attempts {
			time.Sleep(opts.Delay)
		}
	}

	if err != nil {
		return output, cerr.Wrapf(err, "command failed after %d attempts", attempts)
	}

	if opts.Capture {
		return output, nil
	}
	return "", nil
}

// RunSimple executes a command with minimal options, discarding output.
func RunSimple(ctx context.Context, cmd string, args ...string) error {
	_, err := Run(ctx, Options{
		Command: cmd,
		Args:    args,
		Capture: false,
	})
	return err
}

// logInfo logs info messages with fallback to stderr (not stdout)
func logInfo(logger *zap.Logger, msg string, fields ...zap.Field) {
	if logger != nil {
		logger.Info(msg, fields...)
	} else if DefaultLogger != nil {
		DefaultLogger.Info(msg, fields...)
	} else {
		fmt.Fprintf(os.Stderr, "[INFO] %s\n", msg)
	}
}

// logError logs error messages with fallback to stderr (not stdout)
func logError(logger *zap.Logger, msg string, err error, fields ...zap.Field) {
	if logger != nil {
		logger.Error(msg, append(fields, zap.Error(err))...)
	} else if DefaultLogger != nil {
		DefaultLogger.Error(msg, append(fields, zap.Error(err))...)
	} else {
		fmt.Fprintf(os.Stderr, "[ERROR] %s: %v\n", msg, err)
	}
}
