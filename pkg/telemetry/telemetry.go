// pkg/telemetry/telemetry.go

package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/shared"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Telemetry is strictly opt-in. It only activates when the operator has
// created the marker file, and it never leaves the machine: spans append to
// a local JSONL file the operator can read, rotate, or delete.
const markerFileName = "telemetry_on"

var exporting bool

func argusHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".argus")
}

func enabled() bool {
	dir := argusHome()
	if dir == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(dir, markerFileName))
	return err == nil
}

// Init installs the global tracer provider: a real one exporting JSONL when
// telemetry is enabled, a noop otherwise.
func Init(serviceName string) error {
	if !enabled() {
		otel.SetTracerProvider(noop.NewTracerProvider())
		return nil
	}

	out, err := openTelemetryLog()
	if err != nil {
		otel.SetTracerProvider(noop.NewTracerProvider())
		return err
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(out),
		stdouttrace.WithoutTimestamps(),
	)
	if err != nil {
		return err
	}

	hostname, _ := os.Hostname()
	res := sdkresource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.HostName(hostname),
	)

	otel.SetTracerProvider(sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	))
	exporting = true
	return nil
}

func openTelemetryLog() (*os.File, error) {
	candidates := []string{"/var/log/argus"}
	if dir := argusHome(); dir != "" {
		candidates = append(candidates, dir)
	}

	var lastErr error
	for _, dir := range candidates {
		if err := os.MkdirAll(dir, shared.FilePermOwnerRWX); err != nil {
			lastErr = err
			continue
		}
		f, err := os.OpenFile(filepath.Join(dir, "telemetry.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, shared.FilePermOwnerReadWrite)
		if err != nil {
			lastErr = err
			continue
		}
		return f, nil
	}
	return nil, lastErr
}

// Start begins a span on the argus tracer. A nil context is tolerated so
// bootstrap code can record events before a real context exists.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	return otel.Tracer("argus").Start(ctx, name, trace.WithAttributes(attrs...))
}

// Enabled reports whether spans are actually being exported.
func Enabled() bool { return exporting }

// AnonTelemetryID returns a stable anonymous installation id, minting one on
// first use. It carries no host or user information.
func AnonTelemetryID() string {
	dir := argusHome()
	if dir == "" {
		return "anon-unknown"
	}
	path := filepath.Join(dir, "telemetry_id")
	if data, err := os.ReadFile(path); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id
		}
	}
	id := "anon-" + uuid.NewString()
	if err := os.MkdirAll(dir, shared.FilePermOwnerRWX); err == nil {
		_ = os.WriteFile(path, []byte(id+"\n"), shared.FilePermOwnerReadWrite)
	}
	return id
}
