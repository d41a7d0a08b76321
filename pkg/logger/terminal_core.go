// pkg/logger/terminal_core.go

package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/zapcore"
)

// TerminalPromptPrefix marks log messages meant for the operator's eyes.
// They are printed as plain text instead of structured log lines.
const TerminalPromptPrefix = "terminal prompt: "

type terminalConsoleCore struct {
	zapcore.Core
}

// newTerminalConsoleCore wraps core so prompt-prefixed entries bypass the
// structured encoders.
func newTerminalConsoleCore(core zapcore.Core) zapcore.Core {
	return &terminalConsoleCore{Core: core}
}

func (c *terminalConsoleCore) With(fields []zapcore.Field) zapcore.Core {
	return &terminalConsoleCore{Core: c.Core.With(fields)}
}

func (c *terminalConsoleCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if strings.HasPrefix(entry.Message, TerminalPromptPrefix) {
		return ce.AddCore(entry, c)
	}
	return c.Core.Check(entry, ce)
}

func (c *terminalConsoleCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if !strings.HasPrefix(entry.Message, TerminalPromptPrefix) {
		return c.Core.Write(entry, fields)
	}

	text := strings.TrimPrefix(entry.Message, TerminalPromptPrefix)

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}

	if text != "" {
		fmt.Println(text)
	}
	// An "output" field carries preformatted command output and prints
	// before any remaining fields.
	if out, ok := enc.Fields["output"]; ok {
		fmt.Println(out)
		delete(enc.Fields, "output")
	}
	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %s: %v\n", k, enc.Fields[k])
	}
	return nil
}
