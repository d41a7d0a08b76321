// pkg/interaction/prompt.go

package interaction

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const (
	DefaultYesPrompt = "Y/n"
	DefaultNoPrompt  = "y/N"
)

// IsTTY reports whether stdin is an interactive terminal. Non-interactive
// callers (pipes, CI) cannot be prompted and must pass explicit flags.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// PromptYesNo asks a yes/no question and returns the answer. Unrecognized
// input falls back to the default.
func PromptYesNo(ctx context.Context, prompt string, defaultYes bool) bool {
	logger := otelzap.Ctx(ctx)

	defPrompt := DefaultYesPrompt
	if !defaultYes {
		defPrompt = DefaultNoPrompt
	}
	label := fmt.Sprintf("%s [%s]", prompt, defPrompt)

	reader := bufio.NewReader(os.Stdin)
	input, err := ReadLine(ctx, reader, label)
	if err != nil {
		logger.Error("Failed to read yes/no input", zap.Error(err))
		return defaultYes
	}

	if answer, ok := NormalizeYesNoInput(input); ok {
		return answer
	}
	logger.Debug("Default applied", zap.String("prompt", prompt), zap.Bool("default_yes", defaultYes))
	return defaultYes
}

// NormalizeYesNoInput parses an affirmative or negative response. The second
// return value reports whether the input was recognized at all.
func NormalizeYesNoInput(input string) (bool, bool) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	default:
		return false, false
	}
}
