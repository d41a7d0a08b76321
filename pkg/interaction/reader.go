// pkg/interaction/reader.go

package interaction

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// ReadLine prompts the user with a label and returns a trimmed line of input.
func ReadLine(ctx context.Context, reader *bufio.Reader, label string) (string, error) {
	logger := otelzap.Ctx(ctx)
	logger.Debug("Prompting user for input", zap.String("label", label))

	// Prompts go to stderr so stdout stays clean for automation.
	_, _ = fmt.Fprint(os.Stderr, label+": ")

	text, err := reader.ReadString('\n')
	if err != nil {
		logger.Error("Failed to read user input", zap.Error(err))
		return "", err
	}
	return strings.TrimSpace(text), nil
}
