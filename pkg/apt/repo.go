// pkg/apt/repo.go

package apt

import (
	"context"
	"fmt"
	"os"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/shared"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Repository describes one third-party apt source with a dedicated keyring.
type Repository struct {
	// Name is a short identifier used for temp files and log fields.
	Name string

	// KeyURL is where the ASCII-armored signing key is fetched from.
	KeyURL string

	// KeyringPath is the dearmored keyring under /usr/share/keyrings.
	KeyringPath string

	// SourcesPath is the list file under /etc/apt/sources.list.d.
	SourcesPath string

	// Line is the full deb line written to SourcesPath.
	Line string
}

// SignedByLine renders a modern deb line that pins the repository to a
// dedicated keyring via the signed-by option.
func SignedByLine(keyringPath, url, suite string, components ...string) string {
	line := fmt.Sprintf("deb [signed-by=%s] %s %s", keyringPath, url, suite)
	for _, c := range components {
		line += " " + c
	}
	return line
}

func (a *aptGet) RegisterRepository(ctx context.Context, repo Repository) error {
	logger := otelzap.Ctx(ctx)

	// Download the signing key to a temporary file first so a failed fetch
	// never leaves a half-written keyring behind.
	keyPath := fmt.Sprintf("/tmp/%s.gpg.key", repo.Name)
	logger.Info("Downloading repository signing key",
		zap.String("repository", repo.Name),
		zap.String("url", repo.KeyURL))
	if err := execute.RunSimple(ctx, "curl", "-fsSL", repo.KeyURL, "-o", keyPath); err != nil {
		return cerr.Wrapf(err, "download signing key for %s", repo.Name)
	}
	defer func() {
		if err := os.Remove(keyPath); err != nil && !os.IsNotExist(err) {
			logger.Warn("Failed to remove temporary key file",
				zap.String("path", keyPath), zap.Error(err))
		}
	}()

	// --yes overwrites a keyring left behind by an earlier install.
	if err := execute.RunSimple(ctx, "gpg", "--dearmor", "--yes", "--output", repo.KeyringPath, keyPath); err != nil {
		return cerr.Wrapf(err, "dearmor signing key for %s", repo.Name)
	}

	logger.Info("Writing apt source",
		zap.String("path", repo.SourcesPath),
		zap.String("line", repo.Line))
	if err := os.WriteFile(repo.SourcesPath, []byte(repo.Line+"\n"), shared.ConfigFilePerm); err != nil {
		return cerr.Wrapf(err, "write apt source %s", repo.SourcesPath)
	}

	if err := a.Update(ctx); err != nil {
		return cerr.Wrapf(err, "refresh package lists after adding %s repository", repo.Name)
	}

	logger.Info("Repository registered", zap.String("repository", repo.Name))
	return nil
}

func (a *aptGet) RemoveRepository(ctx context.Context, repo Repository) error {
	logger := otelzap.Ctx(ctx)

	for _, path := range []string{repo.SourcesPath, repo.KeyringPath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return cerr.Wrapf(err, "remove repository artifact %s", path)
		}
		logger.Info("Removed repository artifact", zap.String("path", path))
	}
	return nil
}
