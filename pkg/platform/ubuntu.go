// pkg/platform/ubuntu.go

package platform

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/hashicorp/go-version"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const osReleasePath = "/etc/os-release"

// MinimumUbuntuVersion is the oldest release the upstream packaging
// repositories still publish for.
const MinimumUbuntuVersion = "20.04"

// UbuntuRelease represents Ubuntu release information
type UbuntuRelease struct {
	Version    string // e.g., "24.04", "22.04", "20.04"
	Codename   string // e.g., "noble", "jammy", "focal"
	PrettyName string // e.g., "Ubuntu 24.04.2 LTS"
	ID         string // e.g., "ubuntu"
	IDLike     string // e.g., "debian"
	Arch       string // e.g., "amd64"
	IsLTS      bool
}

// OSReleaseInfo represents parsed /etc/os-release information
type OSReleaseInfo struct {
	Name            string
	Version         string
	VersionID       string
	VersionCodename string
	ID              string
	IDLike          string
	PrettyName      string
	UbuntuCodename  string
}

// DetectUbuntuRelease detects the Ubuntu version and returns detailed
// information. The repository registration step depends on the codename, so
// detection failure is fatal for installs.
func DetectUbuntuRelease(rc *argus_io.RuntimeContext) (*UbuntuRelease, error) {
	logger := otelzap.Ctx(rc.Ctx)

	logger.Debug("Starting Ubuntu version detection")

	data, err := os.ReadFile(osReleasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", osReleasePath, err)
	}

	osInfo := ParseOSRelease(string(data))
	if !isUbuntu(osInfo) {
		return nil, fmt.Errorf("system is not Ubuntu (detected: %s)", osInfo.ID)
	}

	release := &UbuntuRelease{
		Version:    osInfo.VersionID,
		Codename:   getCodename(osInfo),
		PrettyName: osInfo.PrettyName,
		ID:         osInfo.ID,
		IDLike:     osInfo.IDLike,
		Arch:       debArch(),
		IsLTS:      isLTSVersion(osInfo.Version),
	}

	if release.Version == "" || release.Codename == "" {
		logger.Error("Failed to extract Ubuntu version information",
			zap.String("version", release.Version),
			zap.String("codename", release.Codename),
		)
		return nil, fmt.Errorf("could not determine Ubuntu version from %s", osReleasePath)
	}

	logger.Info("Ubuntu version detected successfully",
		zap.String("version", release.Version),
		zap.String("codename", release.Codename),
		zap.String("pretty_name", release.PrettyName),
		zap.Bool("is_lts", release.IsLTS),
	)

	return release, nil
}

// ParseOSRelease parses os-release content into structured information.
func ParseOSRelease(data string) *OSReleaseInfo {
	info := &OSReleaseInfo{}

	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), "\"'")

		switch key {
		case "NAME":
			info.Name = value
		case "VERSION":
			info.Version = value
		case "VERSION_ID":
			info.VersionID = value
		case "VERSION_CODENAME":
			info.VersionCodename = value
		case "ID":
			info.ID = value
		case "ID_LIKE":
			info.IDLike = value
		case "PRETTY_NAME":
			info.PrettyName = value
		case "UBUNTU_CODENAME":
			info.UbuntuCodename = value
		}
	}

	return info
}

func isUbuntu(info *OSReleaseInfo) bool {
	return strings.ToLower(info.ID) == "ubuntu"
}

// getCodename extracts the codename, preferring VERSION_CODENAME over
// UBUNTU_CODENAME, then falling back to the known version table.
func getCodename(info *OSReleaseInfo) string {
	if info.VersionCodename != "" {
		return info.VersionCodename
	}
	if info.UbuntuCodename != "" {
		return info.UbuntuCodename
	}
	if codename, ok := UbuntuCodenames()[info.VersionID]; ok {
		return codename
	}
	return ""
}

func isLTSVersion(version string) bool {
	return strings.Contains(strings.ToUpper(version), "LTS")
}

func debArch() string {
	switch runtime.GOARCH {
	case "amd64", "arm64":
		return runtime.GOARCH
	case "386":
		return "i386"
	default:
		return runtime.GOARCH
	}
}

// UbuntuCodenames returns a mapping of version numbers to codenames.
func UbuntuCodenames() map[string]string {
	return map[string]string{
		"20.04": "focal",
		"22.04": "jammy",
		"24.04": "noble",
		"24.10": "oracular",
		"25.04": "plucky",
	}
}

// ValidateUbuntuVersion checks the detected release against the minimum
// version the upstream repositories publish for.
func ValidateUbuntuVersion(release *UbuntuRelease) error {
	if strings.ToLower(release.ID) != "ubuntu" {
		return fmt.Errorf("release validation requires Ubuntu, detected %q", release.ID)
	}

	detected, err := version.NewVersion(release.Version)
	if err != nil {
		return fmt.Errorf("unparseable Ubuntu version %q: %w", release.Version, err)
	}
	minimum, err := version.NewVersion(MinimumUbuntuVersion)
	if err != nil {
		return fmt.Errorf("invalid minimum version constant: %w", err)
	}

	if detected.LessThan(minimum) {
		return fmt.Errorf("Ubuntu %s (%s) is older than the oldest supported release %s",
			release.Version, release.Codename, MinimumUbuntuVersion)
	}
	return nil
}

// IsDebianBased reports whether the host uses dpkg/apt package management.
func IsDebianBased(rc *argus_io.RuntimeContext) (bool, error) {
	data, err := os.ReadFile(osReleasePath)
	if err != nil {
		return false, err
	}

	osInfo := ParseOSRelease(string(data))
	id := strings.ToLower(osInfo.ID)
	idLike := strings.ToLower(osInfo.IDLike)

	return id == "ubuntu" || id == "debian" || strings.Contains(idLike, "debian"), nil
}
