// pkg/shared/constants.go

package shared

import "os"

// Filesystem permission sets used across the provisioning pipeline.
const (
	// DirPermStandard is for directories the agent and operators both read.
	DirPermStandard os.FileMode = 0755

	// FilePermStandard is for world-readable configuration files.
	FilePermStandard os.FileMode = 0644

	// ConfigFilePerm is the mode for apt sources and similar system config.
	ConfigFilePerm os.FileMode = 0644

	// FilePermOwnerRWX locks a directory down to its owner.
	FilePermOwnerRWX os.FileMode = 0700

	// FilePermOwnerReadWrite is for files nobody else should read, such as
	// log files and telemetry output.
	FilePermOwnerReadWrite os.FileMode = 0600
)
