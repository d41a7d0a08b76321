// pkg/netdata/config.go

package netdata

import (
	"time"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_err"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/systemd"
	cerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Activation checkpoints where one-shot remediation may be attempted.
const (
	CheckpointInstall      = "install"
	CheckpointHealthRule   = "health-rule"
	CheckpointCustomConfig = "custom-config"
)

// InstallConfig controls the provisioning flow. Zero values are filled in by
// DefaultInstallConfig; flags and an optional YAML profile override them.
type InstallConfig struct {
	// Channel selects the vendor release channel.
	Channel string `mapstructure:"channel" validate:"oneof=stable edge"`

	// ConfigsDir is the local directory holding the collector configs that
	// get copied onto the host.
	ConfigsDir string `mapstructure:"configs_dir" validate:"required"`

	// PollInterval and ActivationTimeout bound how long activation checks
	// wait for the unit to come up.
	PollInterval      time.Duration `mapstructure:"poll_interval" validate:"gt=0"`
	ActivationTimeout time.Duration `mapstructure:"activation_timeout" validate:"gt=0"`

	// Remediate lists the checkpoints where the one-shot permission repair
	// may run when activation fails. "none" disables it everywhere.
	Remediate []string `mapstructure:"remediate" validate:"dive,oneof=install health-rule custom-config none"`

	// SkipCleanup leaves any prior installation in place.
	SkipCleanup bool `mapstructure:"skip_cleanup"`

	// SkipFirewall skips the dashboard port rule.
	SkipFirewall bool `mapstructure:"skip_firewall"`

	// DryRun logs every external command instead of executing it.
	DryRun bool `mapstructure:"dry_run"`

	// Paths is not part of the profile surface; tests remap it.
	Paths Paths `mapstructure:"-"`
}

// DefaultInstallConfig returns the settings an interactive run starts from.
func DefaultInstallConfig() *InstallConfig {
	return &InstallConfig{
		Channel:           ChannelStable,
		ConfigsDir:        "configs",
		PollInterval:      systemd.DefaultPollInterval,
		ActivationTimeout: systemd.DefaultActivationTimeout,
		Remediate:         []string{CheckpointInstall},
		Paths:             DefaultPaths(),
	}
}

// Validate checks field constraints and cross-field consistency.
func (c *InstallConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return argus_err.WrapValidationError(err)
	}
	if c.ActivationTimeout <= c.PollInterval {
		return argus_err.NewUserError(
			"activation timeout %s must be longer than the poll interval %s",
			c.ActivationTimeout, c.PollInterval)
	}
	return nil
}

// RemediateAt reports whether the one-shot repair is allowed at the given
// checkpoint.
func (c *InstallConfig) RemediateAt(checkpoint string) bool {
	for _, cp := range c.Remediate {
		if cp == "none" {
			return false
		}
		if cp == checkpoint {
			return true
		}
	}
	return false
}

// LoadProfile overlays a YAML profile onto the config. Profile values win
// over defaults; the caller applies explicit flag overrides afterwards.
// Durations accept human-readable values like "2s" or "1m".
func (c *InstallConfig) LoadProfile(rc *argus_io.RuntimeContext, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return cerr.Wrapf(err, "load install profile %s", path)
	}
	if err := v.Unmarshal(c); err != nil {
		return cerr.Wrapf(err, "parse install profile %s", path)
	}
	otelzap.Ctx(rc.Ctx).Info("Install profile loaded", zap.String("path", path))
	return nil
}
