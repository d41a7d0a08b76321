// pkg/firewall/firewall.go

// Package firewall wraps host firewall management behind a narrow interface.
// Only ufw is supported; hosts without it simply report the firewall absent
// and callers decide how loudly to complain.
package firewall

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/execute"
	cerr "github.com/cockroachdb/errors"
)

// Firewall is the firewall surface provisioning flows depend on.
type Firewall interface {
	// Present reports whether a firewall frontend is installed on the host.
	Present(ctx context.Context) bool

	// AllowPort opens the given port for the protocol, attaching a comment
	// so the rule's owner is obvious in rule listings.
	AllowPort(ctx context.Context, port int, proto, comment string) error
}

// ufw is the production Firewall backed by the host's ufw binary.
type ufw struct{}

// NewUFW returns a Firewall that drives the host's ufw frontend.
func NewUFW() Firewall {
	return &ufw{}
}

func (u *ufw) Present(ctx context.Context) bool {
	_, err := exec.LookPath("ufw")
	return err == nil
}

func (u *ufw) AllowPort(ctx context.Context, port int, proto, comment string) error {
	args, err := allowArgs(port, proto, comment)
	if err != nil {
		return err
	}
	if err := execute.RunSimple(ctx, "ufw", args...); err != nil {
		return cerr.Wrapf(err, "ufw allow %s failed", PortSpec(port, proto))
	}
	return nil
}

// PortSpec renders a ufw port/protocol selector such as "19999/tcp".
func PortSpec(port int, proto string) string {
	return fmt.Sprintf("%d/%s", port, proto)
}

func allowArgs(port int, proto, comment string) ([]string, error) {
	if port < 1 || port > 65535 {
		return nil, cerr.Newf("port %d out of range", port)
	}
	if proto != "tcp" && proto != "udp" {
		return nil, cerr.Newf("unsupported protocol %q", proto)
	}
	args := []string{"allow", PortSpec(port, proto)}
	if comment != "" {
		args = append(args, "comment", comment)
	}
	return args, nil
}
