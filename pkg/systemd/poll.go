// pkg/systemd/poll.go

package systemd

import (
	"context"
	"time"

	cerr "github.com/cockroachdb/errors"
)

const (
	DefaultPollInterval      = 1 * time.Second
	DefaultActivationTimeout = 30 * time.Second
)

// WaitActive polls the unit's activation state until it reports active or
// the timeout elapses. The first check happens immediately so a unit that is
// already up never costs a full interval.
func WaitActive(ctx context.Context, m Manager, unit string, interval, timeout time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if timeout <= 0 {
		timeout = DefaultActivationTimeout
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if active, err := m.IsActive(waitCtx, unit); err == nil && active {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return cerr.Wrapf(ctx.Err(), "wait for unit %s interrupted", unit)
			}
			return cerr.Newf("unit %s did not become active within %s", unit, timeout)
		case <-ticker.C:
			if active, err := m.IsActive(waitCtx, unit); err == nil && active {
				return nil
			}
		}
	}
}
