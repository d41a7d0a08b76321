// pkg/argus_err/errors.go

package argus_err

import (
	"context"
	"errors"

	cerr "github.com/cockroachdb/errors"
)

// UserError marks an error as expected and recoverable by the user.
// The CLI logs these without a stack trace and skips the bug-report hint,
// but they still fail the command.
type UserError struct {
	cause error
}

func (e *UserError) Error() string {
	return e.cause.Error()
}

func (e *UserError) Unwrap() error {
	return e.cause
}

// NewUserError builds an expected error from a printf-style message.
func NewUserError(format string, args ...interface{}) error {
	return &UserError{cause: cerr.Newf(format, args...)}
}

// NewExpectedError wraps an existing error for softer UX handling.
func NewExpectedError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	return &UserError{cause: err}
}

// IsExpectedUserError checks if the error is marked as expected.
func IsExpectedUserError(err error) bool {
	var e *UserError
	return errors.As(err, &e)
}

func WrapValidationError(err error) error {
	return cerr.WithHint(cerr.WithStack(err), "validation failed")
}
