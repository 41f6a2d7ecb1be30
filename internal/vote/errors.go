package vote

import (
	"github.com/pkg/errors"
)

// ErrUnavailable marks collaborator errors caused by the ledger being
// unreachable rather than by it refusing an operation.
var ErrUnavailable = errors.New("ledger unavailable")

type unavailableError struct {
	err error
}

func (e *unavailableError) Error() string {
	return e.err.Error()
}

func (e *unavailableError) Unwrap() error {
	return e.err
}

func (e *unavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

// MarkUnavailable tags err so that errors.Is(err, ErrUnavailable) holds
// while keeping the original message and chain.
func MarkUnavailable(err error) error {
	if err == nil || errors.Is(err, ErrUnavailable) {
		return err
	}
	return &unavailableError{err: err}
}

// RejectedError is a ledger refusing an operation: a reverted call or a
// transaction mined with a failed status.
type RejectedError struct {
	// Reason is the decoded revert reason, empty when none was available.
	Reason string
	Err    error
}

func (e *RejectedError) Error() string {
	switch {
	case e.Reason != "" && e.Err != nil:
		return "rejected: " + e.Reason + ": " + e.Err.Error()
	case e.Reason != "":
		return "rejected: " + e.Reason
	case e.Err != nil:
		return "rejected: " + e.Err.Error()
	default:
		return "rejected"
	}
}

func (e *RejectedError) Unwrap() error {
	return e.Err
}

// reasonOf prefers the decoded revert reason and falls back to the raw
// message.
func reasonOf(err error) string {
	var rejected *RejectedError
	if errors.As(err, &rejected) && rejected.Reason != "" {
		return rejected.Reason
	}
	return errors.Cause(err).Error()
}
