package store

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrWriteConflict is returned by the versioned-snapshot backend after
	// optimistic-concurrency retries are exhausted. The entry was not
	// stored; the caller may resubmit.
	ErrWriteConflict = errors.New("write conflict after retries")

	// ErrTimeout is returned when a backend did not respond within the
	// bounded operation timeout. The backend's own atomicity boundary is
	// the unit of commit, so nothing partial is considered written.
	ErrTimeout = errors.New("store operation timed out")
)

// wrapTimeout converts a context deadline failure into ErrTimeout, keeping
// the operation name for logs. Other errors pass through with context.
func wrapTimeout(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, ErrTimeout)
	}
	return fmt.Errorf("%s: %w", op, err)
}
