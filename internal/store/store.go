// Package store persists bounded, per-mode ranked collections of
// leaderboard entries. Two production backends share one contract: a Redis
// sorted-set collection with atomic add/remove primitives, and a Postgres
// versioned-document store with optimistic concurrency. An in-memory
// backend backs tests.
package store

import (
	"context"

	"github.com/sortrush/leaderboard-api/internal/models"
)

// Backend is the storage contract every implementation exposes.
//
// Add durably persists one entry into the mode's collection; on failure no
// partial write is visible. Snapshot returns the current materialized view,
// sorted by score descending then submission time ascending. Trim removes
// the lowest-ranked entries beyond maxSize.
//
// Add and Trim are each atomic individually but not atomic together: a
// burst of concurrent Adds may transiently push a collection past maxSize
// until the next Trim runs. Callers rely on eventual convergence, not on a
// hard bound mid-burst.
type Backend interface {
	Add(ctx context.Context, mode models.Mode, e models.Entry) error
	Snapshot(ctx context.Context, mode models.Mode) ([]models.Entry, error)
	Trim(ctx context.Context, mode models.Mode, maxSize int) error

	// Ping reports backend reachability for readiness checks.
	Ping(ctx context.Context) error
	Close() error
}
