package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/sortrush/leaderboard-api/internal/models"
)

// CAS retry policy for the versioned-snapshot backend.
const (
	maxCASRetries = 5
	baseBackoff   = 50 * time.Millisecond
	maxBackoff    = time.Second
)

// PgPool defines the slice of a pgx pool the backend needs, so tests can
// substitute a fake.
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresBackend stores each mode's whole collection as one versioned
// JSONB document. Writes are optimistic: read the version, rebuild the
// capped list in memory, and commit only if the version is unchanged,
// retrying with exponential backoff on a miss.
type PostgresBackend struct {
	db         PgPool
	maxEntries int
	timeout    time.Duration
	logger     *zap.SugaredLogger
}

func NewPostgresBackend(db PgPool, maxEntries int, timeout time.Duration, logger *zap.SugaredLogger) *PostgresBackend {
	if maxEntries <= 0 {
		maxEntries = 50
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PostgresBackend{db: db, maxEntries: maxEntries, timeout: timeout, logger: logger}
}

// EnsureSchema creates the document table if it does not exist.
func (b *PostgresBackend) EnsureSchema(ctx context.Context) error {
	_, err := b.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS leaderboard_docs (
			mode    TEXT PRIMARY KEY,
			version BIGINT NOT NULL DEFAULT 0,
			entries JSONB NOT NULL DEFAULT '[]'
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// load reads the current document for a mode. exists is false when the
// mode has never been written.
func (b *PostgresBackend) load(ctx context.Context, mode models.Mode) (entries []models.Entry, version int64, exists bool, err error) {
	var raw []byte
	err = b.db.QueryRow(ctx,
		`SELECT version, entries FROM leaderboard_docs WHERE mode = $1`,
		string(mode)).Scan(&version, &raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, 0, false, nil
	}
	if err != nil {
		return nil, 0, false, err
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, 0, false, fmt.Errorf("decode document: %w", err)
	}
	return entries, version, true, nil
}

// commit writes the new entry list conditioned on the version read earlier.
// It reports whether the conditional write landed.
func (b *PostgresBackend) commit(ctx context.Context, mode models.Mode, entries []models.Entry, version int64, exists bool) (bool, error) {
	raw, err := json.Marshal(entries)
	if err != nil {
		return false, fmt.Errorf("encode document: %w", err)
	}

	var tag pgconn.CommandTag
	if exists {
		tag, err = b.db.Exec(ctx, `
			UPDATE leaderboard_docs
			SET entries = $2, version = version + 1
			WHERE mode = $1 AND version = $3
		`, string(mode), raw, version)
	} else {
		tag, err = b.db.Exec(ctx, `
			INSERT INTO leaderboard_docs (mode, version, entries)
			VALUES ($1, 1, $2)
			ON CONFLICT (mode) DO NOTHING
		`, string(mode), raw)
	}
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// mutate runs the read-modify-commit loop. apply rebuilds the entry list
// from the current one; returning ok=false skips the commit entirely.
func (b *PostgresBackend) mutate(ctx context.Context, op string, mode models.Mode, apply func([]models.Entry) ([]models.Entry, bool)) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	start := time.Now()
	for attempt := 0; attempt <= maxCASRetries; attempt++ {
		if attempt > 0 {
			casRetries.Inc()
			delay := baseBackoff << (attempt - 1)
			if delay > maxBackoff {
				delay = maxBackoff
			}
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				storeOpFailures.Inc()
				return wrapTimeout(op, ctx.Err())
			}
		}

		entries, version, exists, err := b.load(ctx, mode)
		if err != nil {
			storeOpFailures.Inc()
			return wrapTimeout(op, err)
		}

		next, ok := apply(entries)
		if !ok {
			return nil
		}

		committed, err := b.commit(ctx, mode, next, version, exists)
		if err != nil {
			storeOpFailures.Inc()
			return wrapTimeout(op, err)
		}
		if committed {
			storeOpDuration.Observe(time.Since(start).Seconds())
			return nil
		}

		b.logger.Debugw("Version conflict, retrying", "op", op, "mode", mode, "attempt", attempt+1)
	}

	writeConflicts.Inc()
	return fmt.Errorf("%s %s: %w", op, mode, ErrWriteConflict)
}

func (b *PostgresBackend) Add(ctx context.Context, mode models.Mode, e models.Entry) error {
	return b.mutate(ctx, "postgres add", mode, func(current []models.Entry) ([]models.Entry, bool) {
		return Retain(append(current, e), b.maxEntries), true
	})
}

func (b *PostgresBackend) Snapshot(ctx context.Context, mode models.Mode) ([]models.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	start := time.Now()
	entries, _, _, err := b.load(ctx, mode)
	if err != nil {
		storeOpFailures.Inc()
		return nil, wrapTimeout("postgres snapshot", err)
	}
	SortEntries(entries)
	storeOpDuration.Observe(time.Since(start).Seconds())
	return entries, nil
}

func (b *PostgresBackend) Trim(ctx context.Context, mode models.Mode, maxSize int) error {
	return b.mutate(ctx, "postgres trim", mode, func(current []models.Entry) ([]models.Entry, bool) {
		if len(current) <= maxSize {
			return nil, false
		}
		return Retain(current, maxSize), true
	})
}

func (b *PostgresBackend) Ping(ctx context.Context) error {
	var one int
	return b.db.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func (b *PostgresBackend) Close() error {
	if c, ok := b.db.(interface{ Close() }); ok {
		c.Close()
	}
	return nil
}
