package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/sortrush/leaderboard-api/internal/models"
)

// fakeDocPool simulates the leaderboard_docs table for a single mode,
// including a competing writer that can steal the version between a read
// and the conditional write.
type fakeDocPool struct {
	mu      sync.Mutex
	exists  bool
	version int64
	raw     []byte

	// raceOnce injects one lost race: the first conditional UPDATE finds
	// the version already bumped by raceEntry's writer.
	raceOnce  bool
	raceEntry *models.Entry

	// alwaysConflict makes every conditional write fail.
	alwaysConflict bool
}

type fakeDocRow struct {
	err     error
	version int64
	raw     []byte
}

func (r *fakeDocRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) == 1 {
		// Ping path: SELECT 1
		if v, ok := dest[0].(*int); ok {
			*v = 1
		}
		return nil
	}
	if v, ok := dest[0].(*int64); ok {
		*v = r.version
	}
	if raw, ok := dest[1].(*[]byte); ok {
		*raw = append([]byte(nil), r.raw...)
	}
	return nil
}

func (p *fakeDocPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (p *fakeDocPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	p.mu.Lock()
	defer p.mu.Unlock()
	if strings.Contains(sql, "SELECT 1") {
		return &fakeDocRow{}
	}
	if !p.exists {
		return &fakeDocRow{err: pgx.ErrNoRows}
	}
	return &fakeDocRow{version: p.version, raw: p.raw}
}

func (p *fakeDocPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case strings.Contains(sql, "INSERT"):
		if p.exists {
			return pgconn.NewCommandTag("INSERT 0 0"), nil
		}
		p.exists = true
		p.version = 1
		p.raw = append([]byte(nil), args[1].([]byte)...)
		return pgconn.NewCommandTag("INSERT 0 1"), nil

	case strings.Contains(sql, "UPDATE"):
		if p.alwaysConflict {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		}
		if p.raceOnce {
			// A competing writer committed first: apply its entry, bump
			// the version, and report the conditional write as missed.
			p.raceOnce = false
			var current []models.Entry
			_ = json.Unmarshal(p.raw, &current)
			current = append(current, *p.raceEntry)
			p.raw, _ = json.Marshal(current)
			p.version++
			return pgconn.NewCommandTag("UPDATE 0"), nil
		}
		expected := args[2].(int64)
		if expected != p.version {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		}
		p.raw = append([]byte(nil), args[1].([]byte)...)
		p.version++
		return pgconn.NewCommandTag("UPDATE 1"), nil

	default:
		// EnsureSchema
		return pgconn.NewCommandTag("CREATE TABLE"), nil
	}
}

func newTestPostgresBackend(p PgPool, maxEntries int) *PostgresBackend {
	return NewPostgresBackend(p, maxEntries, 5*time.Second, zap.NewNop().Sugar())
}

func TestPostgresBackend_AddCreatesDocument(t *testing.T) {
	ctx := context.Background()
	pool := &fakeDocPool{}
	b := newTestPostgresBackend(pool, 50)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := b.Add(ctx, models.ModeSpeedSort, entryAt("first", 100, base)); err != nil {
		t.Fatalf("add: %v", err)
	}

	snap, err := b.Snapshot(ctx, models.ModeSpeedSort)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap) != 1 || snap[0].ID != "first" {
		t.Fatalf("expected [first], got %v", snap)
	}
	if pool.version != 1 {
		t.Errorf("expected version 1, got %d", pool.version)
	}
}

func TestPostgresBackend_AddCapsDocument(t *testing.T) {
	ctx := context.Background()
	pool := &fakeDocPool{}
	b := newTestPostgresBackend(pool, 2)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, score := range []int64{30, 20, 10} {
		e := entryAt(string(rune('a'+i)), score, base.Add(time.Duration(i)*time.Second))
		if err := b.Add(ctx, models.ModeSpeedSort, e); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	snap, _ := b.Snapshot(ctx, models.ModeSpeedSort)
	if len(snap) != 2 {
		t.Fatalf("expected capped size 2, got %d", len(snap))
	}
	if snap[0].Score != 30 || snap[1].Score != 20 {
		t.Errorf("expected [30 20], got [%d %d]", snap[0].Score, snap[1].Score)
	}
}

func TestPostgresBackend_LostRaceRetriesAndMergesBothWriters(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	winner := entryAt("writer1", 80, base)
	raw, _ := json.Marshal([]models.Entry{})
	pool := &fakeDocPool{exists: true, version: 1, raw: raw, raceOnce: true, raceEntry: &winner}
	b := newTestPostgresBackend(pool, 50)

	if err := b.Add(ctx, models.ModeDraftSort, entryAt("writer2", 70, base.Add(time.Second))); err != nil {
		t.Fatalf("add after lost race: %v", err)
	}

	snap, err := b.Snapshot(ctx, models.ModeDraftSort)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap) != 2 {
		t.Fatalf("expected both writers' entries, got %d", len(snap))
	}
	if snap[0].ID != "writer1" || snap[1].ID != "writer2" {
		t.Errorf("expected [writer1 writer2], got [%s %s]", snap[0].ID, snap[1].ID)
	}
}

func TestPostgresBackend_RetriesExhaustedReturnsWriteConflict(t *testing.T) {
	ctx := context.Background()
	raw, _ := json.Marshal([]models.Entry{})
	pool := &fakeDocPool{exists: true, version: 1, raw: raw, alwaysConflict: true}
	b := newTestPostgresBackend(pool, 50)

	err := b.Add(ctx, models.ModeEndless, entryAt("loser", 5, time.Now()))
	if !errors.Is(err, ErrWriteConflict) {
		t.Fatalf("expected ErrWriteConflict, got %v", err)
	}
}

func TestPostgresBackend_TrimNoopWithinCapacity(t *testing.T) {
	ctx := context.Background()
	entries := []models.Entry{entryAt("a", 1, time.Now())}
	raw, _ := json.Marshal(entries)
	pool := &fakeDocPool{exists: true, version: 3, raw: raw}
	b := newTestPostgresBackend(pool, 50)

	if err := b.Trim(ctx, models.ModeSpeedSort, 50); err != nil {
		t.Fatalf("trim: %v", err)
	}
	if pool.version != 3 {
		t.Errorf("no-op trim must not commit, version went to %d", pool.version)
	}
}
