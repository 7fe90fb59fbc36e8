package store

import (
	"context"
	"sync"

	"github.com/sortrush/leaderboard-api/internal/models"
)

// MemoryBackend is an in-process Backend used by tests and local
// development. It mirrors the atomic-collection semantics: Add never caps,
// so a collection can transiently overshoot until Trim runs.
type MemoryBackend struct {
	mu     sync.Mutex
	boards map[models.Mode][]models.Entry
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{boards: make(map[models.Mode][]models.Entry)}
}

func (b *MemoryBackend) Add(ctx context.Context, mode models.Mode, e models.Entry) error {
	if err := ctx.Err(); err != nil {
		return wrapTimeout("memory add", err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.boards[mode] = append(b.boards[mode], e)
	return nil
}

func (b *MemoryBackend) Snapshot(ctx context.Context, mode models.Mode) ([]models.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapTimeout("memory snapshot", err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	entries := make([]models.Entry, len(b.boards[mode]))
	copy(entries, b.boards[mode])
	SortEntries(entries)
	return entries, nil
}

func (b *MemoryBackend) Trim(ctx context.Context, mode models.Mode, maxSize int) error {
	if err := ctx.Err(); err != nil {
		return wrapTimeout("memory trim", err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.boards[mode]) > maxSize {
		b.boards[mode] = Retain(b.boards[mode], maxSize)
	}
	return nil
}

func (b *MemoryBackend) Ping(ctx context.Context) error { return nil }

func (b *MemoryBackend) Close() error { return nil }
