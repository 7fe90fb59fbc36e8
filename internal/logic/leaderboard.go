// Package logic holds the backend-agnostic leaderboard engine: submission
// validation, rank computation, and the coordinator that drives the
// validate → write → trim → rank pipeline against a store.Backend.
package logic

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sortrush/leaderboard-api/internal/models"
	"github.com/sortrush/leaderboard-api/internal/store"
)

// LeaderboardService is the surface the HTTP layer talks to.
type LeaderboardService interface {
	// Submit validates and persists one score, returning the stored entry
	// and its rank in the post-write snapshot. Submissions are synchronous
	// and never deduplicated: resubmitting an identical score creates a
	// second distinct entry.
	Submit(ctx context.Context, req models.SubmitRequest) (*models.SubmitResult, error)

	// Query returns the top entries of one board. A backend failure
	// degrades to an empty board rather than an error.
	Query(ctx context.Context, mode models.Mode, limit int) ([]models.RankedEntry, error)

	// Overview returns the top entries of every registered mode.
	Overview(ctx context.Context, limit int) ([]models.ModeBoard, error)
}

type leaderboardService struct {
	store      store.Backend
	maxEntries int
	logger     *zap.SugaredLogger
}

func NewLeaderboardService(backend store.Backend, maxEntries int, logger *zap.SugaredLogger) LeaderboardService {
	if maxEntries <= 0 {
		maxEntries = 50
	}
	return &leaderboardService{store: backend, maxEntries: maxEntries, logger: logger}
}

func (s *leaderboardService) Submit(ctx context.Context, req models.SubmitRequest) (*models.SubmitResult, error) {
	v, err := Validate(req)
	if err != nil {
		submissionsRejected.Inc()
		return nil, err
	}

	entry := models.Entry{
		ID:         uuid.NewString(),
		PlayerName: v.PlayerName,
		GameMode:   v.GameMode,
		Score:      v.Score,
		Date:       time.Now().UTC(),
	}

	// Mode write first; this is the commit point of the submission.
	if err := s.store.Add(ctx, entry.GameMode, entry); err != nil {
		submissionsFailed.Inc()
		return nil, fmt.Errorf("persist entry: %w", err)
	}

	// The aggregate write is deliberately independent: a failure here
	// leaves the mode board authoritative and is surfaced via metrics,
	// not rolled back.
	if err := s.store.Add(ctx, models.ModeAll, entry); err != nil {
		aggregateWriteFailures.Inc()
		s.logger.Warnw("Aggregate board write failed",
			"mode", entry.GameMode, "id", entry.ID, "error", err)
	}

	// Self-healing trims, one per touched board. A failed trim leaves a
	// transient overshoot that the next submission's trim repairs.
	g, gctx := errgroup.WithContext(ctx)
	for _, mode := range []models.Mode{entry.GameMode, models.ModeAll} {
		mode := mode
		g.Go(func() error {
			if err := s.store.Trim(gctx, mode, s.maxEntries); err != nil {
				s.logger.Warnw("Trim failed", "mode", mode, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	snapshot, err := s.store.Snapshot(ctx, entry.GameMode)
	if err != nil {
		submissionsFailed.Inc()
		return nil, fmt.Errorf("rank snapshot: %w", err)
	}

	submissionsAccepted.Inc()
	return &models.SubmitResult{Entry: entry, Rank: Rank(entry, snapshot)}, nil
}

func (s *leaderboardService) Query(ctx context.Context, mode models.Mode, limit int) ([]models.RankedEntry, error) {
	if !mode.IsQueryable() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownMode, mode)
	}
	if limit <= 0 || limit > s.maxEntries {
		limit = s.maxEntries
	}

	snapshot, err := s.store.Snapshot(ctx, mode)
	if err != nil {
		// Leaderboards are informational; an unreachable store degrades
		// to an empty board instead of failing the page.
		degradedQueries.Inc()
		s.logger.Errorw("Leaderboard query degraded to empty board", "mode", mode, "error", err)
		return []models.RankedEntry{}, nil
	}

	if len(snapshot) > limit {
		snapshot = snapshot[:limit]
	}
	ranked := make([]models.RankedEntry, len(snapshot))
	for i, e := range snapshot {
		ranked[i] = models.RankedEntry{
			PlayerName: e.PlayerName,
			Score:      e.Score,
			Date:       e.Date,
			Rank:       i + 1,
		}
	}
	return ranked, nil
}

func (s *leaderboardService) Overview(ctx context.Context, limit int) ([]models.ModeBoard, error) {
	modes := models.SubmitModes()
	boards := make([]models.ModeBoard, len(modes))

	g, gctx := errgroup.WithContext(ctx)
	for i, mode := range modes {
		i, mode := i, mode
		g.Go(func() error {
			entries, err := s.Query(gctx, mode, limit)
			if err != nil {
				return err
			}
			boards[i] = models.ModeBoard{GameMode: mode, Entries: entries}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return boards, nil
}
