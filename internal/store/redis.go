package store

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sortrush/leaderboard-api/internal/models"
)

// RedisBackend persists each mode as a sorted set plus a companion hash of
// entry payloads. ZADD and member-wise ZREM are each atomic, which gives
// the atomic-collection semantics: adds never lose entries, and a trailing
// Trim converges the set back under capacity after a concurrent burst.
type RedisBackend struct {
	client  *redis.Client
	timeout time.Duration
	logger  *zap.SugaredLogger
}

func NewRedisBackend(client *redis.Client, timeout time.Duration, logger *zap.SugaredLogger) *RedisBackend {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RedisBackend{client: client, timeout: timeout, logger: logger}
}

func zsetKey(mode models.Mode) string { return "lb:z:" + string(mode) }
func hashKey(mode models.Mode) string { return "lb:h:" + string(mode) }

// zMember encodes the sorted-set member so Redis orders ties correctly.
// Equal-score members come back reverse-lexicographically from ZREVRANGE,
// so the timestamp is inverted: earlier submissions produce larger hex
// prefixes and therefore rank first among equal scores.
func zMember(e models.Entry) string {
	inverted := uint64(math.MaxInt64 - e.Date.UnixNano())
	return fmt.Sprintf("%016x:%s", inverted, e.ID)
}

// memberID extracts the entry ID from an encoded member.
func memberID(member string) string {
	if len(member) <= 17 {
		return ""
	}
	return member[17:]
}

func (b *RedisBackend) Add(ctx context.Context, mode models.Mode, e models.Entry) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	start := time.Now()
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("redis add: marshal entry: %w", err)
	}

	pipe := b.client.TxPipeline()
	pipe.ZAdd(ctx, zsetKey(mode), redis.Z{Score: float64(e.Score), Member: zMember(e)})
	pipe.HSet(ctx, hashKey(mode), e.ID, payload)
	if _, err := pipe.Exec(ctx); err != nil {
		storeOpFailures.Inc()
		return wrapTimeout("redis add", err)
	}
	storeOpDuration.Observe(time.Since(start).Seconds())
	return nil
}

func (b *RedisBackend) Snapshot(ctx context.Context, mode models.Mode) ([]models.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	start := time.Now()
	members, err := b.client.ZRevRange(ctx, zsetKey(mode), 0, -1).Result()
	if err != nil {
		storeOpFailures.Inc()
		return nil, wrapTimeout("redis snapshot", err)
	}
	if len(members) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		if id := memberID(m); id != "" {
			ids = append(ids, id)
		}
	}

	payloads, err := b.client.HMGet(ctx, hashKey(mode), ids...).Result()
	if err != nil {
		storeOpFailures.Inc()
		return nil, wrapTimeout("redis snapshot", err)
	}

	entries := make([]models.Entry, 0, len(payloads))
	for i, raw := range payloads {
		s, ok := raw.(string)
		if !ok {
			// Payload already evicted by a concurrent trim; the set member
			// will be cleaned up on the next trim pass.
			continue
		}
		var e models.Entry
		if err := json.Unmarshal([]byte(s), &e); err != nil {
			b.logger.Warnw("Skipping undecodable leaderboard payload",
				"mode", mode, "id", ids[i], "error", err)
			continue
		}
		entries = append(entries, e)
	}

	SortEntries(entries)
	storeOpDuration.Observe(time.Since(start).Seconds())
	return entries, nil
}

func (b *RedisBackend) Trim(ctx context.Context, mode models.Mode, maxSize int) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	start := time.Now()
	// Everything below the top maxSize ranks. Negative stop keeps this a
	// no-op when the set is already within capacity.
	evicted, err := b.client.ZRange(ctx, zsetKey(mode), 0, int64(-(maxSize + 1))).Result()
	if err != nil {
		storeOpFailures.Inc()
		return wrapTimeout("redis trim", err)
	}
	if len(evicted) == 0 {
		return nil
	}

	members := make([]interface{}, len(evicted))
	ids := make([]string, 0, len(evicted))
	for i, m := range evicted {
		members[i] = m
		if id := memberID(m); id != "" {
			ids = append(ids, id)
		}
	}

	pipe := b.client.TxPipeline()
	pipe.ZRem(ctx, zsetKey(mode), members...)
	if len(ids) > 0 {
		pipe.HDel(ctx, hashKey(mode), ids...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		storeOpFailures.Inc()
		return wrapTimeout("redis trim", err)
	}

	b.logger.Debugw("Trimmed leaderboard", "mode", mode, "evicted", len(evicted))
	storeOpDuration.Observe(time.Since(start).Seconds())
	return nil
}

func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}
