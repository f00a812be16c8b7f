package admission

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	rdb *redis.Client
}

// NewRedisStore returns a Redis-backed bucket store so multiple server
// instances share one limit per client. A counter keyed per client expires a
// full window after the first request in that window, which preserves the
// reset-not-accumulate refill semantics of the memory store.
func NewRedisStore(rdb *redis.Client) Store {
	return &redisStore{rdb: rdb}
}

func (s *redisStore) Acquire(ctx context.Context, id string, capacity int, window time.Duration, _ time.Time) (bool, error) {
	key := buildBucketKey(id)

	count, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("admission: redis incr: %w", err)
	}
	if count == 1 {
		if err := s.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("admission: redis expire: %w", err)
		}
	}
	return count <= int64(capacity), nil
}

func buildBucketKey(id string) string {
	return "admission:" + id
}
