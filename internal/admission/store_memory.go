package admission

import (
	"context"
	"sync"
	"time"
)

type rateBucket struct {
	tokens     int
	lastRefill time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	buckets map[string]*rateBucket
}

// NewMemoryStore returns the in-process bucket store. Buckets are created
// lazily per client and never evicted; the number of distinct clients bounds
// its memory.
func NewMemoryStore() Store {
	return &memoryStore{buckets: make(map[string]*rateBucket)}
}

func (s *memoryStore) Acquire(ctx context.Context, id string, capacity int, window time.Duration, now time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.buckets[id]
	if !ok {
		bucket = &rateBucket{tokens: capacity, lastRefill: now}
		s.buckets[id] = bucket
	}
	// Saturating reset once per window, not incremental leak. The window is
	// coarse enough that the simpler semantics hold up.
	if now.Sub(bucket.lastRefill) >= window {
		bucket.tokens = capacity
		bucket.lastRefill = now
	}
	if bucket.tokens > 0 {
		bucket.tokens--
		return true, nil
	}
	return false, nil
}
