// Package admission bounds the rate of expensive generation calls per
// client with a token bucket that fully replenishes once per window.
package admission

import (
	"context"
	"strings"
	"time"
)

const (
	// UnknownClient is the shared bucket for requests that carry no
	// forwarded-for header. Callers behind a non-forwarding proxy all land
	// here; this is a known, accepted coarsening.
	UnknownClient = "unknown"

	defaultCapacity = 12
	defaultWindow   = time.Minute
)

// Config controls bucket capacity, the refill window, and the clock.
type Config struct {
	Capacity int
	Window   time.Duration
	Now      func() time.Time
}

// Store holds the per-client buckets. The memory store is the default; a
// Redis-backed store shares limits across server instances.
type Store interface {
	Acquire(ctx context.Context, id string, capacity int, window time.Duration, now time.Time) (bool, error)
}

// Controller gates requests per client identifier.
type Controller struct {
	cfg   Config
	store Store
}

// NewController constructs a Controller, filling in defaults for zero-value
// config fields.
func NewController(cfg Config, store Store) *Controller {
	if cfg.Capacity <= 0 {
		cfg.Capacity = defaultCapacity
	}
	if cfg.Window <= 0 {
		cfg.Window = defaultWindow
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if store == nil {
		store = NewMemoryStore()
	}
	return &Controller{cfg: cfg, store: store}
}

// TryAcquire consumes one token from the client's bucket. It reports false
// when the client has exhausted its window quota. Rejection has no side
// effects beyond the lazily created bucket entry.
func (c *Controller) TryAcquire(ctx context.Context, id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		id = UnknownClient
	}
	return c.store.Acquire(ctx, id, c.cfg.Capacity, c.cfg.Window, c.cfg.Now())
}

// Window reports the configured refill window.
func (c *Controller) Window() time.Duration {
	return c.cfg.Window
}

// ClientID derives the client identifier from a forwarded-for header value:
// the first entry, or the shared unknown bucket when absent.
func ClientID(forwardedFor string) string {
	first := forwardedFor
	if i := strings.Index(forwardedFor, ","); i >= 0 {
		first = forwardedFor[:i]
	}
	first = strings.TrimSpace(first)
	if first == "" {
		return UnknownClient
	}
	return first
}
