package generations

import (
	"context"
	"sync"
)

type memoryRepo struct {
	mu      sync.RWMutex
	records map[string]Record
	order   []string
}

// NewMemoryRepo returns an in-process Repo used when no database is
// configured.
func NewMemoryRepo() Repo {
	return &memoryRepo{records: make(map[string]Record)}
}

func (r *memoryRepo) Insert(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.records[rec.ID]; !exists {
		r.order = append(r.order, rec.ID)
	}
	r.records[rec.ID] = rec
	return nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *memoryRepo) List(ctx context.Context, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Record, 0, limit)
	// Newest first.
	for i := len(r.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.records[r.order[i]])
	}
	return out, nil
}
