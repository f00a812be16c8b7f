package generations

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no record exists for an id.
var ErrNotFound = errors.New("generation not found")

// Repo stores generation run traces.
type Repo interface {
	Insert(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, id string) (Record, error)
	List(ctx context.Context, limit int) ([]Record, error)
}
