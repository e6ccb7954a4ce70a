// Package store persists the small amount of state that outlives a session:
// key bindings, the high score and a log of finished games.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("store: key not found")

// KV is a flat key-value namespace.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Result is the record of a finished game.
type Result struct {
	ID            int64
	Mode          string
	Outcome       string
	Score         int
	LayersCleared int
	Level         int
	PiecesPlaced  int
	Ticks         uint64
	CreatedAt     time.Time
}

// Results keeps finished games.
type Results interface {
	RecordResult(ctx context.Context, r Result) (int64, error)
	TopResults(ctx context.Context, limit int) ([]Result, error)
}

type Store interface {
	KV
	Results
	Close() error
}

// Open returns the store for driver, which is "sqlite" or "memory".
func Open(driver, path string) (Store, error) {
	switch driver {
	case "sqlite":
		return OpenSQLite(path)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown driver %q", driver)
	}
}
