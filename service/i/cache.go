package i

import (
	"context"
	"errors"

	dmn "github.com/beka-birhanu/vinom-floodfill/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// RunCache keeps finished runs keyed by everything that determines their outcome.
type RunCache interface {
	// Get returns ErrCacheMiss when nothing is stored under key.
	Get(ctx context.Context, key string) (*dmn.Run, error)
	Set(ctx context.Context, key string, run *dmn.Run) error

	// Lock serializes work on key across processes. The returned func releases it.
	Lock(ctx context.Context, key string) (func(), error)
}
