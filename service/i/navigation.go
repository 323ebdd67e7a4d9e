package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-floodfill/domain"
	"github.com/google/uuid"
)

// Navigation runs and retrieves navigation runs.
type Navigation interface {
	// Solve runs the request. An unsolvable run is returned together with an
	// error wrapping navigator.ErrUnsolvable.
	Solve(ctx context.Context, req dmn.SolveRequest) (*dmn.Run, error)
	Run(ctx context.Context, id uuid.UUID) (*dmn.Run, error)
	Runs(ctx context.Context, operatorID uuid.UUID, limit int64) ([]*dmn.Run, error)
}
