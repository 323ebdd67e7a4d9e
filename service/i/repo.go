package i

import (
	"context"
	"errors"

	dmn "github.com/beka-birhanu/vinom-floodfill/domain"
	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// OperatorRepo defines the interface for operator persistence operations.
type OperatorRepo interface {
	// Save inserts or updates an operator in the repository.
	// If the operator already exists, it updates the record. Otherwise, it creates a new one.
	Save(operator *dmn.Operator) error

	// ByID retrieves an operator by their unique ID.
	// Returns ErrNotFound if there is no such operator.
	ByID(id uuid.UUID) (*dmn.Operator, error)

	// ByUsername retrieves an operator by their username.
	// Returns ErrNotFound if there is no such operator.
	ByUsername(username string) (*dmn.Operator, error)
}

// RunRepo stores navigation run reports.
type RunRepo interface {
	// Save inserts or replaces a run.
	Save(ctx context.Context, run *dmn.Run) error

	// ByID returns ErrNotFound for unknown IDs.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Run, error)

	// ByOperator lists an operator's runs, newest first, at most limit of them.
	ByOperator(ctx context.Context, operatorID uuid.UUID, limit int64) ([]*dmn.Run, error)
}
