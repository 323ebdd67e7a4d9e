package domain

import (
	"github.com/beka-birhanu/vinom-floodfill/navigation/maze"
	"github.com/google/uuid"
)

// MazeSource names where the ground-truth maze of a run comes from.
type MazeSource string

const (
	SourceClassic   MazeSource = "classic"   // the 8x8 fixture
	SourceOpen      MazeSource = "open"      // boundary walls only
	SourceGenerated MazeSource = "generated" // Wilson maze from Size and Seed
	SourceLayout    MazeSource = "layout"    // caller supplied Walls
)

// SolveRequest asks for one navigation run. Zero values fall back to the
// service defaults: nil Start and Heading, empty Goals, zero Size.
type SolveRequest struct {
	OperatorID uuid.UUID
	Source     MazeSource
	Size       int
	Seed       int64
	Walls      []maze.Wall // Each wall is set on both cells it separates
	Start      *maze.Position
	Goals      []maze.Position
	Heading    *maze.Direction
	MaxReplans int
}
