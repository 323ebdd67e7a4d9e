package navigator

import (
	"github.com/beka-birhanu/vinom-floodfill/navigation/floodfill"
	"github.com/beka-birhanu/vinom-floodfill/navigation/maze"
)

// Result is the report of a navigation run.
type Result struct {
	State     State
	Path      []maze.Position // Visited cells in order; the goal cell is last on arrival
	Commands  []Command       // One relative command per move
	Moves     int
	Replans   int
	Ticks     int
	Heading   maze.Direction         // Heading after the last move
	Distances *floodfill.DistanceMap // Last computed distance map
	Known     [][]maze.Walls         // Walls observed during the run
	Err       error                  // Cause when State is Unsolvable
}

// Arrived reports whether the run reached the goal set.
func (r *Result) Arrived() bool {
	return r.State == Arrived
}

// Last returns the final cell of the path, or false for an empty path.
func (r *Result) Last() (maze.Position, bool) {
	if len(r.Path) == 0 {
		return maze.Position{}, false
	}
	return r.Path[len(r.Path)-1], true
}
