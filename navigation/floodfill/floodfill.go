// Package floodfill computes multi-source breadth-first distance maps over a
// wall graph. Unknown walls are whatever the graph says they are: run it on a
// partially observed maze and the distances are optimistic.
package floodfill

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/beka-birhanu/vinom-floodfill/navigation/maze"
)

// Unreached marks a cell with no known path to any goal.
const Unreached = -1

var (
	ErrNoGoals = errors.New("goal set is empty")
)

// DistanceMap holds, for every cell, the number of edge traversals to the
// nearest goal under the wall graph it was computed from.
type DistanceMap struct {
	size  int
	dist  [][]int
	goals []maze.Position
}

// Compute seeds every goal with distance 0 and expands in FIFO order,
// visiting neighbors Up, Right, Down, Left. A step is taken only when it
// stays in bounds and neither the cell's wall nor the neighbor's facing wall is set.
func Compute(graph maze.WallOracle, goals []maze.Position) (*DistanceMap, error) {
	if len(goals) == 0 {
		return nil, ErrNoGoals
	}

	size := graph.Size()
	dm := &DistanceMap{
		size:  size,
		dist:  make([][]int, size),
		goals: append([]maze.Position(nil), goals...),
	}
	for row := range dm.dist {
		dm.dist[row] = make([]int, size)
		for col := range dm.dist[row] {
			dm.dist[row][col] = Unreached
		}
	}

	queue := make([]maze.Position, 0, size*size)
	for _, g := range goals {
		if err := maze.CheckBounds(g, size); err != nil {
			return nil, fmt.Errorf("goal %s: %w", g, err)
		}
		if dm.dist[g.Row][g.Col] == 0 {
			continue
		}
		dm.dist[g.Row][g.Col] = 0
		queue = append(queue, g)
	}

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for _, d := range maze.Directions {
			next := cur.Step(d)
			if !next.InBound(size) || dm.dist[next.Row][next.Col] != Unreached {
				continue
			}
			if graph.HasWall(cur, d) || graph.HasWall(next, d.Opposite()) {
				continue
			}
			dm.dist[next.Row][next.Col] = dm.dist[cur.Row][cur.Col] + 1
			queue = append(queue, next)
		}
	}

	return dm, nil
}

// Size returns the number of rows (and columns) of the map.
func (dm *DistanceMap) Size() int {
	return dm.size
}

// At returns the distance of p, or Unreached for unreachable and out-of-bounds cells.
func (dm *DistanceMap) At(p maze.Position) int {
	if !p.InBound(dm.size) {
		return Unreached
	}
	return dm.dist[p.Row][p.Col]
}

// Reachable reports whether p has a finite distance.
func (dm *DistanceMap) Reachable(p maze.Position) bool {
	return dm.At(p) != Unreached
}

// IsGoal reports whether p is at distance 0.
func (dm *DistanceMap) IsGoal(p maze.Position) bool {
	return dm.At(p) == 0
}

// Goals returns a copy of the goal set the map was seeded with.
func (dm *DistanceMap) Goals() []maze.Position {
	return append([]maze.Position(nil), dm.goals...)
}

// Rows returns a deep copy of the distances indexed [row][col].
func (dm *DistanceMap) Rows() [][]int {
	rows := make([][]int, dm.size)
	for i := range dm.dist {
		rows[i] = append([]int(nil), dm.dist[i]...)
	}
	return rows
}

// String renders the distances row-major, one line per row, each value followed by a comma.
func (dm *DistanceMap) String() string {
	var sb strings.Builder
	for _, row := range dm.dist {
		for _, v := range row {
			sb.WriteString(strconv.Itoa(v))
			sb.WriteByte(',')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Verify checks the map against graph: goals are 0, every other finite value
// is one more than its smallest passable neighbor, and Unreached cells have no
// finite passable neighbor.
func (dm *DistanceMap) Verify(graph maze.WallOracle) error {
	if graph.Size() != dm.size {
		return fmt.Errorf("distance map is %d wide, graph is %d", dm.size, graph.Size())
	}
	isGoal := make(map[maze.Position]bool, len(dm.goals))
	for _, g := range dm.goals {
		isGoal[g] = true
	}

	for row := 0; row < dm.size; row++ {
		for col := 0; col < dm.size; col++ {
			p := maze.Position{Row: row, Col: col}
			v := dm.dist[row][col]
			if isGoal[p] {
				if v != 0 {
					return fmt.Errorf("goal %s has distance %d", p, v)
				}
				continue
			}

			best := Unreached
			for _, d := range maze.Directions {
				if !maze.Passable(graph, p, d) {
					continue
				}
				if nv := dm.At(p.Step(d)); nv != Unreached && (best == Unreached || nv < best) {
					best = nv
				}
			}
			switch {
			case v == Unreached && best != Unreached:
				return fmt.Errorf("cell %s is unreached but borders distance %d", p, best)
			case v != Unreached && (best == Unreached || v != best+1):
				return fmt.Errorf("cell %s has distance %d, want %d", p, v, best+1)
			}
		}
	}
	return nil
}
