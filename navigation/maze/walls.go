package maze

import (
	"fmt"
	"strings"
)

// Walls is the set of wall flags of a single cell, one bit per Direction.
type Walls uint8

// Has reports whether the wall on side d is present.
func (w Walls) Has(d Direction) bool {
	return w&(1<<uint(d)) != 0
}

// With returns w with the wall on side d set.
func (w Walls) With(d Direction) Walls {
	return w | 1<<uint(d)
}

// Without returns w with the wall on side d cleared.
func (w Walls) Without(d Direction) Walls {
	return w &^ (1 << uint(d))
}

// Covers reports whether every flag set in o is also set in w.
func (w Walls) Covers(o Walls) bool {
	return w&o == o
}

// Count returns the number of walls present.
func (w Walls) Count() int {
	n := 0
	for _, d := range Directions {
		if w.Has(d) {
			n++
		}
	}
	return n
}

// String formats the flags in Up, Right, Down, Left order, e.g. (1,0,0,1).
func (w Walls) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, d := range Directions {
		if i > 0 {
			sb.WriteByte(',')
		}
		if w.Has(d) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

// WallOracle answers "is there a wall on side d of cell p?" for a square grid.
// Both the ground truth Maze and an agent's KnownMaze implement it.
type WallOracle interface {
	Size() int
	HasWall(p Position, d Direction) bool
}

// Passable reports whether a step from p in direction d stays inside the grid
// and is blocked by neither p's wall nor the neighbor's facing wall.
func Passable(g WallOracle, p Position, d Direction) bool {
	next := p.Step(d)
	if !p.InBound(g.Size()) || !next.InBound(g.Size()) {
		return false
	}
	return !g.HasWall(p, d) && !g.HasWall(next, d.Opposite())
}

// FormatWalls renders the wall flags of g as a row-major table, one line per row.
func FormatWalls(g WallOracle) string {
	size := g.Size()
	grid := newWallGrid(size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			p := Position{Row: row, Col: col}
			for _, d := range Directions {
				if g.HasWall(p, d) {
					grid[row][col] = grid[row][col].With(d)
				}
			}
		}
	}
	return FormatWallGrid(grid)
}

// FormatWallGrid renders raw flags as FormatWalls does, without implying boundary walls.
func FormatWallGrid(grid [][]Walls) string {
	var sb strings.Builder
	for _, cells := range grid {
		for _, w := range cells {
			fmt.Fprintf(&sb, "%s,", w)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func newWallGrid(size int) [][]Walls {
	grid := make([][]Walls, size)
	for i := range grid {
		grid[i] = make([]Walls, size)
	}
	return grid
}

func copyWallGrid(src [][]Walls) [][]Walls {
	dst := make([][]Walls, len(src))
	for i := range src {
		dst[i] = append([]Walls(nil), src[i]...)
	}
	return dst
}
