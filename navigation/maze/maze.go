/*
Package maze provides the grid model used by the floodfill navigator.

It defines cell positions, the four cardinal directions with their fixed
enumeration order, per-cell wall flags, the immutable ground truth `Maze`
and the agent's monotonically growing `KnownMaze`.

Mazes can be built with a `Layout`, decoded from YAML layout files, carved
with Wilson's algorithm, or taken from the bundled fixtures. Every
construction path validates that walls are mirrored on both sides.
*/
package maze

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const (
	maxMazeDimension = 64
)

var (
	ErrInvalidSize     = errors.New("invalid maze dimensions")
	ErrAsymmetricWall  = errors.New("wall is not mirrored on the neighboring cell")
	ErrMalformedLayout = errors.New("malformed maze layout")
	ErrMissingSide     = errors.New("wall has no side")
)

// CheckSize returns ErrInvalidSize unless 1 <= size <= 64.
func CheckSize(size int) error {
	if size <= 0 || size > maxMazeDimension {
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return nil
}

// Maze is the ground truth wall layout of a square grid. It is read-only once built.
type Maze struct {
	size  int       // Number of rows and columns
	walls [][]Walls // Wall flags indexed [row][col]
}

// New validates raw wall flags and freezes them into a Maze.
// The grid must be square, between 1 and 64 cells wide, and every interior
// wall must be set on both of the cells it separates.
func New(walls [][]Walls) (*Maze, error) {
	size := len(walls)
	if err := CheckSize(size); err != nil {
		return nil, err
	}
	for row, cells := range walls {
		if len(cells) != size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidSize, row, len(cells), size)
		}
	}

	m := &Maze{size: size, walls: copyWallGrid(walls)}
	if err := m.validateSymmetry(); err != nil {
		return nil, err
	}
	return m, nil
}

// validateSymmetry checks that each cell's flag toward a neighbor matches the neighbor's flag back.
func (m *Maze) validateSymmetry() error {
	for row := 0; row < m.size; row++ {
		for col := 0; col < m.size; col++ {
			p := Position{Row: row, Col: col}
			for _, d := range [2]Direction{Right, Down} {
				next := p.Step(d)
				if !next.InBound(m.size) {
					continue
				}
				if m.walls[p.Row][p.Col].Has(d) != m.walls[next.Row][next.Col].Has(d.Opposite()) {
					return fmt.Errorf("%w: %s %s vs %s %s", ErrAsymmetricWall, p, d, next, d.Opposite())
				}
			}
		}
	}
	return nil
}

// Size returns the number of rows (and columns) of the grid.
func (m *Maze) Size() int {
	return m.size
}

// InBound checks if the given row and column are inside the maze.
func (m *Maze) InBound(row, col int) bool {
	return Position{Row: row, Col: col}.InBound(m.size)
}

// HasWall reports whether side d of cell p is walled. Sides facing outside
// the grid are always walled, and so is every side of an out-of-bounds cell.
func (m *Maze) HasWall(p Position, d Direction) bool {
	if !p.InBound(m.size) || !d.Valid() {
		return true
	}
	if !p.Step(d).InBound(m.size) {
		return true
	}
	return m.walls[p.Row][p.Col].Has(d)
}

// CellWalls returns the flags of cell p including the implicit boundary walls.
func (m *Maze) CellWalls(p Position) (Walls, error) {
	if err := CheckBounds(p, m.size); err != nil {
		return 0, err
	}
	var w Walls
	for _, d := range Directions {
		if m.HasWall(p, d) {
			w = w.With(d)
		}
	}
	return w, nil
}

// IsValidMove checks if a single step from p toward d is open on both sides.
func (m *Maze) IsValidMove(p Position, d Direction) bool {
	return Passable(m, p, d)
}

// Digest returns a stable hex SHA-256 of the layout, boundary walls included.
func (m *Maze) Digest() string {
	h := sha256.New()
	h.Write([]byte{byte(m.size)})
	for row := 0; row < m.size; row++ {
		for col := 0; col < m.size; col++ {
			w, _ := m.CellWalls(Position{Row: row, Col: col})
			h.Write([]byte{byte(w)})
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	var sb strings.Builder

	// Top boundary
	sb.WriteString("+")
	for col := 0; col < m.size; col++ {
		if m.HasWall(Position{Row: 0, Col: col}, Up) {
			sb.WriteString("---+")
		} else {
			sb.WriteString("   +")
		}
	}
	sb.WriteString("\n")

	for row := 0; row < m.size; row++ {
		// Cell rows
		if m.HasWall(Position{Row: row, Col: 0}, Left) {
			sb.WriteString("|")
		} else {
			sb.WriteString(" ")
		}
		for col := 0; col < m.size; col++ {
			if m.HasWall(Position{Row: row, Col: col}, Right) {
				sb.WriteString("   |")
			} else {
				sb.WriteString("    ")
			}
		}
		sb.WriteString("\n")

		// Wall rows
		sb.WriteString("+")
		for col := 0; col < m.size; col++ {
			if m.HasWall(Position{Row: row, Col: col}, Down) {
				sb.WriteString("---+")
			} else {
				sb.WriteString("   +")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
