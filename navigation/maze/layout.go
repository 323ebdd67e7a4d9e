package maze

import "fmt"

// Layout is a mutable builder for a Maze. It starts with only the outer
// boundary walled and mirrors every wall it adds onto the neighboring cell.
type Layout struct {
	size  int
	walls [][]Walls
}

// NewLayout creates a size×size layout with boundary walls and no interior walls.
func NewLayout(size int) (*Layout, error) {
	if err := CheckSize(size); err != nil {
		return nil, err
	}

	l := &Layout{size: size, walls: newWallGrid(size)}
	for i := 0; i < size; i++ {
		l.walls[0][i] = l.walls[0][i].With(Up)
		l.walls[size-1][i] = l.walls[size-1][i].With(Down)
		l.walls[i][0] = l.walls[i][0].With(Left)
		l.walls[i][size-1] = l.walls[i][size-1].With(Right)
	}
	return l, nil
}

// Size returns the number of rows (and columns) of the layout.
func (l *Layout) Size() int {
	return l.size
}

// AddWall puts a wall on side d of p and on the facing side of its neighbor.
func (l *Layout) AddWall(p Position, d Direction) error {
	return l.setWall(p, d, true)
}

// RemoveWall opens side d of p and the facing side of its neighbor.
// Boundary walls cannot be removed.
func (l *Layout) RemoveWall(p Position, d Direction) error {
	return l.setWall(p, d, false)
}

func (l *Layout) setWall(p Position, d Direction, present bool) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}
	if err := CheckBounds(p, l.size); err != nil {
		return err
	}

	next := p.Step(d)
	if !next.InBound(l.size) {
		if !present {
			return fmt.Errorf("%w: cannot open boundary wall %s %s", ErrMalformedLayout, p, d)
		}
		return nil
	}

	if present {
		l.walls[p.Row][p.Col] = l.walls[p.Row][p.Col].With(d)
		l.walls[next.Row][next.Col] = l.walls[next.Row][next.Col].With(d.Opposite())
	} else {
		l.walls[p.Row][p.Col] = l.walls[p.Row][p.Col].Without(d)
		l.walls[next.Row][next.Col] = l.walls[next.Row][next.Col].Without(d.Opposite())
	}
	return nil
}

// HasWall reports the current flag on side d of p; out-of-bounds cells count as walled.
func (l *Layout) HasWall(p Position, d Direction) bool {
	if !p.InBound(l.size) || !d.Valid() {
		return true
	}
	return l.walls[p.Row][p.Col].Has(d)
}

// Build validates the layout and returns an immutable Maze.
func (l *Layout) Build() (*Maze, error) {
	return New(l.walls)
}
