package maze

import "fmt"

// KnownMaze records the walls an agent has actually observed. It starts
// with no walls at all and only ever gains flags: a flag once set is never cleared.
type KnownMaze struct {
	size    int
	walls   [][]Walls
	version int // Incremented whenever a previously unknown flag is set
}

// NewKnownMaze creates an empty knowledge grid of the given size.
func NewKnownMaze(size int) (*KnownMaze, error) {
	if err := CheckSize(size); err != nil {
		return nil, err
	}
	return &KnownMaze{size: size, walls: newWallGrid(size)}, nil
}

// Size returns the number of rows (and columns) of the grid.
func (k *KnownMaze) Size() int {
	return k.size
}

// HasWall reports whether side d of p is known to be walled.
// Unknown sides read as open; out-of-bounds cells read as walled.
func (k *KnownMaze) HasWall(p Position, d Direction) bool {
	if !p.InBound(k.size) || !d.Valid() {
		return true
	}
	return k.walls[p.Row][p.Col].Has(d)
}

// Version increases every time the knowledge grows. Two equal versions mean
// nothing was learned in between.
func (k *KnownMaze) Version() int {
	return k.version
}

// Record marks side d of p as walled and mirrors the flag on the in-bounds
// neighbor. It returns the number of flags that were not known before.
func (k *KnownMaze) Record(p Position, d Direction) (int, error) {
	if !d.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}
	if err := CheckBounds(p, k.size); err != nil {
		return 0, err
	}

	learned := k.set(p, d)
	if next := p.Step(d); next.InBound(k.size) {
		learned += k.set(next, d.Opposite())
	}
	if learned > 0 {
		k.version++
	}
	return learned, nil
}

func (k *KnownMaze) set(p Position, d Direction) int {
	if k.walls[p.Row][p.Col].Has(d) {
		return 0
	}
	k.walls[p.Row][p.Col] = k.walls[p.Row][p.Col].With(d)
	return 1
}

// Sense queries the oracle for all four sides of p and merges every true
// wall into the knowledge grid. It returns the number of newly learned flags.
func (k *KnownMaze) Sense(oracle WallOracle, p Position) (int, error) {
	if oracle.Size() != k.size {
		return 0, fmt.Errorf("%w: oracle is %d wide, knowledge is %d", ErrInvalidSize, oracle.Size(), k.size)
	}
	if err := CheckBounds(p, k.size); err != nil {
		return 0, err
	}

	learned := 0
	for _, d := range Directions {
		if !oracle.HasWall(p, d) {
			continue
		}
		n, err := k.Record(p, d)
		if err != nil {
			return learned, err
		}
		learned += n
	}
	return learned, nil
}

// Snapshot returns a deep copy of the known flags indexed [row][col].
func (k *KnownMaze) Snapshot() [][]Walls {
	return copyWallGrid(k.walls)
}

// Count returns the total number of known wall flags.
func (k *KnownMaze) Count() int {
	n := 0
	for _, cells := range k.walls {
		for _, w := range cells {
			n += w.Count()
		}
	}
	return n
}

// Covers reports whether every flag of other is also known here.
func Covers(known, other [][]Walls) bool {
	if len(known) != len(other) {
		return false
	}
	for row := range other {
		if len(known[row]) != len(other[row]) {
			return false
		}
		for col := range other[row] {
			if !known[row][col].Covers(other[row][col]) {
				return false
			}
		}
	}
	return true
}
