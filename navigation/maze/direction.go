package maze

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidMove      = errors.New("invalid move: delta is not a unit cardinal vector")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrOutOfBounds      = errors.New("position out of bounds")
)

// Direction is one of the four cardinal sides of a cell.
// The numeric values are fixed: they index wall flags and drive turn arithmetic.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists every direction in enumeration order.
// Search and selection always walk the sides in this order.
var Directions = [4]Direction{Up, Right, Down, Left}

var (
	deltas = [4]Position{
		Up:    {Row: -1, Col: 0},
		Right: {Row: 0, Col: 1},
		Down:  {Row: 1, Col: 0},
		Left:  {Row: 0, Col: -1},
	}
	directionNames = [4]string{"up", "right", "down", "left"}
)

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Left
}

// Opposite returns the side facing d, (d+2) mod 4.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the unit coordinate offset of a step in direction d.
func (d Direction) Delta() Position {
	return deltas[d]
}

// String returns the lower case name of the direction.
func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection converts a direction name (up, right, down, left, or the
// compass aliases north, east, south, west) into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "north", "n", "u":
		return Up, nil
	case "right", "east", "e", "r":
		return Right, nil
	case "down", "south", "s", "d":
		return Down, nil
	case "left", "west", "w", "l":
		return Left, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// DirectionOf matches a coordinate delta against the four unit vectors.
// Any other delta, including the zero delta, is an ErrInvalidMove.
func DirectionOf(delta Position) (Direction, error) {
	for _, d := range Directions {
		if deltas[d] == delta {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: (%d,%d)", ErrInvalidMove, delta.Row, delta.Col)
}

// Position represents the coordinates of a cell in the grid.
type Position struct {
	Row int `json:"row" yaml:"row" bson:"row"` // Row index of the cell
	Col int `json:"col" yaml:"col" bson:"col"` // Column index of the cell
}

// Step returns the neighboring position in direction d. The result may lie outside the grid.
func (p Position) Step(d Direction) Position {
	delta := d.Delta()
	return Position{Row: p.Row + delta.Row, Col: p.Col + delta.Col}
}

// Sub returns the coordinate delta from o to p.
func (p Position) Sub(o Position) Position {
	return Position{Row: p.Row - o.Row, Col: p.Col - o.Col}
}

// InBound reports whether p lies inside a size×size grid.
func (p Position) InBound(size int) bool {
	return p.Row >= 0 && p.Row < size && p.Col >= 0 && p.Col < size
}

// String formats the position as (row,col).
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// CheckBounds returns ErrOutOfBounds when p lies outside a size×size grid.
func CheckBounds(p Position, size int) error {
	if !p.InBound(size) {
		return fmt.Errorf("%w: %s in %dx%d grid", ErrOutOfBounds, p, size, size)
	}
	return nil
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name, see ParseDirection.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
