package maze

import (
	"encoding/json"
	"fmt"
)

// Wall names one wall by the cell and the side it was authored on.
type Wall struct {
	Row  int       `json:"row" yaml:"row" bson:"row"`
	Col  int       `json:"col" yaml:"col" bson:"col"`
	Side Direction `json:"side" yaml:"side" bson:"side"`
}

// UnmarshalJSON decodes a wall object. The side must be given explicitly.
func (w *Wall) UnmarshalJSON(data []byte) error {
	var raw struct {
		Row  int        `json:"row"`
		Col  int        `json:"col"`
		Side *Direction `json:"side"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Side == nil {
		return fmt.Errorf("%w: (%d,%d)", ErrMissingSide, raw.Row, raw.Col)
	}
	*w = Wall{Row: raw.Row, Col: raw.Col, Side: *raw.Side}
	return nil
}

// classicWalls is the interior of the original 8x8 test maze. Boundary walls are implicit.
var classicWalls = []Wall{
	{0, 0, Down}, {0, 2, Down}, {0, 3, Right}, {0, 5, Down}, {0, 6, Down},
	{1, 1, Right}, {1, 1, Down}, {1, 2, Right}, {1, 3, Down}, {1, 4, Down}, {1, 5, Right}, {1, 6, Down},
	{2, 0, Right}, {2, 1, Right}, {2, 3, Down}, {2, 4, Right}, {2, 5, Right}, {2, 6, Right},
	{3, 1, Right}, {3, 1, Down}, {3, 2, Right}, {3, 4, Right}, {3, 5, Right}, {3, 5, Down}, {3, 6, Right},
	{4, 0, Down}, {4, 1, Down}, {4, 2, Right}, {4, 3, Down}, {4, 4, Right}, {4, 4, Down}, {4, 6, Right}, {4, 6, Down},
	{5, 1, Right}, {5, 3, Right}, {5, 3, Down}, {5, 5, Down}, {5, 6, Right},
	{6, 0, Right}, {6, 1, Right}, {6, 2, Right}, {6, 2, Down}, {6, 4, Right}, {6, 4, Down}, {6, 6, Right}, {6, 6, Down},
	{7, 0, Right}, {7, 3, Right},
}

const classicSize = 8

// Classic returns the 8x8 maze the solver was first exercised on.
func Classic() *Maze {
	m, err := FromWalls(classicSize, classicWalls)
	if err != nil {
		panic("maze: classic fixture is invalid: " + err.Error())
	}
	return m
}

// ClassicStart is the starting corner used with the classic fixture.
func ClassicStart() Position {
	return Position{Row: 7, Col: 0}
}

// ClassicGoals is the 2x2 center region of the classic fixture.
func ClassicGoals() []Position {
	return []Position{{Row: 3, Col: 3}, {Row: 3, Col: 4}, {Row: 4, Col: 3}, {Row: 4, Col: 4}}
}

// Open returns a size×size maze with only the boundary walled.
func Open(size int) (*Maze, error) {
	return FromWalls(size, nil)
}

// FromWalls builds a maze from a list of walls, each set on both sides.
func FromWalls(size int, walls []Wall) (*Maze, error) {
	layout, err := NewLayout(size)
	if err != nil {
		return nil, err
	}
	for _, w := range walls {
		if err := layout.AddWall(Position{Row: w.Row, Col: w.Col}, w.Side); err != nil {
			return nil, err
		}
	}
	return layout.Build()
}

// CenterGoals returns the center of a size×size grid: the 2x2 block for
// even sizes, the single middle cell for odd ones.
func CenterGoals(size int) []Position {
	if size <= 0 {
		return nil
	}
	mid := size / 2
	if size%2 == 1 {
		return []Position{{Row: mid, Col: mid}}
	}
	return []Position{{Row: mid - 1, Col: mid - 1}, {Row: mid - 1, Col: mid}, {Row: mid, Col: mid - 1}, {Row: mid, Col: mid}}
}
