package maze

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// layoutFile is the on-disk YAML form of a maze.
//
//	size: 8
//	mirrored: false
//	walls:
//	  - {row: 0, col: 0, side: down}
//	  - {row: 1, col: 0, side: up}
//
// Boundary walls are implicit. Unless mirrored is set, each entry sets a
// single side and the file must author both sides of every interior wall.
type layoutFile struct {
	Size     int    `yaml:"size"`
	Mirrored bool   `yaml:"mirrored,omitempty"`
	Walls    []Wall `yaml:"walls"`
}

// ParseYAML decodes a YAML layout file into a validated Maze.
func ParseYAML(data []byte) (*Maze, error) {
	var file layoutFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedLayout, err)
	}
	if err := CheckSize(file.Size); err != nil {
		return nil, err
	}

	if file.Mirrored {
		return FromWalls(file.Size, file.Walls)
	}

	grid := newWallGrid(file.Size)
	for _, w := range file.Walls {
		p := Position{Row: w.Row, Col: w.Col}
		if err := CheckBounds(p, file.Size); err != nil {
			return nil, err
		}
		grid[p.Row][p.Col] = grid[p.Row][p.Col].With(w.Side)
	}
	return New(grid)
}

// MarshalYAML encodes the maze as a mirrored layout file listing each interior wall once.
func (m *Maze) MarshalYAML() (interface{}, error) {
	file := layoutFile{Size: m.size, Mirrored: true, Walls: m.InteriorWalls()}
	return file, nil
}

// InteriorWalls lists every wall between two in-bound cells once, as a Right or Down side.
func (m *Maze) InteriorWalls() []Wall {
	walls := make([]Wall, 0)
	for row := 0; row < m.size; row++ {
		for col := 0; col < m.size; col++ {
			p := Position{Row: row, Col: col}
			for _, d := range [2]Direction{Right, Down} {
				if p.Step(d).InBound(m.size) && m.HasWall(p, d) {
					walls = append(walls, Wall{Row: row, Col: col, Side: d})
				}
			}
		}
	}
	return walls
}

// UnmarshalYAML decodes a wall entry. The side must be given explicitly.
func (w *Wall) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Row  int        `yaml:"row"`
		Col  int        `yaml:"col"`
		Side *Direction `yaml:"side"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Side == nil {
		return fmt.Errorf("%w: (%d,%d) line %d", ErrMissingSide, raw.Row, raw.Col, value.Line)
	}
	*w = Wall{Row: raw.Row, Col: raw.Col, Side: *raw.Side}
	return nil
}

// UnmarshalYAML decodes a direction scalar such as "up" or "west".
func (d *Direction) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// MarshalYAML encodes the direction by name.
func (d Direction) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}
