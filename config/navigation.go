package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/beka-birhanu/vinom-floodfill/navigation/maze"
)

const (
	defaultGridSize = 8
	defaultStart    = "7,0"
	defaultGoals    = "3,3;3,4;4,3;4,4"
	defaultHeading  = "up"
)

var ErrInvalidCell = errors.New("invalid cell, want row,col")

// Navigation holds the kernel defaults used when a request or command line
// does not name its own.
type Navigation struct {
	GridSize   int             // GRID_SIZE
	Start      maze.Position   // START_CELL, "row,col"
	Goals      []maze.Position // GOAL_CELLS, "row,col;row,col"
	Heading    maze.Direction  // INITIAL_HEADING
	MaxReplans int             // MAX_REPLANS, 0 for the navigator's default
}

// LoadNavigation reads the kernel defaults from the environment. Unlike Load
// it never exits: any malformed or out-of-grid value is returned as an error.
func LoadNavigation() (Navigation, error) {
	loadDotEnv()

	var nav Navigation
	var err error

	nav.GridSize, err = strconv.Atoi(getEnvWithDefault("GRID_SIZE", strconv.Itoa(defaultGridSize)))
	if err != nil {
		return Navigation{}, fmt.Errorf("GRID_SIZE: %w", err)
	}
	if err := maze.CheckSize(nav.GridSize); err != nil {
		return Navigation{}, fmt.Errorf("GRID_SIZE: %w", err)
	}

	if nav.Start, err = ParseCell(getEnvWithDefault("START_CELL", defaultStart)); err != nil {
		return Navigation{}, fmt.Errorf("START_CELL: %w", err)
	}
	if err := maze.CheckBounds(nav.Start, nav.GridSize); err != nil {
		return Navigation{}, fmt.Errorf("START_CELL: %w", err)
	}

	if nav.Goals, err = ParseCells(getEnvWithDefault("GOAL_CELLS", defaultGoals)); err != nil {
		return Navigation{}, fmt.Errorf("GOAL_CELLS: %w", err)
	}
	for _, g := range nav.Goals {
		if err := maze.CheckBounds(g, nav.GridSize); err != nil {
			return Navigation{}, fmt.Errorf("GOAL_CELLS: %w", err)
		}
	}

	if nav.Heading, err = maze.ParseDirection(getEnvWithDefault("INITIAL_HEADING", defaultHeading)); err != nil {
		return Navigation{}, fmt.Errorf("INITIAL_HEADING: %w", err)
	}

	if raw, ok := os.LookupEnv("MAX_REPLANS"); ok {
		if nav.MaxReplans, err = strconv.Atoi(raw); err != nil || nav.MaxReplans < 0 {
			return Navigation{}, fmt.Errorf("MAX_REPLANS: must be a non-negative integer, got %q", raw)
		}
	}

	return nav, nil
}

// ParseCell parses "row,col". Surrounding spaces are ignored.
func ParseCell(s string) (maze.Position, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return maze.Position{}, fmt.Errorf("%w: %q", ErrInvalidCell, s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return maze.Position{}, fmt.Errorf("%w: %q", ErrInvalidCell, s)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return maze.Position{}, fmt.Errorf("%w: %q", ErrInvalidCell, s)
	}
	return maze.Position{Row: row, Col: col}, nil
}

// ParseCells parses a ";" separated list of cells such as "3,3;3,4".
// Empty entries are skipped, but the list itself must not be empty.
func ParseCells(s string) ([]maze.Position, error) {
	var cells []maze.Position
	for _, part := range strings.Split(s, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		cell, err := ParseCell(part)
		if err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("%w: empty cell list", ErrInvalidCell)
	}
	return cells, nil
}
