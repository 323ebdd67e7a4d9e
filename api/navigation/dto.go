// Package navigationapi exposes navigation runs and maze dumps over HTTP.
package navigationapi

import (
	"github.com/beka-birhanu/vinom-floodfill/navigation/maze"
)

// SolveRequest asks for a navigation run. Omitted fields use the server defaults.
type SolveRequest struct {
	Source     string          `json:"source"` // classic, open, generated or layout
	Size       int             `json:"size"`
	Seed       int64           `json:"seed"`
	Walls      []maze.Wall     `json:"walls"`
	Start      *maze.Position  `json:"start"`
	Goals      []maze.Position `json:"goals"`
	Heading    string          `json:"heading"` // up, right, down or left
	MaxReplans int             `json:"max_replans" binding:"gte=0"`
}

// MazeResponse describes a ground-truth maze.
type MazeResponse struct {
	Size   int             `json:"size"`
	Digest string          `json:"digest"`
	Start  maze.Position   `json:"start"`
	Goals  []maze.Position `json:"goals"`
	Walls  []maze.Wall     `json:"walls"`
	ASCII  string          `json:"ascii"`
	Table  string          `json:"table"`
}
