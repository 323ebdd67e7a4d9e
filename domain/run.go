package domain

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-floodfill/navigation/maze"
	"github.com/beka-birhanu/vinom-floodfill/navigation/navigator"
	"github.com/google/uuid"
)

// Outcome is the terminal state of a stored run.
type Outcome string

const (
	OutcomeArrived    Outcome = "arrived"
	OutcomeUnsolvable Outcome = "unsolvable"
)

var ErrNoResult = errors.New("run has no navigation result")

// Run is the persisted report of one navigation run.
type Run struct {
	ID         uuid.UUID       `bson:"_id" json:"id"`
	OperatorID uuid.UUID       `bson:"operatorId" json:"operatorId"`
	Source     MazeSource      `bson:"source" json:"source"`
	MazeDigest string          `bson:"mazeDigest" json:"mazeDigest"`
	Size       int             `bson:"size" json:"size"`
	Start      maze.Position   `bson:"start" json:"start"`
	Goals      []maze.Position `bson:"goals" json:"goals"`
	Heading    maze.Direction  `bson:"heading" json:"heading"`
	MaxReplans int             `bson:"maxReplans" json:"maxReplans"`

	Outcome   Outcome         `bson:"outcome" json:"outcome"`
	Reason    string          `bson:"reason,omitempty" json:"reason,omitempty"`
	Path      []maze.Position `bson:"path" json:"path"`
	Commands  []string        `bson:"commands" json:"commands"`
	Moves     int             `bson:"moves" json:"moves"`
	Replans   int             `bson:"replans" json:"replans"`
	Ticks     int             `bson:"ticks" json:"ticks"`
	Distances [][]int         `bson:"distances" json:"distances"`
	CreatedAt time.Time       `bson:"createdAt" json:"createdAt"`
}

// RunConfig carries the request side of a run.
type RunConfig struct {
	ID         uuid.UUID
	OperatorID uuid.UUID
	Source     MazeSource
	Maze       *maze.Maze
	Start      maze.Position
	Goals      []maze.Position
	Heading    maze.Direction
	MaxReplans int
}

// NewRun builds the report of a finished (arrived or unsolvable) navigation.
func NewRun(config RunConfig, res *navigator.Result) (*Run, error) {
	if res == nil || config.Maze == nil {
		return nil, ErrNoResult
	}

	run := &Run{
		ID:         config.ID,
		OperatorID: config.OperatorID,
		Source:     config.Source,
		MazeDigest: config.Maze.Digest(),
		Size:       config.Maze.Size(),
		Start:      config.Start,
		Goals:      append([]maze.Position(nil), config.Goals...),
		Heading:    config.Heading,
		MaxReplans: config.MaxReplans,
		Outcome:    OutcomeArrived,
		Path:       res.Path,
		Commands:   make([]string, len(res.Commands)),
		Moves:      res.Moves,
		Replans:    res.Replans,
		Ticks:      res.Ticks,
		CreatedAt:  time.Now().UTC(),
	}
	for i, c := range res.Commands {
		run.Commands[i] = c.String()
	}
	if res.Distances != nil {
		run.Distances = res.Distances.Rows()
	}
	if !res.Arrived() {
		run.Outcome = OutcomeUnsolvable
		if res.Err != nil {
			run.Reason = res.Err.Error()
		}
	}
	return run, nil
}

// Arrived reports whether the run reached its goal set.
func (r *Run) Arrived() bool {
	return r.Outcome == OutcomeArrived
}
