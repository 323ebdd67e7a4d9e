package domain

import (
	"testing"

	"github.com/beka-birhanu/vinom-floodfill/navigation/maze"
	"github.com/beka-birhanu/vinom-floodfill/navigation/navigator"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRun(t *testing.T) {
	m, err := maze.Open(8)
	require.NoError(t, err)
	goals := []maze.Position{{Row: 3, Col: 3}}
	cfg := RunConfig{
		ID:         uuid.New(),
		OperatorID: uuid.New(),
		Source:     SourceOpen,
		Maze:       m,
		Start:      maze.Position{Row: 7, Col: 0},
		Goals:      goals,
	}

	t.Run("Arrived", func(t *testing.T) {
		res, err := navigator.Solve(m, navigator.Config{Start: cfg.Start, Goals: goals})
		require.NoError(t, err)

		run, err := NewRun(cfg, res)
		require.NoError(t, err)
		assert.True(t, run.Arrived())
		assert.Equal(t, cfg.ID, run.ID)
		assert.Equal(t, m.Digest(), run.MazeDigest)
		assert.Equal(t, 8, run.Size)
		assert.Equal(t, []string{"F", "F", "F", "F", "R", "F", "F"}, run.Commands)
		assert.Len(t, run.Path, 8)
		assert.Equal(t, 7, run.Moves)
		assert.Empty(t, run.Reason)
		assert.Equal(t, 0, run.Distances[3][3])
		assert.False(t, run.CreatedAt.IsZero())
	})

	t.Run("Unsolvable", func(t *testing.T) {
		res, err := navigator.Solve(m, navigator.Config{Start: cfg.Start, Goals: goals, MaxMoves: 2})
		require.Error(t, err)

		run, err := NewRun(cfg, res)
		require.NoError(t, err)
		assert.Equal(t, OutcomeUnsolvable, run.Outcome)
		assert.Contains(t, run.Reason, "ceiling")
		assert.Len(t, run.Commands, 2)
	})

	t.Run("Missing result", func(t *testing.T) {
		_, err := NewRun(cfg, nil)
		assert.ErrorIs(t, err, ErrNoResult)
	})
}
