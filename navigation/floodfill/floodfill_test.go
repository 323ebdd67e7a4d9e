package floodfill

import (
	"testing"

	"github.com/beka-birhanu/vinom-floodfill/navigation/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	t.Run("Open grid yields Manhattan distances", func(t *testing.T) {
		m, err := maze.Open(8)
		require.NoError(t, err)
		goal := maze.Position{Row: 3, Col: 3}

		dm, err := Compute(m, []maze.Position{goal})
		require.NoError(t, err)
		for row := 0; row < 8; row++ {
			for col := 0; col < 8; col++ {
				want := abs(row-goal.Row) + abs(col-goal.Col)
				assert.Equal(t, want, dm.At(maze.Position{Row: row, Col: col}))
			}
		}
		assert.Equal(t, 7, dm.At(maze.Position{Row: 7, Col: 0}))
		assert.NoError(t, dm.Verify(m))
	})

	t.Run("Empty knowledge is optimistic", func(t *testing.T) {
		known, err := maze.NewKnownMaze(8)
		require.NoError(t, err)
		dm, err := Compute(known, maze.ClassicGoals())
		require.NoError(t, err)
		assert.Equal(t, 6, dm.At(maze.ClassicStart()))
		assert.True(t, dm.IsGoal(maze.Position{Row: 4, Col: 4}))
	})

	t.Run("Classic fixture matches the known table", func(t *testing.T) {
		m := maze.Classic()
		dm, err := Compute(m, maze.ClassicGoals())
		require.NoError(t, err)

		want := [][]int{
			{13, 12, 13, 14, 17, 18, 19, 20},
			{10, 11, 4, 15, 16, 17, 22, 21},
			{9, 10, 3, 2, 1, 18, 37, 22},
			{8, 9, 4, 0, 0, 19, 36, 23},
			{7, 6, 5, 0, 0, 34, 35, 24},
			{42, 41, 6, 7, 34, 33, 32, 25},
			{43, 40, 7, 36, 35, 30, 31, 26},
			{44, 39, 38, 37, 30, 29, 28, 27},
		}
		assert.Equal(t, want, dm.Rows())
		assert.Equal(t, 44, dm.At(maze.ClassicStart()))
		assert.NoError(t, dm.Verify(m))
	})

	t.Run("Unreachable cells stay Unreached", func(t *testing.T) {
		layout, err := maze.NewLayout(4)
		require.NoError(t, err)
		require.NoError(t, layout.AddWall(maze.Position{Row: 0, Col: 0}, maze.Right))
		require.NoError(t, layout.AddWall(maze.Position{Row: 0, Col: 0}, maze.Down))
		m, err := layout.Build()
		require.NoError(t, err)

		dm, err := Compute(m, []maze.Position{{Row: 0, Col: 0}})
		require.NoError(t, err)
		assert.Equal(t, 0, dm.At(maze.Position{Row: 0, Col: 0}))
		assert.False(t, dm.Reachable(maze.Position{Row: 3, Col: 3}))
		assert.Equal(t, Unreached, dm.At(maze.Position{Row: 9, Col: 9}))
		assert.NoError(t, dm.Verify(m))
	})

	t.Run("Duplicate goals are seeded once", func(t *testing.T) {
		m, err := maze.Open(2)
		require.NoError(t, err)
		goal := maze.Position{Row: 0, Col: 0}
		dm, err := Compute(m, []maze.Position{goal, goal})
		require.NoError(t, err)
		assert.Equal(t, "0,1,\n1,2,\n", dm.String())
		assert.Len(t, dm.Goals(), 2)
	})

	t.Run("Invalid goals", func(t *testing.T) {
		m, err := maze.Open(3)
		require.NoError(t, err)
		_, err = Compute(m, nil)
		assert.ErrorIs(t, err, ErrNoGoals)
		_, err = Compute(m, []maze.Position{{Row: 3, Col: 0}})
		assert.ErrorIs(t, err, maze.ErrOutOfBounds)
	})
}

func TestCompute_MatchesIndependentSearch(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		m, err := maze.Generate(10, seed)
		require.NoError(t, err)
		goals := []maze.Position{{Row: 4, Col: 4}, {Row: 5, Col: 5}}

		dm, err := Compute(m, goals)
		require.NoError(t, err)
		require.NoError(t, dm.Verify(m))

		for _, start := range []maze.Position{{Row: 0, Col: 0}, {Row: 9, Col: 9}, {Row: 0, Col: 9}, {Row: 7, Col: 2}} {
			assert.Equal(t, shortestHops(m, start, goals), dm.At(start), "seed %d start %s", seed, start)
		}
	}
}

func TestVerify_DetectsStaleMaps(t *testing.T) {
	open, err := maze.Open(4)
	require.NoError(t, err)
	goals := []maze.Position{{Row: 0, Col: 0}}
	dm, err := Compute(open, goals)
	require.NoError(t, err)

	layout, err := maze.NewLayout(4)
	require.NoError(t, err)
	require.NoError(t, layout.AddWall(maze.Position{Row: 0, Col: 0}, maze.Right))
	walled, err := layout.Build()
	require.NoError(t, err)

	assert.Error(t, dm.Verify(walled))
	small, err := maze.Open(3)
	require.NoError(t, err)
	assert.Error(t, dm.Verify(small))
}

// shortestHops runs a plain single-source BFS from start and stops at the first goal.
func shortestHops(m *maze.Maze, start maze.Position, goals []maze.Position) int {
	isGoal := map[maze.Position]bool{}
	for _, g := range goals {
		isGoal[g] = true
	}
	hops := map[maze.Position]int{start: 0}
	queue := []maze.Position{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if isGoal[p] {
			return hops[p]
		}
		for _, d := range maze.Directions {
			next := p.Step(d)
			if _, seen := hops[next]; seen || !m.IsValidMove(p, d) {
				continue
			}
			hops[next] = hops[p] + 1
			queue = append(queue, next)
		}
	}
	return Unreached
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
