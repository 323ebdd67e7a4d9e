package maze

import (
	"math/rand"
)

// step is a move from one cell to an adjacent one.
type step struct {
	from Position
	to   Position
	dir  Direction
}

// Generate carves a perfect maze (exactly one path between any two cells)
// with Wilson's loop-erased random walk. The same seed always yields the same maze.
func Generate(size int, seed int64) (*Maze, error) {
	layout, err := NewLayout(size)
	if err != nil {
		return nil, err
	}

	// Start fully walled, then open passages.
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			p := Position{Row: row, Col: col}
			_ = layout.AddWall(p, Right)
			_ = layout.AddWall(p, Down)
		}
	}

	g := &generator{size: size, rng: rand.New(rand.NewSource(seed)), layout: layout}
	g.carve()
	return layout.Build()
}

type generator struct {
	size   int
	rng    *rand.Rand
	layout *Layout
}

// randomCellPosition generates a random position within the maze.
func (g *generator) randomCellPosition() Position {
	return Position{Row: g.rng.Intn(g.size), Col: g.rng.Intn(g.size)}
}

// randomUnvisitedCellPosition selects a random position that has not been visited.
func (g *generator) randomUnvisitedCellPosition(visited map[Position]struct{}) Position {
	for {
		pos := g.randomCellPosition()
		if _, included := visited[pos]; !included {
			return pos
		}
	}
}

// neighbors finds all in-bound moves from a given cell position, in enumeration order.
func (g *generator) neighbors(pos Position) []step {
	var result []step
	for _, d := range Directions {
		next := pos.Step(d)
		if next.InBound(g.size) {
			result = append(result, step{from: pos, to: next, dir: d})
		}
	}
	return result
}

// randomWalk wanders from an unvisited cell until it hits the visited tree.
// Only the last exit taken from each cell is kept, which erases loops.
func (g *generator) randomWalk(visited map[Position]struct{}) (Position, map[Position]step) {
	start := g.randomUnvisitedCellPosition(visited)
	exits := make(map[Position]step)
	cell := start

	for {
		neighbors := g.neighbors(cell)
		next := neighbors[g.rng.Intn(len(neighbors))]
		exits[cell] = next
		if _, included := visited[next.to]; included {
			break
		}
		cell = next.to
	}

	return start, exits
}

// carve joins every cell to the tree through loop-erased walks.
func (g *generator) carve() {
	visited := make(map[Position]struct{}, g.size*g.size)
	visited[g.randomCellPosition()] = struct{}{}

	for len(visited) < g.size*g.size {
		start, exits := g.randomWalk(visited)
		cell := start
		for {
			if _, included := visited[cell]; included {
				break
			}
			move := exits[cell]
			_ = g.layout.RemoveWall(move.from, move.dir)
			visited[cell] = struct{}{}
			cell = move.to
		}
	}
}
