/*
Package navigator drives an agent with no prior map through a maze.

Each control tick the navigator senses the walls of its cell, merges them
into what it knows, and steps to the first neighbor (Up, Right, Down, Left)
that is strictly closer to the goal on the last computed distance map and
actually open. When no such neighbor exists it replans: the distance map is
recomputed from the grown knowledge and the next tick retries in place.

Distances come from optimistic knowledge (unseen walls are open) while
movement obeys the true walls, so the agent tries the shortest conceivable
route and only learns about a wall on contact.
*/
package navigator

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-floodfill/navigation/floodfill"
	"github.com/beka-birhanu/vinom-floodfill/navigation/maze"
)

var (
	ErrUnsolvable      = errors.New("navigation is unsolvable")
	ErrUnreachable     = errors.New("goal set is unreachable from the current cell")
	ErrStalled         = errors.New("no descent move and no new walls since the last replan")
	ErrCeilingExceeded = errors.New("move or replan ceiling exceeded")
	ErrInvalidHeading  = errors.New("invalid initial heading")
	ErrNilOracle       = errors.New("wall oracle is nil")
)

// State is the phase of the navigation state machine.
type State int

const (
	Moving State = iota
	Replanning
	Arrived
	Unsolvable
)

var stateNames = [4]string{"moving", "replanning", "arrived", "unsolvable"}

func (s State) String() string {
	if s < Moving || s > Unsolvable {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal reports whether no further ticks will change anything.
func (s State) Terminal() bool {
	return s == Arrived || s == Unsolvable
}

// Config holds the parameters of one navigation run.
type Config struct {
	Start      maze.Position   // Cell the agent starts in
	Goals      []maze.Position // Goal region, distance 0 by definition
	Heading    maze.Direction  // Agent's real orientation before the first move
	MaxReplans int             // Replan ceiling; 0 or anything above 4·N², the number of wall flags, means 4·N²
	MaxMoves   int             // Move ceiling; 0 means (MaxReplans+1)·N²
}

// Navigator exclusively owns the knowledge and distance map of one run.
type Navigator struct {
	oracle  maze.WallOracle
	known   *maze.KnownMaze
	dist    *floodfill.DistanceMap
	encoder *Encoder
	goals   []maze.Position

	pos        maze.Position
	state      State
	path       []maze.Position
	commands   []Command
	moves      int
	replans    int
	ticks      int
	computedAt int // known.Version() the distance map was computed from
	err        error

	maxReplans int
	maxMoves   int
}

// New validates cfg against the oracle's grid and seeds the distance map
// from empty knowledge.
func New(oracle maze.WallOracle, cfg Config) (*Navigator, error) {
	if oracle == nil {
		return nil, ErrNilOracle
	}
	size := oracle.Size()
	if err := maze.CheckBounds(cfg.Start, size); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}

	encoder, err := NewEncoder(cfg.Heading)
	if err != nil {
		return nil, err
	}

	known, err := maze.NewKnownMaze(size)
	if err != nil {
		return nil, err
	}

	dist, err := floodfill.Compute(known, cfg.Goals)
	if err != nil {
		return nil, err
	}

	// Every replan needs at least one newly learned wall flag, so more than
	// 4·N² replans can never happen.
	wallFlags := 4 * size * size
	maxReplans := cfg.MaxReplans
	if maxReplans <= 0 || maxReplans > wallFlags {
		maxReplans = wallFlags
	}
	maxMoves := cfg.MaxMoves
	if maxMoves <= 0 {
		maxMoves = (maxReplans + 1) * size * size
	}

	return &Navigator{
		oracle:     oracle,
		known:      known,
		dist:       dist,
		encoder:    encoder,
		goals:      append([]maze.Position(nil), cfg.Goals...),
		pos:        cfg.Start,
		state:      Moving,
		computedAt: known.Version(),
		maxReplans: maxReplans,
		maxMoves:   maxMoves,
	}, nil
}

// Snapshot is the observable outcome of one tick.
type Snapshot struct {
	Tick      int
	State     State
	Position  maze.Position  // Position after the tick
	Moved     bool           // A move was made and Command is set
	Command   Command        // Command emitted for the move
	Replanned bool           // The distance map was recomputed this tick
	Learned   int            // Wall flags learned by sensing this tick
	Known     [][]maze.Walls // Copy of the knowledge after the tick
	Distances [][]int        // Copy of the live distance map after the tick
}

// tickInfo is what a tick did, without the grid copies of a Snapshot.
type tickInfo struct {
	moved     bool
	command   Command
	replanned bool
	learned   int
}

// Step advances the navigator by one control tick. Ticking a finished
// navigator is a no-op that repeats the terminal error, if any.
func (n *Navigator) Step() (Snapshot, error) {
	info, err := n.tick()
	return Snapshot{
		Tick:      n.ticks,
		State:     n.state,
		Position:  n.pos,
		Moved:     info.moved,
		Command:   info.command,
		Replanned: info.replanned,
		Learned:   info.learned,
		Known:     n.known.Snapshot(),
		Distances: n.dist.Rows(),
	}, err
}

// Run ticks until the navigator arrives or gives up. The result is always
// returned; on failure it carries the partial path and the last distance map,
// and the error wraps ErrUnsolvable together with its cause.
func (n *Navigator) Run() (*Result, error) {
	for !n.state.Terminal() {
		if _, err := n.tick(); err != nil {
			break
		}
	}
	return n.Result(), n.err
}

// Solve runs a fresh navigator over oracle with cfg.
func Solve(oracle maze.WallOracle, cfg Config) (*Result, error) {
	n, err := New(oracle, cfg)
	if err != nil {
		return nil, err
	}
	return n.Run()
}

func (n *Navigator) tick() (tickInfo, error) {
	var info tickInfo
	if n.state.Terminal() {
		return info, n.err
	}
	n.ticks++

	if n.dist.IsGoal(n.pos) {
		n.path = append(n.path, n.pos)
		n.state = Arrived
		return info, nil
	}

	if len(n.path) == 0 || n.path[len(n.path)-1] != n.pos {
		n.path = append(n.path, n.pos)
	}

	learned, err := n.known.Sense(n.oracle, n.pos)
	if err != nil {
		return info, n.fail(err)
	}
	info.learned = learned

	if dir, ok := n.descend(); ok {
		if n.moves >= n.maxMoves {
			return info, n.fail(fmt.Errorf("%w: %d moves", ErrCeilingExceeded, n.moves))
		}
		next := n.pos.Step(dir)
		cmd, err := n.encoder.Encode(next.Sub(n.pos))
		if err != nil {
			return info, n.fail(err)
		}
		n.commands = append(n.commands, cmd)
		n.pos = next
		n.moves++
		n.state = Moving
		info.moved, info.command = true, cmd
		return info, nil
	}

	n.state = Replanning
	if n.known.Version() == n.computedAt {
		return info, n.fail(fmt.Errorf("%w at %s", ErrStalled, n.pos))
	}
	if n.replans >= n.maxReplans {
		return info, n.fail(fmt.Errorf("%w: %d replans", ErrCeilingExceeded, n.replans))
	}
	if err := n.replan(); err != nil {
		return info, n.fail(err)
	}
	info.replanned = true

	if !n.dist.Reachable(n.pos) {
		return info, n.fail(fmt.Errorf("%w: %s", ErrUnreachable, n.pos))
	}
	return info, nil
}

// descend picks the first direction whose neighbor is strictly closer on the
// current map and open in the true maze.
func (n *Navigator) descend() (maze.Direction, bool) {
	here := n.dist.At(n.pos)
	if here == floodfill.Unreached {
		return 0, false
	}
	for _, d := range maze.Directions {
		v := n.dist.At(n.pos.Step(d))
		if v == floodfill.Unreached || v >= here {
			continue
		}
		if maze.Passable(n.oracle, n.pos, d) {
			return d, true
		}
	}
	return 0, false
}

// replan replaces the distance map wholesale from the current knowledge.
func (n *Navigator) replan() error {
	dist, err := floodfill.Compute(n.known, n.goals)
	if err != nil {
		return err
	}
	n.dist = dist
	n.computedAt = n.known.Version()
	n.replans++
	return nil
}

func (n *Navigator) fail(cause error) error {
	n.state = Unsolvable
	n.err = fmt.Errorf("%w: %w", ErrUnsolvable, cause)
	return n.err
}

// State returns the current phase.
func (n *Navigator) State() State {
	return n.state
}

// Position returns the agent's current cell.
func (n *Navigator) Position() maze.Position {
	return n.pos
}

// Result collects the outcome of a run so far.
func (n *Navigator) Result() *Result {
	return &Result{
		State:     n.state,
		Path:      append([]maze.Position(nil), n.path...),
		Commands:  append([]Command(nil), n.commands...),
		Moves:     n.moves,
		Replans:   n.replans,
		Ticks:     n.ticks,
		Heading:   n.encoder.Heading(),
		Distances: n.dist,
		Known:     n.known.Snapshot(),
		Err:       n.err,
	}
}
