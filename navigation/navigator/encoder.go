package navigator

import (
	"fmt"

	"github.com/beka-birhanu/vinom-floodfill/navigation/maze"
)

// Command is a relative movement instruction for the agent.
type Command int

const (
	Forward Command = iota
	Right
	Back
	Left
)

// turnCommands maps turn = (new - previous) mod 4 to exactly one command.
var turnCommands = [4]Command{Forward, Right, Back, Left}

var commandNames = [4]string{"F", "R", "B", "L"}

// String returns the one letter form: F, R, B or L.
func (c Command) String() string {
	if c < Forward || c > Left {
		return fmt.Sprintf("command(%d)", int(c))
	}
	return commandNames[c]
}

// MarshalText encodes the command as its letter.
func (c Command) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a command letter.
func (c *Command) UnmarshalText(text []byte) error {
	for i, name := range commandNames {
		if name == string(text) {
			*c = Command(i)
			return nil
		}
	}
	return fmt.Errorf("unknown command %q", text)
}

// Encoder turns consecutive absolute moves into relative commands.
type Encoder struct {
	heading maze.Direction
}

// NewEncoder starts an encoder facing the agent's real initial orientation.
func NewEncoder(initial maze.Direction) (*Encoder, error) {
	if !initial.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHeading, int(initial))
	}
	return &Encoder{heading: initial}, nil
}

// Heading returns the last absolute movement direction.
func (e *Encoder) Heading() maze.Direction {
	return e.heading
}

// Encode converts the coordinate delta of one move into a command and
// updates the heading. Deltas other than the four unit vectors fail with maze.ErrInvalidMove.
func (e *Encoder) Encode(delta maze.Position) (Command, error) {
	dir, err := maze.DirectionOf(delta)
	if err != nil {
		return 0, err
	}
	return e.Turn(dir), nil
}

// Turn returns the command that faces the agent toward dir and records dir as the new heading.
func (e *Encoder) Turn(dir maze.Direction) Command {
	turn := ((int(dir)-int(e.heading))%4 + 4) % 4
	e.heading = dir
	return turnCommands[turn]
}

// FormatCommands joins commands with single spaces, e.g. "F F R".
func FormatCommands(commands []Command) string {
	out := make([]byte, 0, len(commands)*2)
	for i, c := range commands {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, c.String()...)
	}
	return string(out)
}
