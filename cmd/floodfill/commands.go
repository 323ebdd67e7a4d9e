package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beka-birhanu/vinom-floodfill/config"
	logger "github.com/beka-birhanu/vinom-floodfill/infrastruture/log"
	"github.com/beka-birhanu/vinom-floodfill/navigation/maze"
	"github.com/beka-birhanu/vinom-floodfill/navigation/navigator"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	errUnknownFixture  = errors.New("unknown fixture, want classic or open")
	errNegativeReplans = errors.New("--max-replans must not be negative")
)

type solveOptions struct {
	fixture    string
	file       string
	seed       int64
	size       int
	start      string
	goals      []string
	heading    string
	maxReplans int
	dump       bool
	trace      bool
}

type generateOptions struct {
	size  int
	seed  int64
	ascii bool
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "floodfill",
		Short:         "Navigate unknown mazes with an online floodfill solver",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.AddCommand(newSolveCmd(out, errOut), newGenerateCmd(out))
	return rootCmd
}

func newSolveCmd(out, errOut io.Writer) *cobra.Command {
	opts := &solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Run the navigator over a fixture, a generated maze or a YAML layout",
		Long: `Runs the navigator from the start cell until it reaches a goal or gives up,
then prints the visited path and the relative commands (F, R, B, L).

Unset flags fall back to GRID_SIZE, START_CELL, GOAL_CELLS, INITIAL_HEADING
and MAX_REPLANS from the environment or a .env file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSolve(cmd, opts, out, errOut)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.fixture, "fixture", "classic", "built-in maze: classic or open")
	flags.StringVar(&opts.file, "file", "", "YAML layout file to navigate")
	flags.Int64Var(&opts.seed, "seed", 0, "navigate a generated maze with this seed")
	flags.IntVar(&opts.size, "size", 0, "grid size for open and generated mazes")
	flags.StringVar(&opts.start, "start", "", "start cell as row,col")
	flags.StringArrayVar(&opts.goals, "goal", nil, "goal cell as row,col (repeatable)")
	flags.StringVar(&opts.heading, "heading", "", "initial heading: up, right, down or left")
	flags.IntVar(&opts.maxReplans, "max-replans", 0, "replan ceiling, 0 for the default")
	flags.BoolVar(&opts.dump, "dump", false, "print the maze, the known walls and the final distances")
	flags.BoolVar(&opts.trace, "trace", false, "print every control tick")
	return cmd
}

func newGenerateCmd(out io.Writer) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a perfect maze and print it as a YAML layout",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			m, err := maze.Generate(opts.size, opts.seed)
			if err != nil {
				return err
			}
			if opts.ascii {
				_, err = fmt.Fprintln(out, m.String())
				return err
			}
			raw, err := yaml.Marshal(m)
			if err != nil {
				return err
			}
			_, err = out.Write(raw)
			return err
		},
	}
	cmd.Flags().IntVar(&opts.size, "size", 8, "grid size")
	cmd.Flags().Int64Var(&opts.seed, "seed", 1, "random seed")
	cmd.Flags().BoolVar(&opts.ascii, "ascii", false, "print ASCII art instead of YAML")
	return cmd
}

func runSolve(cmd *cobra.Command, opts *solveOptions, out, errOut io.Writer) error {
	log, err := logger.New("FLOODFILL", config.ColorCyan, errOut)
	if err != nil {
		return err
	}

	defaults, err := config.LoadNavigation()
	if err != nil {
		return err
	}

	m, source, err := loadMaze(cmd, opts, defaults)
	if err != nil {
		return err
	}

	cfg, err := solveConfig(opts, defaults, m.Size())
	if err != nil {
		return err
	}
	log.Info(fmt.Sprintf("Solving %s maze: size=%d start=%s goals=%v heading=%s", source, m.Size(), cfg.Start, cfg.Goals, cfg.Heading))

	nav, err := navigator.New(m, cfg)
	if err != nil {
		return err
	}

	for !nav.State().Terminal() {
		snap, stepErr := nav.Step()
		if opts.trace {
			printTick(out, snap)
		}
		if stepErr != nil {
			break
		}
	}
	res := nav.Result()

	printResult(out, res)
	if opts.dump {
		printDump(out, m, res)
	}
	return res.Err
}

// loadMaze picks the maze source: --file, then --seed, then --fixture.
func loadMaze(cmd *cobra.Command, opts *solveOptions, defaults config.Navigation) (*maze.Maze, string, error) {
	size := opts.size
	if size == 0 {
		size = defaults.GridSize
	}

	switch {
	case opts.file != "":
		raw, err := os.ReadFile(opts.file)
		if err != nil {
			return nil, "", err
		}
		m, err := maze.ParseYAML(raw)
		return m, "layout", err
	case cmd.Flags().Changed("seed"):
		m, err := maze.Generate(size, opts.seed)
		return m, "generated", err
	case opts.fixture == "classic":
		return maze.Classic(), "classic", nil
	case opts.fixture == "open":
		m, err := maze.Open(size)
		return m, "open", err
	default:
		return nil, "", fmt.Errorf("%w: %q", errUnknownFixture, opts.fixture)
	}
}

// solveConfig applies the flags over the configured defaults. Defaults for a
// different grid size give way to the bottom-left corner and the center.
func solveConfig(opts *solveOptions, defaults config.Navigation, size int) (navigator.Config, error) {
	cfg := navigator.Config{
		Start:      maze.Position{Row: size - 1, Col: 0},
		Goals:      maze.CenterGoals(size),
		Heading:    defaults.Heading,
		MaxReplans: defaults.MaxReplans,
	}
	if defaults.GridSize == size {
		cfg.Start = defaults.Start
		cfg.Goals = defaults.Goals
	}

	if opts.start != "" {
		start, err := config.ParseCell(opts.start)
		if err != nil {
			return navigator.Config{}, err
		}
		cfg.Start = start
	}
	if len(opts.goals) > 0 {
		goals, err := config.ParseCells(strings.Join(opts.goals, ";"))
		if err != nil {
			return navigator.Config{}, err
		}
		cfg.Goals = goals
	}
	if opts.heading != "" {
		heading, err := maze.ParseDirection(opts.heading)
		if err != nil {
			return navigator.Config{}, err
		}
		cfg.Heading = heading
	}
	if opts.maxReplans < 0 {
		return navigator.Config{}, fmt.Errorf("%w, got %d", errNegativeReplans, opts.maxReplans)
	}
	if opts.maxReplans > 0 {
		cfg.MaxReplans = opts.maxReplans
	}
	return cfg, nil
}

func printTick(out io.Writer, snap navigator.Snapshot) {
	line := fmt.Sprintf("tick %d: %s at %s", snap.Tick, snap.State, snap.Position)
	if snap.Moved {
		line += " cmd " + snap.Command.String()
	}
	if snap.Learned > 0 {
		line += fmt.Sprintf(" learned %d", snap.Learned)
	}
	if snap.Replanned {
		line += " replanned"
	}
	fmt.Fprintln(out, line)
}

func printResult(out io.Writer, res *navigator.Result) {
	fmt.Fprintf(out, "state: %s\n", res.State)
	fmt.Fprintf(out, "moves: %d\n", res.Moves)
	fmt.Fprintf(out, "replans: %d\n", res.Replans)

	cells := make([]string, len(res.Path))
	for idx, p := range res.Path {
		cells[idx] = p.String()
	}
	fmt.Fprintf(out, "path: %s\n", strings.Join(cells, " "))
	fmt.Fprintf(out, "commands: %s\n", navigator.FormatCommands(res.Commands))
}

func printDump(out io.Writer, m *maze.Maze, res *navigator.Result) {
	fmt.Fprintln(out, m.String())
	fmt.Fprintln(out, "walls:")
	fmt.Fprint(out, maze.FormatWalls(m))

	fmt.Fprintln(out, "known:")
	fmt.Fprint(out, maze.FormatWallGrid(res.Known))
	if res.Distances != nil {
		fmt.Fprintln(out, "distances:")
		fmt.Fprint(out, res.Distances.String())
	}
}
