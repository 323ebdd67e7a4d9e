package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beka-birhanu/vinom-floodfill/config"
	dmn "github.com/beka-birhanu/vinom-floodfill/domain"
	"github.com/beka-birhanu/vinom-floodfill/navigation/maze"
	"github.com/beka-birhanu/vinom-floodfill/navigation/navigator"
	"github.com/beka-birhanu/vinom-floodfill/service/i"
	"github.com/google/uuid"
)

const (
	cacheKeyFmt      = "floodfill:run:%s:%s:%s:%s:%d"
	defaultListLimit = 20
	maxListLimit     = 100
)

var (
	ErrInvalidRequest = errors.New("invalid solve request")
	ErrUnknownSource  = errors.New("unknown maze source")
)

// NavigationConfig holds the dependencies of a NavigationService.
type NavigationConfig struct {
	Runs     i.RunRepo
	Cache    i.RunCache
	Metrics  i.SolveRecorder
	Logger   i.Logger
	Defaults config.Navigation
}

// NavigationService solves navigation requests, caching finished runs by
// everything that determines their outcome and storing a report per request.
type NavigationService struct {
	runs     i.RunRepo
	cache    i.RunCache
	metrics  i.SolveRecorder
	logger   i.Logger
	defaults config.Navigation
	now      func() time.Time
}

// NewNavigationService checks that every dependency is present.
func NewNavigationService(cfg NavigationConfig) (*NavigationService, error) {
	if cfg.Runs == nil || cfg.Cache == nil || cfg.Metrics == nil || cfg.Logger == nil {
		return nil, ErrNilDependency
	}
	return &NavigationService{
		runs:     cfg.Runs,
		cache:    cfg.Cache,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
		defaults: cfg.Defaults,
		now:      time.Now,
	}, nil
}

// Solve builds the maze named by req, navigates it and stores the run. Bad
// requests fail with ErrInvalidRequest. An unsolvable navigation still
// returns its stored run, alongside an error wrapping navigator.ErrUnsolvable.
func (s *NavigationService) Solve(ctx context.Context, req dmn.SolveRequest) (*dmn.Run, error) {
	if req.Source == "" {
		req.Source = dmn.SourceClassic
	}
	m, err := s.buildMaze(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	cfg, err := s.navigatorConfig(req, m.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	runConfig := dmn.RunConfig{
		ID:         uuid.New(),
		OperatorID: req.OperatorID,
		Source:     req.Source,
		Maze:       m,
		Start:      cfg.Start,
		Goals:      cfg.Goals,
		Heading:    cfg.Heading,
		MaxReplans: cfg.MaxReplans,
	}
	nav, err := navigator.New(m, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	key := cacheKey(m, cfg)

	if run, ok := s.cached(ctx, key, runConfig); ok {
		if err := s.store(ctx, run); err != nil {
			return nil, err
		}
		return run, outcomeErr(run)
	}

	unlock, err := s.cache.Lock(ctx, key)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("Solving without lock on %s: %v", key, err))
	} else {
		defer unlock()
		// Another instance may have finished the same run while we waited.
		if run, ok := s.cached(ctx, key, runConfig); ok {
			if err := s.store(ctx, run); err != nil {
				return nil, err
			}
			return run, outcomeErr(run)
		}
	}

	started := s.now()
	res, solveErr := nav.Run()
	elapsed := s.now().Sub(started)

	run, err := dmn.NewRun(runConfig, res)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveRun(string(run.Source), string(run.Outcome), run.Moves, run.Replans, elapsed)
	s.logger.Info(fmt.Sprintf("Run %s %s: moves=%d replans=%d source=%s", run.ID, run.Outcome, run.Moves, run.Replans, run.Source))

	if err := s.cache.Set(ctx, key, run); err != nil {
		s.logger.Warning(fmt.Sprintf("Caching run %s: %v", run.ID, err))
	}
	if err := s.store(ctx, run); err != nil {
		return nil, err
	}
	return run, solveErr
}

// Run returns a stored run.
func (s *NavigationService) Run(ctx context.Context, id uuid.UUID) (*dmn.Run, error) {
	return s.runs.ByID(ctx, id)
}

// Runs lists an operator's latest runs. Non-positive limits get the default.
func (s *NavigationService) Runs(ctx context.Context, operatorID uuid.UUID, limit int64) ([]*dmn.Run, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.runs.ByOperator(ctx, operatorID, limit)
}

// cached looks key up and, on a hit, rebrands the cached run for this request.
func (s *NavigationService) cached(ctx context.Context, key string, rc dmn.RunConfig) (*dmn.Run, bool) {
	hit, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, i.ErrCacheMiss) {
			s.logger.Warning(fmt.Sprintf("Reading cached run %s: %v", key, err))
		}
		return nil, false
	}

	run := *hit
	run.ID = rc.ID
	run.OperatorID = rc.OperatorID
	run.Source = rc.Source
	run.CreatedAt = s.now().UTC()
	s.metrics.CacheHit(string(rc.Source))
	s.logger.Info(fmt.Sprintf("Run %s served from cache", run.ID))
	return &run, true
}

func (s *NavigationService) store(ctx context.Context, run *dmn.Run) error {
	if err := s.runs.Save(ctx, run); err != nil {
		s.logger.Error(fmt.Sprintf("Saving run %s: %v", run.ID, err))
		return err
	}
	return nil
}

// outcomeErr restores the navigation error of a run served from cache.
func outcomeErr(run *dmn.Run) error {
	if run.Arrived() {
		return nil
	}
	return fmt.Errorf("%w: %s", navigator.ErrUnsolvable, run.Reason)
}

func (s *NavigationService) buildMaze(req dmn.SolveRequest) (*maze.Maze, error) {
	size := req.Size
	if size == 0 {
		size = s.defaults.GridSize
	}

	switch req.Source {
	case dmn.SourceClassic:
		return maze.Classic(), nil
	case dmn.SourceOpen:
		return maze.Open(size)
	case dmn.SourceGenerated:
		return maze.Generate(size, req.Seed)
	case dmn.SourceLayout:
		return maze.FromWalls(size, req.Walls)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, req.Source)
	}
}

// navigatorConfig fills the gaps of req. Configured defaults apply when they
// fit the grid; otherwise the start is the bottom-left corner and the goals
// are the center.
func (s *NavigationService) navigatorConfig(req dmn.SolveRequest, size int) (navigator.Config, error) {
	cfg := navigator.Config{
		Goals:      req.Goals,
		Heading:    s.defaults.Heading,
		MaxReplans: req.MaxReplans,
	}
	if cfg.MaxReplans < 0 {
		return navigator.Config{}, fmt.Errorf("max replans must not be negative, got %d", cfg.MaxReplans)
	}
	if cfg.MaxReplans == 0 {
		cfg.MaxReplans = s.defaults.MaxReplans
	}
	if req.Heading != nil {
		cfg.Heading = *req.Heading
	}

	switch {
	case req.Start != nil:
		cfg.Start = *req.Start
	case s.defaults.GridSize == size:
		cfg.Start = s.defaults.Start
	default:
		cfg.Start = maze.Position{Row: size - 1, Col: 0}
	}

	if len(cfg.Goals) == 0 {
		if s.defaults.GridSize == size && len(s.defaults.Goals) > 0 {
			cfg.Goals = s.defaults.Goals
		} else {
			cfg.Goals = maze.CenterGoals(size)
		}
	}
	return cfg, nil
}

func cacheKey(m *maze.Maze, cfg navigator.Config) string {
	goals := make([]string, len(cfg.Goals))
	for idx, g := range cfg.Goals {
		goals[idx] = g.String()
	}
	return fmt.Sprintf(cacheKeyFmt, m.Digest(), cfg.Start, strings.Join(goals, ""), cfg.Heading, cfg.MaxReplans)
}
