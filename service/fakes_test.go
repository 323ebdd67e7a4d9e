package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-floodfill/domain"
	"github.com/beka-birhanu/vinom-floodfill/service/i"
	"github.com/google/uuid"
)

type memRunRepo struct {
	mu      sync.Mutex
	runs    map[uuid.UUID]*dmn.Run
	saveErr error
}

func newMemRunRepo() *memRunRepo {
	return &memRunRepo{runs: map[uuid.UUID]*dmn.Run{}}
}

func (r *memRunRepo) Save(_ context.Context, run *dmn.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.runs[run.ID] = run
	return nil
}

func (r *memRunRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, i.ErrNotFound
	}
	return run, nil
}

func (r *memRunRepo) ByOperator(_ context.Context, operatorID uuid.UUID, limit int64) ([]*dmn.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*dmn.Run
	for _, run := range r.runs {
		if run.OperatorID == operatorID {
			out = append(out, run)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memCache struct {
	mu      sync.Mutex
	runs    map[string]*dmn.Run
	getErr  error
	lockErr error
	locks   int
	unlocks int
}

func newMemCache() *memCache {
	return &memCache{runs: map[string]*dmn.Run{}}
}

func (c *memCache) Get(_ context.Context, key string) (*dmn.Run, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	run, ok := c.runs[key]
	if !ok {
		return nil, i.ErrCacheMiss
	}
	cp := *run
	return &cp, nil
}

func (c *memCache) Set(_ context.Context, key string, run *dmn.Run) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *run
	c.runs[key] = &cp
	return nil
}

func (c *memCache) Lock(_ context.Context, _ string) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lockErr != nil {
		return nil, c.lockErr
	}
	c.locks++
	return func() {
		c.mu.Lock()
		c.unlocks++
		c.mu.Unlock()
	}, nil
}

type observation struct {
	source, outcome string
	moves, replans  int
}

type memRecorder struct {
	mu       sync.Mutex
	observed []observation
	hits     map[string]int
}

func newMemRecorder() *memRecorder {
	return &memRecorder{hits: map[string]int{}}
}

func (r *memRecorder) ObserveRun(source, outcome string, moves, replans int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observed = append(r.observed, observation{source, outcome, moves, replans})
}

func (r *memRecorder) CacheHit(source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hits[source]++
}

type memLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *memLogger) Info(msg string)    { l.add("INFO", msg) }
func (l *memLogger) Warning(msg string) { l.add("WARNING", msg) }
func (l *memLogger) Error(msg string)   { l.add("ERROR", msg) }

func (l *memLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf("[%s] %s", level, msg))
}

func (l *memLogger) count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, line := range l.lines {
		if len(line) > len(level)+2 && line[1:len(level)+1] == level {
			n++
		}
	}
	return n
}

type memOperatorRepo struct {
	mu        sync.Mutex
	operators map[string]*dmn.Operator
}

func newMemOperatorRepo() *memOperatorRepo {
	return &memOperatorRepo{operators: map[string]*dmn.Operator{}}
}

func (r *memOperatorRepo) Save(operator *dmn.Operator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operators[operator.Username] = operator
	return nil
}

func (r *memOperatorRepo) ByID(id uuid.UUID) (*dmn.Operator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, op := range r.operators {
		if op.ID == id {
			return op, nil
		}
	}
	return nil, i.ErrNotFound
}

func (r *memOperatorRepo) ByUsername(username string) (*dmn.Operator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	op, ok := r.operators[username]
	if !ok {
		return nil, i.ErrNotFound
	}
	return op, nil
}

type stubTokenizer struct {
	claims map[string]interface{}
	ttl    time.Duration
}

func (s *stubTokenizer) Generate(claims map[string]interface{}, ttl time.Duration) (string, error) {
	s.claims, s.ttl = claims, ttl
	return "token-" + fmt.Sprint(claims["username"]), nil
}

func (s *stubTokenizer) Decode(string) (map[string]interface{}, error) {
	return s.claims, nil
}
