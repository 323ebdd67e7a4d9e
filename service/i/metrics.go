package i

import "time"

// SolveRecorder collects per-run measurements.
type SolveRecorder interface {
	ObserveRun(source, outcome string, moves, replans int, elapsed time.Duration)
	CacheHit(source string)
}
