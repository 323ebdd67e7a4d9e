// Package metrics exposes navigation runs to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricsNamespace = "floodfill"
	solveSubsystem   = "solve"
)

// SolveMetrics implements i.SolveRecorder.
type SolveMetrics struct {
	// RunsTotal counts finished runs. Labels: source, outcome (arrived, unsolvable)
	RunsTotal *prometheus.CounterVec

	// CacheHitsTotal counts runs served from cache. Labels: source
	CacheHitsTotal *prometheus.CounterVec

	// Moves and Replans are per-run distributions. Labels: source
	Moves   *prometheus.HistogramVec
	Replans *prometheus.HistogramVec

	// DurationSeconds measures time spent navigating. Labels: source
	DurationSeconds *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*SolveMetrics, error) {
	m := &SolveMetrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: solveSubsystem,
			Name:      "runs_total",
			Help:      "Finished navigation runs by maze source and outcome",
		}, []string{"source", "outcome"}),
		CacheHitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: solveSubsystem,
			Name:      "cache_hits_total",
			Help:      "Runs answered from the run cache",
		}, []string{"source"}),
		Moves: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: solveSubsystem,
			Name:      "moves",
			Help:      "Moves made per run",
			Buckets:   prometheus.ExponentialBuckets(8, 2, 10),
		}, []string{"source"}),
		Replans: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: solveSubsystem,
			Name:      "replans",
			Help:      "Distance map recomputations per run",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100, 250, 1000},
		}, []string{"source"}),
		DurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: solveSubsystem,
			Name:      "duration_seconds",
			Help:      "Wall time of a navigation run",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"source"}),
	}

	for _, c := range []prometheus.Collector{m.RunsTotal, m.CacheHitsTotal, m.Moves, m.Replans, m.DurationSeconds} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *SolveMetrics) ObserveRun(source, outcome string, moves, replans int, elapsed time.Duration) {
	m.RunsTotal.WithLabelValues(source, outcome).Inc()
	m.Moves.WithLabelValues(source).Observe(float64(moves))
	m.Replans.WithLabelValues(source).Observe(float64(replans))
	m.DurationSeconds.WithLabelValues(source).Observe(elapsed.Seconds())
}

func (m *SolveMetrics) CacheHit(source string) {
	m.CacheHitsTotal.WithLabelValues(source).Inc()
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
