package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) (*SolveMetrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)
	return m, reg
}

func TestSolveMetrics_ObserveRun(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.ObserveRun("classic", "arrived", 66, 20, 3*time.Millisecond)
	m.ObserveRun("classic", "arrived", 66, 20, time.Millisecond)
	m.ObserveRun("layout", "unsolvable", 15, 2, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues("classic", "arrived")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues("layout", "unsolvable")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Moves))
}

func TestSolveMetrics_CacheHit(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.CacheHit("generated")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("generated")))
}

func TestNew_DuplicateRegistration(t *testing.T) {
	_, reg := newTestMetrics(t)
	_, err := New(reg)
	assert.Error(t, err)
}

func TestHandler(t *testing.T) {
	m, reg := newTestMetrics(t)
	m.ObserveRun("open", "arrived", 7, 0, time.Millisecond)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `floodfill_solve_runs_total{outcome="arrived",source="open"} 1`), body)
}
