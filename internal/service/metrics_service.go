package service

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/unischedule/internal/domain"
)

// MetricsService encapsulates Prometheus instrumentation for the solve
// pipeline: HTTP request metrics plus solver-specific collectors. No
// cache/DB instrumentation here — this domain's hot path is the solve
// job, not a request-per-query API.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	solveDuration   *prometheus.HistogramVec
	solvesTotal     *prometheus.CounterVec
	objectiveGauge  prometheus.Gauge
	generationsHist *prometheus.HistogramVec
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

// NewMetricsService registers the solve-focused Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	solveDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solve_duration_seconds",
		Help:    "Duration of solve jobs in seconds, by solver and outcome",
		Buckets: prometheus.DefBuckets,
	}, []string{"solver", "status"})

	solvesTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solves_total",
		Help: "Total number of solve jobs, by solver and outcome",
	}, []string{"solver", "status"})

	objectiveGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "last_solve_objective",
		Help: "Objective value of the most recently solved job",
	})

	generationsHist := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "heuristic_generations_per_solve",
		Help:    "Number of GA generations run per heuristic solve",
		Buckets: []float64{10, 25, 50, 100, 200, 300, 500, 1000},
	}, []string{"status"})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	registry.MustRegister(solveDuration, solvesTotal, objectiveGauge, generationsHist, requestDuration, requestTotal)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		solveDuration:   solveDuration,
		solvesTotal:     solvesTotal,
		objectiveGauge:  objectiveGauge,
		generationsHist: generationsHist,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveSolve records the outcome and duration of one dispatcher run.
func (m *MetricsService) ObserveSolve(solver domain.SolverKind, result domain.SolveResult, duration time.Duration) {
	if m == nil {
		return
	}
	status := string(result.Status)
	m.solveDuration.WithLabelValues(string(solver), status).Observe(duration.Seconds())
	m.solvesTotal.WithLabelValues(string(solver), status).Inc()
	if result.Status == domain.StatusSolved {
		m.objectiveGauge.Set(result.Objective)
	}
	if generations, ok := generationsOf(result.Stats); ok {
		m.generationsHist.WithLabelValues(status).Observe(generations)
	}
}

// generationsOf extracts a "generations" count from a solve's stats map.
// Stats is populated directly by the heuristic engine (an int) but may
// also arrive as a float64 if ever round-tripped through JSON.
func generationsOf(stats domain.Stats) (float64, bool) {
	v, ok := stats["generations"]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// ObserveHTTPRequest records one HTTP request's latency and outcome.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	label := http.StatusText(status)
	if label == "" {
		label = "unknown"
	}
	m.requestDuration.WithLabelValues(method, path, label).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, label).Inc()
}
