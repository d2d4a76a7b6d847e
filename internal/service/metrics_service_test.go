package service

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/unischedule/internal/domain"
)

func TestObserveSolveExposesMetrics(t *testing.T) {
	m := NewMetricsService()
	m.ObserveSolve(domain.SolverMilp, domain.SolveResult{Status: domain.StatusSolved, Objective: 3.5}, 10*time.Millisecond)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "solves_total")
	assert.Contains(t, rec.Body.String(), "last_solve_objective 3.5")
}

func TestObserveSolveRecordsHeuristicGenerations(t *testing.T) {
	m := NewMetricsService()
	result := domain.SolveResult{
		Status: domain.StatusSolved,
		Stats:  domain.Stats{"generations": 300},
	}
	m.ObserveSolve(domain.SolverHeuristic, result, 5*time.Millisecond)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	assert.Contains(t, rec.Body.String(), "heuristic_generations_per_solve")
}

func TestNilMetricsServiceHandlerDegradesGracefully(t *testing.T) {
	var m *MetricsService
	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)
	assert.Equal(t, 503, rec.Code)
}
