// Package jobstore implements the job registry (spec.md §5/§6): a
// thread-safe mapping from opaque job id to status variant {Queued,
// Running, Solved, Infeasible, Failed}. Grounded on
// original_source/crates/jobs/src/lib.rs's InMemJobs.
package jobstore

import (
	"sync"

	"github.com/google/uuid"

	"github.com/noah-isme/unischedule/internal/domain"
)

// Registry is a thread-safe job-id → status map. Writers take the
// exclusive lock, readers the shared lock, per spec.md §5.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]domain.JobStatus
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{jobs: make(map[string]domain.JobStatus)}
}

// New allocates a fresh job id in the Queued state and returns it.
func (r *Registry) New() string {
	id := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[id] = domain.QueuedStatus()
	return id
}

// Set overwrites the status for id. Used by the runner to transition
// Queued → Running → {Solved, Infeasible, Failed}.
func (r *Registry) Set(id string, status domain.JobStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[id] = status
}

// Get returns the status for id and whether it exists.
func (r *Registry) Get(id string) (domain.JobStatus, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	status, ok := r.jobs[id]
	return status, ok
}
