package jobstore

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/unischedule/internal/dispatch"
	"github.com/noah-isme/unischedule/internal/domain"
	"github.com/noah-isme/unischedule/pkg/jobs"
)

// SolveJobType names the job.Type passed to pkg/jobs.Queue for a solve
// invocation.
const SolveJobType = "solve"

// SolveObserver receives one notification per completed solve job. An
// *service.MetricsService satisfies this interface structurally, keeping
// jobstore free of a dependency on the service package.
type SolveObserver interface {
	ObserveSolve(solver domain.SolverKind, result domain.SolveResult, duration time.Duration)
}

// Runner executes queued solves against the registry, delegating the
// worker pool itself to pkg/jobs.Queue.
type Runner struct {
	registry *Registry
	queue    *jobs.Queue
	logger   *zap.Logger
	observer SolveObserver
}

// NewRunner wires a registry to a new pkg/jobs.Queue; Start starts it. cfg.Workers
// bounds how many solves run concurrently; each solve is single-threaded
// and CPU-bound per spec.md §5, with no shared mutable state across them.
func NewRunner(registry *Registry, cfg jobs.QueueConfig, logger *zap.Logger) *Runner {
	r := &Runner{registry: registry, logger: logger}
	r.queue = jobs.NewQueue("solver", r.handle, cfg)
	return r
}

// WithObserver attaches a metrics observer notified after every solve.
func (r *Runner) WithObserver(observer SolveObserver) *Runner {
	r.observer = observer
	return r
}

// Start begins the underlying worker pool.
func (r *Runner) Start(ctx context.Context) { r.queue.Start(ctx) }

// Stop drains and stops the underlying worker pool.
func (r *Runner) Stop() { r.queue.Stop() }

// Submit allocates a job id, marks it Queued, and enqueues the envelope
// for background solving. Returns the job id.
func (r *Runner) Submit(env domain.SolveEnvelope) (string, error) {
	id := r.registry.New()
	if err := r.queue.Enqueue(jobs.Job{ID: id, Type: SolveJobType, Payload: env}); err != nil {
		r.registry.Set(id, domain.FailedStatus(err.Error()))
		return "", err
	}
	return id, nil
}

// handle is the pkg/jobs.Handler run by each worker. It always returns
// nil: a solve failure is recorded as Failed in the registry rather than
// retried, since a panicking or erroring solve is not expected to
// succeed on a bare retry (spec.md §7: job failure is surfaced once, not
// retried by the core).
func (r *Runner) handle(_ context.Context, job jobs.Job) (err error) {
	r.registry.Set(job.ID, domain.RunningStatus())

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Sugar().Errorw("solve job panicked", "job_id", job.ID, "panic", rec)
			r.registry.Set(job.ID, domain.FailedStatus(fmt.Sprintf("panic: %v", rec)))
		}
		err = nil
	}()

	env, ok := job.Payload.(domain.SolveEnvelope)
	if !ok {
		r.registry.Set(job.ID, domain.FailedStatus("malformed job payload"))
		return nil
	}

	started := time.Now()
	result := dispatch.Solve(env)
	if r.observer != nil {
		r.observer.ObserveSolve(env.Params.Solver, result, time.Since(started))
	}
	switch result.Status {
	case domain.StatusSolved:
		r.registry.Set(job.ID, domain.SolvedStatus(result))
	default:
		r.registry.Set(job.ID, domain.InfeasibleStatus(result))
	}
	return nil
}
