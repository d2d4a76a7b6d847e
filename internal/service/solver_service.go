package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/unischedule/internal/cache"
	"github.com/noah-isme/unischedule/internal/domain"
	"github.com/noah-isme/unischedule/internal/jobstore"
	"github.com/noah-isme/unischedule/internal/scoring"
	appvalidate "github.com/noah-isme/unischedule/internal/validate"
	appErrors "github.com/noah-isme/unischedule/pkg/errors"
)

type scheduleRepository interface {
	Create(ctx context.Context, schedule *domain.SavedSchedule) error
	List(ctx context.Context) ([]domain.SavedSchedule, error)
	FindByID(ctx context.Context, id string) (*domain.SavedSchedule, error)
	Delete(ctx context.Context, id string) error
}

type jobSubmitter interface {
	Submit(env domain.SolveEnvelope) (string, error)
}

type jobReader interface {
	Get(id string) (domain.JobStatus, bool)
}

// SolverService is the application-facing surface wrapping the solver
// pipeline, job registry and saved-schedule persistence. Shaped after the
// teacher's ScheduleGeneratorService (validate → orchestrate → persist),
// but the orchestration itself is the dispatcher, not a bespoke
// constraint solver.
type SolverService struct {
	jobs      jobSubmitter
	status    jobReader
	schedules scheduleRepository
	validator *validator.Validate
	cache     *cache.InstanceCache
	logger    *zap.Logger
}

// NewSolverService wires dependencies for the solver service.
func NewSolverService(jobs *jobstore.Runner, registry *jobstore.Registry, schedules scheduleRepository, logger *zap.Logger) *SolverService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SolverService{
		jobs:      jobs,
		status:    registry,
		schedules: schedules,
		validator: validator.New(),
		logger:    logger,
	}
}

// WithCache attaches memoization for instance validation, keyed by
// instance content hash. A nil cache leaves validation uncached.
func (s *SolverService) WithCache(c *cache.InstanceCache) *SolverService {
	s.cache = c
	return s
}

func (s *SolverService) validate(ctx context.Context, inst domain.Instance) appvalidate.Report {
	if s.cache != nil {
		if report, ok := s.cache.Validation(ctx, inst); ok {
			return report
		}
	}
	report := appvalidate.Validate(inst)
	if s.cache != nil {
		s.cache.StoreValidation(ctx, inst, report)
	}
	return report
}

// Submit validates the envelope's instance and enqueues a solve job,
// returning its id for polling via JobStatus.
func (s *SolverService) Submit(ctx context.Context, env domain.SolveEnvelope) (string, error) {
	report := s.validate(ctx, env.Instance)
	if !report.OK() {
		return "", appErrors.Clone(appErrors.ErrValidation, report.Joined())
	}
	id, err := s.jobs.Submit(env)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue solve job")
	}
	return id, nil
}

// JobStatus returns the current status for a submitted job.
func (s *SolverService) JobStatus(_ context.Context, id string) (domain.JobStatus, error) {
	status, ok := s.status.Get(id)
	if !ok {
		return domain.JobStatus{}, appErrors.Clone(appErrors.ErrNotFound, "job not found")
	}
	return status, nil
}

// Validate runs the instance validator synchronously (spec.md §6:
// validate is CPU-cheap and needs no job indirection).
func (s *SolverService) Validate(ctx context.Context, inst domain.Instance) appvalidate.Report {
	return s.validate(ctx, inst)
}

// Explain recomputes the objective and its window/unpreferred breakdown
// for an already-decided assignment set, synchronously (spec.md §6: the
// explain endpoint takes an instance plus assignments directly, with no
// job indirection).
func (s *SolverService) Explain(_ context.Context, inst domain.Instance, assignments []domain.Assignment) domain.WindowCounts {
	return scoring.Evaluate(inst, assignments)
}

type saveScheduleRequest struct {
	Name string `validate:"required,min=1,max=200"`
}

// Save persists a solve result under a caller-supplied name.
func (s *SolverService) Save(ctx context.Context, name string, result domain.SolveResult) (domain.SavedSchedule, error) {
	if err := s.validator.Struct(saveScheduleRequest{Name: name}); err != nil {
		return domain.SavedSchedule{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid save schedule payload")
	}
	record := &domain.SavedSchedule{Name: name, Result: result}
	if err := s.schedules.Create(ctx, record); err != nil {
		return domain.SavedSchedule{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save schedule")
	}
	return *record, nil
}

// List returns all saved schedules.
func (s *SolverService) List(ctx context.Context) ([]domain.SavedSchedule, error) {
	schedules, err := s.schedules.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list saved schedules")
	}
	return schedules, nil
}

// Get loads one saved schedule by id.
func (s *SolverService) Get(ctx context.Context, id string) (domain.SavedSchedule, error) {
	record, err := s.schedules.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.SavedSchedule{}, appErrors.Clone(appErrors.ErrNotFound, "saved schedule not found")
		}
		return domain.SavedSchedule{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load saved schedule")
	}
	return *record, nil
}

// Delete removes a saved schedule by id.
func (s *SolverService) Delete(ctx context.Context, id string) error {
	if err := s.schedules.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "saved schedule not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete saved schedule")
	}
	return nil
}

