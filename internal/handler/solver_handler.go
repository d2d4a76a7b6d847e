package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/unischedule/internal/domain"
	appvalidate "github.com/noah-isme/unischedule/internal/validate"
	appErrors "github.com/noah-isme/unischedule/pkg/errors"
	"github.com/noah-isme/unischedule/pkg/response"
)

type solver interface {
	Submit(ctx context.Context, env domain.SolveEnvelope) (string, error)
	JobStatus(ctx context.Context, id string) (domain.JobStatus, error)
	Validate(ctx context.Context, inst domain.Instance) appvalidate.Report
	Explain(ctx context.Context, inst domain.Instance, assignments []domain.Assignment) domain.WindowCounts
	Save(ctx context.Context, name string, result domain.SolveResult) (domain.SavedSchedule, error)
	List(ctx context.Context) ([]domain.SavedSchedule, error)
	Get(ctx context.Context, id string) (domain.SavedSchedule, error)
	Delete(ctx context.Context, id string) error
}

// SolverHandler exposes the solve/reoptimize/job/validate/explain/
// saved-schedule surface (spec.md §6).
type SolverHandler struct {
	service solver
}

// NewSolverHandler constructs the handler.
func NewSolverHandler(svc solver) *SolverHandler {
	return &SolverHandler{service: svc}
}

// Solve godoc
// @Summary Enqueue a solve job for an instance
// @Tags Solver
// @Accept json
// @Produce json
// @Param payload body domain.SolveEnvelope true "Solve envelope"
// @Success 202 {object} response.Envelope
// @Router /v1/solve [post]
func (h *SolverHandler) Solve(c *gin.Context) {
	h.submit(c)
}

// Reoptimize godoc
// @Summary Enqueue a solve job reusing an existing base/pinned assignment set
// @Tags Solver
// @Accept json
// @Produce json
// @Param payload body domain.SolveEnvelope true "Solve envelope with base/pinned set"
// @Success 202 {object} response.Envelope
// @Router /v1/reoptimize [post]
func (h *SolverHandler) Reoptimize(c *gin.Context) {
	h.submit(c)
}

func (h *SolverHandler) submit(c *gin.Context) {
	var env domain.SolveEnvelope
	if err := c.ShouldBindJSON(&env); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid solve envelope"))
		return
	}
	id, err := h.service.Submit(c.Request.Context(), env)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, gin.H{"jobId": id, "status": string(domain.JobQueued)}, nil)
}

// JobStatus godoc
// @Summary Poll a solve job's status
// @Tags Solver
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /v1/jobs/{id} [get]
func (h *SolverHandler) JobStatus(c *gin.Context) {
	status, err := h.service.JobStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status, nil)
}

// JobResult godoc
// @Summary Fetch a solved job's result
// @Tags Solver
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /v1/jobs/{id}/result [get]
func (h *SolverHandler) JobResult(c *gin.Context) {
	status, err := h.service.JobStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.JSON(c, http.StatusOK, gin.H{"status": "not_found"}, nil)
		return
	}
	if status.State != domain.JobSolved || status.Result == nil {
		response.JSON(c, http.StatusOK, gin.H{"status": "not_ready"}, nil)
		return
	}
	response.JSON(c, http.StatusOK, status.Result, nil)
}

// Validate godoc
// @Summary Validate an instance's structural preconditions
// @Tags Solver
// @Accept json
// @Produce json
// @Param payload body domain.Instance true "Instance"
// @Success 200 {object} response.Envelope
// @Router /v1/validate [post]
func (h *SolverHandler) Validate(c *gin.Context) {
	var inst domain.Instance
	if err := c.ShouldBindJSON(&inst); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid instance payload"))
		return
	}
	report := h.service.Validate(c.Request.Context(), inst)
	response.JSON(c, http.StatusOK, gin.H{"ok": report.OK(), "errors": report.Errors}, nil)
}

type explainRequest struct {
	Instance    domain.Instance    `json:"instance"`
	Assignments []domain.Assignment `json:"assignments"`
}

// Explain godoc
// @Summary Recompute the objective and window breakdown for an assignment set
// @Tags Solver
// @Accept json
// @Produce json
// @Param payload body explainRequest true "Instance plus assignments"
// @Success 200 {object} response.Envelope
// @Router /v1/explain [post]
func (h *SolverHandler) Explain(c *gin.Context) {
	var req explainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid explain payload"))
		return
	}
	counts := h.service.Explain(c.Request.Context(), req.Instance, req.Assignments)
	response.JSON(c, http.StatusOK, counts, nil)
}

type saveScheduleRequest struct {
	Name   string             `json:"name" binding:"required"`
	Result domain.SolveResult `json:"result" binding:"required"`
}

// SaveSchedule godoc
// @Summary Persist a solve result under a name
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body saveScheduleRequest true "Save schedule payload"
// @Success 201 {object} response.Envelope
// @Router /v1/schedules [post]
func (h *SolverHandler) SaveSchedule(c *gin.Context) {
	var req saveScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid save schedule payload"))
		return
	}
	saved, err := h.service.Save(c.Request.Context(), req.Name, req.Result)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, saved)
}

// ListSchedules godoc
// @Summary List saved schedules
// @Tags Schedules
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /v1/schedules [get]
func (h *SolverHandler) ListSchedules(c *gin.Context) {
	schedules, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedules, nil)
}

// GetSchedule godoc
// @Summary Fetch a saved schedule
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /v1/schedules/{id} [get]
func (h *SolverHandler) GetSchedule(c *gin.Context) {
	schedule, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule, nil)
}

// DeleteSchedule godoc
// @Summary Delete a saved schedule
// @Tags Schedules
// @Param id path string true "Schedule ID"
// @Success 204
// @Router /v1/schedules/{id} [delete]
func (h *SolverHandler) DeleteSchedule(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
