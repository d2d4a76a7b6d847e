package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/unischedule/internal/domain"
	"github.com/noah-isme/unischedule/internal/service"
	appErrors "github.com/noah-isme/unischedule/pkg/errors"
	"github.com/noah-isme/unischedule/pkg/response"
)

type scheduleGetter interface {
	Get(ctx context.Context, id string) (domain.SavedSchedule, error)
}

// ExportHandler renders a saved schedule as CSV or PDF.
type ExportHandler struct {
	schedules scheduleGetter
	exporter  *service.ExportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(schedules scheduleGetter, exporter *service.ExportService) *ExportHandler {
	return &ExportHandler{schedules: schedules, exporter: exporter}
}

// Export godoc
// @Summary Export a saved schedule as CSV or PDF
// @Tags Schedules
// @Produce application/octet-stream
// @Param id path string true "Schedule ID"
// @Param format query string false "csv or pdf (default csv)"
// @Success 200 {file} byte
// @Router /v1/schedules/{id}/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	id := c.Param("id")
	format := service.Format(c.DefaultQuery("format", string(service.FormatCSV)))

	schedule, err := h.schedules.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, filename, err := h.exporter.Export(schedule.ID, schedule.Result, format)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to render export"))
		return
	}

	f, _, err := h.exporter.Open(token)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to open export file"))
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.DataFromReader(http.StatusOK, -1, "application/octet-stream", f, nil)
}
