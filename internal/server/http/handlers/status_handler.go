package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/checkin/internal/domain/errors"
	"github.com/polkiloo/checkin/internal/server/http/dto"
)

// StatusHandler serves health, report and run endpoints.
type StatusHandler struct {
	facade StatusFacade
}

// NewStatusHandler constructs StatusHandler.
func NewStatusHandler(facade StatusFacade) *StatusHandler {
	return &StatusHandler{facade: facade}
}

// Health handles GET /healthz.
func (h *StatusHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Running: h.facade.Running()})
}

// Report handles GET /api/report.
func (h *StatusHandler) Report(c *gin.Context) {
	report, text, err := h.facade.LatestReport(c.Request.Context())
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNoContent)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.ReportResponse{Report: report, Text: text})
}

// Trigger handles POST /api/runs.
func (h *StatusHandler) Trigger(c *gin.Context) {
	if err := h.facade.TriggerRun(); err != nil {
		if errors.Is(err, domainErrors.ErrRunInProgress) {
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusAccepted, dto.RunResponse{Status: "started"})
}
