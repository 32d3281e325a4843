package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/travelerp/backend/internal/application/report"
)

// ReportHandler serves the period summary and the platform overview
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary handles GET /reports/summary?from=&to=&granularity=
func (h *ReportHandler) Summary(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var q reportapp.SummaryQuery
	if !h.bindQuery(c, &q) {
		return
	}
	summary, err := h.reportService.Summary(c.Request.Context(), actor, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// PlatformOverview handles GET /platform/overview
func (h *ReportHandler) PlatformOverview(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	resp, err := h.reportService.PlatformOverview(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
