package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/tomasc/weekly-planner-api/internal/errors"
	"github.com/tomasc/weekly-planner-api/internal/services"
	"github.com/tomasc/weekly-planner-api/internal/utils"
)

// ReportHandler exposes the derived team statistics and history views.
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// TeamSummary returns the weekly team overview, defaulting to the
// current week.
func (h *ReportHandler) TeamSummary(c *gin.Context) {
	week := c.DefaultQuery("week", utils.CurrentWeekID())
	if !utils.ValidWeekID(week) {
		apierrors.BadRequest(c, "week must look like 2025-W07")
		return
	}

	summary, err := h.reportService.TeamSummaryForWeek(week)
	if err != nil {
		apierrors.InternalError(c, "Failed to build team summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// History returns historical weekly plans. Every filter accepts the
// match-all sentinel "all" (or can be omitted).
func (h *ReportHandler) History(c *gin.Context) {
	rows, err := h.reportService.History(services.HistoryFilter{
		Week:         c.Query("week"),
		Collaborator: c.Query("collaborator"),
		Project:      c.Query("project"),
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to load history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rows": rows,
	})
}

// VoteHistory returns per-(week, target) vote averages.
func (h *ReportHandler) VoteHistory(c *gin.Context) {
	rows, err := h.reportService.VoteHistory(services.VoteHistoryFilter{
		Week:   c.Query("week"),
		Target: c.Query("target"),
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to load vote history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rows": rows,
	})
}
