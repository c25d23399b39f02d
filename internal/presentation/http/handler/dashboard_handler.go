package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/storebooks/internal/application/service"
	"github.com/sangkips/storebooks/internal/presentation/http/dto/request"
	"github.com/sangkips/storebooks/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard and report HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats handles getting dashboard statistics
func (h *DashboardHandler) GetStats(c *gin.Context) {
	response.OK(c, "Dashboard stats retrieved successfully", h.dashboardService.GetDashboard(c.Request.Context()))
}

// GetReport handles the period report. Missing dates default to the current month.
func (h *DashboardHandler) GetReport(c *gin.Context) {
	var req request.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	period, err := h.dashboardService.GetReport(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report generated successfully", period)
}
