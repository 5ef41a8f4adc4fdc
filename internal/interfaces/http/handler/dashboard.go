package handler

import (
	productionapp "github.com/atelier/backend/internal/application/production"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the production overview
type DashboardHandler struct {
	BaseHandler
	dashboardService *productionapp.DashboardService
	insightsService  *productionapp.InsightsService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *productionapp.DashboardService, insightsService *productionapp.InsightsService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		insightsService:  insightsService,
	}
}

// Get handles GET /dashboard
func (h *DashboardHandler) Get(c *gin.Context) {
	resp, err := h.dashboardService.Get(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Insights handles GET /dashboard/insights. Failures come back as a fallback
// text, never as an error status.
func (h *DashboardHandler) Insights(c *gin.Context) {
	h.Success(c, h.insightsService.Generate(c.Request.Context()))
}
