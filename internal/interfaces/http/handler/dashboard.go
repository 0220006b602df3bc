package handler

import (
	"strconv"

	reportapp "github.com/garmsource/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard aggregation API endpoints
type DashboardHandler struct {
	BaseHandler
	dashboardService *reportapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *reportapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get returns the full dashboard payload
func (h *DashboardHandler) Get(c *gin.Context) {
	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context(), parseMonths(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dashboard)
}

// KPIs returns the headline figures with month-over-month trends
func (h *DashboardHandler) KPIs(c *gin.Context) {
	kpis, err := h.dashboardService.GetKPIs(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, kpis)
}

// MonthlySales returns the monthly sales series
func (h *DashboardHandler) MonthlySales(c *gin.Context) {
	series, err := h.dashboardService.GetMonthlySalesSeries(c.Request.Context(), parseMonths(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, series)
}

// MonthlyExpenses returns the monthly expenses series
func (h *DashboardHandler) MonthlyExpenses(c *gin.Context) {
	series, err := h.dashboardService.GetMonthlyExpensesSeries(c.Request.Context(), parseMonths(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, series)
}

// parseMonths reads the months query parameter; zero means the service
// default
func parseMonths(c *gin.Context) int {
	raw := c.Query("months")
	if raw == "" {
		return 0
	}
	months, err := strconv.Atoi(raw)
	if err != nil || months < 0 {
		return 0
	}
	return months
}

// RegisterRoutes registers dashboard routes
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("", h.Get)
		dashboard.GET("/kpis", h.KPIs)
		dashboard.GET("/monthly-sales", h.MonthlySales)
		dashboard.GET("/monthly-expenses", h.MonthlyExpenses)
	}
}
