package handlers

import (
	"net/http"

	"jewelmart/internal/common"
	"jewelmart/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandlers handles dashboard HTTP requests
type DashboardHandlers struct {
	dashboardService services.DashboardServiceInterface
}

// NewDashboardHandlers creates a new dashboard handlers instance
func NewDashboardHandlers(dashboardService services.DashboardServiceInterface) *DashboardHandlers {
	return &DashboardHandlers{dashboardService: dashboardService}
}

// GetStats handles GET /dashboard/stats
func (h *DashboardHandlers) GetStats(c echo.Context) error {
	stats, err := h.dashboardService.GetStats(c.Request().Context())
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// GetMonthlySales handles GET /dashboard/sales
func (h *DashboardHandlers) GetMonthlySales(c echo.Context) error {
	sales, err := h.dashboardService.GetMonthlySales(c.Request().Context())
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, sales)
}

// GetStockLevels handles GET /dashboard/stock
func (h *DashboardHandlers) GetStockLevels(c echo.Context) error {
	levels, err := h.dashboardService.GetStockLevels(c.Request().Context())
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, levels)
}
