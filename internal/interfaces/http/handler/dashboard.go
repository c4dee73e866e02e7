package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	reportapp "github.com/modernstore/backend/internal/application/report"
)

// DashboardHandler handles admin dashboard endpoints
type DashboardHandler struct {
	BaseHandler
	dashboardService *reportapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *reportapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns the dashboard summary counters
// GET /admin/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// Sales returns the zero-filled sales time series for the requested period
// GET /admin/dashboard/sales?period=week|month|year
func (h *DashboardHandler) Sales(c *gin.Context) {
	var filter reportapp.SalesReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	resp, err := h.dashboardService.SalesReport(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// TopProducts returns the best sellers for the requested period
// GET /admin/dashboard/top-products?period=month&limit=5
func (h *DashboardHandler) TopProducts(c *gin.Context) {
	var filter reportapp.TopProductsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	products, err := h.dashboardService.TopProducts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// RecentOrders returns the latest orders for the dashboard feed
// GET /admin/dashboard/recent-orders?limit=5
func (h *DashboardHandler) RecentOrders(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 50 {
			h.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	orders, err := h.dashboardService.RecentOrders(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}
