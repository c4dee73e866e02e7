package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderapp "github.com/modernstore/backend/internal/application/order"
	"github.com/modernstore/backend/internal/interfaces/http/middleware"
)

// AdminOrderHandler handles back-office order management endpoints
type AdminOrderHandler struct {
	BaseHandler
	adminService *orderapp.AdminService
}

// NewAdminOrderHandler creates a new AdminOrderHandler
func NewAdminOrderHandler(adminService *orderapp.AdminService) *AdminOrderHandler {
	return &AdminOrderHandler{adminService: adminService}
}

// List returns all orders matching the filter
// GET /admin/orders
func (h *AdminOrderHandler) List(c *gin.Context) {
	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	page, err := h.adminService.ListOrders(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns any order by ID
// GET /admin/orders/:id
func (h *AdminOrderHandler) GetByID(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.adminService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateStatus moves an order to a new status
// PATCH /admin/orders/:id/status
func (h *AdminOrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req orderapp.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.adminService.UpdateStatus(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
