package handler

import (
	"github.com/gin-gonic/gin"
	discountapp "github.com/modernstore/backend/internal/application/discount"
	"github.com/modernstore/backend/internal/interfaces/http/middleware"
)

// DiscountHandler handles discount preview endpoints
type DiscountHandler struct {
	BaseHandler
	previewService *discountapp.PreviewService
}

// NewDiscountHandler creates a new DiscountHandler
func NewDiscountHandler(previewService *discountapp.PreviewService) *DiscountHandler {
	return &DiscountHandler{previewService: previewService}
}

// Preview evaluates a discount code against a cart subtotal without
// consuming it. Invalid codes come back as a valid=false payload, not an
// error status.
// POST /discounts/preview
func (h *DiscountHandler) Preview(c *gin.Context) {
	var req discountapp.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.previewService.Preview(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
