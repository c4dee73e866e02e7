package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/modernstore/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// CreateOrderItemRequest is one cart line in a checkout request
type CreateOrderItemRequest struct {
	ProductID       uuid.UUID         `json:"product_id" binding:"required"`
	Quantity        int               `json:"quantity" binding:"required,min=1"`
	SelectedOptions map[string]string `json:"selected_options"`
}

// CreateOrderRequest represents a checkout submission
type CreateOrderRequest struct {
	Items           []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	ShippingAddress string                   `json:"shipping_address" binding:"required"`
	PaymentMethod   string                   `json:"payment_method" binding:"required"`
	DiscountCode    *string                  `json:"discount_code"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID              uuid.UUID         `json:"id"`
	ProductID       uuid.UUID         `json:"product_id"`
	ProductName     string            `json:"product_name"`
	Quantity        int               `json:"quantity"`
	PriceAtPurchase decimal.Decimal   `json:"price_at_purchase"`
	Amount          decimal.Decimal   `json:"amount"`
	SelectedOptions map[string]string `json:"selected_options,omitempty"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	UserID          uuid.UUID           `json:"user_id"`
	Items           []OrderItemResponse `json:"items"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	DiscountCode    *string             `json:"discount_code,omitempty"`
	DiscountAmount  decimal.Decimal     `json:"discount_amount"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	Status          string              `json:"status"`
	ShippingAddress string              `json:"shipping_address"`
	PaymentMethod   string              `json:"payment_method"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// OrderListFilter represents filter options for order lists
type OrderListFilter struct {
	Status    string     `form:"status"`
	Search    string     `form:"search"`
	DateFrom  *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo    *time.Time `form:"date_to" time_format:"2006-01-02"`
	MinAmount *float64   `form:"min_amount" binding:"omitempty,gte=0"`
	MaxAmount *float64   `form:"max_amount" binding:"omitempty,gte=0"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// UpdateOrderStatusRequest represents an admin status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ToOrderResponse converts a domain order to its API representation
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase,
			Amount:          item.Amount(),
			SelectedOptions: item.SelectedOptions,
		})
	}
	return OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           items,
		Subtotal:        o.Subtotal,
		DiscountCode:    o.DiscountCode,
		DiscountAmount:  o.DiscountAmount,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status.String(),
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
