package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/modernstore/backend/internal/domain/shared"
	"github.com/modernstore/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Status represents the fulfillment status of an order
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// Item is a line item within an order. The unit price is captured at
// purchase time and never changes with later catalog updates.
type Item struct {
	ID              uuid.UUID
	OrderID         uuid.UUID
	ProductID       uuid.UUID
	ProductName     string
	Quantity        int
	PriceAtPurchase decimal.Decimal
	SelectedOptions map[string]string
	CreatedAt       time.Time
}

// NewItem creates a new order item with a snapshot of the current price
func NewItem(orderID, productID uuid.UUID, productName string, quantity int, priceAtPurchase valueobject.Money, selectedOptions map[string]string) (*Item, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if priceAtPurchase.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &Item{
		ID:              uuid.New(),
		OrderID:         orderID,
		ProductID:       productID,
		ProductName:     productName,
		Quantity:        quantity,
		PriceAtPurchase: priceAtPurchase.Amount(),
		SelectedOptions: selectedOptions,
		CreatedAt:       time.Now(),
	}, nil
}

// Amount returns quantity * priceAtPurchase for this line
func (i *Item) Amount() decimal.Decimal {
	return i.PriceAtPurchase.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the aggregate root for a customer purchase.
// Items and amounts are immutable after creation; only Status
// (and UpdatedAt) may change.
type Order struct {
	shared.BaseEntity
	UserID          uuid.UUID
	Items           []Item
	Subtotal        decimal.Decimal
	DiscountCode    *string
	DiscountAmount  decimal.Decimal
	TotalAmount     decimal.Decimal
	Status          Status
	ShippingAddress string
	PaymentMethod   string
}

// LineInput describes a priced line item for order assembly
type LineInput struct {
	ProductID       uuid.UUID
	ProductName     string
	Quantity        int
	UnitPrice       valueobject.Money
	SelectedOptions map[string]string
}

// NewOrder assembles an order from priced line items. The subtotal is the
// sum of line amounts and the discount is clamped to [0, subtotal], so the
// invariant subtotal - discount == total holds by construction.
func NewOrder(userID uuid.UUID, lines []LineInput, shippingAddress, paymentMethod string, discountCode *string, discountAmount valueobject.Money) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Order must contain at least one item")
	}
	if shippingAddress == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Shipping address cannot be empty")
	}
	if paymentMethod == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method cannot be empty")
	}
	if discountAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount amount cannot be negative")
	}

	o := &Order{
		BaseEntity:      shared.NewBaseEntity(),
		UserID:          userID,
		Items:           make([]Item, 0, len(lines)),
		Status:          StatusPending,
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
		DiscountCode:    discountCode,
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		item, err := NewItem(o.ID, line.ProductID, line.ProductName, line.Quantity, line.UnitPrice, line.SelectedOptions)
		if err != nil {
			return nil, err
		}
		o.Items = append(o.Items, *item)
		subtotal = subtotal.Add(item.Amount())
	}

	discount := discountAmount.Amount()
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	o.Subtotal = subtotal
	o.DiscountAmount = discount
	o.TotalAmount = subtotal.Sub(discount)

	return o, nil
}

// ChangeStatus moves the order to the given status. Any valid status is
// accepted, including backward moves; administrators own the lifecycle.
func (o *Order) ChangeStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+status.String())
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

// ItemCount returns the number of line items
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// TotalQuantity returns the sum of all line quantities
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// GetSubtotalMoney returns the subtotal as Money
func (o *Order) GetSubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.Subtotal)
}

// GetDiscountAmountMoney returns the discount amount as Money
func (o *Order) GetDiscountAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.DiscountAmount)
}

// GetTotalAmountMoney returns the final total as Money
func (o *Order) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.TotalAmount)
}
