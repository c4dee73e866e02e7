package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/modernstore/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root.
type OrderModel struct {
	BaseModel
	UserID          uuid.UUID        `gorm:"type:uuid;not null;index"`
	Subtotal        decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountCode    *string          `gorm:"type:varchar(50)"`
	DiscountAmount  decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount     decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Status          string           `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	ShippingAddress string           `gorm:"type:text;not null"`
	PaymentMethod   string           `gorm:"type:varchar(50);not null"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the persistence model for an order line item.
// Items are children of the Order aggregate and are written together with it.
type OrderItemModel struct {
	ID              uuid.UUID         `gorm:"type:uuid;primary_key"`
	OrderID         uuid.UUID         `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	ProductName     string            `gorm:"type:varchar(200);not null"`
	Quantity        int               `gorm:"not null"`
	PriceAtPurchase decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	SelectedOptions map[string]string `gorm:"type:jsonb;serializer:json"`
	CreatedAt       time.Time         `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain Order aggregate.
func (m *OrderModel) ToDomain() *order.Order {
	items := make([]order.Item, 0, len(m.Items))
	for i := range m.Items {
		items = append(items, *m.Items[i].ToDomain())
	}
	return &order.Order{
		BaseEntity:      m.BaseModel.ToDomain(),
		UserID:          m.UserID,
		Items:           items,
		Subtotal:        m.Subtotal,
		DiscountCode:    m.DiscountCode,
		DiscountAmount:  m.DiscountAmount,
		TotalAmount:     m.TotalAmount,
		Status:          order.Status(m.Status),
		ShippingAddress: m.ShippingAddress,
		PaymentMethod:   m.PaymentMethod,
	}
}

// FromDomain populates the persistence model from a domain Order aggregate.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.UserID = o.UserID
	m.Subtotal = o.Subtotal
	m.DiscountCode = o.DiscountCode
	m.DiscountAmount = o.DiscountAmount
	m.TotalAmount = o.TotalAmount
	m.Status = o.Status.String()
	m.ShippingAddress = o.ShippingAddress
	m.PaymentMethod = o.PaymentMethod

	m.Items = make([]OrderItemModel, 0, len(o.Items))
	for i := range o.Items {
		m.Items = append(m.Items, *OrderItemModelFromDomain(&o.Items[i]))
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// ToDomain converts the persistence model to a domain order Item.
func (m *OrderItemModel) ToDomain() *order.Item {
	return &order.Item{
		ID:              m.ID,
		OrderID:         m.OrderID,
		ProductID:       m.ProductID,
		ProductName:     m.ProductName,
		Quantity:        m.Quantity,
		PriceAtPurchase: m.PriceAtPurchase,
		SelectedOptions: m.SelectedOptions,
		CreatedAt:       m.CreatedAt,
	}
}

// OrderItemModelFromDomain creates a new persistence model from a domain Item.
func OrderItemModelFromDomain(item *order.Item) *OrderItemModel {
	return &OrderItemModel{
		ID:              item.ID,
		OrderID:         item.OrderID,
		ProductID:       item.ProductID,
		ProductName:     item.ProductName,
		Quantity:        item.Quantity,
		PriceAtPurchase: item.PriceAtPurchase,
		SelectedOptions: item.SelectedOptions,
		CreatedAt:       item.CreatedAt,
	}
}
