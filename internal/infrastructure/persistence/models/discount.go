package models

import (
	"time"

	"github.com/modernstore/backend/internal/domain/discount"
	"github.com/shopspring/decimal"
)

// DiscountCodeModel is the persistence model for a discount code definition.
type DiscountCodeModel struct {
	BaseModel
	Code           string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Type           string          `gorm:"type:varchar(20);not null"`
	Value          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	MinOrderAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UsageLimit     *int            `gorm:""`
	UsedCount      int             `gorm:"not null;default:0"`
	ValidFrom      time.Time       `gorm:"not null"`
	ValidUntil     time.Time       `gorm:"not null"`
	IsActive       bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (DiscountCodeModel) TableName() string {
	return "discount_codes"
}

// ToDomain converts the persistence model to a domain discount Code.
func (m *DiscountCodeModel) ToDomain() *discount.Code {
	return &discount.Code{
		BaseEntity:     m.BaseModel.ToDomain(),
		Code:           m.Code,
		Type:           discount.Type(m.Type),
		Value:          m.Value,
		MinOrderAmount: m.MinOrderAmount,
		UsageLimit:     m.UsageLimit,
		UsedCount:      m.UsedCount,
		ValidFrom:      m.ValidFrom,
		ValidUntil:     m.ValidUntil,
		IsActive:       m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain discount Code.
func (m *DiscountCodeModel) FromDomain(c *discount.Code) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Code = c.Code
	m.Type = string(c.Type)
	m.Value = c.Value
	m.MinOrderAmount = c.MinOrderAmount
	m.UsageLimit = c.UsageLimit
	m.UsedCount = c.UsedCount
	m.ValidFrom = c.ValidFrom
	m.ValidUntil = c.ValidUntil
	m.IsActive = c.IsActive
}

// DiscountCodeModelFromDomain creates a new persistence model from a domain Code.
func DiscountCodeModelFromDomain(c *discount.Code) *DiscountCodeModel {
	m := &DiscountCodeModel{}
	m.FromDomain(c)
	return m
}
