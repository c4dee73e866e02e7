package models

import (
	"github.com/modernstore/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
// Options is stored as JSONB via GORM's json serializer.
type ProductModel struct {
	BaseModel
	Name        string            `gorm:"type:varchar(200);not null"`
	Description string            `gorm:"type:text"`
	Price       decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	Stock       int               `gorm:"not null;default:0"`
	Category    string            `gorm:"type:varchar(100);index"`
	ImageURL    string            `gorm:"type:text"`
	Options     catalog.OptionSet `gorm:"type:jsonb;serializer:json"`
	IsActive    bool              `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Stock:       m.Stock,
		Category:    m.Category,
		ImageURL:    m.ImageURL,
		Options:     m.Options,
		IsActive:    m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.Description = p.Description
	m.Price = p.Price
	m.Stock = p.Stock
	m.Category = p.Category
	m.ImageURL = p.ImageURL
	m.Options = p.Options
	m.IsActive = p.IsActive
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
