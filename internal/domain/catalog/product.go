package catalog

import (
	"fmt"
	"time"

	"github.com/modernstore/backend/internal/domain/shared"
	"github.com/modernstore/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OptionSet declares the selectable options a product offers,
// e.g. {"Color": ["Red", "Blue"], "Size": ["M", "L"]}
type OptionSet map[string][]string

// Product represents a storefront product
type Product struct {
	shared.BaseEntity
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Category    string
	ImageURL    string
	Options     OptionSet
	IsActive    bool
}

// NewProduct creates a new product
func NewProduct(name, category string, price valueobject.Money, stock int) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Product stock cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Category:   category,
		Price:      price.Amount(),
		Stock:      stock,
		Options:    make(OptionSet),
		IsActive:   true,
	}, nil
}

// GetPriceMoney returns the price as a Money value object
func (p *Product) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Price)
}

// IsAvailable returns true if the product can be purchased
func (p *Product) IsAvailable() bool {
	return p.IsActive
}

// Deactivate removes the product from sale without deleting it
func (p *Product) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
}

// Activate returns the product to sale
func (p *Product) Activate() {
	p.IsActive = true
	p.UpdatedAt = time.Now()
}

// UpdatePrice sets a new selling price. Historical orders keep the
// price captured at purchase time and are unaffected.
func (p *Product) UpdatePrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	p.Price = price.Amount()
	p.UpdatedAt = time.Now()
	return nil
}

// ValidateOptions checks a buyer's selected options against the product's
// declared option set. Every selected key must be declared and every value
// must be one of the declared choices.
func (p *Product) ValidateOptions(selected map[string]string) error {
	for key, value := range selected {
		choices, ok := p.Options[key]
		if !ok {
			return shared.NewDomainError("INVALID_OPTION",
				fmt.Sprintf("Product %q has no option %q", p.Name, key))
		}
		valid := false
		for _, choice := range choices {
			if choice == value {
				valid = true
				break
			}
		}
		if !valid {
			return shared.NewDomainError("INVALID_OPTION",
				fmt.Sprintf("%q is not a valid choice for option %q", value, key))
		}
	}
	return nil
}
