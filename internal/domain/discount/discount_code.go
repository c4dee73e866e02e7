package discount

import (
	"strings"
	"time"

	"github.com/modernstore/backend/internal/domain/shared"
	"github.com/modernstore/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Type distinguishes how a discount value is interpreted
type Type string

const (
	TypePercentage Type = "percentage"
	TypeFixed      Type = "fixed"
)

// IsValid checks if the type is a known discount type
func (t Type) IsValid() bool {
	return t == TypePercentage || t == TypeFixed
}

// Code represents a discount code definition
type Code struct {
	shared.BaseEntity
	Code           string
	Type           Type
	Value          decimal.Decimal
	MinOrderAmount decimal.Decimal
	UsageLimit     *int
	UsedCount      int
	ValidFrom      time.Time
	ValidUntil     time.Time
	IsActive       bool
}

// NewCode creates a new discount code definition
func NewCode(code string, discountType Type, value decimal.Decimal, validFrom, validUntil time.Time) (*Code, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Discount code cannot be empty")
	}
	if !discountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT_TYPE", "Discount type must be percentage or fixed")
	}
	if value.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT_VALUE", "Discount value cannot be negative")
	}
	if discountType == TypePercentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT_VALUE", "Percentage discount cannot exceed 100")
	}
	if validUntil.Before(validFrom) {
		return nil, shared.NewDomainError("INVALID_VALIDITY_WINDOW", "Valid-until must not precede valid-from")
	}

	return &Code{
		BaseEntity:     shared.NewBaseEntity(),
		Code:           code,
		Type:           discountType,
		Value:          value,
		MinOrderAmount: decimal.Zero,
		ValidFrom:      validFrom,
		ValidUntil:     validUntil,
		IsActive:       true,
	}, nil
}

// EvaluationResult is the outcome of evaluating a code against a subtotal.
// On failure Valid is false, DiscountAmount is zero and NewTotal equals the
// subtotal, so callers can render the result either way.
type EvaluationResult struct {
	Valid          bool
	Message        string
	DiscountAmount valueobject.Money
	NewTotal       valueobject.Money
}

// Evaluate computes the discount this code yields for the given cart
// subtotal. It is a pure function of the code definition, the subtotal and
// the supplied clock; calling it twice with the same inputs yields the same
// result, which makes it safe for UI preview before checkout.
//
// Checks run in order and the first failure wins: active, validity window,
// usage limit, minimum order amount.
func (c *Code) Evaluate(subtotal valueobject.Money, now time.Time) EvaluationResult {
	failure := func(message string) EvaluationResult {
		return EvaluationResult{
			Valid:          false,
			Message:        message,
			DiscountAmount: valueobject.Zero(subtotal.Currency()),
			NewTotal:       subtotal,
		}
	}

	if !c.IsActive {
		return failure("This discount code is no longer active")
	}
	if now.Before(c.ValidFrom) {
		return failure("This discount code is not valid yet")
	}
	if now.After(c.ValidUntil) {
		return failure("This discount code has expired")
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return failure("This discount code has reached its usage limit")
	}
	if subtotal.Amount().LessThan(c.MinOrderAmount) {
		return failure("Order subtotal is below the minimum for this discount code")
	}

	var amount valueobject.Money
	switch c.Type {
	case TypePercentage:
		amount = subtotal.CalculatePercentage(c.Value)
	case TypeFixed:
		amount, _ = valueobject.NewMoney(c.Value, subtotal.Currency())
	default:
		return failure("Unsupported discount type")
	}

	// A discount can never exceed the subtotal or go negative.
	amount, _ = amount.ClampBetween(valueobject.Zero(subtotal.Currency()), subtotal)
	newTotal := subtotal.MustSubtract(amount)

	return EvaluationResult{
		Valid:          true,
		Message:        "Discount applied",
		DiscountAmount: amount,
		NewTotal:       newTotal,
	}
}

// HasRemainingUses reports whether the usage limit (if any) still allows use
func (c *Code) HasRemainingUses() bool {
	return c.UsageLimit == nil || c.UsedCount < *c.UsageLimit
}
