package discount

import (
	"context"
)

// Repository defines persistence operations for discount codes
type Repository interface {
	// FindByCode looks a code up case-insensitively.
	// Returns shared.ErrNotFound for unknown codes.
	FindByCode(ctx context.Context, code string) (*Code, error)
	Save(ctx context.Context, code *Code) error

	// IncrementUsage bumps the used counter, but only while the usage limit
	// still allows it. Like a stock decrement, the guard and the write are a
	// single conditional UPDATE so concurrent checkouts cannot exceed the
	// limit. Codes without a limit always succeed.
	IncrementUsage(ctx context.Context, code string) error
}
