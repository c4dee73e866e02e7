package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/modernstore/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementStock atomically decrements a product's stock by quantity,
	// but only when the current stock is at least quantity. The guard and
	// the write are a single conditional UPDATE; implementations must never
	// read the stock first and decide in application code.
	//
	// Returns the remaining stock after the decrement. When the conditional
	// update matches no row, the product's existence is re-checked:
	// a missing product yields shared.ErrNotFound, an existing one
	// shared.ErrInsufficientStock.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (remaining int, err error)

	// IncrementStock adds quantity back to a product's stock. It is the
	// compensating operation for callers that reserved outside an enclosing
	// transaction and must undo a partial batch.
	IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error

	// CountLowStock counts active products at or below the given threshold
	CountLowStock(ctx context.Context, threshold int) (int64, error)
	// CountActive counts active products
	CountActive(ctx context.Context) (int64, error)
}
