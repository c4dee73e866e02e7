package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/modernstore/backend/internal/domain/shared"
)

// Repository defines persistence operations for orders.
// Save persists the order and all of its items as one atomic write.
type Repository interface {
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}
