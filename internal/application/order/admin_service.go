package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/modernstore/backend/internal/domain/order"
	"github.com/modernstore/backend/internal/domain/shared"
)

// AdminService handles back-office order management
type AdminService struct {
	orderRepo order.Repository
}

// NewAdminService creates a new AdminService
func NewAdminService(orderRepo order.Repository) *AdminService {
	return &AdminService{orderRepo: orderRepo}
}

// ListOrders returns all orders matching the filter, newest first
func (s *AdminService) ListOrders(ctx context.Context, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	domainFilter := buildFilter(filter)

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	page := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// GetOrder returns any order by ID, regardless of owner
func (s *AdminService) GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// UpdateStatus moves an order to the requested status. The order is loaded
// first so unknown IDs fail with NOT_FOUND before any write, and the status
// change goes through the aggregate so only valid statuses reach storage.
func (s *AdminService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.ChangeStatus(order.Status(req.Status)); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(ctx, orderID, o.Status); err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}
