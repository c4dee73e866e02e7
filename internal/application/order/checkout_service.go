package order

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/modernstore/backend/internal/domain/catalog"
	"github.com/modernstore/backend/internal/domain/order"
	"github.com/modernstore/backend/internal/domain/shared"
	"github.com/modernstore/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CheckoutService turns a validated cart into a persisted order.
//
// The entire checkout runs inside one transaction scope: stock reservation,
// discount usage accounting and the order insert commit together or roll
// back together, so a failure on the last line item releases every
// reservation made before it.
type CheckoutService struct {
	scope TransactionScope
	now   func() time.Time
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(scope TransactionScope) *CheckoutService {
	return &CheckoutService{
		scope: scope,
		now:   time.Now,
	}
}

// Checkout places an order for the given user.
//
// Stock is reserved with per-line conditional decrements issued in ascending
// product-id order. The stable ordering keeps concurrent checkouts that
// share products from acquiring row locks in conflicting orders.
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Order must contain at least one item")
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
		}
	}

	// Sort a copy so reservation order is deterministic regardless of how
	// the client arranged the cart.
	items := make([]CreateOrderItemRequest, len(req.Items))
	copy(items, req.Items)
	sort.Slice(items, func(i, j int) bool {
		return items[i].ProductID.String() < items[j].ProductID.String()
	})

	var response *OrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ids := make([]uuid.UUID, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ProductID)
		}

		products, err := repos.ProductRepo().FindByIDs(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]*catalog.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}

		lines := make([]order.LineInput, 0, len(items))
		for _, item := range items {
			product, ok := byID[item.ProductID]
			if !ok {
				return shared.ErrNotFound
			}
			if !product.IsAvailable() {
				return shared.ErrProductUnavailable
			}
			if err := product.ValidateOptions(item.SelectedOptions); err != nil {
				return err
			}
			lines = append(lines, order.LineInput{
				ProductID:       product.ID,
				ProductName:     product.Name,
				Quantity:        item.Quantity,
				UnitPrice:       product.GetPriceMoney(),
				SelectedOptions: item.SelectedOptions,
			})
		}

		subtotal := valueobject.ZeroUSD()
		for _, line := range lines {
			subtotal = subtotal.MustAdd(line.UnitPrice.MultiplyByInt(int64(line.Quantity)))
		}

		discountAmount := valueobject.Zero(subtotal.Currency())
		var discountCode *string
		if req.DiscountCode != nil && *req.DiscountCode != "" {
			code, err := repos.DiscountRepo().FindByCode(ctx, *req.DiscountCode)
			if err != nil {
				if err == shared.ErrNotFound {
					return shared.ErrInvalidDiscount
				}
				return err
			}
			result := code.Evaluate(subtotal, s.now())
			if !result.Valid {
				return shared.NewDomainError("INVALID_DISCOUNT", result.Message)
			}
			if err := repos.DiscountRepo().IncrementUsage(ctx, code.Code); err != nil {
				return err
			}
			discountAmount = result.DiscountAmount
			discountCode = &code.Code
		}

		for _, line := range lines {
			if _, err := repos.ProductRepo().DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		o, err := order.NewOrder(userID, lines, req.ShippingAddress, req.PaymentMethod, discountCode, discountAmount)
		if err != nil {
			return err
		}
		if err := repos.OrderRepo().Save(ctx, o); err != nil {
			return err
		}

		resp := ToOrderResponse(o)
		response = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// GetOrder returns one of the user's orders. Orders belonging to other
// users yield shared.ErrNotFound rather than a permission error, so order
// IDs cannot be probed.
func (s *CheckoutService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	var response *OrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o.UserID != userID {
			return shared.ErrNotFound
		}
		resp := ToOrderResponse(o)
		response = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// ListOrders returns the user's orders, newest first
func (s *CheckoutService) ListOrders(ctx context.Context, userID uuid.UUID, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	domainFilter := buildFilter(filter)
	domainFilter.Filters["user_id"] = userID

	var page shared.Paginated[OrderResponse]
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		orders, err := repos.OrderRepo().FindByUser(ctx, userID, domainFilter)
		if err != nil {
			return err
		}
		total, err := repos.OrderRepo().Count(ctx, domainFilter)
		if err != nil {
			return err
		}

		responses := make([]OrderResponse, 0, len(orders))
		for i := range orders {
			responses = append(responses, ToOrderResponse(&orders[i]))
		}
		page = shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func buildFilter(f OrderListFilter) shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	filter.Search = f.Search
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	if f.DateFrom != nil {
		filter.Filters["date_from"] = *f.DateFrom
	}
	if f.DateTo != nil {
		// Inclusive day bound: a date_to of 2026-03-01 covers the whole day.
		filter.Filters["date_to"] = f.DateTo.AddDate(0, 0, 1)
	}
	if f.MinAmount != nil {
		filter.Filters["min_amount"] = decimal.NewFromFloat(*f.MinAmount)
	}
	if f.MaxAmount != nil {
		filter.Filters["max_amount"] = decimal.NewFromFloat(*f.MaxAmount)
	}
	return filter
}
