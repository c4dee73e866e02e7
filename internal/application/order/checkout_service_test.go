package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/modernstore/backend/internal/domain/catalog"
	"github.com/modernstore/backend/internal/domain/discount"
	"github.com/modernstore/backend/internal/domain/order"
	"github.com/modernstore/backend/internal/domain/shared"
	"github.com/modernstore/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validWindow() (time.Time, time.Time) {
	now := time.Now()
	return now.Add(-24 * time.Hour), now.Add(24 * time.Hour)
}

func makeProduct(t *testing.T, name string, price float64, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "Accessories", valueobject.NewMoneyUSDFromFloat(price), stock)
	require.NoError(t, err)
	return p
}

type checkoutFixture struct {
	productRepo  *MockProductRepository
	orderRepo    *MockOrderRepository
	discountRepo *MockDiscountRepository
	service      *CheckoutService
}

func newCheckoutFixture() *checkoutFixture {
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	discountRepo := new(MockDiscountRepository)
	scope := NewNoOpTransactionScope(productRepo, orderRepo, discountRepo)
	return &checkoutFixture{
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		discountRepo: discountRepo,
		service:      NewCheckoutService(scope),
	}
}

func TestCheckoutService_Checkout(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("places an order and reserves stock per line", func(t *testing.T) {
		f := newCheckoutFixture()
		caseProduct := makeProduct(t, "Phone Case", 10, 5)
		charger := makeProduct(t, "Charger", 20, 5)

		f.productRepo.On("FindByIDs", ctx, mock.Anything).
			Return([]catalog.Product{*caseProduct, *charger}, nil)
		f.productRepo.On("DecrementStock", ctx, caseProduct.ID, 1).Return(4, nil)
		f.productRepo.On("DecrementStock", ctx, charger.ID, 2).Return(3, nil)
		f.orderRepo.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(nil)

		resp, err := f.service.Checkout(ctx, userID, CreateOrderRequest{
			Items: []CreateOrderItemRequest{
				{ProductID: caseProduct.ID, Quantity: 1},
				{ProductID: charger.ID, Quantity: 2},
			},
			ShippingAddress: "42 Elm St",
			PaymentMethod:   "COD",
		})
		require.NoError(t, err)

		assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(50)))
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(50)))
		assert.True(t, resp.DiscountAmount.IsZero())
		assert.Equal(t, "PENDING", resp.Status)
		assert.Len(t, resp.Items, 2)
		f.productRepo.AssertNumberOfCalls(t, "DecrementStock", 2)
		f.orderRepo.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("reserves stock in ascending product-id order", func(t *testing.T) {
		f := newCheckoutFixture()
		a := makeProduct(t, "A", 1, 10)
		b := makeProduct(t, "B", 1, 10)

		var reserved []uuid.UUID
		f.productRepo.On("FindByIDs", ctx, mock.Anything).
			Return([]catalog.Product{*a, *b}, nil)
		f.productRepo.On("DecrementStock", ctx, mock.Anything, 1).
			Run(func(args mock.Arguments) {
				reserved = append(reserved, args.Get(1).(uuid.UUID))
			}).Return(9, nil)
		f.orderRepo.On("Save", ctx, mock.Anything).Return(nil)

		// Submit in descending id order; reservation must not follow it.
		first, second := a, b
		if first.ID.String() < second.ID.String() {
			first, second = second, first
		}
		_, err := f.service.Checkout(ctx, userID, CreateOrderRequest{
			Items: []CreateOrderItemRequest{
				{ProductID: first.ID, Quantity: 1},
				{ProductID: second.ID, Quantity: 1},
			},
			ShippingAddress: "42 Elm St",
			PaymentMethod:   "COD",
		})
		require.NoError(t, err)

		require.Len(t, reserved, 2)
		assert.Less(t, reserved[0].String(), reserved[1].String())
	})

	t.Run("applies a valid discount code", func(t *testing.T) {
		f := newCheckoutFixture()
		p := makeProduct(t, "Phone Case", 100, 5)
		from, until := validWindow()
		code, err := discount.NewCode("save10", discount.TypePercentage, decimal.NewFromInt(10), from, until)
		require.NoError(t, err)

		f.productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*p}, nil)
		f.discountRepo.On("FindByCode", ctx, "save10").Return(code, nil)
		f.discountRepo.On("IncrementUsage", ctx, "SAVE10").Return(nil)
		f.productRepo.On("DecrementStock", ctx, p.ID, 1).Return(4, nil)
		f.orderRepo.On("Save", ctx, mock.Anything).Return(nil)

		raw := "save10"
		resp, err := f.service.Checkout(ctx, userID, CreateOrderRequest{
			Items:           []CreateOrderItemRequest{{ProductID: p.ID, Quantity: 1}},
			ShippingAddress: "42 Elm St",
			PaymentMethod:   "CARD",
			DiscountCode:    &raw,
		})
		require.NoError(t, err)

		assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(100)))
		assert.True(t, resp.DiscountAmount.Equal(decimal.NewFromInt(10)))
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(90)))
		assert.Equal(t, "SAVE10", *resp.DiscountCode)
		f.discountRepo.AssertCalled(t, "IncrementUsage", ctx, "SAVE10")
	})

	t.Run("rejects an invalid discount code before reserving stock", func(t *testing.T) {
		f := newCheckoutFixture()
		p := makeProduct(t, "Phone Case", 100, 5)
		from, until := validWindow()
		code, err := discount.NewCode("OFF", discount.TypeFixed, decimal.NewFromInt(5), from, until)
		require.NoError(t, err)
		code.IsActive = false

		f.productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*p}, nil)
		f.discountRepo.On("FindByCode", ctx, "OFF").Return(code, nil)

		raw := "OFF"
		_, err = f.service.Checkout(ctx, userID, CreateOrderRequest{
			Items:           []CreateOrderItemRequest{{ProductID: p.ID, Quantity: 1}},
			ShippingAddress: "42 Elm St",
			PaymentMethod:   "CARD",
			DiscountCode:    &raw,
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DISCOUNT", domainErr.Code)
		f.productRepo.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
		f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("maps unknown discount code to invalid discount", func(t *testing.T) {
		f := newCheckoutFixture()
		p := makeProduct(t, "Phone Case", 100, 5)

		f.productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*p}, nil)
		f.discountRepo.On("FindByCode", ctx, "NOPE").Return(nil, shared.ErrNotFound)

		raw := "NOPE"
		_, err := f.service.Checkout(ctx, userID, CreateOrderRequest{
			Items:           []CreateOrderItemRequest{{ProductID: p.ID, Quantity: 1}},
			ShippingAddress: "42 Elm St",
			PaymentMethod:   "CARD",
			DiscountCode:    &raw,
		})
		assert.ErrorIs(t, err, shared.ErrInvalidDiscount)
	})

	t.Run("fails when a product is missing", func(t *testing.T) {
		f := newCheckoutFixture()
		f.productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{}, nil)

		_, err := f.service.Checkout(ctx, userID, CreateOrderRequest{
			Items:           []CreateOrderItemRequest{{ProductID: uuid.New(), Quantity: 1}},
			ShippingAddress: "42 Elm St",
			PaymentMethod:   "COD",
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("fails when a product is inactive", func(t *testing.T) {
		f := newCheckoutFixture()
		p := makeProduct(t, "Phone Case", 10, 5)
		p.Deactivate()
		f.productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*p}, nil)

		_, err := f.service.Checkout(ctx, userID, CreateOrderRequest{
			Items:           []CreateOrderItemRequest{{ProductID: p.ID, Quantity: 1}},
			ShippingAddress: "42 Elm St",
			PaymentMethod:   "COD",
		})
		assert.ErrorIs(t, err, shared.ErrProductUnavailable)
	})

	t.Run("fails on an undeclared option", func(t *testing.T) {
		f := newCheckoutFixture()
		p := makeProduct(t, "Phone Case", 10, 5)
		p.Options = catalog.OptionSet{"Color": {"Red", "Blue"}}
		f.productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*p}, nil)

		_, err := f.service.Checkout(ctx, userID, CreateOrderRequest{
			Items: []CreateOrderItemRequest{{
				ProductID:       p.ID,
				Quantity:        1,
				SelectedOptions: map[string]string{"Color": "Green"},
			}},
			ShippingAddress: "42 Elm St",
			PaymentMethod:   "COD",
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_OPTION", domainErr.Code)
	})

	t.Run("stops at the first insufficient line and does not persist", func(t *testing.T) {
		f := newCheckoutFixture()
		a := makeProduct(t, "A", 1, 10)
		b := makeProduct(t, "B", 1, 0)

		f.productRepo.On("FindByIDs", ctx, mock.Anything).
			Return([]catalog.Product{*a, *b}, nil)
		f.productRepo.On("DecrementStock", ctx, a.ID, 1).Return(9, nil).Maybe()
		f.productRepo.On("DecrementStock", ctx, b.ID, 1).Return(0, shared.ErrInsufficientStock)

		_, err := f.service.Checkout(ctx, userID, CreateOrderRequest{
			Items: []CreateOrderItemRequest{
				{ProductID: a.ID, Quantity: 1},
				{ProductID: b.ID, Quantity: 1},
			},
			ShippingAddress: "42 Elm St",
			PaymentMethod:   "COD",
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects empty carts without touching repositories", func(t *testing.T) {
		f := newCheckoutFixture()
		_, err := f.service.Checkout(ctx, userID, CreateOrderRequest{
			ShippingAddress: "42 Elm St",
			PaymentMethod:   "COD",
		})
		require.Error(t, err)
		f.productRepo.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
	})

	t.Run("propagates save failures", func(t *testing.T) {
		f := newCheckoutFixture()
		p := makeProduct(t, "Phone Case", 10, 5)
		dbErr := errors.New("connection reset")

		f.productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*p}, nil)
		f.productRepo.On("DecrementStock", ctx, p.ID, 1).Return(4, nil)
		f.orderRepo.On("Save", ctx, mock.Anything).Return(dbErr)

		_, err := f.service.Checkout(ctx, userID, CreateOrderRequest{
			Items:           []CreateOrderItemRequest{{ProductID: p.ID, Quantity: 1}},
			ShippingAddress: "42 Elm St",
			PaymentMethod:   "COD",
		})
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestCheckoutService_GetOrder(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	newOrderFor := func(t *testing.T, owner uuid.UUID) *order.Order {
		t.Helper()
		o, err := order.NewOrder(owner, []order.LineInput{{
			ProductID:   uuid.New(),
			ProductName: "Phone Case",
			Quantity:    1,
			UnitPrice:   valueobject.NewMoneyUSDFromFloat(10),
		}}, "42 Elm St", "COD", nil, valueobject.ZeroUSD())
		require.NoError(t, err)
		return o
	}

	t.Run("returns the caller's own order", func(t *testing.T) {
		f := newCheckoutFixture()
		o := newOrderFor(t, userID)
		f.orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

		resp, err := f.service.GetOrder(ctx, userID, o.ID)
		require.NoError(t, err)
		assert.Equal(t, o.ID, resp.ID)
	})

	t.Run("hides other users' orders as not found", func(t *testing.T) {
		f := newCheckoutFixture()
		o := newOrderFor(t, uuid.New())
		f.orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

		_, err := f.service.GetOrder(ctx, userID, o.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCheckoutService_ListOrders(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	f := newCheckoutFixture()
	o, err := order.NewOrder(userID, []order.LineInput{{
		ProductID:   uuid.New(),
		ProductName: "Phone Case",
		Quantity:    1,
		UnitPrice:   valueobject.NewMoneyUSDFromFloat(10),
	}}, "42 Elm St", "COD", nil, valueobject.ZeroUSD())
	require.NoError(t, err)

	f.orderRepo.On("FindByUser", ctx, userID, mock.Anything).Return([]order.Order{*o}, nil)
	f.orderRepo.On("Count", ctx, mock.Anything).Return(int64(1), nil)

	page, err := f.service.ListOrders(ctx, userID, OrderListFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, o.ID, page.Items[0].ID)
}
