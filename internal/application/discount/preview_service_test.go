package discount

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/modernstore/backend/internal/domain/discount"
	"github.com/modernstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDiscountRepository is a mock implementation of discount.Repository
type MockDiscountRepository struct {
	mock.Mock
}

func (m *MockDiscountRepository) FindByCode(ctx context.Context, code string) (*discount.Code, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discount.Code), args.Error(1)
}

func (m *MockDiscountRepository) Save(ctx context.Context, code *discount.Code) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockDiscountRepository) IncrementUsage(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func TestPreviewService_Preview(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	newCode := func(t *testing.T) *discount.Code {
		t.Helper()
		c, err := discount.NewCode("SAVE10", discount.TypePercentage, decimal.NewFromInt(10),
			now.Add(-time.Hour), now.Add(time.Hour))
		require.NoError(t, err)
		return c
	}

	t.Run("returns discount and new total for a valid code", func(t *testing.T) {
		repo := new(MockDiscountRepository)
		repo.On("FindByCode", ctx, "SAVE10").Return(newCode(t), nil)
		service := NewPreviewService(repo)

		resp, err := service.Preview(ctx, PreviewRequest{Code: "SAVE10", Subtotal: decimal.NewFromInt(100)})
		require.NoError(t, err)

		assert.True(t, resp.Valid)
		assert.True(t, resp.DiscountAmount.Equal(decimal.NewFromInt(10)))
		assert.True(t, resp.NewTotal.Equal(decimal.NewFromInt(90)))
	})

	t.Run("unknown code is an invalid preview, not an error", func(t *testing.T) {
		repo := new(MockDiscountRepository)
		repo.On("FindByCode", ctx, "NOPE").Return(nil, shared.ErrNotFound)
		service := NewPreviewService(repo)

		resp, err := service.Preview(ctx, PreviewRequest{Code: "NOPE", Subtotal: decimal.NewFromInt(100)})
		require.NoError(t, err)

		assert.False(t, resp.Valid)
		assert.True(t, resp.DiscountAmount.IsZero())
		assert.True(t, resp.NewTotal.Equal(decimal.NewFromInt(100)))
	})

	t.Run("expired code reports why", func(t *testing.T) {
		c, err := discount.NewCode("OLD", discount.TypeFixed, decimal.NewFromInt(5),
			now.Add(-48*time.Hour), now.Add(-24*time.Hour))
		require.NoError(t, err)

		repo := new(MockDiscountRepository)
		repo.On("FindByCode", ctx, "OLD").Return(c, nil)
		service := NewPreviewService(repo)

		resp, err := service.Preview(ctx, PreviewRequest{Code: "OLD", Subtotal: decimal.NewFromInt(100)})
		require.NoError(t, err)

		assert.False(t, resp.Valid)
		assert.Contains(t, resp.Message, "expired")
	})

	t.Run("preview never bumps usage", func(t *testing.T) {
		repo := new(MockDiscountRepository)
		repo.On("FindByCode", ctx, "SAVE10").Return(newCode(t), nil)
		service := NewPreviewService(repo)

		_, err := service.Preview(ctx, PreviewRequest{Code: "SAVE10", Subtotal: decimal.NewFromInt(100)})
		require.NoError(t, err)
		repo.AssertNotCalled(t, "IncrementUsage", mock.Anything, mock.Anything)
	})

	t.Run("rejects negative subtotals", func(t *testing.T) {
		repo := new(MockDiscountRepository)
		service := NewPreviewService(repo)

		_, err := service.Preview(ctx, PreviewRequest{Code: "SAVE10", Subtotal: decimal.NewFromInt(-1)})
		require.Error(t, err)
	})

	t.Run("propagates repository failures", func(t *testing.T) {
		dbErr := errors.New("connection reset")
		repo := new(MockDiscountRepository)
		repo.On("FindByCode", ctx, "SAVE10").Return(nil, dbErr)
		service := NewPreviewService(repo)

		_, err := service.Preview(ctx, PreviewRequest{Code: "SAVE10", Subtotal: decimal.NewFromInt(100)})
		assert.ErrorIs(t, err, dbErr)
	})
}
