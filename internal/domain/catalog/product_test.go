package catalog

import (
	"testing"

	"github.com/modernstore/backend/internal/domain/shared"
	"github.com/modernstore/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates active product with valid input", func(t *testing.T) {
		product, err := NewProduct("Wireless Mouse", "Electronics", valueobject.NewMoneyUSDFromFloat(29.99), 100)
		require.NoError(t, err)

		assert.Equal(t, "Wireless Mouse", product.Name)
		assert.Equal(t, "Electronics", product.Category)
		assert.Equal(t, 100, product.Stock)
		assert.True(t, product.IsActive)
		assert.NotEqual(t, product.ID.String(), "00000000-0000-0000-0000-000000000000")
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct("", "Electronics", valueobject.ZeroUSD(), 0)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PRODUCT_NAME", domainErr.Code)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct("Mouse", "Electronics", valueobject.NewMoneyUSDFromFloat(-1), 0)
		assert.Error(t, err)
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		_, err := NewProduct("Mouse", "Electronics", valueobject.ZeroUSD(), -5)
		assert.Error(t, err)
	})
}

func TestProduct_ActivationLifecycle(t *testing.T) {
	product, err := NewProduct("Keyboard", "Electronics", valueobject.NewMoneyUSDFromFloat(49.99), 10)
	require.NoError(t, err)

	product.Deactivate()
	assert.False(t, product.IsAvailable())

	product.Activate()
	assert.True(t, product.IsAvailable())
}

func TestProduct_UpdatePrice(t *testing.T) {
	product, err := NewProduct("Keyboard", "Electronics", valueobject.NewMoneyUSDFromFloat(49.99), 10)
	require.NoError(t, err)

	t.Run("accepts new price", func(t *testing.T) {
		require.NoError(t, product.UpdatePrice(valueobject.NewMoneyUSDFromFloat(39.99)))
		assert.True(t, product.GetPriceMoney().Equals(valueobject.NewMoneyUSDFromFloat(39.99)))
	})

	t.Run("rejects negative price", func(t *testing.T) {
		assert.Error(t, product.UpdatePrice(valueobject.NewMoneyUSDFromFloat(-10)))
	})
}

func TestProduct_ValidateOptions(t *testing.T) {
	product, err := NewProduct("T-Shirt", "Apparel", valueobject.NewMoneyUSDFromFloat(19.99), 50)
	require.NoError(t, err)
	product.Options = OptionSet{
		"Color": {"Red", "Blue"},
		"Size":  {"M", "L", "XL"},
	}

	t.Run("accepts declared options", func(t *testing.T) {
		err := product.ValidateOptions(map[string]string{"Color": "Red", "Size": "L"})
		assert.NoError(t, err)
	})

	t.Run("accepts empty selection", func(t *testing.T) {
		assert.NoError(t, product.ValidateOptions(nil))
	})

	t.Run("rejects undeclared option key", func(t *testing.T) {
		err := product.ValidateOptions(map[string]string{"Material": "Cotton"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_OPTION", domainErr.Code)
	})

	t.Run("rejects undeclared option value", func(t *testing.T) {
		err := product.ValidateOptions(map[string]string{"Color": "Green"})
		assert.Error(t, err)
	})
}
