package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(99.99), USD)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(99.99)))
		assert.Equal(t, USD, m.Currency())
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(10), "")
		assert.Error(t, err)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("adds amounts with matching currency", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(10.50)
		b := NewMoneyUSDFromFloat(4.50)

		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(15)))
	})

	t.Run("rejects addition across currencies", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(10)
		b, _ := NewMoney(decimal.NewFromInt(10), EUR)

		_, err := a.Add(b)
		assert.Error(t, err)
	})

	t.Run("subtracts amounts", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(100)
		b := NewMoneyUSDFromFloat(30)

		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.True(t, diff.Amount().Equal(decimal.NewFromInt(70)))
	})

	t.Run("multiplies by integer quantity", func(t *testing.T) {
		price := NewMoneyUSDFromFloat(19.99)
		total := price.MultiplyByInt(3)
		assert.True(t, total.Amount().Equal(decimal.NewFromFloat(59.97)))
	})
}

func TestMoney_CalculatePercentage(t *testing.T) {
	subtotal := NewMoneyUSDFromFloat(100)
	discount := subtotal.CalculatePercentage(decimal.NewFromInt(10))
	assert.True(t, discount.Amount().Equal(decimal.NewFromInt(10)))
}

func TestMoney_ClampBetween(t *testing.T) {
	lower := ZeroUSD()
	upper := NewMoneyUSDFromFloat(50)

	t.Run("clamps above upper bound", func(t *testing.T) {
		clamped, err := NewMoneyUSDFromFloat(75).ClampBetween(lower, upper)
		require.NoError(t, err)
		assert.True(t, clamped.Equals(upper))
	})

	t.Run("clamps below lower bound", func(t *testing.T) {
		clamped, err := NewMoneyUSDFromFloat(-5).ClampBetween(lower, upper)
		require.NoError(t, err)
		assert.True(t, clamped.Equals(lower))
	})

	t.Run("keeps value inside range", func(t *testing.T) {
		m := NewMoneyUSDFromFloat(25)
		clamped, err := m.ClampBetween(lower, upper)
		require.NoError(t, err)
		assert.True(t, clamped.Equals(m))
	})

	t.Run("rejects mismatched currencies", func(t *testing.T) {
		eur, _ := NewMoney(decimal.NewFromInt(10), EUR)
		_, err := eur.ClampBetween(lower, upper)
		assert.Error(t, err)
	})
}

func TestMoney_JSON(t *testing.T) {
	m := NewMoneyUSDFromFloat(42.50)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_Scan(t *testing.T) {
	t.Run("scans string value with default currency", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("12.34"))
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(12.34)))
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("scans nil as zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		var m Money
		assert.Error(t, m.Scan(12.34))
	})
}
