package rates_test

import (
	"context"
	"testing"

	"github.com/famvault/famvault-backend/internal/adapters/rates"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider_FetchRates_DefaultBase(t *testing.T) {
	provider := rates.NewStaticProvider()

	table, err := provider.FetchRates(context.Background(), "GHS")

	require.NoError(t, err)
	base, ok := table.Rate("GHS")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(1).Equal(base))

	usd, ok := table.Rate("USD")
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("0.085").Equal(usd))
}

func TestStaticProvider_FetchRates_RebasedOntoUSD(t *testing.T) {
	provider := rates.NewStaticProvider()

	table, err := provider.FetchRates(context.Background(), "USD")

	require.NoError(t, err)
	base, ok := table.Rate("USD")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(1).Equal(base))

	// 1 USD worth of GHS under the built-in table.
	ghs, ok := table.Rate("GHS")
	require.True(t, ok)
	expected := decimal.NewFromInt(1).Div(decimal.RequireFromString("0.085"))
	assert.True(t, expected.Equal(ghs))
}

func TestStaticProvider_FetchRates_UnknownBase(t *testing.T) {
	provider := rates.NewStaticProvider()

	table, err := provider.FetchRates(context.Background(), "XXX")

	require.NoError(t, err)
	base, ok := table.Rate("XXX")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(1).Equal(base))
}
