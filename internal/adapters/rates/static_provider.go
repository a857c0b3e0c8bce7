package rates

import (
	"context"

	portsprov "github.com/famvault/famvault-backend/internal/core/ports/providers"

	"github.com/famvault/famvault-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// staticProvider serves a fixed rate table. It stands in for a live feed in
// deployments that have not configured one.
type staticProvider struct {
	table domain.RateTable
}

// NewStaticProvider creates the built-in stand-in rate feed.
func NewStaticProvider() portsprov.RateProvider {
	return &staticProvider{
		table: domain.RateTable{
			"GHS": decimal.RequireFromString("1.0"),
			"USD": decimal.RequireFromString("0.085"),
			"EUR": decimal.RequireFromString("0.078"),
			"GBP": decimal.RequireFromString("0.067"),
			"NGN": decimal.RequireFromString("130.5"),
			"ZAR": decimal.RequireFromString("1.55"),
			"KES": decimal.RequireFromString("11.0"),
			"CAD": decimal.RequireFromString("0.116"),
			"AUD": decimal.RequireFromString("0.13"),
			"JPY": decimal.RequireFromString("12.6"),
			"CNY": decimal.RequireFromString("0.61"),
			"INR": decimal.RequireFromString("7.1"),
		},
	}
}

// Ensure staticProvider implements the RateProvider interface
var _ portsprov.RateProvider = (*staticProvider)(nil)

func (p *staticProvider) Name() string {
	return "static"
}

// FetchRates returns the built-in table rebased onto baseCurrency.
func (p *staticProvider) FetchRates(_ context.Context, baseCurrency string) (domain.RateTable, error) {
	baseRate, ok := p.table[baseCurrency]
	if !ok || baseRate.IsZero() {
		out := p.table.Clone()
		out[baseCurrency] = decimal.NewFromInt(1)
		return out, nil
	}

	out := make(domain.RateTable, len(p.table))
	for code, rate := range p.table {
		out[code] = rate.Div(baseRate)
	}
	return out, nil
}
