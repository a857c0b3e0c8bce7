package providers

import (
	"context"

	"github.com/famvault/famvault-backend/internal/core/domain"
)

// RateProvider is the extension point for real exchange-rate feeds.
// Implementations return a table of rates relative to the given base currency
// or an error, in which case the rates service falls back down its chain.
type RateProvider interface {
	// Name identifies the provider in logs.
	Name() string

	// FetchRates returns a full rate table against baseCurrency.
	FetchRates(ctx context.Context, baseCurrency string) (domain.RateTable, error)
}
