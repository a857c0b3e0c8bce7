package dto

import (
	"time"

	"github.com/famvault/famvault-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RatesResponse returns the full rate table currently in use.
type RatesResponse struct {
	BaseCurrency string                     `json:"baseCurrency"`
	Rates        map[string]decimal.Decimal `json:"rates"`
	FetchedAt    time.Time                  `json:"fetchedAt"`
	Stale        bool                       `json:"stale"`
}

// RefreshRatesResponse reports the outcome of a forced refresh.
type RefreshRatesResponse struct {
	Source    string    `json:"source"` // which fallback layer supplied the table
	FetchedAt time.Time `json:"fetchedAt"`
}

// PairRateResponse returns the rate between two specific currencies.
type PairRateResponse struct {
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Rate         decimal.Decimal `json:"rate"`
	LastUpdated  time.Time       `json:"lastUpdated"`
}

// ToRatesResponse converts a rate snapshot to a RatesResponse DTO.
func ToRatesResponse(base string, snapshot domain.RateSnapshot, stale bool) RatesResponse {
	return RatesResponse{
		BaseCurrency: base,
		Rates:        snapshot.Rates,
		FetchedAt:    snapshot.FetchedAt,
		Stale:        stale,
	}
}
