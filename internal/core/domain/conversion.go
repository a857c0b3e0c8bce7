package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionInfo is a read-only bundle describing a single conversion, for UI
// display next to a converted amount.
type ConversionInfo struct {
	Amount          decimal.Decimal `json:"amount"`
	FromCurrency    string          `json:"fromCurrency"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	ToCurrency      string          `json:"toCurrency"`
	Rate            decimal.Decimal `json:"rate"`
	LastUpdated     time.Time       `json:"lastUpdated"`
}
