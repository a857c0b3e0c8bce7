package dto

import (
	"time"

	"github.com/famvault/famvault-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConvertRequest asks for a single amount conversion.
type ConvertRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	FromCurrency string          `json:"fromCurrency" binding:"required,currencycode"`
	ToCurrency   string          `json:"toCurrency" binding:"required,currencycode"`
}

// ConversionInfoResponse bundles everything the UI shows next to a converted amount.
type ConversionInfoResponse struct {
	Amount          decimal.Decimal `json:"amount"`
	FromCurrency    string          `json:"fromCurrency"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	ToCurrency      string          `json:"toCurrency"`
	Rate            decimal.Decimal `json:"rate"`
	LastUpdated     time.Time       `json:"lastUpdated"`
	Formatted       string          `json:"formatted"`
}

// ToConversionInfoResponse converts a domain.ConversionInfo to its DTO,
// attaching the display-formatted string.
func ToConversionInfoResponse(info domain.ConversionInfo, formatted string) ConversionInfoResponse {
	return ConversionInfoResponse{
		Amount:          info.Amount,
		FromCurrency:    info.FromCurrency,
		ConvertedAmount: info.ConvertedAmount,
		ToCurrency:      info.ToCurrency,
		Rate:            info.Rate,
		LastUpdated:     info.LastUpdated,
		Formatted:       formatted,
	}
}
