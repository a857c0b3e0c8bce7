package domain

import "github.com/shopspring/decimal"

// Transaction is a caller-supplied record of a single transaction. Only
// Amount and Currency matter to conversion.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"` // empty means the user's default currency
	Category      string          `json:"category"`
}
