package domain

import "github.com/shopspring/decimal"

// Account is a caller-supplied record of a single money account. The service
// only reads Balance and Currency; everything else about accounts lives in
// the mobile app's own store.
type Account struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"` // empty means the user's default currency
}
