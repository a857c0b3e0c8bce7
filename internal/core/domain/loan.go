package domain

import "github.com/shopspring/decimal"

// LoanStatus is the lifecycle state of a loan record.
type LoanStatus string

const (
	LoanStatusActive LoanStatus = "active"
	LoanStatusPaid   LoanStatus = "paid"
)

// Loan is a caller-supplied record of money lent or borrowed. IsLender is
// from the current user's point of view: true when the user lent the money,
// false when the user borrowed it.
type Loan struct {
	LoanID     string          `json:"loanID"`
	Amount     decimal.Decimal `json:"amount"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
	Currency   string          `json:"currency"` // empty means the user's default currency
	Status     LoanStatus      `json:"status"`
	IsLender   bool            `json:"isLender"`
}

// Outstanding returns the unpaid principal, never below zero.
func (l Loan) Outstanding() decimal.Decimal {
	rest := l.Amount.Sub(l.AmountPaid)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}
