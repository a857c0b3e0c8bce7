package dto

import (
	"github.com/famvault/famvault-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountRecord is an account as the mobile app holds it; only balance and
// currency matter to aggregation.
type AccountRecord struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
}

// LoanRecord is a loan as the mobile app holds it.
type LoanRecord struct {
	LoanID     string          `json:"loanID"`
	Amount     decimal.Decimal `json:"amount"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
	Currency   string          `json:"currency"`
	Status     string          `json:"status"`
	IsLender   bool            `json:"isLender"`
}

// NetWorthRequest asks for a multi-currency net worth aggregation. Accounts
// and loans are supplied by the caller because they live in the app's own
// store, not in this service.
type NetWorthRequest struct {
	Accounts        []AccountRecord `json:"accounts" binding:"required"`
	Loans           []LoanRecord    `json:"loans"`
	DisplayCurrency string          `json:"displayCurrency" binding:"required,currencycode"`
}

// NetWorthResponse returns the aggregated figure.
type NetWorthResponse struct {
	Total           decimal.Decimal `json:"total"`
	DisplayCurrency string          `json:"displayCurrency"`
	Formatted       string          `json:"formatted"`
}

// ToDomainAccounts converts the request records to domain accounts.
func (r NetWorthRequest) ToDomainAccounts() []domain.Account {
	accounts := make([]domain.Account, len(r.Accounts))
	for i, a := range r.Accounts {
		accounts[i] = domain.Account{
			AccountID: a.AccountID,
			Name:      a.Name,
			Balance:   a.Balance,
			Currency:  a.Currency,
		}
	}
	return accounts
}

// ToDomainLoans converts the request records to domain loans.
func (r NetWorthRequest) ToDomainLoans() []domain.Loan {
	loans := make([]domain.Loan, len(r.Loans))
	for i, l := range r.Loans {
		loans[i] = domain.Loan{
			LoanID:     l.LoanID,
			Amount:     l.Amount,
			AmountPaid: l.AmountPaid,
			Currency:   l.Currency,
			Status:     domain.LoanStatus(l.Status),
			IsLender:   l.IsLender,
		}
	}
	return loans
}
