package services

import (
	"context"

	"github.com/famvault/famvault-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatOptions controls how FormatCurrency renders an amount.
type FormatOptions struct {
	// Decimals is the number of fraction digits. Negative means the default of 2.
	Decimals int
	// ShowCode suffixes the currency code instead of prefixing the symbol.
	ShowCode bool
}

// DefaultFormatOptions renders with the currency symbol and 2 fraction digits.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{Decimals: -1}
}

// CurrencyCatalogSvc exposes the static descriptor list for supported currencies.
type CurrencyCatalogSvc interface {
	// SupportedCurrencies returns the fixed, ordered list of currency descriptors.
	SupportedCurrencies() []domain.Currency

	// CurrencyInfo returns the descriptor for code, falling back to the
	// default descriptor when the code is unknown. It never fails.
	CurrencyInfo(code string) domain.Currency

	// CurrencySymbol returns the display symbol for code.
	CurrencySymbol(code string) string
}

// CurrencyConverterSvc converts and formats monetary amounts.
// All methods are read paths: they never return errors, degrading to the
// original amount (or an empty string) when a rate or input is unusable.
type CurrencyConverterSvc interface {
	// ConvertCurrency converts amount from one currency to another via the
	// base currency, rounded to 2 decimal places. A zero amount, identical
	// codes, or a missing rate all yield the amount unchanged.
	ConvertCurrency(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) decimal.Decimal

	// FormatCurrency renders amount with thousands separators and the
	// currency symbol (or code). Returns "" when amount is nil.
	FormatCurrency(amount *decimal.Decimal, code string, opts FormatOptions) string

	// ExchangeRate returns the rate from fromCode to toCode, and false when
	// either side is missing from the rate table. Identical codes yield 1.
	ExchangeRate(fromCode, toCode string) (decimal.Decimal, bool)

	// ConversionInfo bundles a conversion result for UI display.
	ConversionInfo(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) domain.ConversionInfo
}

// BalanceAggregatorSvc applies per-user settings to account, transaction and
// loan records supplied by the caller.
type BalanceAggregatorSvc interface {
	// ConvertAccountBalance converts an account's balance to the display
	// currency, honouring the user's auto-convert flag.
	ConvertAccountBalance(ctx context.Context, account domain.Account, displayCurrency string, settings domain.UserCurrencySettings) decimal.Decimal

	// ConvertTransactionAmount converts a transaction's amount to the display
	// currency, honouring the user's auto-convert flag.
	ConvertTransactionAmount(ctx context.Context, txn domain.Transaction, displayCurrency string, settings domain.UserCurrencySettings) decimal.Decimal

	// TotalBalanceInCurrency aggregates net worth across accounts and loans
	// into a single display-currency figure.
	TotalBalanceInCurrency(ctx context.Context, accounts []domain.Account, displayCurrency string, settings domain.UserCurrencySettings, loans []domain.Loan) decimal.Decimal
}

// CurrencySvcFacade combines all currency-related service interfaces.
type CurrencySvcFacade interface {
	CurrencyCatalogSvc
	CurrencyConverterSvc
	BalanceAggregatorSvc
}
