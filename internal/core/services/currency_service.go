package services

import (
	"context"
	"log/slog"
	"strings"

	portssvc "github.com/famvault/famvault-backend/internal/core/ports/services"

	"github.com/famvault/famvault-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// supportedCurrencies is the fixed descriptor list the app exposes. Order
// matters: the default currency is moved to the front at construction and
// unknown codes fall back to that first entry.
var supportedCurrencies = []domain.Currency{
	{CurrencyCode: "GHS", Name: "Ghanaian Cedi", Symbol: "₵", Flag: "🇬🇭"},
	{CurrencyCode: "USD", Name: "US Dollar", Symbol: "$", Flag: "🇺🇸"},
	{CurrencyCode: "EUR", Name: "Euro", Symbol: "€", Flag: "🇪🇺"},
	{CurrencyCode: "GBP", Name: "British Pound", Symbol: "£", Flag: "🇬🇧"},
	{CurrencyCode: "NGN", Name: "Nigerian Naira", Symbol: "₦", Flag: "🇳🇬"},
	{CurrencyCode: "ZAR", Name: "South African Rand", Symbol: "R", Flag: "🇿🇦"},
	{CurrencyCode: "KES", Name: "Kenyan Shilling", Symbol: "KSh", Flag: "🇰🇪"},
	{CurrencyCode: "CAD", Name: "Canadian Dollar", Symbol: "C$", Flag: "🇨🇦"},
	{CurrencyCode: "AUD", Name: "Australian Dollar", Symbol: "A$", Flag: "🇦🇺"},
	{CurrencyCode: "JPY", Name: "Japanese Yen", Symbol: "¥", Flag: "🇯🇵"},
	{CurrencyCode: "CNY", Name: "Chinese Yuan", Symbol: "¥", Flag: "🇨🇳"},
	{CurrencyCode: "INR", Name: "Indian Rupee", Symbol: "₹", Flag: "🇮🇳"},
}

// currencyService converts, formats and aggregates monetary amounts. It holds
// no mutable state of its own; the rate table lives behind the injected
// snapshot source.
//
// Every method here is a read path for the UI and follows the never-throw
// discipline: a missing rate or unusable input degrades to the original
// amount (or an empty string), never to an error. A rate-table gap must not
// silently zero out a balance downstream.
type currencyService struct {
	BaseService
	rates        portssvc.RateSnapshotSource
	baseCurrency string
	catalog      []domain.Currency
}

// NewCurrencyService creates a new currency service pivoting on baseCurrency.
func NewCurrencyService(rates portssvc.RateSnapshotSource, baseCurrency string) portssvc.CurrencySvcFacade {
	return &currencyService{
		rates:        rates,
		baseCurrency: baseCurrency,
		catalog:      buildCatalog(baseCurrency),
	}
}

// Ensure currencyService implements the CurrencySvcFacade interface
var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// buildCatalog orders the static list with the default currency first and its
// IsDefault flag set. A base currency outside the static list is prepended
// with its code as name and symbol so lookups still have a default to fall
// back to.
func buildCatalog(baseCurrency string) []domain.Currency {
	catalog := make([]domain.Currency, 0, len(supportedCurrencies)+1)
	var defaultEntry *domain.Currency
	for _, c := range supportedCurrencies {
		if c.CurrencyCode == baseCurrency {
			entry := c
			entry.IsDefault = true
			defaultEntry = &entry
			continue
		}
		catalog = append(catalog, c)
	}
	if defaultEntry == nil {
		defaultEntry = &domain.Currency{
			CurrencyCode: baseCurrency,
			Name:         baseCurrency,
			Symbol:       baseCurrency,
			IsDefault:    true,
		}
	}
	return append([]domain.Currency{*defaultEntry}, catalog...)
}

// SupportedCurrencies returns the fixed ordered descriptor list.
func (s *currencyService) SupportedCurrencies() []domain.Currency {
	out := make([]domain.Currency, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// CurrencyInfo returns the descriptor for code, or the default descriptor
// when the code is unknown. It never fails.
func (s *currencyService) CurrencyInfo(code string) domain.Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range s.catalog {
		if c.CurrencyCode == code {
			return c
		}
	}
	return s.catalog[0]
}

// CurrencySymbol returns the display symbol for code.
func (s *currencyService) CurrencySymbol(code string) string {
	return s.CurrencyInfo(code).Symbol
}

// ConvertCurrency converts amount between currencies via the base currency:
// (amount / rate[from]) * rate[to], rounded to 2 decimal places. A zero
// amount or identical codes pass straight through. A missing rate on either
// side logs a warning and returns the amount unchanged; that pass-through is
// a business rule, not an accident.
func (s *currencyService) ConvertCurrency(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) decimal.Decimal {
	if amount.IsZero() || fromCode == toCode {
		return amount
	}

	rates := s.rates.Snapshot().Rates
	fromRate, fromOK := rates.Rate(fromCode)
	toRate, toOK := rates.Rate(toCode)
	if !fromOK || !toOK || fromRate.IsZero() {
		s.LogWarn(ctx, "Exchange rate missing, returning amount unconverted",
			slog.String("from_currency", fromCode),
			slog.String("to_currency", toCode),
			slog.Bool("from_rate_known", fromOK),
			slog.Bool("to_rate_known", toOK))
		return amount
	}

	return amount.Div(fromRate).Mul(toRate).Round(2)
}

// FormatCurrency renders amount with thousands separators and a fixed number
// of fraction digits, prefixed with the currency symbol (or suffixed with the
// code) and a leading minus for negative amounts. A nil amount yields "".
func (s *currencyService) FormatCurrency(amount *decimal.Decimal, code string, opts portssvc.FormatOptions) string {
	if amount == nil {
		return ""
	}

	decimals := opts.Decimals
	if decimals < 0 {
		decimals = 2
	}

	negative := amount.IsNegative()
	fixed := amount.Abs().StringFixed(int32(decimals))

	intPart := fixed
	fracPart := ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i:]
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	if !opts.ShowCode {
		b.WriteString(s.CurrencySymbol(code))
	}
	b.WriteString(groupThousands(intPart))
	b.WriteString(fracPart)
	if opts.ShowCode {
		b.WriteByte(' ')
		b.WriteString(strings.ToUpper(code))
	}
	return b.String()
}

// groupThousands inserts comma separators into a plain digit string.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	b.Grow(n + (n-1)/3)
	lead := n % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// ExchangeRate returns the rate from fromCode to toCode (toRate/fromRate) and
// whether both sides are known. Identical codes always yield 1. This feeds UI
// display of the rate itself; conversions go through ConvertCurrency.
func (s *currencyService) ExchangeRate(fromCode, toCode string) (decimal.Decimal, bool) {
	if fromCode == toCode {
		return decimal.NewFromInt(1), true
	}

	rates := s.rates.Snapshot().Rates
	fromRate, fromOK := rates.Rate(fromCode)
	toRate, toOK := rates.Rate(toCode)
	if !fromOK || !toOK || fromRate.IsZero() {
		return decimal.Decimal{}, false
	}
	return toRate.Div(fromRate), true
}

// ConversionInfo composes a read-only display bundle for one conversion.
func (s *currencyService) ConversionInfo(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) domain.ConversionInfo {
	rate, _ := s.ExchangeRate(fromCode, toCode)
	return domain.ConversionInfo{
		Amount:          amount,
		FromCurrency:    fromCode,
		ConvertedAmount: s.ConvertCurrency(ctx, amount, fromCode, toCode),
		ToCurrency:      toCode,
		Rate:            rate,
		LastUpdated:     s.rates.Snapshot().FetchedAt,
	}
}

// ConvertAccountBalance converts an account balance to the display currency.
// When the user has switched auto-convert off and the account's own currency
// differs from the display currency, the raw balance is returned untouched.
func (s *currencyService) ConvertAccountBalance(ctx context.Context, account domain.Account, displayCurrency string, settings domain.UserCurrencySettings) decimal.Decimal {
	if account.Balance.IsZero() {
		return decimal.Zero
	}

	accountCurrency := s.accountCurrency(account, settings)
	if !settings.AutoConvert && accountCurrency != displayCurrency {
		return account.Balance
	}
	return s.ConvertCurrency(ctx, account.Balance, accountCurrency, displayCurrency)
}

// ConvertTransactionAmount converts a transaction amount to the display
// currency, with the same auto-convert pass-through as account balances.
func (s *currencyService) ConvertTransactionAmount(ctx context.Context, txn domain.Transaction, displayCurrency string, settings domain.UserCurrencySettings) decimal.Decimal {
	if txn.Amount.IsZero() {
		return decimal.Zero
	}

	txnCurrency := s.resolveCurrency(txn.Currency, settings)
	if !settings.AutoConvert && txnCurrency != displayCurrency {
		return txn.Amount
	}
	return s.ConvertCurrency(ctx, txn.Amount, txnCurrency, displayCurrency)
}

// TotalBalanceInCurrency aggregates net worth: every account balance is
// converted to the base currency and summed, outstanding principal of active
// loans the user borrowed is subtracted, and the net figure is converted once
// to the display currency. Loans the user lent are excluded from the
// subtraction; the lent money is already reflected as an asset elsewhere and
// subtracting it would double count. Converting through the base keeps a
// single rounding step at the boundary instead of pairwise conversions.
func (s *currencyService) TotalBalanceInCurrency(ctx context.Context, accounts []domain.Account, displayCurrency string, settings domain.UserCurrencySettings, loans []domain.Loan) decimal.Decimal {
	total := decimal.Zero

	for _, account := range accounts {
		if account.Balance.IsZero() {
			continue
		}
		accountCurrency := s.accountCurrency(account, settings)
		total = total.Add(s.ConvertCurrency(ctx, account.Balance, accountCurrency, s.baseCurrency))
	}

	for _, loan := range loans {
		if loan.Status != domain.LoanStatusActive || loan.IsLender {
			continue
		}
		outstanding := loan.Outstanding()
		if outstanding.IsZero() {
			continue
		}
		loanCurrency := s.resolveCurrency(loan.Currency, settings)
		total = total.Sub(s.ConvertCurrency(ctx, outstanding, loanCurrency, s.baseCurrency))
	}

	return s.ConvertCurrency(ctx, total, s.baseCurrency, displayCurrency)
}

// accountCurrency resolves the currency an account's balance is held in: the
// account's own currency field, then the per-account override from the user's
// settings, then the user's default currency.
func (s *currencyService) accountCurrency(account domain.Account, settings domain.UserCurrencySettings) string {
	if account.Currency != "" {
		return account.Currency
	}
	if override, ok := settings.AccountCurrencies[account.AccountID]; ok && override != "" {
		return override
	}
	return s.resolveCurrency("", settings)
}

// resolveCurrency substitutes the user's default (or the base currency) for
// an empty currency field.
func (s *currencyService) resolveCurrency(currency string, settings domain.UserCurrencySettings) string {
	if currency != "" {
		return currency
	}
	if settings.DefaultCurrency != "" {
		return settings.DefaultCurrency
	}
	return s.baseCurrency
}
