package domain_test

import (
	"testing"
	"time"

	"github.com/famvault/famvault-backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoanOutstanding(t *testing.T) {
	loan := domain.Loan{
		Amount:     decimal.RequireFromString("1000"),
		AmountPaid: decimal.RequireFromString("250"),
	}
	assert.True(t, decimal.RequireFromString("750").Equal(loan.Outstanding()))
}

func TestLoanOutstanding_OverpaidClampsToZero(t *testing.T) {
	loan := domain.Loan{
		Amount:     decimal.RequireFromString("1000"),
		AmountPaid: decimal.RequireFromString("1200"),
	}
	assert.True(t, loan.Outstanding().IsZero())
}

func TestRateSnapshotIsStale(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	ttl := time.Hour

	assert.True(t, domain.RateSnapshot{}.IsStale(ttl, now), "a snapshot that was never captured is stale")

	fresh := domain.RateSnapshot{FetchedAt: now.Add(-30 * time.Minute)}
	assert.False(t, fresh.IsStale(ttl, now))

	boundary := domain.RateSnapshot{FetchedAt: now.Add(-time.Hour)}
	assert.False(t, boundary.IsStale(ttl, now), "exactly one hour old is still fresh")

	old := domain.RateSnapshot{FetchedAt: now.Add(-time.Hour - time.Second)}
	assert.True(t, old.IsStale(ttl, now))
}

func TestRateTableClone(t *testing.T) {
	table := domain.RateTable{"USD": decimal.RequireFromString("0.085")}
	clone := table.Clone()
	clone["USD"] = decimal.NewFromInt(999)

	rate, ok := table.Rate("USD")
	assert.True(t, ok)
	assert.True(t, decimal.RequireFromString("0.085").Equal(rate))
}

func TestDefaultUserCurrencySettings(t *testing.T) {
	settings := domain.DefaultUserCurrencySettings("user-1", "GHS")

	assert.Equal(t, "user-1", settings.UserID)
	assert.Equal(t, "GHS", settings.DefaultCurrency)
	assert.Equal(t, "GHS", settings.DisplayCurrency)
	assert.True(t, settings.AutoConvert)
	assert.NotNil(t, settings.AccountCurrencies)
	assert.Empty(t, settings.AccountCurrencies)
}
