package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateTable maps a currency code to its exchange rate relative to the base
// currency. The base currency itself always carries a rate of exactly 1.
// Tables are replaced wholesale on refresh, never mutated in place.
type RateTable map[string]decimal.Decimal

// Rate returns the rate for code and whether the table carries it.
func (t RateTable) Rate(code string) (decimal.Decimal, bool) {
	r, ok := t[code]
	return r, ok
}

// Clone returns an independent copy of the table so callers can hold on to a
// snapshot without observing later refreshes.
func (t RateTable) Clone() RateTable {
	out := make(RateTable, len(t))
	for code, rate := range t {
		out[code] = rate
	}
	return out
}

// RateSnapshot pairs a rate table with the moment it was captured.
type RateSnapshot struct {
	Rates     RateTable `json:"rates"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// IsStale reports whether the snapshot is older than ttl at the given moment.
// Staleness is advisory only; nothing blocks on a stale snapshot, it merely
// makes the snapshot eligible for refresh.
func (s RateSnapshot) IsStale(ttl time.Duration, now time.Time) bool {
	if s.FetchedAt.IsZero() {
		return true
	}
	return now.Sub(s.FetchedAt) > ttl
}

// RateSource names where the currently installed rate table came from.
// It makes the layered fallback (cache, provider, hard defaults) observable
// in logs instead of only in free-text messages.
type RateSource string

const (
	RateSourceCache    RateSource = "cache"
	RateSourceProvider RateSource = "provider"
	RateSourceDefaults RateSource = "defaults"
)
