package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	portsprov "github.com/famvault/famvault-backend/internal/core/ports/providers"
	portsrepo "github.com/famvault/famvault-backend/internal/core/ports/repositories"
	portssvc "github.com/famvault/famvault-backend/internal/core/ports/services"

	"github.com/famvault/famvault-backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// DefaultRatesTTL is the freshness window after which a rate table becomes
// eligible for refresh.
const DefaultRatesTTL = time.Hour

// ratesService owns the process-wide rate table. It is an injectable struct,
// not a singleton: tests construct isolated instances.
//
// The table is installed through a layered fallback. Initialize tries the
// persisted cache first, then the providers, then hard-coded defaults;
// whichever layer supplied the table is reported and logged so a degraded
// table is visible in operations, not only in free-text messages. No path
// ever leaves the table empty.
type ratesService struct {
	BaseService
	cacheRepo    portsrepo.RateCacheRepositoryFacade
	providers    []portsprov.RateProvider
	baseCurrency string
	ttl          time.Duration
	now          func() time.Time

	mu       sync.RWMutex
	snapshot domain.RateSnapshot
	source   domain.RateSource

	flight singleflight.Group
}

// RatesServiceOption is a functional option for configuring the rates service
type RatesServiceOption func(*ratesService)

// WithRateProviders sets the external rate feeds, tried in order.
func WithRateProviders(providers ...portsprov.RateProvider) RatesServiceOption {
	return func(s *ratesService) {
		s.providers = providers
	}
}

// WithRatesTTL overrides the default 1-hour freshness window.
func WithRatesTTL(ttl time.Duration) RatesServiceOption {
	return func(s *ratesService) {
		s.ttl = ttl
	}
}

// WithRatesClock overrides the time source, for tests.
func WithRatesClock(now func() time.Time) RatesServiceOption {
	return func(s *ratesService) {
		s.now = now
	}
}

// NewRatesService creates a new rates service for the given base currency.
func NewRatesService(cacheRepo portsrepo.RateCacheRepositoryFacade, baseCurrency string, options ...RatesServiceOption) portssvc.RateSvcFacade {
	svc := &ratesService{
		cacheRepo:    cacheRepo,
		baseCurrency: baseCurrency,
		ttl:          DefaultRatesTTL,
		now:          time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure ratesService implements the RateSvcFacade interface
var _ portssvc.RateSvcFacade = (*ratesService)(nil)

// Initialize installs a rate table if none is present or the current one has
// outlived its TTL. Concurrent callers share a single pass through the
// fallback chain; the advisory nature of the data makes last-write-wins
// acceptable here.
func (s *ratesService) Initialize(ctx context.Context) domain.RateSource {
	s.mu.RLock()
	if !s.snapshot.IsStale(s.ttl, s.now()) {
		source := s.source
		s.mu.RUnlock()
		return source
	}
	s.mu.RUnlock()

	result, _, _ := s.flight.Do("initialize", func() (interface{}, error) {
		return s.initializeOnce(ctx), nil
	})
	return result.(domain.RateSource)
}

func (s *ratesService) initializeOnce(ctx context.Context) domain.RateSource {
	if cached := s.loadCachedSnapshot(ctx); cached != nil && !cached.IsStale(s.ttl, s.now()) {
		s.install(*cached, domain.RateSourceCache)
		s.LogInfo(ctx, "Exchange rates restored from cache",
			slog.Time("fetched_at", cached.FetchedAt),
			slog.Int("rate_count", len(cached.Rates)))
		return domain.RateSourceCache
	}
	return s.fetch(ctx)
}

// Refresh forces a provider fetch regardless of TTL.
func (s *ratesService) Refresh(ctx context.Context) domain.RateSource {
	result, _, _ := s.flight.Do("refresh", func() (interface{}, error) {
		return s.fetch(ctx), nil
	})
	return result.(domain.RateSource)
}

// fetch walks the providers in order and installs the first table delivered.
// When every provider fails it falls through to the hard-coded defaults, so
// callers always end up with a usable table.
func (s *ratesService) fetch(ctx context.Context) domain.RateSource {
	for _, provider := range s.providers {
		rates, err := provider.FetchRates(ctx, s.baseCurrency)
		if err != nil {
			s.LogWarn(ctx, "Rate provider failed",
				slog.String("provider", provider.Name()),
				slog.String("error", err.Error()))
			continue
		}

		// The base currency pivots every conversion; its own rate is 1 by
		// definition, whatever the feed says.
		rates[s.baseCurrency] = decimal.NewFromInt(1)

		snapshot := domain.RateSnapshot{Rates: rates, FetchedAt: s.now()}
		s.install(snapshot, domain.RateSourceProvider)
		s.persist(ctx, snapshot)
		s.LogInfo(ctx, "Exchange rates fetched",
			slog.String("provider", provider.Name()),
			slog.Int("rate_count", len(rates)))
		return domain.RateSourceProvider
	}

	s.setDefaultRates(ctx)
	return domain.RateSourceDefaults
}

// setDefaultRates unconditionally installs the hard-coded table with the
// current timestamp. It never fails; it is the terminal fallback.
func (s *ratesService) setDefaultRates(ctx context.Context) {
	s.install(domain.RateSnapshot{
		Rates:     defaultRateTable(s.baseCurrency),
		FetchedAt: s.now(),
	}, domain.RateSourceDefaults)
	s.LogWarn(ctx, "Using default exchange rates",
		slog.String("base_currency", s.baseCurrency))
}

func (s *ratesService) install(snapshot domain.RateSnapshot, source domain.RateSource) {
	s.mu.Lock()
	s.snapshot = snapshot
	s.source = source
	s.mu.Unlock()
}

// loadCachedSnapshot reads the persisted snapshot. Every failure mode
// (missing row, malformed payload, storage outage) yields nil so the caller
// falls through to the next layer.
func (s *ratesService) loadCachedSnapshot(ctx context.Context) *domain.RateSnapshot {
	snapshot, err := s.cacheRepo.LoadSnapshot(ctx)
	if err != nil {
		s.LogDebug(ctx, "No usable cached rates", slog.String("reason", err.Error()))
		return nil
	}
	if len(snapshot.Rates) == 0 {
		return nil
	}
	return snapshot
}

func (s *ratesService) persist(ctx context.Context, snapshot domain.RateSnapshot) {
	if err := s.cacheRepo.SaveSnapshot(ctx, snapshot); err != nil {
		// A failed cache write only costs the next process start a fetch.
		s.LogWarn(ctx, "Failed to persist rate snapshot", slog.String("error", err.Error()))
	}
}

// Snapshot returns a copy of the current table so callers never observe a
// refresh mid-read.
func (s *ratesService) Snapshot() domain.RateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.RateSnapshot{
		Rates:     s.snapshot.Rates.Clone(),
		FetchedAt: s.snapshot.FetchedAt,
	}
}

// NeedsUpdate reports whether the table was never installed or is older than the TTL.
func (s *ratesService) NeedsUpdate() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.IsStale(s.ttl, s.now())
}

// LastUpdated returns the capture time of the current table.
func (s *ratesService) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.FetchedAt
}

// defaultRateTable is the terminal fallback: approximate rates against GHS,
// good enough to keep every screen showing a number until a real feed
// answers. When the configured base is not GHS the cross rates are rebased so
// the base still carries exactly 1.
func defaultRateTable(baseCurrency string) domain.RateTable {
	table := domain.RateTable{
		"GHS": decimal.RequireFromString("1.0"),
		"USD": decimal.RequireFromString("0.085"),
		"EUR": decimal.RequireFromString("0.078"),
		"GBP": decimal.RequireFromString("0.067"),
		"NGN": decimal.RequireFromString("130.5"),
		"ZAR": decimal.RequireFromString("1.55"),
		"KES": decimal.RequireFromString("11.0"),
		"CAD": decimal.RequireFromString("0.116"),
		"AUD": decimal.RequireFromString("0.13"),
		"JPY": decimal.RequireFromString("12.6"),
		"CNY": decimal.RequireFromString("0.61"),
		"INR": decimal.RequireFromString("7.1"),
	}

	baseRate, ok := table[baseCurrency]
	if !ok || baseRate.IsZero() {
		table[baseCurrency] = decimal.NewFromInt(1)
		return table
	}
	if baseRate.Equal(decimal.NewFromInt(1)) {
		return table
	}
	rebased := make(domain.RateTable, len(table))
	for code, rate := range table {
		rebased[code] = rate.Div(baseRate)
	}
	rebased[baseCurrency] = decimal.NewFromInt(1)
	return rebased
}
