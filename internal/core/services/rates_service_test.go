package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/famvault/famvault-backend/internal/apperrors"
	"github.com/famvault/famvault-backend/internal/core/domain"
	portsprov "github.com/famvault/famvault-backend/internal/core/ports/providers"
	portssvc "github.com/famvault/famvault-backend/internal/core/ports/services"
	"github.com/famvault/famvault-backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RateCacheRepository ---
type MockRateCacheRepository struct {
	mock.Mock
}

func (m *MockRateCacheRepository) LoadSnapshot(ctx context.Context) (*domain.RateSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSnapshot), args.Error(1)
}

func (m *MockRateCacheRepository) SaveSnapshot(ctx context.Context, snapshot domain.RateSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

// --- Fake provider ---
type fakeRateProvider struct {
	name  string
	calls int
	table domain.RateTable
	err   error
}

func (p *fakeRateProvider) Name() string { return p.name }

func (p *fakeRateProvider) FetchRates(_ context.Context, _ string) (domain.RateTable, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.table.Clone(), nil
}

var _ portsprov.RateProvider = (*fakeRateProvider)(nil)

// --- Test Suite ---
type RatesServiceTestSuite struct {
	suite.Suite
	mockRepo *MockRateCacheRepository
	provider *fakeRateProvider
	now      time.Time
	service  portssvc.RateSvcFacade
}

func (suite *RatesServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockRateCacheRepository)
	suite.provider = &fakeRateProvider{
		name: "fake",
		table: domain.RateTable{
			"USD": decimal.RequireFromString("0.085"),
			"EUR": decimal.RequireFromString("0.078"),
		},
	}
	suite.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewRatesService(
		suite.mockRepo,
		"GHS",
		services.WithRateProviders(suite.provider),
		services.WithRatesClock(func() time.Time { return suite.now }),
	)
}

func (suite *RatesServiceTestSuite) TestNeedsUpdate_TrueBeforeInitialize() {
	suite.True(suite.service.NeedsUpdate())
}

func (suite *RatesServiceTestSuite) TestInitialize_FromFreshCache() {
	ctx := context.Background()
	cached := &domain.RateSnapshot{
		Rates:     domain.RateTable{"GHS": decimal.NewFromInt(1), "USD": decimal.RequireFromString("0.084")},
		FetchedAt: suite.now.Add(-10 * time.Minute),
	}
	suite.mockRepo.On("LoadSnapshot", ctx).Return(cached, nil).Once()

	source := suite.service.Initialize(ctx)

	suite.Equal(domain.RateSourceCache, source)
	suite.Equal(0, suite.provider.calls, "fresh cache must not trigger a provider fetch")
	suite.False(suite.service.NeedsUpdate())

	rate, ok := suite.service.Snapshot().Rates.Rate("USD")
	suite.True(ok)
	suite.True(decimal.RequireFromString("0.084").Equal(rate))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RatesServiceTestSuite) TestInitialize_StaleCacheFetchesFromProvider() {
	ctx := context.Background()
	cached := &domain.RateSnapshot{
		Rates:     domain.RateTable{"GHS": decimal.NewFromInt(1)},
		FetchedAt: suite.now.Add(-2 * time.Hour),
	}
	suite.mockRepo.On("LoadSnapshot", ctx).Return(cached, nil).Once()
	suite.mockRepo.On("SaveSnapshot", ctx, mock.AnythingOfType("domain.RateSnapshot")).Return(nil).Once()

	source := suite.service.Initialize(ctx)

	suite.Equal(domain.RateSourceProvider, source)
	suite.Equal(1, suite.provider.calls)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RatesServiceTestSuite) TestInitialize_CacheErrorFallsThroughToProvider() {
	ctx := context.Background()
	suite.mockRepo.On("LoadSnapshot", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveSnapshot", ctx, mock.AnythingOfType("domain.RateSnapshot")).Return(nil).Once()

	source := suite.service.Initialize(ctx)

	suite.Equal(domain.RateSourceProvider, source)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RatesServiceTestSuite) TestInitialize_BaseRateForcedToOne() {
	ctx := context.Background()
	// The provider table deliberately omits the base currency.
	suite.mockRepo.On("LoadSnapshot", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveSnapshot", ctx, mock.AnythingOfType("domain.RateSnapshot")).Return(nil).Once()

	suite.service.Initialize(ctx)

	rate, ok := suite.service.Snapshot().Rates.Rate("GHS")
	suite.True(ok)
	suite.True(decimal.NewFromInt(1).Equal(rate))
}

func (suite *RatesServiceTestSuite) TestInitialize_AllProvidersFailInstallsDefaults() {
	ctx := context.Background()
	suite.provider.err = assert.AnError
	suite.mockRepo.On("LoadSnapshot", ctx).Return(nil, apperrors.ErrNotFound).Once()

	source := suite.service.Initialize(ctx)

	suite.Equal(domain.RateSourceDefaults, source)
	snapshot := suite.service.Snapshot()
	suite.NotEmpty(snapshot.Rates, "the rate table must never be left empty")

	rate, ok := snapshot.Rates.Rate("GHS")
	suite.True(ok)
	suite.True(decimal.NewFromInt(1).Equal(rate))

	// Defaults are not written back to the cache.
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSnapshot", mock.Anything, mock.Anything)
}

func (suite *RatesServiceTestSuite) TestInitialize_NoOpWhenFresh() {
	ctx := context.Background()
	suite.mockRepo.On("LoadSnapshot", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveSnapshot", ctx, mock.AnythingOfType("domain.RateSnapshot")).Return(nil).Once()

	suite.service.Initialize(ctx)
	suite.service.Initialize(ctx)

	suite.Equal(1, suite.provider.calls, "a fresh table must not be re-fetched")
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "LoadSnapshot", 1)
}

func (suite *RatesServiceTestSuite) TestRefresh_ForcesFetchRegardlessOfTTL() {
	ctx := context.Background()
	suite.mockRepo.On("LoadSnapshot", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveSnapshot", ctx, mock.AnythingOfType("domain.RateSnapshot")).Return(nil).Twice()

	suite.service.Initialize(ctx)
	source := suite.service.Refresh(ctx)

	suite.Equal(domain.RateSourceProvider, source)
	suite.Equal(2, suite.provider.calls)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RatesServiceTestSuite) TestNeedsUpdate_TTLExpiry() {
	ctx := context.Background()
	suite.mockRepo.On("LoadSnapshot", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveSnapshot", ctx, mock.AnythingOfType("domain.RateSnapshot")).Return(nil).Once()

	suite.service.Initialize(ctx)
	suite.False(suite.service.NeedsUpdate())
	suite.Equal(suite.now, suite.service.LastUpdated())

	// Just inside the TTL.
	suite.now = suite.now.Add(59 * time.Minute)
	suite.False(suite.service.NeedsUpdate())

	// Past the TTL.
	suite.now = suite.now.Add(2 * time.Minute)
	suite.True(suite.service.NeedsUpdate())
}

func (suite *RatesServiceTestSuite) TestSnapshot_IsACopy() {
	ctx := context.Background()
	suite.mockRepo.On("LoadSnapshot", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveSnapshot", ctx, mock.AnythingOfType("domain.RateSnapshot")).Return(nil).Once()

	suite.service.Initialize(ctx)

	snapshot := suite.service.Snapshot()
	snapshot.Rates["USD"] = decimal.NewFromInt(999)

	rate, _ := suite.service.Snapshot().Rates.Rate("USD")
	suite.True(decimal.RequireFromString("0.085").Equal(rate), "mutating a snapshot must not affect the service")
}

func (suite *RatesServiceTestSuite) TestPersistFailureIsNotFatal() {
	ctx := context.Background()
	suite.mockRepo.On("LoadSnapshot", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveSnapshot", ctx, mock.AnythingOfType("domain.RateSnapshot")).Return(assert.AnError).Once()

	source := suite.service.Initialize(ctx)

	suite.Equal(domain.RateSourceProvider, source, "a failed cache write must not fail the fetch")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RatesServiceTestSuite) TestProviderOrdering() {
	ctx := context.Background()
	failing := &fakeRateProvider{name: "primary", err: assert.AnError}
	backup := &fakeRateProvider{
		name:  "backup",
		table: domain.RateTable{"USD": decimal.RequireFromString("0.09")},
	}
	mockRepo := new(MockRateCacheRepository)
	mockRepo.On("LoadSnapshot", ctx).Return(nil, apperrors.ErrNotFound).Once()
	mockRepo.On("SaveSnapshot", ctx, mock.AnythingOfType("domain.RateSnapshot")).Return(nil).Once()

	service := services.NewRatesService(mockRepo, "GHS", services.WithRateProviders(failing, backup))

	source := service.Initialize(ctx)

	suite.Equal(domain.RateSourceProvider, source)
	suite.Equal(1, failing.calls)
	suite.Equal(1, backup.calls)

	rate, ok := service.Snapshot().Rates.Rate("USD")
	suite.True(ok)
	suite.True(decimal.RequireFromString("0.09").Equal(rate))
}

func TestRatesServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RatesServiceTestSuite))
}
