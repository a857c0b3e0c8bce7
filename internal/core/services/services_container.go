package services

import (
	portsprov "github.com/famvault/famvault-backend/internal/core/ports/providers"
	portsrepo "github.com/famvault/famvault-backend/internal/core/ports/repositories"
	portssvc "github.com/famvault/famvault-backend/internal/core/ports/services"

	"github.com/famvault/famvault-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, rateProviders []portsprov.RateProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Rates first; the currency service reads its snapshots.
	container.Rates = NewRatesService(
		repos.RateCacheRepo,
		cfg.BaseCurrency,
		WithRateProviders(rateProviders...),
		WithRatesTTL(cfg.RatesTTL),
	)

	container.Currency = NewCurrencyService(container.Rates, cfg.BaseCurrency)
	container.Settings = NewSettingsService(repos.SettingsRepo, cfg.BaseCurrency)
	container.User = NewUserService(repos.UserRepo)

	return container
}
