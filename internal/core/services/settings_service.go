package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portsrepo "github.com/famvault/famvault-backend/internal/core/ports/repositories"
	portssvc "github.com/famvault/famvault-backend/internal/core/ports/services"

	"github.com/famvault/famvault-backend/internal/core/domain"
)

// settingsService persists per-user currency settings. Loads follow the
// never-throw discipline (a user always gets a usable record); saves may fail
// and surface the error to the caller.
type settingsService struct {
	BaseService
	settingsRepo portsrepo.SettingsRepositoryFacade
	baseCurrency string
	now          func() time.Time
}

// SettingsServiceOption is a functional option for configuring the settings service
type SettingsServiceOption func(*settingsService)

// WithSettingsClock overrides the time source, for tests.
func WithSettingsClock(now func() time.Time) SettingsServiceOption {
	return func(s *settingsService) {
		s.now = now
	}
}

// NewSettingsService creates a new settings service.
func NewSettingsService(settingsRepo portsrepo.SettingsRepositoryFacade, baseCurrency string, options ...SettingsServiceOption) portssvc.SettingsSvcFacade {
	svc := &settingsService{
		settingsRepo: settingsRepo,
		baseCurrency: baseCurrency,
		now:          time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure settingsService implements the SettingsSvcFacade interface
var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

// LoadUserCurrencySettings returns the user's stored settings. A user who has
// never saved, or a storage failure, both yield the default record: base
// display currency, no overrides, auto-convert on.
func (s *settingsService) LoadUserCurrencySettings(ctx context.Context, userID string) domain.UserCurrencySettings {
	settings, err := s.settingsRepo.FindSettingsByUserID(ctx, userID)
	if err != nil {
		s.LogDebug(ctx, "Falling back to default currency settings",
			slog.String("user_id", userID),
			slog.String("reason", err.Error()))
		return domain.DefaultUserCurrencySettings(userID, s.baseCurrency)
	}

	if settings.AccountCurrencies == nil {
		settings.AccountCurrencies = map[string]string{}
	}
	if settings.DefaultCurrency == "" {
		settings.DefaultCurrency = s.baseCurrency
	}
	if settings.DisplayCurrency == "" {
		settings.DisplayCurrency = settings.DefaultCurrency
	}
	return *settings
}

// SaveUserCurrencySettings overwrites the record wholesale and stamps UpdatedAt.
func (s *settingsService) SaveUserCurrencySettings(ctx context.Context, settings domain.UserCurrencySettings) (domain.UserCurrencySettings, error) {
	if settings.UserID == "" {
		return domain.UserCurrencySettings{}, fmt.Errorf("user id is required to save currency settings")
	}

	if settings.AccountCurrencies == nil {
		settings.AccountCurrencies = map[string]string{}
	}
	settings.UpdatedAt = s.now()

	if err := s.settingsRepo.SaveSettings(ctx, settings); err != nil {
		s.LogError(ctx, err, "Failed to save currency settings",
			slog.String("user_id", settings.UserID))
		return domain.UserCurrencySettings{}, fmt.Errorf("failed to save currency settings: %w", err)
	}

	s.LogInfo(ctx, "Currency settings saved",
		slog.String("user_id", settings.UserID),
		slog.String("display_currency", settings.DisplayCurrency),
		slog.Bool("auto_convert", settings.AutoConvert))
	return settings, nil
}
