package repositories

import (
	"context"

	"github.com/famvault/famvault-backend/internal/core/domain"
)

// SettingsReader defines read operations for per-user currency settings.
type SettingsReader interface {
	// FindSettingsByUserID retrieves the settings record for a user.
	// Returns apperrors.ErrNotFound when the user has never saved settings.
	FindSettingsByUserID(ctx context.Context, userID string) (*domain.UserCurrencySettings, error)
}

// SettingsWriter defines write operations for per-user currency settings.
type SettingsWriter interface {
	// SaveSettings persists the record, replacing any previous one for the user.
	SaveSettings(ctx context.Context, settings domain.UserCurrencySettings) error
}

// SettingsRepositoryFacade combines all settings repository interfaces.
type SettingsRepositoryFacade interface {
	SettingsReader
	SettingsWriter
}
