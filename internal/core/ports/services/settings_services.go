package services

import (
	"context"

	"github.com/famvault/famvault-backend/internal/core/domain"
)

// SettingsSvcFacade persists per-user currency settings. Loads never fail:
// a missing record or a storage error both yield defaults. Saves may fail and
// callers must handle that.
type SettingsSvcFacade interface {
	// LoadUserCurrencySettings returns the user's settings, or a
	// default-populated record when none exist or storage cannot be read.
	LoadUserCurrencySettings(ctx context.Context, userID string) domain.UserCurrencySettings

	// SaveUserCurrencySettings overwrites the user's settings wholesale and
	// stamps UpdatedAt. Returns the stored record.
	SaveUserCurrencySettings(ctx context.Context, settings domain.UserCurrencySettings) (domain.UserCurrencySettings, error)
}
