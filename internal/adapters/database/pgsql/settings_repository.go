package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	portsrepo "github.com/famvault/famvault-backend/internal/core/ports/repositories"

	"github.com/famvault/famvault-backend/internal/apperrors"
	"github.com/famvault/famvault-backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSettingsRepository struct {
	pool *pgxpool.Pool
}

// NewPgxSettingsRepository creates a new repository for per-user currency settings.
func NewPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepositoryFacade {
	return &PgxSettingsRepository{pool: pool}
}

// SaveSettings upserts the user's record, overwriting it wholesale.
func (r *PgxSettingsRepository) SaveSettings(ctx context.Context, settings domain.UserCurrencySettings) error {
	overrides, err := json.Marshal(settings.AccountCurrencies)
	if err != nil {
		return fmt.Errorf("failed to encode account currency overrides: %w", err)
	}

	query := `
		INSERT INTO user_currency_settings (user_id, default_currency, display_currency, auto_convert, account_currencies, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			default_currency = EXCLUDED.default_currency,
			display_currency = EXCLUDED.display_currency,
			auto_convert = EXCLUDED.auto_convert,
			account_currencies = EXCLUDED.account_currencies,
			updated_at = EXCLUDED.updated_at;
	`

	_, err = r.pool.Exec(ctx, query,
		settings.UserID,
		settings.DefaultCurrency,
		settings.DisplayCurrency,
		settings.AutoConvert,
		overrides,
		settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save currency settings for user %s: %w", settings.UserID, err)
	}
	return nil
}

// FindSettingsByUserID retrieves a user's settings record.
func (r *PgxSettingsRepository) FindSettingsByUserID(ctx context.Context, userID string) (*domain.UserCurrencySettings, error) {
	query := `
		SELECT user_id, default_currency, display_currency, auto_convert, account_currencies, updated_at
		FROM user_currency_settings
		WHERE user_id = $1;
	`

	var settings domain.UserCurrencySettings
	var overrides []byte
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&settings.UserID,
		&settings.DefaultCurrency,
		&settings.DisplayCurrency,
		&settings.AutoConvert,
		&overrides,
		&settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency settings for user %s: %w", userID, err)
	}

	if err := json.Unmarshal(overrides, &settings.AccountCurrencies); err != nil {
		return nil, fmt.Errorf("failed to decode account currency overrides for user %s: %w", userID, err)
	}

	return &settings, nil
}
