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

// exchangeRatesCacheKey is the single logical key the rate snapshot lives under.
const exchangeRatesCacheKey = "exchange_rates"

type PgxRateCacheRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRateCacheRepository creates a new repository for the persisted rate snapshot.
func NewPgxRateCacheRepository(pool *pgxpool.Pool) portsrepo.RateCacheRepositoryFacade {
	return &PgxRateCacheRepository{pool: pool}
}

// SaveSnapshot upserts the snapshot under the fixed cache key, replacing any
// previous one wholesale.
func (r *PgxRateCacheRepository) SaveSnapshot(ctx context.Context, snapshot domain.RateSnapshot) error {
	payload, err := json.Marshal(snapshot.Rates)
	if err != nil {
		return fmt.Errorf("failed to encode rate table: %w", err)
	}

	query := `
		INSERT INTO rate_cache (cache_key, rates, fetched_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (cache_key) DO UPDATE SET
			rates = EXCLUDED.rates,
			fetched_at = EXCLUDED.fetched_at;
	`

	_, err = r.pool.Exec(ctx, query, exchangeRatesCacheKey, payload, snapshot.FetchedAt)
	if err != nil {
		return fmt.Errorf("failed to save rate snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot retrieves the persisted snapshot. A missing row maps to
// apperrors.ErrNotFound; a hand-corrupted payload surfaces as a decode error.
// Callers treat any error as a cache miss.
func (r *PgxRateCacheRepository) LoadSnapshot(ctx context.Context) (*domain.RateSnapshot, error) {
	query := `
		SELECT rates, fetched_at
		FROM rate_cache
		WHERE cache_key = $1;
	`

	var payload []byte
	var snapshot domain.RateSnapshot
	err := r.pool.QueryRow(ctx, query, exchangeRatesCacheKey).Scan(&payload, &snapshot.FetchedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load rate snapshot: %w", err)
	}

	if err := json.Unmarshal(payload, &snapshot.Rates); err != nil {
		return nil, fmt.Errorf("failed to decode rate table: %w", err)
	}

	return &snapshot, nil
}
