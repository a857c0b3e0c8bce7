package repositories

import (
	"context"

	"github.com/famvault/famvault-backend/internal/core/domain"
)

// RateCacheReader defines read operations for the persisted rate snapshot.
type RateCacheReader interface {
	// LoadSnapshot retrieves the last persisted rate snapshot.
	// Returns apperrors.ErrNotFound when nothing has been persisted yet.
	LoadSnapshot(ctx context.Context) (*domain.RateSnapshot, error)
}

// RateCacheWriter defines write operations for the persisted rate snapshot.
type RateCacheWriter interface {
	// SaveSnapshot persists the snapshot, replacing any previous one.
	SaveSnapshot(ctx context.Context, snapshot domain.RateSnapshot) error
}

// RateCacheRepositoryFacade combines all rate-cache repository interfaces.
type RateCacheRepositoryFacade interface {
	RateCacheReader
	RateCacheWriter
}
