package services

import (
	"context"
	"time"

	"github.com/famvault/famvault-backend/internal/core/domain"
)

// RateSnapshotSource hands out the currently installed rate snapshot.
// The converter depends on this narrow view so tests can supply a fixed table.
type RateSnapshotSource interface {
	// Snapshot returns a copy of the current rate table and its capture time.
	Snapshot() domain.RateSnapshot
}

// RateSvcFacade manages the process-wide rate table: initialization from the
// persisted cache, refresh from providers, and the terminal hard-coded
// fallback. Initialize and Refresh never fail; they report which layer of the
// fallback chain ended up supplying the table.
type RateSvcFacade interface {
	RateSnapshotSource

	// Initialize installs a rate table from the persisted cache when fresh,
	// otherwise from the providers, otherwise from hard-coded defaults.
	// Safe to call repeatedly; concurrent calls share one fetch.
	Initialize(ctx context.Context) domain.RateSource

	// Refresh forces a provider fetch regardless of TTL, falling back to
	// defaults when every provider fails.
	Refresh(ctx context.Context) domain.RateSource

	// NeedsUpdate reports whether the table was never installed or has
	// outlived its TTL.
	NeedsUpdate() bool

	// LastUpdated returns the capture time of the current table, zero when
	// no table has been installed yet.
	LastUpdated() time.Time
}
