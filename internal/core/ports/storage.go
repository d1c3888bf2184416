package ports

import (
	"context"

	"github.com/apsentry/apsentry/internal/core/domain"
)

// Storage defines the behavior for access point persistence. Implementations
// must provide atomic single-record upsert; full-set reads are best-effort
// snapshots.
type Storage interface {
	// GetAccessPoint retrieves a record by normalized BSSID.
	// Returns domain.ErrNotFound when no record exists.
	GetAccessPoint(ctx context.Context, bssid string) (*domain.AccessPointRecord, error)

	// SaveAccessPoint creates or replaces the record keyed by its BSSID.
	SaveAccessPoint(ctx context.Context, record domain.AccessPointRecord) error

	// GetAllAccessPoints retrieves every stored record.
	GetAllAccessPoints(ctx context.Context) ([]domain.AccessPointRecord, error)

	// FindAccessPoints retrieves records matching the filter criteria.
	FindAccessPoints(ctx context.Context, filter domain.NetworkFilter) ([]domain.AccessPointRecord, error)

	// Close closes the storage connection.
	Close() error
}
