package registry

import (
	"context"
	"time"

	"github.com/apsentry/apsentry/internal/core/domain"
	"github.com/apsentry/apsentry/internal/core/ports"
)

// NetworkRegistry exposes the operator-facing view of stored access
// points: listing, manual status changes and fleet statistics.
type NetworkRegistry struct {
	store ports.Storage
	now   func() time.Time
}

// NewNetworkRegistry creates a registry backed by the given store.
func NewNetworkRegistry(store ports.Storage) *NetworkRegistry {
	return &NetworkRegistry{store: store, now: time.Now}
}

// ListNetworks returns the records matching the filter.
func (r *NetworkRegistry) ListNetworks(ctx context.Context, filter domain.NetworkFilter) ([]domain.AccessPointRecord, error) {
	return r.store.FindAccessPoints(ctx, filter)
}

// SetStatus applies a manual status change to one record and persists it.
// Returns domain.ErrInvalidStatus for unrecognized values and
// domain.ErrNotFound when the record does not exist.
func (r *NetworkRegistry) SetStatus(ctx context.Context, bssid string, requested domain.Status) (*domain.AccessPointRecord, error) {
	record, err := r.store.GetAccessPoint(ctx, domain.NormalizeBSSID(bssid))
	if err != nil {
		return nil, err
	}

	next, ok := domain.ApplyManual(record.Status, requested)
	if !ok {
		return nil, domain.ErrInvalidStatus
	}
	record.Status = next

	if err := r.store.SaveAccessPoint(ctx, *record); err != nil {
		return nil, err
	}
	return record, nil
}

// FleetStats aggregates status and encryption counts plus the number of
// records seen within the trailing activity window.
func (r *NetworkRegistry) FleetStats(ctx context.Context) (domain.FleetStats, error) {
	records, err := r.store.GetAllAccessPoints(ctx)
	if err != nil {
		return domain.FleetStats{}, err
	}

	stats := domain.NewFleetStats()
	stats.Total = len(records)
	cutoff := r.now().Add(-domain.RecentActivityWindow)

	for _, rec := range records {
		stats.ByStatus[rec.Status]++
		stats.ByEncryption[rec.Encryption]++
		if rec.LastSeen.After(cutoff) {
			stats.RecentlyActive++
		}
	}
	return stats, nil
}
