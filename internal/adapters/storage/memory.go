package storage

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/apsentry/apsentry/internal/core/domain"
	"github.com/apsentry/apsentry/internal/core/ports"
)

// MemoryStore is an in-memory ports.Storage used by tests and mock mode.
// Reads return copies; writes replace whole records under a single lock,
// giving the same per-record upsert atomicity as the SQLite adapter.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]domain.AccessPointRecord
	order   []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]domain.AccessPointRecord)}
}

func (s *MemoryStore) GetAccessPoint(_ context.Context, bssid string) (*domain.AccessPointRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[bssid]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := record
	copied.History = append([]domain.ObservationSample(nil), record.History...)
	return &copied, nil
}

func (s *MemoryStore) SaveAccessPoint(_ context.Context, record domain.AccessPointRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[record.BSSID]; !exists {
		s.order = append(s.order, record.BSSID)
	}
	record.History = append([]domain.ObservationSample(nil), record.History...)
	s.records[record.BSSID] = record
	return nil
}

func (s *MemoryStore) GetAllAccessPoints(_ context.Context) ([]domain.AccessPointRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.AccessPointRecord, 0, len(s.records))
	for _, bssid := range s.order {
		records = append(records, s.records[bssid])
	}
	return records, nil
}

func (s *MemoryStore) FindAccessPoints(ctx context.Context, filter domain.NetworkFilter) ([]domain.AccessPointRecord, error) {
	all, err := s.GetAllAccessPoints(ctx)
	if err != nil {
		return nil, err
	}

	var records []domain.AccessPointRecord
	search := strings.ToLower(filter.Search)
	for _, rec := range all {
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(rec.SSID), search) &&
			!strings.Contains(strings.ToLower(rec.BSSID), search) {
			continue
		}
		records = append(records, rec)
	}

	asc := strings.EqualFold(filter.Order, "asc")
	sort.SliceStable(records, func(i, j int) bool {
		less := memoryLess(records[i], records[j], filter.SortBy)
		if asc {
			return less
		}
		return !less && memoryLess(records[j], records[i], filter.SortBy)
	})

	if filter.Limit > 0 && len(records) > filter.Limit {
		records = records[:filter.Limit]
	}
	return records, nil
}

func memoryLess(a, b domain.AccessPointRecord, sortBy string) bool {
	switch sortBy {
	case "first_seen":
		return a.FirstSeen.Before(b.FirstSeen)
	case "ssid":
		return a.SSID < b.SSID
	case "rssi":
		return a.RSSI < b.RSSI
	case "observation_count":
		return a.ObservationCount < b.ObservationCount
	default:
		return a.LastSeen.Before(b.LastSeen)
	}
}

func (s *MemoryStore) Close() error { return nil }

// Ensure interface compliance
var _ ports.Storage = (*MemoryStore)(nil)
