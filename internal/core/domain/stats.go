package domain

import "time"

// RecentActivityWindow is the trailing window used for "recently active".
const RecentActivityWindow = 10 * time.Minute

// FleetStats aggregates record counts for the stats endpoint.
type FleetStats struct {
	Total          int                    `json:"total"`
	ByStatus       map[Status]int         `json:"by_status"`
	ByEncryption   map[EncryptionType]int `json:"by_encryption"`
	RecentlyActive int                    `json:"recently_active"`
}

// NewFleetStats creates an empty stats container with initialized maps.
func NewFleetStats() FleetStats {
	return FleetStats{
		ByStatus:     make(map[Status]int),
		ByEncryption: make(map[EncryptionType]int),
	}
}
