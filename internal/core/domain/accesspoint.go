package domain

import (
	"strings"
	"time"
)

// HistoryLimit caps the number of signal samples retained per access point.
const HistoryLimit = 20

// HiddenSSID is the placeholder assigned to beacons with an empty SSID.
const HiddenSSID = "Hidden Network"

// EncryptionType classifies the security mode advertised by an access point.
type EncryptionType string

const (
	EncryptionOpen    EncryptionType = "Open"
	EncryptionWEP     EncryptionType = "WEP"
	EncryptionWPA     EncryptionType = "WPA"
	EncryptionWPA2    EncryptionType = "WPA2"
	EncryptionWPA3    EncryptionType = "WPA3"
	EncryptionUnknown EncryptionType = "Unknown"
)

// encryptionRanks orders modes by relative strength: Open < WEP < WPA-class.
// Unknown is ranked with the WPA class so that an unidentified mode is never
// reported as weaker than a sibling.
var encryptionRanks = map[EncryptionType]int{
	EncryptionOpen:    0,
	EncryptionWEP:     1,
	EncryptionWPA:     2,
	EncryptionWPA2:    2,
	EncryptionWPA3:    2,
	EncryptionUnknown: 2,
}

// StrengthRank returns the relative strength of the encryption mode.
func (e EncryptionType) StrengthRank() int {
	if rank, ok := encryptionRanks[e]; ok {
		return rank
	}
	return encryptionRanks[EncryptionUnknown]
}

// ParseEncryption maps a reported encryption string to a known type,
// falling back to Unknown for empty or unrecognized values.
func ParseEncryption(s string) EncryptionType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OPEN", "NONE":
		return EncryptionOpen
	case "WEP":
		return EncryptionWEP
	case "WPA":
		return EncryptionWPA
	case "WPA2":
		return EncryptionWPA2
	case "WPA3":
		return EncryptionWPA3
	default:
		return EncryptionUnknown
	}
}

// ObservationSample is one signal reading in an access point's history.
type ObservationSample struct {
	RSSI      int       `json:"rssi"`
	Timestamp time.Time `json:"timestamp"`
}

// AccessPointRecord is the persisted state for one physical radio identity,
// keyed by its uppercase BSSID.
type AccessPointRecord struct {
	BSSID            string              `json:"bssid"`
	SSID             string              `json:"ssid"`
	RSSI             int                 `json:"rssi"`
	Channel          int                 `json:"channel"`
	Encryption       EncryptionType      `json:"encryption"`
	FirstSeen        time.Time           `json:"first_seen"`
	LastSeen         time.Time           `json:"last_seen"`
	ObservationCount int                 `json:"observation_count"`
	History          []ObservationSample `json:"history"`
	Status           Status              `json:"status"`
	SourceDeviceID   string              `json:"source_device_id"`
}

// NormalizeBSSID canonicalizes a BSSID for use as a lookup key.
func NormalizeBSSID(bssid string) string {
	return strings.ToUpper(strings.TrimSpace(bssid))
}

// NewAccessPointRecord creates the initial record for a first observation.
func NewAccessPointRecord(report ObservationReport, deviceID string, now time.Time) AccessPointRecord {
	ssid := report.SSID
	if ssid == "" {
		ssid = HiddenSSID
	}
	return AccessPointRecord{
		BSSID:            NormalizeBSSID(report.BSSID),
		SSID:             ssid,
		RSSI:             report.RSSI,
		Channel:          report.Channel,
		Encryption:       ParseEncryption(report.Encryption),
		FirstSeen:        now,
		LastSeen:         now,
		ObservationCount: 1,
		History:          []ObservationSample{{RSSI: report.RSSI, Timestamp: now}},
		Status:           StatusUnknown,
		SourceDeviceID:   deviceID,
	}
}

// ApplyObservation refreshes the record from a new report, increments the
// observation counter and appends to the bounded history.
func (r *AccessPointRecord) ApplyObservation(report ObservationReport, deviceID string, now time.Time) {
	r.SSID = report.SSID
	if r.SSID == "" {
		r.SSID = HiddenSSID
	}
	r.RSSI = report.RSSI
	r.Channel = report.Channel
	r.Encryption = ParseEncryption(report.Encryption)
	r.LastSeen = now
	r.ObservationCount++
	r.SourceDeviceID = deviceID
	r.appendSample(ObservationSample{RSSI: report.RSSI, Timestamp: now})
}

// appendSample adds a sample, evicting the oldest once the cap is reached.
func (r *AccessPointRecord) appendSample(s ObservationSample) {
	r.History = append(r.History, s)
	if len(r.History) > HistoryLimit {
		r.History = r.History[len(r.History)-HistoryLimit:]
	}
}

// RecentSamples returns up to the n most recent history entries, oldest first.
func (r *AccessPointRecord) RecentSamples(n int) []ObservationSample {
	if len(r.History) <= n {
		return r.History
	}
	return r.History[len(r.History)-n:]
}
