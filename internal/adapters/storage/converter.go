package storage

import (
	"encoding/json"

	"github.com/apsentry/apsentry/internal/core/domain"
)

// toDomain converts a database model to a domain entity.
func toDomain(m AccessPointModel) domain.AccessPointRecord {
	var history []domain.ObservationSample
	if m.History != "" {
		_ = json.Unmarshal([]byte(m.History), &history)
	}

	return domain.AccessPointRecord{
		BSSID:            m.BSSID,
		SSID:             m.SSID,
		RSSI:             m.RSSI,
		Channel:          m.Channel,
		Encryption:       domain.EncryptionType(m.Encryption),
		FirstSeen:        m.FirstSeen,
		LastSeen:         m.LastSeen,
		ObservationCount: m.ObservationCount,
		History:          history,
		Status:           domain.Status(m.Status),
		SourceDeviceID:   m.SourceDeviceID,
	}
}

// toModel converts a domain entity to a database model.
func toModel(r domain.AccessPointRecord) AccessPointModel {
	model := AccessPointModel{
		BSSID:            r.BSSID,
		SSID:             r.SSID,
		RSSI:             r.RSSI,
		Channel:          r.Channel,
		Encryption:       string(r.Encryption),
		FirstSeen:        r.FirstSeen,
		LastSeen:         r.LastSeen,
		ObservationCount: r.ObservationCount,
		Status:           string(r.Status),
		SourceDeviceID:   r.SourceDeviceID,
	}

	if r.History != nil {
		raw, _ := json.Marshal(r.History)
		model.History = string(raw)
	}
	return model
}
