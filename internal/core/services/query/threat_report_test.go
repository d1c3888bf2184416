package query

import (
	"context"
	"testing"
	"time"

	"github.com/apsentry/apsentry/internal/adapters/storage"
	"github.com/apsentry/apsentry/internal/core/domain"
	"github.com/apsentry/apsentry/internal/core/services/threat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, store *storage.MemoryStore, ssid, bssid string, enc string) {
	t.Helper()
	record := domain.NewAccessPointRecord(domain.ObservationReport{
		SSID: ssid, BSSID: bssid, RSSI: -50, Channel: 1, Encryption: enc,
	}, "sensor-1", time.Now())
	require.NoError(t, store.SaveAccessPoint(context.Background(), record))
}

func TestBuildThreatReport(t *testing.T) {
	ctx := context.Background()

	t.Run("clean fleet produces an empty report", func(t *testing.T) {
		store := storage.NewMemoryStore()
		seed(t, store, "HomeNet", "AA:11:22:33:44:55", "WPA2")
		seed(t, store, "OfficeNet", "BB:11:22:33:44:55", "WPA3")

		report, err := NewService(store, threat.NewEngine()).BuildThreatReport(ctx)
		require.NoError(t, err)

		assert.Empty(t, report.Threats)
		assert.Equal(t, 0, report.Summary.Total)
		assert.False(t, report.GeneratedAt.IsZero())
	})

	t.Run("ranks threats by harm score descending", func(t *testing.T) {
		store := storage.NewMemoryStore()
		// 70: lure ssid + open + placeholder prefix.
		seed(t, store, "Free_WiFi", "AA:BB:CC:11:22:33", "OPEN")
		// 25: plain open network.
		seed(t, store, "CafeNet", "DD:11:22:33:44:55", "OPEN")
		// 0: healthy.
		seed(t, store, "HomeNet", "EE:11:22:33:44:55", "WPA2")

		report, err := NewService(store, threat.NewEngine()).BuildThreatReport(ctx)
		require.NoError(t, err)

		require.Len(t, report.Threats, 2)
		assert.Equal(t, "AA:BB:CC:11:22:33", report.Threats[0].BSSID)
		assert.Equal(t, 70, report.Threats[0].HarmScore)
		assert.Equal(t, "DD:11:22:33:44:55", report.Threats[1].BSSID)
		assert.Equal(t, 25, report.Threats[1].HarmScore)

		assert.Equal(t, 2, report.Summary.Total)
		assert.Equal(t, 1, report.Summary.Critical)
		assert.Equal(t, 1, report.Summary.Medium)
		assert.Equal(t, 1, report.Summary.Harmful)
	})

	t.Run("each record is assessed against the full snapshot", func(t *testing.T) {
		store := storage.NewMemoryStore()
		seed(t, store, "OfficeNet", "AA:11:22:33:44:55", "WPA2")
		seed(t, store, "OfficeNet", "AA:11:22:33:44:56", "OPEN")

		report, err := NewService(store, threat.NewEngine()).BuildThreatReport(ctx)
		require.NoError(t, err)

		require.Len(t, report.Threats, 1)
		assert.Equal(t, "AA:11:22:33:44:56", report.Threats[0].BSSID)
		types := make([]string, 0, len(report.Threats[0].Threats))
		for _, f := range report.Threats[0].Threats {
			types = append(types, f.Type)
		}
		assert.Contains(t, types, domain.FindingEvilTwin)
	})
}
