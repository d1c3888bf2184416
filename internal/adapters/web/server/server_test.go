package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/apsentry/apsentry/internal/adapters/storage"
	"github.com/apsentry/apsentry/internal/adapters/web/websocket"
	"github.com/apsentry/apsentry/internal/core/domain"
	"github.com/apsentry/apsentry/internal/core/services/intake"
	"github.com/apsentry/apsentry/internal/core/services/query"
	"github.com/apsentry/apsentry/internal/core/services/registry"
	"github.com/apsentry/apsentry/internal/core/services/threat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test-sensor-key"

func newTestServer(t *testing.T) (http.Handler, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	engine := threat.NewEngine()
	pipeline := intake.NewPipeline(store, engine, nil)
	reg := registry.NewNetworkRegistry(store)
	q := query.NewService(store, engine)

	srv := NewServer(":0", testKey, 100, pipeline, reg, q, websocket.NewWSManager())
	return SetupRoutes(srv), store
}

func doRequest(handler http.Handler, method, path string, body []byte, authed bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authed {
		req.Header.Set("X-Sensor-Key", testKey)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func seedStore(t *testing.T, store *storage.MemoryStore, ssid, bssid, enc string, status domain.Status) {
	t.Helper()
	record := domain.NewAccessPointRecord(domain.ObservationReport{
		SSID: ssid, BSSID: bssid, RSSI: -50, Channel: 6, Encryption: enc,
	}, "sensor-1", time.Now())
	record.Status = status
	require.NoError(t, store.SaveAccessPoint(context.Background(), record))
}

func TestAuth(t *testing.T) {
	handler, _ := newTestServer(t)

	t.Run("rejects missing key", func(t *testing.T) {
		rec := doRequest(handler, http.MethodGet, "/api/networks", nil, false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects wrong key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/networks", nil)
		req.Header.Set("X-Sensor-Key", "nope")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("accepts bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/networks", nil)
		req.Header.Set("Authorization", "Bearer "+testKey)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestIngestEndpoint(t *testing.T) {
	t.Run("rejects malformed body", func(t *testing.T) {
		handler, _ := newTestServer(t)
		rec := doRequest(handler, http.MethodPost, "/api/observations", []byte("{not json"), true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("requires deviceId", func(t *testing.T) {
		handler, _ := newTestServer(t)
		body := []byte(`{"networks":[{"bssid":"AA:11:22:33:44:55"}]}`)
		rec := doRequest(handler, http.MethodPost, "/api/observations", body, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("requires networks to be a list", func(t *testing.T) {
		handler, _ := newTestServer(t)
		for _, body := range []string{
			`{"deviceId":"sensor-1","networks":{"bssid":"AA:11:22:33:44:55"}}`,
			`{"deviceId":"sensor-1","networks":null}`,
			`{"deviceId":"sensor-1"}`,
		} {
			rec := doRequest(handler, http.MethodPost, "/api/observations", []byte(body), true)
			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		}
	})

	t.Run("processes a batch and reports the summary", func(t *testing.T) {
		handler, store := newTestServer(t)
		body := []byte(`{
			"deviceId": "sensor-1",
			"networks": [
				{"ssid": "Free_WiFi", "bssid": "AA:BB:CC:11:22:33", "rssi": -50, "channel": 6, "encType": "OPEN"},
				{"ssid": "HomeNet", "bssid": "DD:11:22:33:44:55", "rssi": -60, "channel": 1, "encType": "WPA2"},
				{"ssid": "NoAddress", "rssi": -40, "channel": 1}
			]
		}`)
		rec := doRequest(handler, http.MethodPost, "/api/observations", body, true)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Success         bool                   `json:"success"`
			SecuritySummary domain.SecuritySummary `json:"securitySummary"`
			Processed       int                    `json:"processed"`
			Created         int                    `json:"created"`
			Threats         []domain.ThreatAlert   `json:"threats"`
			Errors          []string               `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		assert.True(t, resp.Success)
		assert.Equal(t, 2, resp.Processed)
		assert.Equal(t, 2, resp.Created)
		require.Len(t, resp.Errors, 1)
		require.Len(t, resp.Threats, 1)
		assert.Equal(t, 1, resp.SecuritySummary.CriticalThreats)
		assert.Equal(t, 1, resp.SecuritySummary.HarmfulNetworks)

		record, err := store.GetAccessPoint(context.Background(), "AA:BB:CC:11:22:33")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusSuspicious, record.Status)
	})
}

func TestNetworkEndpoints(t *testing.T) {
	t.Run("lists stored networks", func(t *testing.T) {
		handler, store := newTestServer(t)
		seedStore(t, store, "HomeNet", "AA:11:22:33:44:55", "WPA2", domain.StatusTrusted)
		seedStore(t, store, "CafeNet", "BB:11:22:33:44:55", "OPEN", domain.StatusUnknown)

		rec := doRequest(handler, http.MethodGet, "/api/networks?status=trusted", nil, true)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Success  bool                       `json:"success"`
			Count    int                        `json:"count"`
			Networks []domain.AccessPointRecord `json:"networks"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "HomeNet", resp.Networks[0].SSID)
	})

	t.Run("rejects bad list parameters", func(t *testing.T) {
		handler, _ := newTestServer(t)

		rec := doRequest(handler, http.MethodGet, "/api/networks?limit=abc", nil, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = doRequest(handler, http.MethodGet, "/api/networks?status=blocked", nil, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("updates a status", func(t *testing.T) {
		handler, store := newTestServer(t)
		seedStore(t, store, "HomeNet", "AA:11:22:33:44:55", "WPA2", domain.StatusUnknown)

		body := []byte(`{"status":"trusted"}`)
		rec := doRequest(handler, http.MethodPatch, "/api/networks/AA:11:22:33:44:55/status", body, true)
		require.Equal(t, http.StatusOK, rec.Code)

		record, err := store.GetAccessPoint(context.Background(), "AA:11:22:33:44:55")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusTrusted, record.Status)
	})

	t.Run("rejects invalid status value", func(t *testing.T) {
		handler, store := newTestServer(t)
		seedStore(t, store, "HomeNet", "AA:11:22:33:44:55", "WPA2", domain.StatusUnknown)

		body := []byte(`{"status":"blocked"}`)
		rec := doRequest(handler, http.MethodPatch, "/api/networks/AA:11:22:33:44:55/status", body, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown bssid is not found", func(t *testing.T) {
		handler, _ := newTestServer(t)

		body := []byte(`{"status":"trusted"}`)
		rec := doRequest(handler, http.MethodPatch, "/api/networks/00:00:00:00:00:00/status", body, true)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("serves fleet stats", func(t *testing.T) {
		handler, store := newTestServer(t)
		seedStore(t, store, "HomeNet", "AA:11:22:33:44:55", "WPA2", domain.StatusTrusted)
		seedStore(t, store, "CafeNet", "BB:11:22:33:44:55", "OPEN", domain.StatusUnknown)

		rec := doRequest(handler, http.MethodGet, "/api/networks/stats", nil, true)
		require.Equal(t, http.StatusOK, rec.Code)

		var stats domain.FleetStats
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
		assert.Equal(t, 2, stats.Total)
		assert.Equal(t, 1, stats.ByStatus[domain.StatusTrusted])
		assert.Equal(t, 2, stats.RecentlyActive)
	})
}

func TestThreatEndpoint(t *testing.T) {
	handler, store := newTestServer(t)
	seedStore(t, store, "Free_WiFi", "AA:BB:CC:11:22:33", "OPEN", domain.StatusUnknown)
	seedStore(t, store, "HomeNet", "DD:11:22:33:44:55", "WPA2", domain.StatusTrusted)

	rec := doRequest(handler, http.MethodGet, "/api/threats", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                 `json:"success"`
		Summary domain.ThreatSummary `json:"summary"`
		Threats []domain.ThreatAlert `json:"threats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Summary.Total)
	require.Len(t, resp.Threats, 1)
	assert.Equal(t, "AA:BB:CC:11:22:33", resp.Threats[0].BSSID)
	assert.True(t, resp.Threats[0].IsHarmful)
}

func TestReportDownloadEndpoint(t *testing.T) {
	handler, store := newTestServer(t)
	seedStore(t, store, "Free_WiFi", "AA:BB:CC:11:22:33", "OPEN", domain.StatusUnknown)

	rec := doRequest(handler, http.MethodGet, "/api/reports/download", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "threat-report-")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}
