package server

import (
	"net/http"
	"time"

	"github.com/apsentry/apsentry/internal/adapters/web/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes builds the HTTP routing table.
func SetupRoutes(s *Server) http.Handler {
	r := mux.NewRouter()

	auth := middleware.AuthMiddleware(s.SensorKey)
	protect := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}

	// Ingest is additionally rate limited per remote.
	ingestLimiter := middleware.NewRateLimiter(s.RateLimit, 1*time.Minute)
	r.Handle("/api/observations",
		middleware.RateLimitMiddleware(ingestLimiter)(protect(s.IngestHandler.HandleIngest))).
		Methods(http.MethodPost)

	r.Handle("/api/networks", protect(s.NetworkHandler.HandleList)).Methods(http.MethodGet)
	r.Handle("/api/networks/stats", protect(s.NetworkHandler.HandleStats)).Methods(http.MethodGet)
	r.Handle("/api/networks/{bssid}/status", protect(s.NetworkHandler.HandleUpdateStatus)).Methods(http.MethodPatch)

	r.Handle("/api/threats", protect(s.ThreatHandler.HandleGetThreats)).Methods(http.MethodGet)
	r.Handle("/api/reports/download", protect(s.ReportHandler.HandleDownloadReport)).Methods(http.MethodGet)

	// WebSocket endpoint for live threat alerts (protected)
	r.Handle("/ws", protect(s.WSManager.HandleWebSocket))

	// Metrics endpoint (protected - requires the shared key)
	r.Handle("/metrics", protect(func(w http.ResponseWriter, req *http.Request) {
		promhttp.Handler().ServeHTTP(w, req)
	}))

	return r
}
