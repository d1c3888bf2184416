package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/apsentry/apsentry/internal/adapters/reporting"
	"github.com/apsentry/apsentry/internal/adapters/web/handlers"
	"github.com/apsentry/apsentry/internal/adapters/web/websocket"
	"github.com/apsentry/apsentry/internal/core/services/intake"
	"github.com/apsentry/apsentry/internal/core/services/query"
	"github.com/apsentry/apsentry/internal/core/services/registry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Server handles HTTP and WebSocket connections.
type Server struct {
	Addr      string
	SensorKey string
	RateLimit int

	WSManager      *websocket.WSManager
	IngestHandler  *handlers.IngestHandler
	NetworkHandler *handlers.NetworkHandler
	ThreatHandler  *handlers.ThreatHandler
	ReportHandler  *handlers.ReportHandler

	srv *http.Server
}

// NewServer creates a new web server.
func NewServer(addr, sensorKey string, rateLimit int, pipeline *intake.Pipeline, reg *registry.NetworkRegistry, q *query.Service, ws *websocket.WSManager) *Server {
	return &Server{
		Addr:      addr,
		SensorKey: sensorKey,
		RateLimit: rateLimit,

		WSManager:      ws,
		IngestHandler:  handlers.NewIngestHandler(pipeline),
		NetworkHandler: handlers.NewNetworkHandler(reg),
		ThreatHandler:  handlers.NewThreatHandler(q),
		ReportHandler:  handlers.NewReportHandler(q, reporting.NewPDFExporter()),
	}
}

// Run starts the server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	handler := SetupRoutes(s)

	// Instrument with OpenTelemetry
	instrumentedHandler := otelhttp.NewHandler(handler, "apsentry-server")

	s.srv = &http.Server{
		Addr:              s.Addr,
		Handler:           instrumentedHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		log.Println("Web server shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Web server shutdown error: %v", err)
		}
	}()

	log.Printf("Web server listening on %s", s.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
