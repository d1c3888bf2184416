package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/apsentry/apsentry/internal/adapters/storage"
	webserver "github.com/apsentry/apsentry/internal/adapters/web/server"
	"github.com/apsentry/apsentry/internal/adapters/web/websocket"
	"github.com/apsentry/apsentry/internal/config"
	"github.com/apsentry/apsentry/internal/core/ports"
	"github.com/apsentry/apsentry/internal/core/services/intake"
	"github.com/apsentry/apsentry/internal/core/services/query"
	"github.com/apsentry/apsentry/internal/core/services/registry"
	"github.com/apsentry/apsentry/internal/core/services/threat"
	"github.com/apsentry/apsentry/internal/telemetry"
)

// Application holds the core components of the system and acts as the
// bootstrap facade wiring storage, services and servers together.
type Application struct {
	Config    *config.Config
	Store     ports.Storage
	Pipeline  *intake.Pipeline
	Registry  *registry.NetworkRegistry
	Query     *query.Service
	WebServer *webserver.Server
	WSManager *websocket.WSManager
}

// New creates a new Application instance and bootstraps its components.
func New(cfg *config.Config) (*Application, error) {
	app := &Application{Config: cfg}

	if err := app.bootstrap(); err != nil {
		return nil, fmt.Errorf("application bootstrap failed: %w", err)
	}
	return app, nil
}

func (app *Application) bootstrap() error {
	telemetry.InitMetrics()

	store, err := app.initStorage()
	if err != nil {
		return err
	}
	app.Store = store

	engine := threat.NewEngine()
	app.WSManager = websocket.NewWSManager()
	app.Pipeline = intake.NewPipeline(store, engine, app.WSManager)
	app.Registry = registry.NewNetworkRegistry(store)
	app.Query = query.NewService(store, engine)

	if app.Config.SensorKey == "" {
		log.Println("Warning: no sensor key configured; all API requests will be rejected")
	}

	app.WebServer = webserver.NewServer(
		app.Config.Addr,
		app.Config.SensorKey,
		app.Config.RateLimit,
		app.Pipeline,
		app.Registry,
		app.Query,
		app.WSManager,
	)
	return nil
}

func (app *Application) initStorage() (ports.Storage, error) {
	if app.Config.MockMode {
		log.Println("Mock mode active: using in-memory storage")
		return storage.NewMemoryStore(), nil
	}

	if err := os.MkdirAll(filepath.Dir(app.Config.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	store, err := storage.NewSQLiteAdapter(app.Config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}
	return store, nil
}

// Run starts the web server and blocks until the context is cancelled.
func (app *Application) Run(ctx context.Context) error {
	defer func() {
		if err := app.Store.Close(); err != nil {
			log.Printf("Storage close error: %v", err)
		}
	}()

	return app.WebServer.Run(ctx)
}
