package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/rentals-backend/internal/data/db"
	"github.com/yungbote/rentals-backend/internal/http"
	"github.com/yungbote/rentals-backend/internal/observability"
	"github.com/yungbote/rentals-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	Clients  Clients
	Metrics  *observability.Metrics

	server       *http.Server
	dbService    *db.Service
	shutdownOTel func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading configuration...")
	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load config: %w", err)
	}

	dbs, err := db.Open(cfg.Database(), log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := dbs.AutoMigrateAll(); err != nil {
		_ = dbs.Close()
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	clients, err := wireClients(log, cfg)
	if err != nil {
		_ = dbs.Close()
		log.Sync()
		return nil, err
	}

	shutdownOTel := observability.InitOTel(ctx, log, cfg.otelConfig())

	a := assemble(log, cfg, dbs.DB(), clients, observability.Init(cfg.MetricsEnabled))
	a.dbService = dbs
	a.shutdownOTel = shutdownOTel
	return a, nil
}

// NewWithDB wires the application around an already migrated database
// without external clients. Booking events are dropped.
func NewWithDB(log *logger.Logger, cfg Config, conn *gorm.DB) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return assemble(log, cfg, conn, Clients{}, observability.Init(cfg.MetricsEnabled)), nil
}

func assemble(log *logger.Logger, cfg Config, conn *gorm.DB, clients Clients, metrics *observability.Metrics) *App {
	reposet := wireRepos(conn, log)
	serviceset := wireServices(conn, log, cfg, reposet, clients, metrics)
	handlerset := wireHandlers(conn, log, cfg, serviceset)
	middleware := wireMiddleware(log, serviceset)
	server := http.NewServer(routerConfig(log, cfg, metrics, handlerset, middleware), cfg.ShutdownTimeout)

	return &App{
		Log:      log,
		DB:       conn,
		Router:   server.Engine,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		Clients:  clients,
		Metrics:  metrics,
		server:   server,
	}
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.server.Run(ctx, a.Cfg.Address())
}

func (a *App) Close() {
	if a == nil {
		return
	}
	a.Clients.Close()
	if a.shutdownOTel != nil {
		if err := a.shutdownOTel(context.Background()); err != nil {
			a.Log.Warn("OpenTelemetry shutdown failed", "error", err)
		}
	}
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil {
			a.Log.Warn("Database close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
