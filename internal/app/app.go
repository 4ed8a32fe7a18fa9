package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/data/db"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/http"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/observability"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *http.Server
	Cfg      Config
	Metrics  *observability.Metrics
	Repos    Repos
	Services Services
	Clients  Clients

	store        *db.Service
	otelShutdown func(context.Context) error
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
		return nil, err
	}

	otelShutdown := observability.InitOTel(ctx, log, cfg.otelConfig())

	store, err := db.NewService(log, cfg.dbConfig())
	if err != nil {
		_ = otelShutdown(ctx)
		log.Sync()
		return nil, fmt.Errorf("init store: %w", err)
	}
	if err := db.AutoMigrateAll(store.DB()); err != nil {
		_ = store.Close()
		_ = otelShutdown(ctx)
		log.Sync()
		return nil, fmt.Errorf("store automigrate: %w", err)
	}
	theDB := store.DB()

	metrics := observability.NewMetrics()
	if sqlDB, err := theDB.DB(); err == nil {
		if err := metrics.RegisterDB(sqlDB, store.Driver()); err != nil {
			log.Warn("DB stats collector not registered", "error", err)
		}
	}

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = store.Close()
		_ = otelShutdown(ctx)
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, metrics, reposet, clients)
	handlerset := wireHandlers(theDB, log, serviceset)
	middleware := wireMiddleware(log, serviceset)
	server := wireServer(log, cfg, metrics, handlerset, middleware)

	return &App{
		Log:          log,
		DB:           theDB,
		Server:       server,
		Cfg:          cfg,
		Metrics:      metrics,
		Repos:        reposet,
		Services:     serviceset,
		Clients:      clients,
		store:        store,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Server listening", "port", a.Cfg.Port)
	return a.Server.Run()
}

// Close drains in-flight requests, then releases clients and the store.
func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		a.Log.Warn("HTTP shutdown incomplete", "error", err)
	}
	a.Clients.Close()
	if err := a.store.Close(); err != nil {
		a.Log.Warn("Store close failed", "error", err)
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(shutdownCtx); err != nil {
			a.Log.Warn("Trace flush failed", "error", err)
		}
	}
	a.Log.Sync()
}
