// Package main initializes and starts the FactHub web server, setting up
// configuration, logging, storage, seed content, sessions, handlers, and
// graceful shutdown.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/akulikov/facthub/internal/config"
	"github.com/akulikov/facthub/internal/db"
	"github.com/akulikov/facthub/internal/logger"
	"github.com/akulikov/facthub/internal/repository"
	"github.com/akulikov/facthub/internal/seed"
	"github.com/akulikov/facthub/internal/server/handler/http"
	"github.com/akulikov/facthub/internal/service"
	"github.com/akulikov/facthub/internal/session"
	"github.com/akulikov/facthub/internal/store"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Pick the storage backend: PostgreSQL when a DSN is configured,
	// in-memory otherwise. In-memory state is lost on restart.
	var catalogRepo service.CatalogRepository
	var accountRepo service.AccountRepository
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		defer postgresDB.Close()
		catalogRepo = repository.NewPostgresCatalogRepository(postgresDB)
		accountRepo = repository.NewPostgresAccountRepository(postgresDB)
	} else {
		catalogRepo = store.NewCatalog()
		accountRepo = store.NewAccounts()
		zapLogger.Info("running on in-memory stores; mutations are lost on restart")
	}

	// Load and apply the seed content.
	seedData, err := seed.Load(options.SeedFile)
	if err != nil {
		zapLogger.Fatal("cannot load seed data", zap.Error(err))
	}
	if err := seed.Apply(ctx, catalogRepo, accountRepo, seedData); err != nil {
		zapLogger.Fatal("cannot seed stores", zap.Error(err))
	}

	// Initialize business-logic services.
	catalogService := service.NewCatalogService(catalogRepo)
	accountService := service.NewAccountService(accountRepo)

	// Visitor sessions with periodic expiry of idle ones.
	sessions := session.NewManager(options.SessionTTL)
	sessions.StartCleaner(ctx, time.Minute, zapLogger)

	// Create the page renderer and HTTP handlers.
	renderer, err := http.NewRenderer(zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to parse templates", zap.Error(err))
	}
	pageHandler := &http.PageHandler{Renderer: renderer, Log: zapLogger}
	factHandler := &http.FactHandler{Catalog: catalogService, Renderer: renderer}
	authHandler := &http.AuthHandler{Accounts: accountService, Sessions: sessions, Renderer: renderer}

	// Build the router with middleware and routes.
	router := http.NewRouter(pageHandler, factHandler, authHandler, sessions, zapLogger)

	server := &nethttp.Server{
		Addr:         options.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server shutdown", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}
