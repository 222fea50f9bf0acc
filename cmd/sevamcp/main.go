package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/apunisarkar/sevamcp/internal/config"
	logpkg "github.com/apunisarkar/sevamcp/internal/logger"
	"github.com/apunisarkar/sevamcp/internal/metrics"
	"github.com/apunisarkar/sevamcp/internal/repository/catalog"
	"github.com/apunisarkar/sevamcp/internal/transport/backend"
	chiTransport "github.com/apunisarkar/sevamcp/internal/transport/chi"
	mcpTransport "github.com/apunisarkar/sevamcp/internal/transport/mcp"
	applicationsuc "github.com/apunisarkar/sevamcp/internal/usecase/applications"
	healthuc "github.com/apunisarkar/sevamcp/internal/usecase/health"
	searchuc "github.com/apunisarkar/sevamcp/internal/usecase/search"
	"github.com/apunisarkar/sevamcp/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting sevamcp server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("transport", cfg.MCP.Transport),
		zap.String("backend", cfg.Backend.BaseURL),
		zap.String("cache_driver", cfg.Catalog.CacheDriver),
	)

	// Register tool/backend/cache metrics explicitly (no init())
	metrics.RegisterMCPMetrics()

	client := backend.New(backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: time.Duration(cfg.Backend.TimeoutSec) * time.Second,
		Logger:  logger,
	})

	ctx := context.Background()
	cacheTTL := time.Duration(cfg.Catalog.CacheTTLSec) * time.Second

	// Catalog cache store based on driver
	var store catalog.Store
	var cachePinger healthuc.CachePinger
	switch cfg.Catalog.CacheDriver {
	case "memory":
		store = catalog.NewMemoryStore(cacheTTL)
	case "redis":
		redisStore, err := catalog.NewRedisStore(catalog.RedisConfig{
			Addrs:    cfg.Catalog.Redis.Addrs,
			Username: cfg.Catalog.Redis.Username,
			Password: cfg.Catalog.Redis.Password,
			DB:       cfg.Catalog.Redis.DB,
			TTL:      cacheTTL,
		})
		if err != nil {
			logger.Fatal("Failed to create redis cache store", zap.Error(err))
		}
		defer redisStore.Close()

		readiness := time.Duration(cfg.Catalog.Redis.ReadinessTimeoutSec) * time.Second
		if err := redisStore.WaitForReady(ctx, readiness); err != nil {
			logger.Fatal("Redis not ready", zap.Error(err))
		}
		logger.Info("Connected to redis")

		store = redisStore
		cachePinger = redisStore
	default:
		logger.Fatal("Unknown cache driver", zap.String("driver", cfg.Catalog.CacheDriver))
	}

	cachedCatalog := catalog.New(client, store, metrics.CatalogCacheTotal, logger)

	// Use case services
	searchSvc := searchuc.New(cachedCatalog).WithMinScore(cfg.Search.MinScore)
	appsSvc := applicationsuc.New(client)
	healthSvc := healthuc.New(client, cachePinger)

	// Startup probe — informational only, the server runs regardless
	if status, err := client.Health(ctx); err != nil {
		logger.Warn("Backend health check failed", zap.Error(err))
	} else {
		logger.Info("Backend is up", zap.String("status", status))
	}

	mcpSrv := mcpTransport.NewServer(
		searchSvc, appsSvc, healthSvc, cfg.Portal.ApplyBaseURL, logger,
	).Build()

	switch cfg.MCP.Transport {
	case "stdio":
		logger.Info("Serving MCP over stdio")
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			logger.Fatal("Stdio server error", zap.Error(err))
		}
	case "http":
		serveHTTP(cfg, mcpSrv, healthSvc, logger)
	}

	logger.Info("Server stopped gracefully")
}

// serveHTTP mounts the streamable MCP handler on the chi router and runs
// with graceful shutdown.
func serveHTTP(
	cfg config.Config,
	mcpSrv *mcpserver.MCPServer,
	healthSvc *healthuc.Service,
	logger *zap.Logger,
) {
	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv)
	router := chiTransport.NewRouter(streamable, healthSvc, cfg.MCP.APIKeys, logger)

	srv := &http.Server{
		Addr:         cfg.MCP.HTTPAddr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.MCP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.MCP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.MCP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}
}
