package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/motorlane/adengine/internal/cache"
	"github.com/motorlane/adengine/internal/config"
	"github.com/motorlane/adengine/internal/database"
	"github.com/motorlane/adengine/internal/endpoint"
	"github.com/motorlane/adengine/internal/logger"
	"github.com/motorlane/adengine/internal/metrics"
	"github.com/motorlane/adengine/internal/middleware"
	"github.com/motorlane/adengine/internal/notifier"
	"github.com/motorlane/adengine/internal/repository"
	"github.com/motorlane/adengine/internal/service"
	"github.com/motorlane/adengine/internal/transport"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const VERSION = "1.0.0"

func init() {
	config.LoadConfigs()
}

func main() {
	kitLogger := logger.New(logger.Config{
		Service: "adengine",
		Version: VERSION,
	})

	promMetrics := metrics.NewPrometheusMetrics()

	// Repository: postgres by default, in-memory when requested or when
	// running without a database (local demos, CI).
	var repo service.AdRepository
	var dbCleanup func()
	if os.Getenv("USE_MOCK_REPOSITORY") == "true" {
		kitLogger.Log("msg", "using in-memory repository")
		repo = repository.NewMockRepository()
	} else {
		db, cleanup, err := database.Initialize(
			config.AppConfigInstance.DatabaseConfig,
			config.AppConfigInstance.GeneralConfig.MigrationsDir,
		)
		if err != nil {
			kitLogger.Log("msg", "failed to initialize database", "error", err.Error())
			os.Exit(1)
		}
		dbCleanup = cleanup
		repo = repository.NewPostgresRepository(db)

		go watchDatabaseHealth(db, promMetrics)
	}
	if dbCleanup != nil {
		defer dbCleanup()
	}

	repo = repository.NewInstrumentedRepository(repo, promMetrics)

	// Listing cache in front of the repository.
	cacheConfig := config.GetCacheConfig()
	listingCache, err := cache.NewHybridCache(cacheConfig)
	if err != nil {
		kitLogger.Log("msg", "cache unavailable, serving without it", "error", err.Error())
	} else {
		repo = cache.NewCachedRepository(repo, listingCache, cacheConfig.DefaultTTL)
	}

	// Services with their decorators.
	lifecycleNotifier := notifier.NewLogNotifier(kitLogger)

	var lifecycle service.AdLifecycleService = service.NewLifecycleService(repo, lifecycleNotifier, kitLogger)
	lifecycle = middleware.NewServiceMetricsMiddleware(promMetrics)(lifecycle)
	lifecycle = middleware.NewLoggingMiddleware(kitLogger)(lifecycle)

	var listing service.ListingService = service.NewListingService(repo)
	listing = middleware.NewListingLoggingMiddleware(kitLogger)(listing)

	compare := service.NewCompareService(repo)

	endpoints := endpoint.MakeAdEndpoints(listing, compare, lifecycle)
	handler := transport.NewHTTPHandler(endpoints, transport.HandlerConfig{
		RequireModeratorRole: config.AppConfigInstance.GeneralConfig.RequireModeratorHeader,
	}, kitLogger)

	// HTTP middleware chain, outermost first.
	handler = middleware.NewMetricsMiddleware(promMetrics).Middleware(handler)
	handler = middleware.NewActorMiddleware().Middleware(handler)
	handler = middleware.NewRequestIDMiddleware().Middleware(handler)
	if rps := config.AppConfigInstance.GeneralConfig.RateLimitRPS; rps > 0 {
		handler = middleware.NewRateLimitMiddleware(rps).Middleware(handler)
	}

	root := http.NewServeMux()
	root.Handle("/metrics", promhttp.Handler())
	root.Handle("/", handler)

	port := config.AppConfigInstance.GeneralConfig.Port
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      root,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		kitLogger.Log("msg", "starting server", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			kitLogger.Log("msg", "server failed", "error", err.Error())
			os.Exit(1)
		}
	}()

	// Block until shutdown is requested, then drain in-flight requests.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	kitLogger.Log("msg", "shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		kitLogger.Log("msg", "graceful shutdown failed", "error", err.Error())
	}
}

// watchDatabaseHealth keeps the database health gauge current
func watchDatabaseHealth(db *database.DB, promMetrics *metrics.Metrics) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	promMetrics.SetHealthCheckStatus("database", db.HealthCheck() == nil)
	for range ticker.C {
		promMetrics.SetHealthCheckStatus("database", db.HealthCheck() == nil)
	}
}
