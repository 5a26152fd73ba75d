package main

// @title Travelmap Geo Service API
// @version 1.0.0
// @description Geographic core of the travel map: country boundaries as GeoJSON, visited/planned/wishlist statuses, coordinate-to-country resolution, nearby search and per-user travel statistics.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/EnriqueRS/travelmap/docs/swagger"
	"github.com/EnriqueRS/travelmap/internal/config"
	httpDelivery "github.com/EnriqueRS/travelmap/internal/delivery/http"
	"github.com/EnriqueRS/travelmap/internal/delivery/http/handler"
	"github.com/EnriqueRS/travelmap/internal/pkg/logger"
	"github.com/EnriqueRS/travelmap/internal/repository/cache"
	"github.com/EnriqueRS/travelmap/internal/repository/postgres"
	redisRepo "github.com/EnriqueRS/travelmap/internal/repository/redis"
	"github.com/EnriqueRS/travelmap/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Travelmap Geo Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL (spatial backend detected here)
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories
	repos := postgres.NewRepositories(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log, cfg.Worker.StreamReadTimeout)

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	notifier := usecase.NewStatsRecalcNotifier(streamRepo, repos.UserStats, log)

	countryUC := usecase.NewCountryUseCase(
		repos.Country,
		cacheRepo,
		log,
		cfg.Cache.GeoJSONCacheTTL,
		cfg.Cache.ContinentCacheTTL,
	)

	statusUC := usecase.NewStatusUseCase(
		repos.Country,
		repos.Status,
		cacheRepo,
		notifier,
		log,
	)

	geoUC := usecase.NewGeoUseCase(
		repos.Country,
		repos.Status,
		repos.Location,
		repos.UserStats,
		log,
		cfg.Geo.DefaultNearbyRadiusKm,
	)

	locationUC := usecase.NewLocationUseCase(
		repos.Location,
		repos.Country,
		notifier,
		log,
		cfg.Geo.DefaultNearbyRadiusKm,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	countryHandler := handler.NewCountryHandler(countryUC, log)
	statusHandler := handler.NewStatusHandler(statusUC, log)
	geoHandler := handler.NewGeoHandler(geoUC, log)
	locationHandler := handler.NewLocationHandler(locationUC, log)
	healthHandler := handler.NewHealthHandler(db, redisClient, log)

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		countryHandler,
		statusHandler,
		geoHandler,
		locationHandler,
		healthHandler,
	)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
