package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/EnriqueRS/travelmap/internal/config"
	"github.com/EnriqueRS/travelmap/internal/pkg/logger"
	"github.com/EnriqueRS/travelmap/internal/repository/postgres"
	"github.com/EnriqueRS/travelmap/internal/seeder"
)

func main() {
	var path string
	flag.StringVar(&path, "boundaries", "", "path to the world-countries GeoJSON file (overrides config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	if path == "" {
		path = cfg.Seeder.BoundariesPath
	}

	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	repos := postgres.NewRepositories(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := seeder.New(repos.Country, log).Run(ctx, path); err != nil {
		log.Fatal("Boundary import failed", zap.Error(err))
	}
}
