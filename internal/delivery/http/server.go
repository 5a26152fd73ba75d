package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/EnriqueRS/travelmap/internal/config"
	"github.com/EnriqueRS/travelmap/internal/delivery/http/handler"
	"github.com/EnriqueRS/travelmap/internal/delivery/http/middleware"
)

// Server is the Fiber HTTP server for the geo API.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	countryHandler  *handler.CountryHandler
	statusHandler   *handler.StatusHandler
	geoHandler      *handler.GeoHandler
	locationHandler *handler.LocationHandler
	healthHandler   *handler.HealthHandler
}

// NewServer creates the HTTP server with routes and middleware wired.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	countryHandler *handler.CountryHandler,
	statusHandler *handler.StatusHandler,
	geoHandler *handler.GeoHandler,
	locationHandler *handler.LocationHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Travelmap Geo Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		countryHandler:  countryHandler,
		statusHandler:   statusHandler,
		geoHandler:      geoHandler,
		locationHandler: locationHandler,
		healthHandler:   healthHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.healthHandler.Health)

	geo := api.Group("/geo")

	// Catalog routes. The map endpoint works anonymously but picks up
	// per-user statuses when the gateway forwards an identity.
	geo.Get("/countries", middleware.OptionalAuth(), s.countryHandler.GetCountriesGeoJSON)
	geo.Get("/countries/search", s.countryHandler.SearchCountries)
	geo.Get("/countries/by-continent", s.countryHandler.GetContinentStats)
	geo.Post("/countries/nearby", middleware.Auth(), s.geoHandler.GetNearbyCountries)
	geo.Get("/countries/:code", s.countryHandler.GetCountry)

	// Spatial queries
	geo.Get("/resolve", s.geoHandler.ResolveCountry)

	// Per-user routes
	geo.Post("/countries/status", middleware.Auth(), s.statusHandler.SetCountryStatus)
	geo.Get("/user-countries", middleware.Auth(), s.statusHandler.GetUserCountries)
	geo.Get("/user/stats", middleware.Auth(), s.geoHandler.GetUserGeographicStats)
	geo.Get("/user/stats/summary", middleware.Auth(), s.geoHandler.GetUserStatistics)

	// Location routes
	locations := api.Group("/locations", middleware.Auth())
	locations.Post("/", s.locationHandler.CreateLocation)
	locations.Get("/", s.locationHandler.GetUserLocations)
	locations.Post("/nearby", s.locationHandler.GetNearbyLocations)
	locations.Put("/:id", s.locationHandler.UpdateLocation)
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
