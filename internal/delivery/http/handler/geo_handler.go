package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/EnriqueRS/travelmap/internal/delivery/http/middleware"
	"github.com/EnriqueRS/travelmap/internal/pkg/errors"
	"github.com/EnriqueRS/travelmap/internal/pkg/utils"
	"github.com/EnriqueRS/travelmap/internal/usecase"
	"github.com/EnriqueRS/travelmap/internal/usecase/dto"
)

// GeoHandler serves the spatial query endpoints.
type GeoHandler struct {
	geoUC  *usecase.GeoUseCase
	logger *zap.Logger
}

// NewGeoHandler creates a new GeoHandler.
func NewGeoHandler(geoUC *usecase.GeoUseCase, logger *zap.Logger) *GeoHandler {
	return &GeoHandler{
		geoUC:  geoUC,
		logger: logger,
	}
}

// ResolveCountry godoc
// @Summary Resolve coordinates to a country
// @Description Returns the country whose boundary contains the point. A point on open sea resolves to a null country.
// @Tags Geo
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/geo/resolve [get]
func (h *GeoHandler) ResolveCountry(c *fiber.Ctx) error {
	lat := c.QueryFloat("lat")
	lng := c.QueryFloat("lng")

	resp, err := h.geoUC.ResolveCountry(c.Context(), lat, lng)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, resp, nil)
}

// GetNearbyCountries godoc
// @Summary Countries near a point
// @Description Returns up to 20 countries within the radius, nearest first, distances in kilometers.
// @Tags Geo
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User ID injected by the gateway"
// @Param request body dto.NearbyCountriesRequest true "Point and radius"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/geo/countries/nearby [post]
func (h *GeoHandler) GetNearbyCountries(c *fiber.Ctx) error {
	var req dto.NearbyCountriesRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Debug("Failed to parse nearby request", zap.Error(err))
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	countries, err := h.geoUC.GetNearbyCountries(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, countries, &utils.Meta{Total: len(countries)})
}

// GetUserGeographicStats godoc
// @Summary User geographic statistics
// @Description Composes the user's travel profile: visited countries per continent, total path distance, centroid of their locations.
// @Tags Geo
// @Produce json
// @Param X-User-ID header string true "User ID injected by the gateway"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/geo/user/stats [get]
func (h *GeoHandler) GetUserGeographicStats(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	stats, err := h.geoUC.GetUserGeographicStats(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to compose geographic stats",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, stats, nil)
}

// GetUserStatistics godoc
// @Summary User statistics summary
// @Description Returns the cached counters (countries visited, locations, trips) maintained by the background worker.
// @Tags Geo
// @Produce json
// @Param X-User-ID header string true "User ID injected by the gateway"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/geo/user/stats/summary [get]
func (h *GeoHandler) GetUserStatistics(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	stats, err := h.geoUC.GetUserStatistics(c.Context(), userID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, stats, nil)
}
