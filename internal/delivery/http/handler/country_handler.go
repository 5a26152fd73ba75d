package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/EnriqueRS/travelmap/internal/delivery/http/middleware"
	"github.com/EnriqueRS/travelmap/internal/pkg/utils"
	"github.com/EnriqueRS/travelmap/internal/usecase"
	"github.com/EnriqueRS/travelmap/internal/usecase/dto"
)

// CountryHandler serves the boundary catalog endpoints.
type CountryHandler struct {
	countryUC *usecase.CountryUseCase
	logger    *zap.Logger
}

// NewCountryHandler creates a new CountryHandler.
func NewCountryHandler(countryUC *usecase.CountryUseCase, logger *zap.Logger) *CountryHandler {
	return &CountryHandler{
		countryUC: countryUC,
		logger:    logger,
	}
}

// GetCountriesGeoJSON godoc
// @Summary World map as GeoJSON
// @Description Returns every country as a GeoJSON FeatureCollection. With an X-User-ID header each feature carries that user's status (visited/planned/wishlist/default).
// @Tags Countries
// @Produce json
// @Param X-User-ID header string false "User ID injected by the gateway"
// @Success 200 {object} domain.FeatureCollection
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/geo/countries [get]
func (h *CountryHandler) GetCountriesGeoJSON(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	fc, err := h.countryUC.GetCountriesGeoJSON(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to build countries GeoJSON", zap.Error(err))
		return utils.SendError(c, err)
	}

	// GeoJSON consumers expect the bare FeatureCollection, not the
	// data envelope.
	return c.JSON(fc)
}

// GetCountry godoc
// @Summary Country details
// @Description Returns one catalog entry by its ISO alpha-2 code.
// @Tags Countries
// @Produce json
// @Param code path string true "ISO alpha-2 code"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/geo/countries/{code} [get]
func (h *CountryHandler) GetCountry(c *fiber.Ctx) error {
	code := c.Params("code")

	country, err := h.countryUC.GetCountry(c.Context(), code)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, country, nil)
}

// SearchCountries godoc
// @Summary Search countries
// @Description Text search over names and ISO codes. Name-prefix matches rank first, then alpha-2-prefix matches.
// @Tags Countries
// @Produce json
// @Param q query string false "Search query; empty returns an empty list"
// @Param limit query int false "Max results (default 10)"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/geo/countries/search [get]
func (h *CountryHandler) SearchCountries(c *fiber.Ctx) error {
	req := &dto.SearchCountriesRequest{
		Query: c.Query("q"),
		Limit: c.QueryInt("limit"),
	}

	countries, err := h.countryUC.SearchCountries(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, countries, &utils.Meta{Total: len(countries)})
}

// GetContinentStats godoc
// @Summary Catalog statistics by continent
/// @Description Aggregates the catalog per continent: country count, average area, total population.
// @Tags Countries
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/geo/countries/by-continent [get]
func (h *CountryHandler) GetContinentStats(c *fiber.Ctx) error {
	stats, err := h.countryUC.GetContinentStats(c.Context())
	if err != nil {
		h.logger.Error("Failed to get continent stats", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, stats, nil)
}
