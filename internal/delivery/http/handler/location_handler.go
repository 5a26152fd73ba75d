package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/EnriqueRS/travelmap/internal/delivery/http/middleware"
	"github.com/EnriqueRS/travelmap/internal/pkg/errors"
	"github.com/EnriqueRS/travelmap/internal/pkg/utils"
	"github.com/EnriqueRS/travelmap/internal/usecase"
	"github.com/EnriqueRS/travelmap/internal/usecase/dto"
)

// LocationHandler serves the user's location endpoints.
type LocationHandler struct {
	locationUC *usecase.LocationUseCase
	logger     *zap.Logger
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(locationUC *usecase.LocationUseCase, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		locationUC: locationUC,
		logger:     logger,
	}
}

// CreateLocation godoc
// @Summary Create a location
// @Description Stores a geotagged point of interest. The country is resolved from the coordinates server-side.
// @Tags Locations
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User ID injected by the gateway"
// @Param request body dto.CreateLocationRequest true "Location to create"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/locations [post]
func (h *LocationHandler) CreateLocation(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req dto.CreateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Debug("Failed to parse location request", zap.Error(err))
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	resp, err := h.locationUC.CreateLocation(c.Context(), userID, &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusCreated)
	return utils.SendSuccess(c, resp, nil)
}

// UpdateLocation godoc
// @Summary Update a location
// @Description Rewrites a location owned by the user. Moving the point re-runs country resolution.
// @Tags Locations
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User ID injected by the gateway"
// @Param id path string true "Location ID"
// @Param request body dto.UpdateLocationRequest true "New location values"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/locations/{id} [put]
func (h *LocationHandler) UpdateLocation(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.UpdateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Debug("Failed to parse location request", zap.Error(err))
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	resp, err := h.locationUC.UpdateLocation(c.Context(), userID, id, &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, resp, nil)
}

// GetUserLocations godoc
// @Summary User's locations as GeoJSON
// @Description Returns the user's locations as a GeoJSON FeatureCollection for map display.
// @Tags Locations
// @Produce json
// @Param X-User-ID header string true "User ID injected by the gateway"
// @Success 200 {object} domain.FeatureCollection
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/locations [get]
func (h *LocationHandler) GetUserLocations(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	fc, err := h.locationUC.GetUserLocationsGeoJSON(c.Context(), userID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(fc)
}

// GetNearbyLocations godoc
// @Summary User's locations near a point
// @Description Returns the user's own locations within the radius, nearest first.
// @Tags Locations
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User ID injected by the gateway"
// @Param request body dto.NearbyLocationsRequest true "Point and radius"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/locations/nearby [post]
func (h *LocationHandler) GetNearbyLocations(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req dto.NearbyLocationsRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Debug("Failed to parse nearby locations request", zap.Error(err))
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	locations, err := h.locationUC.GetNearbyLocations(c.Context(), userID, &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, locations, &utils.Meta{Total: len(locations)})
}
