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

// StatusHandler serves the user's country status endpoints.
type StatusHandler struct {
	statusUC *usecase.StatusUseCase
	logger   *zap.Logger
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(statusUC *usecase.StatusUseCase, logger *zap.Logger) *StatusHandler {
	return &StatusHandler{
		statusUC: statusUC,
		logger:   logger,
	}
}

// SetCountryStatus godoc
// @Summary Set country status
// @Description Marks a country visited, planned or wishlist for the user, replacing any previous status.
// @Tags Statuses
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User ID injected by the gateway"
// @Param request body dto.SetCountryStatusRequest true "Status to set"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/geo/countries/status [post]
func (h *StatusHandler) SetCountryStatus(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req dto.SetCountryStatusRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Debug("Failed to parse status request", zap.Error(err))
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	resp, err := h.statusUC.SetCountryStatus(c.Context(), userID, &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, resp, nil)
}

// GetUserCountries godoc
// @Summary User's countries grouped by status
// @Description Returns the user's country codes grouped into visited, planned and wishlist arrays.
// @Tags Statuses
// @Produce json
// @Param X-User-ID header string true "User ID injected by the gateway"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/geo/user-countries [get]
func (h *StatusHandler) GetUserCountries(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	countries, err := h.statusUC.GetUserCountries(c.Context(), userID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, countries, nil)
}
