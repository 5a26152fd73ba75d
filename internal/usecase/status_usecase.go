package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/EnriqueRS/travelmap/internal/domain"
	"github.com/EnriqueRS/travelmap/internal/domain/repository"
	"github.com/EnriqueRS/travelmap/internal/pkg/errors"
	"github.com/EnriqueRS/travelmap/internal/pkg/validator"
	"github.com/EnriqueRS/travelmap/internal/usecase/dto"
)

// StatusUseCase handles the user's relationship to countries: marking
// them visited, planned or wishlist and reading the grouped codes back.
type StatusUseCase struct {
	countryRepo repository.CountryRepository
	statusRepo  repository.StatusRepository
	cacheRepo   repository.CacheRepository
	notifier    *StatsRecalcNotifier
	logger      *zap.Logger
}

// NewStatusUseCase creates a new StatusUseCase.
func NewStatusUseCase(
	countryRepo repository.CountryRepository,
	statusRepo repository.StatusRepository,
	cacheRepo repository.CacheRepository,
	notifier *StatsRecalcNotifier,
	logger *zap.Logger,
) *StatusUseCase {
	return &StatusUseCase{
		countryRepo: countryRepo,
		statusRepo:  statusRepo,
		cacheRepo:   cacheRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// SetCountryStatus stores the user's status for a country, replacing any
// previous one. Marking a country visited without a visit date stamps
// the current time. The user's cached map is invalidated and a stats
// recalculation is requested after the write.
func (uc *StatusUseCase) SetCountryStatus(ctx context.Context, userID int64, req *dto.SetCountryStatusRequest) (*dto.CountryStatusResponse, error) {
	if err := validator.Validate(req); err != nil {
		uc.logger.Debug("Invalid status request", zap.Error(err))
		return nil, errors.ErrInvalidRequest
	}
	if !domain.ValidStatus(req.Status) {
		return nil, errors.ErrInvalidStatus
	}

	code := strings.ToUpper(req.CountryCode)
	country, err := uc.countryRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if country == nil {
		return nil, errors.ErrCountryNotFound.WithDetails(map[string]interface{}{
			"countryCode": code,
		})
	}

	visitDate := req.VisitDate
	if req.Status == domain.StatusVisited && visitDate == nil {
		now := time.Now().UTC()
		visitDate = &now
	}

	status := &domain.UserCountryStatus{
		UserID:    userID,
		CountryID: country.ID,
		Status:    req.Status,
		VisitDate: visitDate,
		Notes:     req.Notes,
	}

	if err := uc.statusRepo.Replace(ctx, status); err != nil {
		return nil, err
	}

	uc.logger.Info("Country status set",
		zap.Int64("user_id", userID),
		zap.String("country", code),
		zap.String("status", req.Status),
	)

	if err := uc.cacheRepo.InvalidateCountriesGeoJSON(ctx, userID); err != nil {
		uc.logger.Warn("Failed to invalidate cached map",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	uc.notifier.Request(ctx, userID, "country_status_changed")

	return &dto.CountryStatusResponse{
		CountryCode: country.IsoAlpha2,
		CountryName: country.Name,
		Status:      status.Status,
		VisitDate:   status.VisitDate,
		Notes:       status.Notes,
		UpdatedAt:   status.UpdatedAt,
	}, nil
}

// GetUserCountries returns the user's country codes grouped by status.
// Empty groups come back as empty arrays, never null.
func (uc *StatusUseCase) GetUserCountries(ctx context.Context, userID int64) (*domain.UserCountries, error) {
	codes, err := uc.statusRepo.ListCodesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	grouped := domain.NewUserCountries()
	for _, c := range codes {
		grouped.Add(c.Status, c.IsoAlpha2)
	}

	return grouped, nil
}
