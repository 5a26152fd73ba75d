package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/EnriqueRS/travelmap/internal/domain"
	"github.com/EnriqueRS/travelmap/internal/domain/repository"
	"github.com/EnriqueRS/travelmap/internal/pkg/errors"
	"github.com/EnriqueRS/travelmap/internal/pkg/utils"
	"github.com/EnriqueRS/travelmap/internal/pkg/validator"
	"github.com/EnriqueRS/travelmap/internal/usecase/dto"
)

// nearbyCountriesLimit caps a radius search result.
const nearbyCountriesLimit = 20

// GeoUseCase answers the spatial questions: which country contains a
// point, which countries lie around it, and a user's geographic profile.
type GeoUseCase struct {
	countryRepo     repository.CountryRepository
	statusRepo      repository.StatusRepository
	locationRepo    repository.LocationRepository
	statsRepo       repository.UserStatsRepository
	logger          *zap.Logger
	defaultRadiusKm float64
}

// NewGeoUseCase creates a new GeoUseCase.
func NewGeoUseCase(
	countryRepo repository.CountryRepository,
	statusRepo repository.StatusRepository,
	locationRepo repository.LocationRepository,
	statsRepo repository.UserStatsRepository,
	logger *zap.Logger,
	defaultRadiusKm float64,
) *GeoUseCase {
	return &GeoUseCase{
		countryRepo:     countryRepo,
		statusRepo:      statusRepo,
		locationRepo:    locationRepo,
		statsRepo:       statsRepo,
		logger:          logger,
		defaultRadiusKm: defaultRadiusKm,
	}
}

// ResolveCountry returns the country containing the point. A point on
// open sea resolves to a nil country, not an error.
func (uc *GeoUseCase) ResolveCountry(ctx context.Context, lat, lng float64) (*dto.ResolvedCountryResponse, error) {
	if !utils.ValidateCoordinates(lat, lng) {
		return nil, errors.ErrInvalidCoordinates
	}

	country, err := uc.countryRepo.FindByPoint(ctx, lng, lat)
	if err != nil {
		return nil, err
	}
	if country == nil {
		uc.logger.Debug("Point resolved to no country",
			zap.Float64("lat", lat),
			zap.Float64("lng", lng),
		)
		return &dto.ResolvedCountryResponse{}, nil
	}

	resp := dto.NewCountryResponse(country)
	return &dto.ResolvedCountryResponse{Country: &resp}, nil
}

// GetNearbyCountries returns countries within the radius of a point,
// nearest first, capped at 20, distances rounded to two decimals. A zero
// radius falls back to the configured default.
func (uc *GeoUseCase) GetNearbyCountries(ctx context.Context, req *dto.NearbyCountriesRequest) ([]dto.NearbyCountryResponse, error) {
	if err := validator.Validate(req); err != nil {
		uc.logger.Debug("Invalid nearby request", zap.Error(err))
		return nil, errors.ErrInvalidRequest
	}
	if !utils.ValidateCoordinates(req.Lat, req.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}

	radiusKm := req.RadiusKm
	if radiusKm == 0 {
		radiusKm = uc.defaultRadiusKm
	}
	if !utils.ValidateRadius(radiusKm) {
		return nil, errors.ErrInvalidRadius
	}

	countries, err := uc.countryRepo.FindInRadius(ctx, req.Lng, req.Lat, radiusKm, nearbyCountriesLimit)
	if err != nil {
		return nil, err
	}

	result := make([]dto.NearbyCountryResponse, 0, len(countries))
	for _, c := range countries {
		result = append(result, dto.NearbyCountryResponse{
			CountryResponse: dto.NewCountryResponse(&c.Country),
			DistanceKm:      utils.RoundKm(c.DistanceKm),
		})
	}

	return result, nil
}

// GetUserGeographicStats composes the user's geographic profile from the
// source tables: visited countries per continent, total path distance
// over their locations in visit order, and the centroid of everywhere
// they have been.
func (uc *GeoUseCase) GetUserGeographicStats(ctx context.Context, userID int64) (*domain.GeographicStats, error) {
	byContinent, err := uc.statusRepo.VisitedByContinent(ctx, userID)
	if err != nil {
		return nil, err
	}
	if byContinent == nil {
		byContinent = []domain.ContinentVisitCount{}
	}

	visited, err := uc.statusRepo.CountVisited(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalLocations, err := uc.locationRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	distanceKm, err := uc.locationRepo.TravelDistanceKm(ctx, userID)
	if err != nil {
		return nil, err
	}

	centroid, err := uc.locationRepo.Centroid(ctx, userID)
	if err != nil {
		return nil, err
	}
	if centroid == nil {
		centroid = &domain.Point{}
	}

	return &domain.GeographicStats{
		VisitedByContinent: byContinent,
		TotalDistanceKm:    utils.RoundKm(distanceKm),
		Centroid:           *centroid,
		TotalLocations:     totalLocations,
		CountriesVisited:   visited,
	}, nil
}

// GetUserStatistics reads the cached summary row, computing it on first
// access for users the worker has never seen.
func (uc *GeoUseCase) GetUserStatistics(ctx context.Context, userID int64) (*domain.UserGeoStatistics, error) {
	stats, err := uc.statsRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		uc.logger.Debug("No cached statistics, recalculating", zap.Int64("user_id", userID))
		return uc.statsRepo.Recalculate(ctx, userID)
	}
	return stats, nil
}
