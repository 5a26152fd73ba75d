package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/EnriqueRS/travelmap/internal/domain"
	"github.com/EnriqueRS/travelmap/internal/domain/repository"
	"github.com/EnriqueRS/travelmap/internal/pkg/errors"
	"github.com/EnriqueRS/travelmap/internal/pkg/utils"
	"github.com/EnriqueRS/travelmap/internal/pkg/validator"
	"github.com/EnriqueRS/travelmap/internal/usecase/dto"
)

const defaultNearbyLocationsLimit = 50

// LocationUseCase manages a user's geotagged locations. Every create or
// move runs country resolution against the catalog so the location's
// country stays consistent with its coordinates.
type LocationUseCase struct {
	locationRepo    repository.LocationRepository
	countryRepo     repository.CountryRepository
	notifier        *StatsRecalcNotifier
	logger          *zap.Logger
	defaultRadiusKm float64
}

// NewLocationUseCase creates a new LocationUseCase.
func NewLocationUseCase(
	locationRepo repository.LocationRepository,
	countryRepo repository.CountryRepository,
	notifier *StatsRecalcNotifier,
	logger *zap.Logger,
	defaultRadiusKm float64,
) *LocationUseCase {
	return &LocationUseCase{
		locationRepo:    locationRepo,
		countryRepo:     countryRepo,
		notifier:        notifier,
		logger:          logger,
		defaultRadiusKm: defaultRadiusKm,
	}
}

// resolveCountry maps coordinates to a catalog entry. Points outside
// every boundary and resolution failures both leave the country unset;
// a location on open sea is legitimate.
func (uc *LocationUseCase) resolveCountry(ctx context.Context, lng, lat float64) *domain.Country {
	country, err := uc.countryRepo.FindByPoint(ctx, lng, lat)
	if err != nil {
		uc.logger.Warn("Country resolution failed, leaving country unset",
			zap.Float64("lng", lng),
			zap.Float64("lat", lat),
			zap.Error(err),
		)
		return nil
	}
	return country
}

// CreateLocation validates and stores a new location, resolving its
// country from the coordinates.
func (uc *LocationUseCase) CreateLocation(ctx context.Context, userID int64, req *dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if err := validator.Validate(req); err != nil {
		uc.logger.Debug("Invalid location request", zap.Error(err))
		return nil, errors.ErrInvalidRequest
	}
	if !utils.ValidateCoordinates(req.Lat, req.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}
	if !domain.ValidCategory(req.Category) {
		return nil, errors.ErrInvalidCategory
	}

	location := &domain.Location{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Lng:         req.Lng,
		Lat:         req.Lat,
		VisitDate:   req.VisitDate,
		Rating:      req.Rating,
		Category:    req.Category,
	}

	if req.TripID != nil {
		tripID, err := uuid.Parse(*req.TripID)
		if err != nil {
			return nil, errors.ErrInvalidRequest
		}
		location.TripID = &tripID
	}

	country := uc.resolveCountry(ctx, req.Lng, req.Lat)
	if country != nil {
		location.CountryID = &country.ID
	}

	if err := uc.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}

	uc.logger.Info("Location created",
		zap.Int64("user_id", userID),
		zap.String("id", location.ID.String()),
		zap.String("name", location.Name),
	)

	uc.notifier.Request(ctx, userID, "location_created")

	return toLocationResponse(location, country), nil
}

// UpdateLocation rewrites an existing location owned by the user.
// Moving the point re-runs country resolution.
func (uc *LocationUseCase) UpdateLocation(ctx context.Context, userID int64, id uuid.UUID, req *dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	if err := validator.Validate(req); err != nil {
		uc.logger.Debug("Invalid location request", zap.Error(err))
		return nil, errors.ErrInvalidRequest
	}
	if !utils.ValidateCoordinates(req.Lat, req.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}
	if !domain.ValidCategory(req.Category) {
		return nil, errors.ErrInvalidCategory
	}

	location, err := uc.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, errors.ErrLocationNotFound
	}
	if location.UserID != userID {
		return nil, errors.ErrUnauthorized
	}

	moved := location.Lng != req.Lng || location.Lat != req.Lat

	location.Name = req.Name
	location.Description = req.Description
	location.Lng = req.Lng
	location.Lat = req.Lat
	location.VisitDate = req.VisitDate
	location.Rating = req.Rating
	location.Category = req.Category

	location.TripID = nil
	if req.TripID != nil {
		tripID, err := uuid.Parse(*req.TripID)
		if err != nil {
			return nil, errors.ErrInvalidRequest
		}
		location.TripID = &tripID
	}

	var country *domain.Country
	if moved {
		location.CountryID = nil
		country = uc.resolveCountry(ctx, req.Lng, req.Lat)
		if country != nil {
			location.CountryID = &country.ID
		}
	} else if location.CountryID != nil {
		// Keep the stored country; a plain id lookup is enough for the
		// response code, no containment query needed.
		country, err = uc.countryRepo.FindByID(ctx, *location.CountryID)
		if err != nil {
			uc.logger.Warn("Country lookup failed, omitting code from response",
				zap.Int64("country_id", *location.CountryID),
				zap.Error(err),
			)
			country = nil
		}
	}

	if err := uc.locationRepo.Update(ctx, location); err != nil {
		return nil, err
	}

	uc.notifier.Request(ctx, userID, "location_updated")

	return toLocationResponse(location, country), nil
}

// GetUserLocationsGeoJSON returns the user's locations as a
// FeatureCollection for map display.
func (uc *LocationUseCase) GetUserLocationsGeoJSON(ctx context.Context, userID int64) (*domain.FeatureCollection, error) {
	locations, err := uc.locationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	features := make([]domain.Feature, 0, len(locations))
	for _, l := range locations {
		features = append(features, l.ToGeoJSONFeature())
	}

	return domain.NewFeatureCollection(features), nil
}

// GetNearbyLocations returns the user's own locations around a point,
// nearest first, distances rounded to two decimals.
func (uc *LocationUseCase) GetNearbyLocations(ctx context.Context, userID int64, req *dto.NearbyLocationsRequest) ([]dto.NearbyLocationResponse, error) {
	if err := validator.Validate(req); err != nil {
		uc.logger.Debug("Invalid nearby locations request", zap.Error(err))
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

	limit := req.Limit
	if limit <= 0 {
		limit = defaultNearbyLocationsLimit
	}

	excludeID := uuid.Nil
	if req.ExcludeID != "" {
		parsed, err := uuid.Parse(req.ExcludeID)
		if err != nil {
			return nil, errors.ErrInvalidRequest
		}
		excludeID = parsed
	}

	locations, err := uc.locationRepo.FindNearby(ctx, userID, req.Lng, req.Lat, radiusKm, excludeID, limit)
	if err != nil {
		return nil, err
	}

	result := make([]dto.NearbyLocationResponse, 0, len(locations))
	for _, l := range locations {
		resp := toLocationResponse(&l.Location, nil)
		result = append(result, dto.NearbyLocationResponse{
			LocationResponse: *resp,
			DistanceKm:       utils.RoundKm(l.DistanceKm),
		})
	}

	return result, nil
}

func toLocationResponse(l *domain.Location, country *domain.Country) *dto.LocationResponse {
	resp := &dto.LocationResponse{
		ID:          l.ID.String(),
		Name:        l.Name,
		Description: l.Description,
		Lat:         l.Lat,
		Lng:         l.Lng,
		VisitDate:   l.VisitDate,
		Rating:      l.Rating,
		Category:    l.Category,
		CreatedAt:   l.CreatedAt,
	}
	if l.TripID != nil {
		tripID := l.TripID.String()
		resp.TripID = &tripID
	}
	if country != nil {
		code := country.IsoAlpha2
		resp.CountryCode = &code
	}
	return resp
}
