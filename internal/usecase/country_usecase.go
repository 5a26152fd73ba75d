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

const defaultSearchLimit = 10

// CountryUseCase serves the boundary catalog: the world map document,
// single-country lookups, text search and continent aggregates.
type CountryUseCase struct {
	countryRepo  repository.CountryRepository
	cacheRepo    repository.CacheRepository
	logger       *zap.Logger
	geoJSONTTL   time.Duration
	continentTTL time.Duration
}

// NewCountryUseCase creates a new CountryUseCase.
func NewCountryUseCase(
	countryRepo repository.CountryRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	geoJSONTTL, continentTTL time.Duration,
) *CountryUseCase {
	return &CountryUseCase{
		countryRepo:  countryRepo,
		cacheRepo:    cacheRepo,
		logger:       logger,
		geoJSONTTL:   geoJSONTTL,
		continentTTL: continentTTL,
	}
}

// GetCountriesGeoJSON builds the world map FeatureCollection. With a
// user, every country carries that user's status ("default" where no row
// exists); userID 0 is the anonymous map. Results are cached per user.
func (uc *CountryUseCase) GetCountriesGeoJSON(ctx context.Context, userID int64) (*domain.FeatureCollection, error) {
	cached, err := uc.cacheRepo.GetCountriesGeoJSON(ctx, userID)
	if err == nil && cached != nil {
		uc.logger.Debug("Countries GeoJSON fetched from cache", zap.Int64("user_id", userID))
		return cached, nil
	}
	if err != nil {
		uc.logger.Warn("Failed to get GeoJSON from cache", zap.Error(err))
	}

	var features []domain.Feature
	if userID > 0 {
		countries, err := uc.countryRepo.GetAllWithUserStatus(ctx, userID)
		if err != nil {
			return nil, err
		}
		features = make([]domain.Feature, 0, len(countries))
		for _, c := range countries {
			features = append(features, c.ToGeoJSONFeature(c.Status))
		}
	} else {
		countries, err := uc.countryRepo.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		features = make([]domain.Feature, 0, len(countries))
		for _, c := range countries {
			features = append(features, c.ToGeoJSONFeature(domain.StatusDefault))
		}
	}

	fc := domain.NewFeatureCollection(features)

	if err := uc.cacheRepo.SetCountriesGeoJSON(ctx, userID, fc, uc.geoJSONTTL); err != nil {
		uc.logger.Warn("Failed to cache countries GeoJSON",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	return fc, nil
}

// GetCountry looks up one catalog entry by alpha-2 code.
func (uc *CountryUseCase) GetCountry(ctx context.Context, isoAlpha2 string) (*domain.Country, error) {
	country, err := uc.countryRepo.FindByCode(ctx, isoAlpha2)
	if err != nil {
		return nil, err
	}
	if country == nil {
		return nil, errors.ErrCountryNotFound
	}
	return country, nil
}

// SearchCountries runs a ranked text search over the catalog. An empty
// or whitespace-only query returns an empty list without hitting the
// database; sent as-is it would match the whole catalog.
func (uc *CountryUseCase) SearchCountries(ctx context.Context, req *dto.SearchCountriesRequest) ([]dto.CountryResponse, error) {
	if err := validator.Validate(req); err != nil {
		uc.logger.Debug("Invalid search request", zap.Error(err))
		return nil, errors.ErrInvalidRequest
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return []dto.CountryResponse{}, nil
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	countries, err := uc.countryRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	result := make([]dto.CountryResponse, 0, len(countries))
	for _, c := range countries {
		result = append(result, dto.NewCountryResponse(c))
	}

	return result, nil
}

// GetContinentStats returns the catalog-wide continent aggregation,
// cached because the catalog changes only on imports.
func (uc *CountryUseCase) GetContinentStats(ctx context.Context) ([]domain.ContinentStats, error) {
	cached, err := uc.cacheRepo.GetContinentStats(ctx)
	if err == nil && cached != nil {
		uc.logger.Debug("Continent stats fetched from cache")
		return cached, nil
	}
	if err != nil {
		uc.logger.Warn("Failed to get continent stats from cache", zap.Error(err))
	}

	stats, err := uc.countryRepo.StatsByContinent(ctx)
	if err != nil {
		return nil, err
	}

	if err := uc.cacheRepo.SetContinentStats(ctx, stats, uc.continentTTL); err != nil {
		uc.logger.Warn("Failed to cache continent stats", zap.Error(err))
	}

	return stats, nil
}
