package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/EnriqueRS/travelmap/internal/domain"
	"github.com/EnriqueRS/travelmap/internal/pkg/errors"
	"github.com/EnriqueRS/travelmap/internal/usecase"
	"github.com/EnriqueRS/travelmap/internal/usecase/dto"
)

func newCountryUseCase(countryRepo *MockCountryRepository, cacheRepo *MockCacheRepository) *usecase.CountryUseCase {
	return usecase.NewCountryUseCase(countryRepo, cacheRepo, zap.NewNop(), 5*time.Minute, time.Hour)
}

func TestCountryUseCase_GetCountriesGeoJSON(t *testing.T) {
	ctx := context.Background()

	geometry := &domain.Geometry{
		Type:        domain.GeometryPolygon,
		Coordinates: json.RawMessage(`[[[0,0],[1,0],[1,1],[0,0]]]`),
	}

	t.Run("cache hit skips the database", func(t *testing.T) {
		countryRepo := new(MockCountryRepository)
		cacheRepo := new(MockCacheRepository)

		cached := domain.NewFeatureCollection([]domain.Feature{})
		cacheRepo.On("GetCountriesGeoJSON", ctx, int64(0)).Return(cached, nil)

		uc := newCountryUseCase(countryRepo, cacheRepo)

		fc, err := uc.GetCountriesGeoJSON(ctx, 0)

		assert.NoError(t, err)
		assert.Equal(t, cached, fc)
		countryRepo.AssertNotCalled(t, "GetAll", mock.Anything)
	})

	t.Run("anonymous map marks every country default", func(t *testing.T) {
		countryRepo := new(MockCountryRepository)
		cacheRepo := new(MockCacheRepository)

		cacheRepo.On("GetCountriesGeoJSON", ctx, int64(0)).Return(nil, nil)
		countryRepo.On("GetAll", ctx).Return([]*domain.Country{
			{IsoAlpha2: "ES", IsoAlpha3: "ESP", Name: "Spain", Geometry: geometry},
			{IsoAlpha2: "FR", IsoAlpha3: "FRA", Name: "France", Geometry: geometry},
		}, nil)
		cacheRepo.On("SetCountriesGeoJSON", ctx, int64(0), mock.Anything, 5*time.Minute).Return(nil)

		uc := newCountryUseCase(countryRepo, cacheRepo)

		fc, err := uc.GetCountriesGeoJSON(ctx, 0)

		assert.NoError(t, err)
		assert.Equal(t, "FeatureCollection", fc.Type)
		assert.Len(t, fc.Features, 2)
		for _, f := range fc.Features {
			assert.Equal(t, domain.StatusDefault, f.Properties["status"])
		}
		cacheRepo.AssertExpectations(t)
	})

	t.Run("authenticated map carries the user's statuses", func(t *testing.T) {
		countryRepo := new(MockCountryRepository)
		cacheRepo := new(MockCacheRepository)

		cacheRepo.On("GetCountriesGeoJSON", ctx, int64(42)).Return(nil, nil)
		countryRepo.On("GetAllWithUserStatus", ctx, int64(42)).Return([]*domain.CountryWithStatus{
			{Country: domain.Country{IsoAlpha2: "ES", Name: "Spain", Geometry: geometry}, Status: domain.StatusVisited},
			{Country: domain.Country{IsoAlpha2: "FR", Name: "France", Geometry: geometry}, Status: domain.StatusDefault},
		}, nil)
		cacheRepo.On("SetCountriesGeoJSON", ctx, int64(42), mock.Anything, 5*time.Minute).Return(nil)

		uc := newCountryUseCase(countryRepo, cacheRepo)

		fc, err := uc.GetCountriesGeoJSON(ctx, 42)

		assert.NoError(t, err)
		assert.Len(t, fc.Features, 2)
		assert.Equal(t, domain.StatusVisited, fc.Features[0].Properties["status"])
		assert.Equal(t, domain.StatusDefault, fc.Features[1].Properties["status"])
	})

	t.Run("cache write failure does not fail the request", func(t *testing.T) {
		countryRepo := new(MockCountryRepository)
		cacheRepo := new(MockCacheRepository)

		cacheRepo.On("GetCountriesGeoJSON", ctx, int64(0)).Return(nil, nil)
		countryRepo.On("GetAll", ctx).Return([]*domain.Country{}, nil)
		cacheRepo.On("SetCountriesGeoJSON", ctx, int64(0), mock.Anything, 5*time.Minute).
			Return(assert.AnError)

		uc := newCountryUseCase(countryRepo, cacheRepo)

		fc, err := uc.GetCountriesGeoJSON(ctx, 0)

		assert.NoError(t, err)
		assert.NotNil(t, fc)
		assert.Empty(t, fc.Features)
	})
}

func TestCountryUseCase_GetCountry(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		countryRepo := new(MockCountryRepository)
		cacheRepo := new(MockCacheRepository)

		countryRepo.On("FindByCode", ctx, "ES").Return(&domain.Country{IsoAlpha2: "ES", Name: "Spain"}, nil)

		uc := newCountryUseCase(countryRepo, cacheRepo)

		country, err := uc.GetCountry(ctx, "ES")

		assert.NoError(t, err)
		assert.Equal(t, "Spain", country.Name)
	})

	t.Run("not found", func(t *testing.T) {
		countryRepo := new(MockCountryRepository)
		cacheRepo := new(MockCacheRepository)

		countryRepo.On("FindByCode", ctx, "XX").Return(nil, nil)

		uc := newCountryUseCase(countryRepo, cacheRepo)

		country, err := uc.GetCountry(ctx, "XX")

		assert.Nil(t, country)
		assert.Equal(t, errors.ErrCountryNotFound, err)
	})
}

func TestCountryUseCase_SearchCountries(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ranked matches", func(t *testing.T) {
		countryRepo := new(MockCountryRepository)
		cacheRepo := new(MockCacheRepository)

		countryRepo.On("Search", ctx, "fra", 10).Return([]*domain.Country{
			{IsoAlpha2: "FR", IsoAlpha3: "FRA", Name: "France"},
		}, nil)

		uc := newCountryUseCase(countryRepo, cacheRepo)

		result, err := uc.SearchCountries(ctx, &dto.SearchCountriesRequest{Query: "fra"})

		assert.NoError(t, err)
		assert.Len(t, result, 1)
		assert.Equal(t, "France", result[0].Name)
	})

	t.Run("empty query returns an empty list", func(t *testing.T) {
		countryRepo := new(MockCountryRepository)
		cacheRepo := new(MockCacheRepository)

		uc := newCountryUseCase(countryRepo, cacheRepo)

		result, err := uc.SearchCountries(ctx, &dto.SearchCountriesRequest{Query: ""})

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
		countryRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("whitespace-only query returns an empty list", func(t *testing.T) {
		countryRepo := new(MockCountryRepository)
		cacheRepo := new(MockCacheRepository)

		uc := newCountryUseCase(countryRepo, cacheRepo)

		result, err := uc.SearchCountries(ctx, &dto.SearchCountriesRequest{Query: "   "})

		assert.NoError(t, err)
		assert.Empty(t, result)
		countryRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("query is trimmed before searching", func(t *testing.T) {
		countryRepo := new(MockCountryRepository)
		cacheRepo := new(MockCacheRepository)

		countryRepo.On("Search", ctx, "spain", 10).Return([]*domain.Country{
			{IsoAlpha2: "ES", IsoAlpha3: "ESP", Name: "Spain"},
		}, nil)

		uc := newCountryUseCase(countryRepo, cacheRepo)

		result, err := uc.SearchCountries(ctx, &dto.SearchCountriesRequest{Query: " spain "})

		assert.NoError(t, err)
		assert.Len(t, result, 1)
		countryRepo.AssertExpectations(t)
	})

	t.Run("explicit limit is passed through", func(t *testing.T) {
		countryRepo := new(MockCountryRepository)
		cacheRepo := new(MockCacheRepository)

		countryRepo.On("Search", ctx, "united", 3).Return([]*domain.Country{}, nil)

		uc := newCountryUseCase(countryRepo, cacheRepo)

		result, err := uc.SearchCountries(ctx, &dto.SearchCountriesRequest{Query: "united", Limit: 3})

		assert.NoError(t, err)
		assert.Empty(t, result)
		countryRepo.AssertExpectations(t)
	})
}

func TestCountryUseCase_GetContinentStats(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss computes and caches", func(t *testing.T) {
		countryRepo := new(MockCountryRepository)
		cacheRepo := new(MockCacheRepository)

		stats := []domain.ContinentStats{
			{Continent: "Europe", CountryCount: 44},
			{Continent: "Africa", CountryCount: 54},
		}

		cacheRepo.On("GetContinentStats", ctx).Return(nil, nil)
		countryRepo.On("StatsByContinent", ctx).Return(stats, nil)
		cacheRepo.On("SetContinentStats", ctx, stats, time.Hour).Return(nil)

		uc := newCountryUseCase(countryRepo, cacheRepo)

		result, err := uc.GetContinentStats(ctx)

		assert.NoError(t, err)
		assert.Equal(t, stats, result)
		cacheRepo.AssertExpectations(t)
	})

	t.Run("cache hit skips the database", func(t *testing.T) {
		countryRepo := new(MockCountryRepository)
		cacheRepo := new(MockCacheRepository)

		cacheRepo.On("GetContinentStats", ctx).Return([]domain.ContinentStats{
			{Continent: "Europe", CountryCount: 44},
		}, nil)

		uc := newCountryUseCase(countryRepo, cacheRepo)

		result, err := uc.GetContinentStats(ctx)

		assert.NoError(t, err)
		assert.Len(t, result, 1)
		countryRepo.AssertNotCalled(t, "StatsByContinent", mock.Anything)
	})
}
