package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/EnriqueRS/travelmap/internal/domain"
)

// MockCountryRepository is a mock of CountryRepository
type MockCountryRepository struct {
	mock.Mock
}

func (m *MockCountryRepository) GetAll(ctx context.Context) ([]*domain.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Country), args.Error(1)
}

func (m *MockCountryRepository) FindByCode(ctx context.Context, isoAlpha2 string) (*domain.Country, error) {
	args := m.Called(ctx, isoAlpha2)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Country), args.Error(1)
}

func (m *MockCountryRepository) FindByID(ctx context.Context, id int64) (*domain.Country, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Country), args.Error(1)
}

func (m *MockCountryRepository) Search(ctx context.Context, query string, limit int) ([]*domain.Country, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Country), args.Error(1)
}

func (m *MockCountryRepository) StatsByContinent(ctx context.Context) ([]domain.ContinentStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContinentStats), args.Error(1)
}

func (m *MockCountryRepository) GetAllWithUserStatus(ctx context.Context, userID int64) ([]*domain.CountryWithStatus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CountryWithStatus), args.Error(1)
}

func (m *MockCountryRepository) FindByPoint(ctx context.Context, lng, lat float64) (*domain.Country, error) {
	args := m.Called(ctx, lng, lat)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Country), args.Error(1)
}

func (m *MockCountryRepository) FindInRadius(ctx context.Context, lng, lat, radiusKm float64, limit int) ([]*domain.CountryDistance, error) {
	args := m.Called(ctx, lng, lat, radiusKm, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CountryDistance), args.Error(1)
}

func (m *MockCountryRepository) Upsert(ctx context.Context, country *domain.Country) error {
	args := m.Called(ctx, country)
	return args.Error(0)
}

func (m *MockCountryRepository) RefreshCentroids(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockStatusRepository is a mock of StatusRepository
type MockStatusRepository struct {
	mock.Mock
}

func (m *MockStatusRepository) Replace(ctx context.Context, status *domain.UserCountryStatus) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *MockStatusRepository) ListCodesByUser(ctx context.Context, userID int64) ([]domain.UserCountryCode, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserCountryCode), args.Error(1)
}

func (m *MockStatusRepository) CountVisited(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockStatusRepository) VisitedByContinent(ctx context.Context, userID int64) ([]domain.ContinentVisitCount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContinentVisitCount), args.Error(1)
}

// MockLocationRepository is a mock of LocationRepository
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) Create(ctx context.Context, location *domain.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) Update(ctx context.Context, location *domain.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func (m *MockLocationRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Location, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Location), args.Error(1)
}

func (m *MockLocationRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockLocationRepository) Centroid(ctx context.Context, userID int64) (*domain.Point, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Point), args.Error(1)
}

func (m *MockLocationRepository) TravelDistanceKm(ctx context.Context, userID int64) (float64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockLocationRepository) FindNearby(ctx context.Context, userID int64, lng, lat, radiusKm float64, excludeID uuid.UUID, limit int) ([]*domain.LocationDistance, error) {
	args := m.Called(ctx, userID, lng, lat, radiusKm, excludeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LocationDistance), args.Error(1)
}

// MockUserStatsRepository is a mock of UserStatsRepository
type MockUserStatsRepository struct {
	mock.Mock
}

func (m *MockUserStatsRepository) Recalculate(ctx context.Context, userID int64) (*domain.UserGeoStatistics, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserGeoStatistics), args.Error(1)
}

func (m *MockUserStatsRepository) Get(ctx context.Context, userID int64) (*domain.UserGeoStatistics, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserGeoStatistics), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetCountriesGeoJSON(ctx context.Context, userID int64) (*domain.FeatureCollection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeatureCollection), args.Error(1)
}

func (m *MockCacheRepository) SetCountriesGeoJSON(ctx context.Context, userID int64, fc *domain.FeatureCollection, ttl time.Duration) error {
	args := m.Called(ctx, userID, fc, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) InvalidateCountriesGeoJSON(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCacheRepository) GetContinentStats(ctx context.Context) ([]domain.ContinentStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContinentStats), args.Error(1)
}

func (m *MockCacheRepository) SetContinentStats(ctx context.Context, stats []domain.ContinentStats, ttl time.Duration) error {
	args := m.Called(ctx, stats, ttl)
	return args.Error(0)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

func ptrString(s string) *string    { return &s }
func ptrInt64(i int64) *int64       { return &i }
func ptrFloat64(f float64) *float64 { return &f }
