package repository

import (
	"context"
	"time"

	"github.com/EnriqueRS/travelmap/internal/domain"
)

// CacheRepository is the Redis-backed read cache for expensive geo
// payloads. Misses are reported as (nil, nil), never as errors.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// GetCountriesGeoJSON returns the cached FeatureCollection for a
	// user (0 for the anonymous variant), or nil on miss.
	GetCountriesGeoJSON(ctx context.Context, userID int64) (*domain.FeatureCollection, error)
	SetCountriesGeoJSON(ctx context.Context, userID int64, fc *domain.FeatureCollection, ttl time.Duration) error

	// InvalidateCountriesGeoJSON drops a user's cached map after a
	// status change.
	InvalidateCountriesGeoJSON(ctx context.Context, userID int64) error

	GetContinentStats(ctx context.Context) ([]domain.ContinentStats, error)
	SetContinentStats(ctx context.Context, stats []domain.ContinentStats, ttl time.Duration) error
}
