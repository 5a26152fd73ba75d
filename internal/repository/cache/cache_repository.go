package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/EnriqueRS/travelmap/internal/domain"
	"github.com/EnriqueRS/travelmap/internal/domain/repository"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

// geoJSONKey builds the cache key for a user's world map. User 0 is the
// anonymous variant with every country at "default".
func geoJSONKey(userID int64) string {
	return fmt.Sprintf("geo:countries:geojson:%d", userID)
}

// GetCountriesGeoJSON returns the cached FeatureCollection for a user,
// or nil on miss.
func (r *cacheRepository) GetCountriesGeoJSON(ctx context.Context, userID int64) (*domain.FeatureCollection, error) {
	data, err := r.Get(ctx, geoJSONKey(userID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var fc domain.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		r.logger.Error("Failed to unmarshal cached GeoJSON",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("unmarshal geojson: %w", err)
	}

	return &fc, nil
}

// SetCountriesGeoJSON stores a user's FeatureCollection.
func (r *cacheRepository) SetCountriesGeoJSON(ctx context.Context, userID int64, fc *domain.FeatureCollection, ttl time.Duration) error {
	data, err := json.Marshal(fc)
	if err != nil {
		r.logger.Error("Failed to marshal GeoJSON", zap.Int64("user_id", userID), zap.Error(err))
		return fmt.Errorf("marshal geojson: %w", err)
	}

	return r.Set(ctx, geoJSONKey(userID), data, ttl)
}

// InvalidateCountriesGeoJSON drops a user's cached map after a status
// change so the next read reflects it.
func (r *cacheRepository) InvalidateCountriesGeoJSON(ctx context.Context, userID int64) error {
	return r.Delete(ctx, geoJSONKey(userID))
}

// GetContinentStats returns the cached catalog-wide continent
// aggregation, or nil on miss.
func (r *cacheRepository) GetContinentStats(ctx context.Context) ([]domain.ContinentStats, error) {
	key := "geo:continents:stats"
	data, err := r.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var stats []domain.ContinentStats
	if err := json.Unmarshal(data, &stats); err != nil {
		r.logger.Error("Failed to unmarshal continent stats from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal continent stats: %w", err)
	}

	return stats, nil
}

// SetContinentStats stores the continent aggregation.
func (r *cacheRepository) SetContinentStats(ctx context.Context, stats []domain.ContinentStats, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		r.logger.Error("Failed to marshal continent stats", zap.Error(err))
		return fmt.Errorf("marshal continent stats: %w", err)
	}

	return r.Set(ctx, "geo:continents:stats", data, ttl)
}
