package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/garden-shops-service/internal/domain"
	"github.com/garden-shops-service/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
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
	if errors.Is(err, redis.Nil) {
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

func discoveryKey(region domain.SearchRegion) string {
	return "shops:discovery:" + region.CacheKey()
}

// GetDiscovery получает результат поиска магазинов для региона (nil, nil при промахе)
func (r *cacheRepository) GetDiscovery(ctx context.Context, region domain.SearchRegion) (*domain.DiscoveryResult, error) {
	data, err := r.Get(ctx, discoveryKey(region))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var result domain.DiscoveryResult
	if err := json.Unmarshal(data, &result); err != nil {
		r.logger.Error("Failed to unmarshal discovery result from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal discovery result: %w", err)
	}

	return &result, nil
}

// SetDiscovery сохраняет результат поиска магазинов для региона
func (r *cacheRepository) SetDiscovery(ctx context.Context, region domain.SearchRegion, result *domain.DiscoveryResult, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		r.logger.Error("Failed to marshal discovery result", zap.Error(err))
		return fmt.Errorf("marshal discovery result: %w", err)
	}

	return r.Set(ctx, discoveryKey(region), data, ttl)
}
