package repository

import (
	"context"
	"time"

	"github.com/garden-shops-service/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу (nil, nil при промахе)
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// Exists проверяет существование ключа
	Exists(ctx context.Context, key string) (bool, error)

	// GetDiscovery получает результат поиска магазинов для региона
	GetDiscovery(ctx context.Context, region domain.SearchRegion) (*domain.DiscoveryResult, error)

	// SetDiscovery сохраняет результат поиска магазинов для региона
	SetDiscovery(ctx context.Context, region domain.SearchRegion, result *domain.DiscoveryResult, ttl time.Duration) error
}
