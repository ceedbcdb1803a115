package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/garden-shops-service/internal/domain"
)

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

func (m *MockCacheRepository) GetDiscovery(ctx context.Context, region domain.SearchRegion) (*domain.DiscoveryResult, error) {
	args := m.Called(ctx, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DiscoveryResult), args.Error(1)
}

func (m *MockCacheRepository) SetDiscovery(ctx context.Context, region domain.SearchRegion, result *domain.DiscoveryResult, ttl time.Duration) error {
	args := m.Called(ctx, region, result, ttl)
	return args.Error(0)
}

// MockPOISource is a mock of POISourceRepository
type MockPOISource struct {
	mock.Mock
}

func (m *MockPOISource) FetchPointsOfInterest(ctx context.Context, region domain.SearchRegion) ([]domain.OSMElement, error) {
	args := m.Called(ctx, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OSMElement), args.Error(1)
}

// MockProductRepository is a mock of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func shopAt(id int64, lat, lon float64, tags map[string]string) domain.OSMElement {
	return domain.OSMElement{ID: id, Type: domain.OSMTypeNode, Lat: &lat, Lon: &lon, Tags: tags}
}

func wayAt(id int64, lat, lon float64, tags map[string]string) domain.OSMElement {
	return domain.OSMElement{ID: id, Type: domain.OSMTypeWay, Center: &domain.Coordinate{Lat: lat, Lon: lon}, Tags: tags}
}
