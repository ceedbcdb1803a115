package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/garden-shops-service/internal/domain"
	"github.com/garden-shops-service/internal/domain/repository"
	"github.com/garden-shops-service/internal/pkg/errors"
	"github.com/garden-shops-service/internal/usecase/dto"
)

// ProductUseCase - каталог товаров маркетплейса
type ProductUseCase struct {
	productRepo repository.ProductRepository
	cacheRepo   repository.CacheRepository
	logger      *zap.Logger
	cacheTTL    time.Duration
}

// NewProductUseCase - создание нового ProductUseCase
func NewProductUseCase(
	productRepo repository.ProductRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
		cacheTTL:    cacheTTL,
	}
}

func productListKey(req dto.ProductListRequest) string {
	return fmt.Sprintf("products:list:%s:%s:%d", req.Badge, req.Tag, req.Limit)
}

// List - товары по фильтру; результат кешируется
func (uc *ProductUseCase) List(ctx context.Context, req dto.ProductListRequest) (*dto.ProductListResponse, error) {
	key := productListKey(req)

	if uc.cacheRepo != nil {
		data, err := uc.cacheRepo.Get(ctx, key)
		if err != nil {
			uc.logger.Warn("Failed to read products cache", zap.String("key", key), zap.Error(err))
		} else if data != nil {
			var cached dto.ProductListResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	products, err := uc.productRepo.List(ctx, domain.ProductFilter{
		Badge: req.Badge,
		Tag:   req.Tag,
		Limit: req.Limit,
	})
	if err != nil {
		uc.logger.Error("Failed to list products", zap.Error(err))
		return nil, err
	}

	resp := &dto.ProductListResponse{
		Products: make([]dto.ProductResponse, 0, len(products)),
	}
	for _, p := range products {
		resp.Products = append(resp.Products, dto.ConvertProduct(p))
	}
	resp.Total = len(resp.Products)

	if uc.cacheRepo != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := uc.cacheRepo.Set(ctx, key, data, uc.cacheTTL); err != nil {
				uc.logger.Warn("Failed to cache products", zap.String("key", key), zap.Error(err))
			}
		}
	}

	return resp, nil
}

// GetByID - товар по ID
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to get product", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if product == nil {
		return nil, errors.ErrProductNotFound
	}

	resp := dto.ConvertProduct(product)
	return &resp, nil
}
