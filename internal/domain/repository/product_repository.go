package repository

import (
	"context"

	"github.com/garden-shops-service/internal/domain"
)

// ProductRepository - каталог товаров
type ProductRepository interface {
	// List возвращает товары по фильтру
	List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)

	// GetByID возвращает товар по ID (nil, nil если не найден)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}
