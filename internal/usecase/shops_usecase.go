package usecase

import (
	"context"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/garden-shops-service/internal/domain"
	"github.com/garden-shops-service/internal/pkg/errors"
	"github.com/garden-shops-service/internal/pkg/utils"
	"github.com/garden-shops-service/internal/usecase/dto"
)

// Discoverer - источник DiscoveryResult для региона
type Discoverer interface {
	Discover(ctx context.Context, region domain.SearchRegion) (*domain.DiscoveryResult, error)
	Categories() []domain.ShopCategory
}

// ShopsUseCase - поиск магазинов рядом с пользователем для API
type ShopsUseCase struct {
	discovery     Discoverer
	radiusOptions []int
	maxRadius     int
	logger        *zap.Logger
}

// NewShopsUseCase - создание нового ShopsUseCase.
// Поиск всегда выполняется на максимальном радиусе из radiusOptions,
// поэтому сужение радиуса не требует повторного запроса.
func NewShopsUseCase(discovery Discoverer, radiusOptions []int, logger *zap.Logger) *ShopsUseCase {
	maxRadius := 0
	for _, r := range radiusOptions {
		if r > maxRadius {
			maxRadius = r
		}
	}
	return &ShopsUseCase{
		discovery:     discovery,
		radiusOptions: radiusOptions,
		maxRadius:     maxRadius,
		logger:        logger,
	}
}

// Categories - список категорий магазинов
func (uc *ShopsUseCase) Categories() []dto.ShopCategoryResponse {
	categories := uc.discovery.Categories()
	result := make([]dto.ShopCategoryResponse, 0, len(categories))
	for _, c := range categories {
		result = append(result, dto.ShopCategoryResponse{ID: c.ID, Label: c.Label})
	}
	return result
}

// NearbyShops - магазины рядом, отфильтрованные и отсортированные по запросу
func (uc *ShopsUseCase) NearbyShops(ctx context.Context, req dto.NearbyShopsRequest) (*dto.NearbyShopsResponse, error) {
	view, err := uc.view(ctx, req)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]dto.ShopResponse, len(view.ByCategory))
	for id, shops := range view.ByCategory {
		byCategory[id] = dto.ConvertShops(shops)
	}

	return &dto.NearbyShopsResponse{
		ByCategory:      byCategory,
		Combined:        dto.ConvertShops(view.Combined),
		NoResults:       view.NoResults,
		SearchedRadiusM: uc.maxRadius,
	}, nil
}

// NearbyShopsGeoJSON - объединённый список магазинов как GeoJSON FeatureCollection точек
func (uc *ShopsUseCase) NearbyShopsGeoJSON(ctx context.Context, req dto.NearbyShopsRequest) (*geojson.FeatureCollection, error) {
	view, err := uc.view(ctx, req)
	if err != nil {
		return nil, err
	}

	fc := geojson.NewFeatureCollection()
	for _, shop := range view.Combined {
		feature := geojson.NewFeature(orb.Point{shop.Location.Lon, shop.Location.Lat})
		feature.ID = shop.ID
		feature.Properties["name"] = shop.Name
		feature.Properties["category_id"] = shop.CategoryID
		feature.Properties["category_ids"] = shop.CategoryIDs
		feature.Properties["relevance_score"] = shop.RelevanceScore
		feature.Properties["directions_url"] = utils.DirectionsURL(shop.Location)
		if shop.DistanceKm != nil {
			feature.Properties["distance_km"] = *shop.DistanceKm
		}
		if shop.Address != "" {
			feature.Properties["address"] = shop.Address
		}
		fc.Append(feature)
	}

	return fc, nil
}

func (uc *ShopsUseCase) view(ctx context.Context, req dto.NearbyShopsRequest) (*ShopsView, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	radius := req.RadiusM
	if radius == 0 {
		radius = uc.maxRadius
	}
	if !uc.isRadiusOption(radius) {
		return nil, errors.ErrInvalidRadius.WithDetails(map[string]interface{}{
			"radius_m": req.RadiusM,
			"allowed":  uc.radiusOptions,
		})
	}

	for _, id := range req.Categories {
		if !domain.IsValidShopCategory(id) {
			return nil, errors.ErrInvalidCategory.WithDetails(map[string]interface{}{"category": id})
		}
	}

	if req.Sort != "" && req.Sort != dto.SortByRelevance && req.Sort != dto.SortByDistance {
		return nil, errors.ErrInvalidSortMode
	}

	region := domain.SearchRegion{
		Center:  domain.Coordinate{Lat: req.Lat, Lon: req.Lon},
		RadiusM: uc.maxRadius,
	}

	result, err := uc.discovery.Discover(ctx, region)
	if err != nil {
		uc.logger.Error("Nearby shops search failed",
			zap.Float64("lat", req.Lat),
			zap.Float64("lon", req.Lon),
			zap.Error(err))
		return nil, errors.ErrShopsUnavailable
	}

	return ApplyView(result, uc.discovery.Categories(), ViewOptions{
		RadiusM:    radius,
		Categories: req.Categories,
		Sort:       req.Sort,
	}), nil
}

func (uc *ShopsUseCase) isRadiusOption(radius int) bool {
	for _, r := range uc.radiusOptions {
		if r == radius {
			return true
		}
	}
	return false
}
