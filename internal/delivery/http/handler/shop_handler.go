package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/garden-shops-service/internal/pkg/errors"
	"github.com/garden-shops-service/internal/pkg/utils"
	"github.com/garden-shops-service/internal/pkg/validator"
	"github.com/garden-shops-service/internal/usecase/dto"
)

// ShopsUseCase - поиск магазинов рядом
type ShopsUseCase interface {
	Categories() []dto.ShopCategoryResponse
	NearbyShops(ctx context.Context, req dto.NearbyShopsRequest) (*dto.NearbyShopsResponse, error)
	NearbyShopsGeoJSON(ctx context.Context, req dto.NearbyShopsRequest) (*geojson.FeatureCollection, error)
}

// ShopHandler - обработчик поиска садовых магазинов
type ShopHandler struct {
	shopsUC ShopsUseCase
	logger  *zap.Logger
}

// NewShopHandler - создание нового ShopHandler
func NewShopHandler(shopsUC ShopsUseCase, logger *zap.Logger) *ShopHandler {
	return &ShopHandler{
		shopsUC: shopsUC,
		logger:  logger,
	}
}

// GetCategories godoc
// @Summary Категории магазинов
// @Description Возвращает статический список категорий садовых магазинов
// @Tags Shops
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.ShopCategoryResponse}
// @Router /api/v1/shops/categories [get]
func (h *ShopHandler) GetCategories(c *fiber.Ctx) error {
	categories := h.shopsUC.Categories()
	return utils.SendSuccess(c, categories, &utils.Meta{Total: len(categories)})
}

// NearbyShops godoc
// @Summary Садовые магазины рядом
// @Description Ищет магазины на максимальном радиусе, классифицирует их по категориям и возвращает отфильтрованное представление. 503 означает, что все источники данных недоступны и запрос можно повторить.
// @Tags Shops
// @Accept json
// @Produce json
// @Param request body dto.NearbyShopsRequest true "Координаты, радиус, категории и сортировка"
// @Success 200 {object} utils.SuccessResponse{data=dto.NearbyShopsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/shops/nearby [post]
func (h *ShopHandler) NearbyShops(c *fiber.Ctx) error {
	req, err := parseNearbyRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.shopsUC.NearbyShops(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Combined)})
}

// NearbyShopsGeoJSON godoc
// @Summary Садовые магазины рядом (GeoJSON)
// @Description Объединённый список магазинов как FeatureCollection точек для карты
// @Tags Shops
// @Accept json
// @Produce json
// @Param request body dto.NearbyShopsRequest true "Координаты, радиус, категории и сортировка"
// @Success 200 {object} object
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/shops/nearby/geojson [post]
func (h *ShopHandler) NearbyShopsGeoJSON(c *fiber.Ctx) error {
	req, err := parseNearbyRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	fc, err := h.shopsUC.NearbyShopsGeoJSON(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		h.logger.Error("Failed to marshal GeoJSON", zap.Error(err))
		return utils.SendError(c, errors.ErrInternalServer)
	}

	c.Set(fiber.HeaderContentType, "application/geo+json")
	return c.Send(data)
}

func parseNearbyRequest(c *fiber.Ctx) (dto.NearbyShopsRequest, error) {
	var req dto.NearbyShopsRequest
	if err := c.BodyParser(&req); err != nil {
		return req, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"body": err.Error()})
	}

	if err := validator.Validate(&req); err != nil {
		return req, err
	}

	return req, nil
}
