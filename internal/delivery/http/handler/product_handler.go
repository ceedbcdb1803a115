package handler

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/garden-shops-service/internal/pkg/errors"
	"github.com/garden-shops-service/internal/pkg/utils"
	"github.com/garden-shops-service/internal/pkg/validator"
	"github.com/garden-shops-service/internal/usecase/dto"
)

// ProductUseCase - каталог товаров
type ProductUseCase interface {
	List(ctx context.Context, req dto.ProductListRequest) (*dto.ProductListResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error)
}

// ProductHandler - обработчик каталога товаров
type ProductHandler struct {
	productUC ProductUseCase
	logger    *zap.Logger
}

// NewProductHandler - создание нового ProductHandler
func NewProductHandler(productUC ProductUseCase, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productUC: productUC,
		logger:    logger,
	}
}

// ListProducts godoc
// @Summary Каталог товаров
// @Tags Products
// @Produce json
// @Param badge query string false "Фильтр по бейджу (Best seller, Starter, New, Decor)"
// @Param tag query string false "Фильтр по тегу"
// @Param limit query int false "Максимальное количество товаров" default(50)
// @Success 200 {object} utils.SuccessResponse{data=dto.ProductListResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/products [get]
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	var req dto.ProductListRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.productUC.List(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// GetProduct godoc
// @Summary Товар по ID
// @Tags Products
// @Produce json
// @Param id path int true "ID товара"
// @Success 200 {object} utils.SuccessResponse{data=dto.ProductResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/products/{id} [get]
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"id": c.Params("id")}))
	}

	product, err := h.productUC.GetByID(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, product, nil)
}
