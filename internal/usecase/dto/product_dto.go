package dto

import "github.com/garden-shops-service/internal/domain"

// ProductListRequest - фильтр каталога товаров
type ProductListRequest struct {
	Badge string `query:"badge" validate:"omitempty,max=32"`
	Tag   string `query:"tag" validate:"omitempty,max=32"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// ProductResponse - товар в ответе
type ProductResponse struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Currency string   `json:"currency"`
	Unit     string   `json:"unit"`
	Rating   *float64 `json:"rating,omitempty"`
	Badge    *string  `json:"badge,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// ProductListResponse - список товаров
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
}

// ConvertProduct - преобразование товара в DTO
func ConvertProduct(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Currency: p.Currency,
		Unit:     p.Unit,
		Rating:   p.Rating,
		Badge:    p.Badge,
		Tags:     p.Tags,
	}
}
