package dto

import (
	"github.com/garden-shops-service/internal/domain"
	"github.com/garden-shops-service/internal/pkg/utils"
)

// Sort modes
const (
	SortByRelevance = "relevance"
	SortByDistance  = "distance"
)

// NearbyShopsRequest - запрос на поиск садовых магазинов рядом
type NearbyShopsRequest struct {
	Lat        float64  `json:"lat" validate:"min=-90,max=90"`
	Lon        float64  `json:"lon" validate:"min=-180,max=180"`
	RadiusM    int      `json:"radius_m" validate:"omitempty,min=1"` // 0 - максимальный радиус
	Categories []string `json:"categories,omitempty" validate:"omitempty,dive,shop_category"`
	Sort       string   `json:"sort,omitempty" validate:"omitempty,oneof=relevance distance"`
}

// ShopCategoryResponse - категория магазинов
type ShopCategoryResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ShopResponse - магазин в ответе
type ShopResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Location       domain.Coordinate `json:"location"`
	Address        string            `json:"address,omitempty"`
	DistanceKm     *float64          `json:"distance_km,omitempty"`
	CategoryID     string            `json:"category_id"`
	CategoryIDs    []string          `json:"category_ids,omitempty"`
	RelevanceScore float64           `json:"relevance_score"`
	DirectionsURL  string            `json:"directions_url"`
}

// NearbyShopsResponse - ответ на поиск магазинов
type NearbyShopsResponse struct {
	ByCategory      map[string][]ShopResponse `json:"by_category"`
	Combined        []ShopResponse            `json:"combined"`
	NoResults       bool                      `json:"no_results"`
	SearchedRadiusM int                       `json:"searched_radius_m"`
}

// ConvertShop - преобразование магазина в DTO
func ConvertShop(s domain.ClassifiedShop) ShopResponse {
	return ShopResponse{
		ID:             s.ID,
		Name:           s.Name,
		Location:       s.Location,
		Address:        s.Address,
		DistanceKm:     s.DistanceKm,
		CategoryID:     s.CategoryID,
		CategoryIDs:    s.CategoryIDs,
		RelevanceScore: s.RelevanceScore,
		DirectionsURL:  utils.DirectionsURL(s.Location),
	}
}

// ConvertShops - преобразование списка магазинов в DTO
func ConvertShops(shops []domain.ClassifiedShop) []ShopResponse {
	result := make([]ShopResponse, 0, len(shops))
	for _, s := range shops {
		result = append(result, ConvertShop(s))
	}
	return result
}
