package domain

import "fmt"

// Coordinate - географическая точка (WGS84)
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// SearchRegion - центр поиска и радиус в метрах
type SearchRegion struct {
	Center  Coordinate `json:"center"`
	RadiusM int        `json:"radius_m"`
}

// CacheKey возвращает ключ региона: координаты округлены до 3 знаков (~110 м)
func (r SearchRegion) CacheKey() string {
	return fmt.Sprintf("%.3f:%.3f:%d", r.Center.Lat, r.Center.Lon, r.RadiusM)
}
