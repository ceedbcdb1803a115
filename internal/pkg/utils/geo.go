package utils

import (
	"fmt"
	"math"

	"github.com/garden-shops-service/internal/domain"
)

const earthRadiusKm = 6371.0

// DistanceKm вычисляет расстояние по большому кругу (haversine) в километрах
func DistanceKm(from, to domain.Coordinate) float64 {
	dLat := (to.Lat - from.Lat) * math.Pi / 180.0
	dLon := (to.Lon - from.Lon) * math.Pi / 180.0

	lat1Rad := from.Lat * math.Pi / 180.0
	lat2Rad := to.Lat * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	// округление может вывести a за [0, 1] у почти диаметрально противоположных точек
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Asin(math.Sqrt(a))

	return earthRadiusKm * c
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// DirectionsURL - ссылка на маршрут до точки в Google Maps
func DirectionsURL(to domain.Coordinate) string {
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%f,%f", to.Lat, to.Lon)
}
