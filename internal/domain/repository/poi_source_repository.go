package repository

import (
	"context"

	"github.com/garden-shops-service/internal/domain"
)

// POISourceRepository - источник сырых точек интереса (Overpass API)
type POISourceRepository interface {
	// FetchPointsOfInterest возвращает элементы OSM в регионе поиска
	FetchPointsOfInterest(ctx context.Context, region domain.SearchRegion) ([]domain.OSMElement, error)
}
