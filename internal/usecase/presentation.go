package usecase

import (
	"github.com/garden-shops-service/internal/domain"
	"github.com/garden-shops-service/internal/usecase/dto"
)

// ViewOptions - параметры отображения результата поиска
type ViewOptions struct {
	// RadiusM - радиус отображения; 0 - без фильтра
	RadiusM int
	// Categories - активные категории; nil - все
	Categories []string
	// Sort - dto.SortByRelevance (по умолчанию) или dto.SortByDistance
	Sort string
}

// ShopsView - отфильтрованное и отсортированное представление DiscoveryResult
type ShopsView struct {
	ByCategory map[string][]domain.ClassifiedShop
	Combined   []domain.ClassifiedShop
	NoResults  bool
}

// ApplyView фильтрует результат по радиусу и активным категориям и сортирует его.
// Исходный результат не изменяется; неактивные категории дают пустой список.
func ApplyView(result *domain.DiscoveryResult, categories []domain.ShopCategory, opts ViewOptions) *ShopsView {
	active := make(map[string]bool, len(categories))
	if opts.Categories == nil {
		for _, c := range categories {
			active[c.ID] = true
		}
	} else {
		for _, id := range opts.Categories {
			active[id] = true
		}
	}

	order := categoryOrder(categories)
	byCategory := make(map[string][]domain.ClassifiedShop, len(order))
	noResults := true

	for _, id := range order {
		filtered := []domain.ClassifiedShop{}
		if active[id] {
			filtered = filterByRadius(result.ByCategory[id], opts.RadiusM)
			sortShops(filtered, opts.Sort)
		}
		if len(filtered) > 0 {
			noResults = false
		}
		byCategory[id] = filtered
	}

	combined := combineCategories(byCategory, order)
	sortShops(combined, opts.Sort)

	return &ShopsView{
		ByCategory: byCategory,
		Combined:   combined,
		NoResults:  noResults,
	}
}

// filterByRadius оставляет магазины не дальше radiusM; магазины без расстояния сохраняются
func filterByRadius(shops []domain.ClassifiedShop, radiusM int) []domain.ClassifiedShop {
	filtered := make([]domain.ClassifiedShop, 0, len(shops))
	limitKm := float64(radiusM) / 1000
	for _, s := range shops {
		if radiusM > 0 && s.DistanceKm != nil && *s.DistanceKm > limitKm {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered
}

func sortShops(shops []domain.ClassifiedShop, mode string) {
	if mode == dto.SortByDistance {
		sortByDistance(shops)
		return
	}
	sortByRelevance(shops)
}
