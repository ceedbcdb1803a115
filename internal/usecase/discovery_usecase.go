package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/garden-shops-service/internal/domain"
	"github.com/garden-shops-service/internal/domain/repository"
	"github.com/garden-shops-service/internal/pkg/utils"
)

// DiscoveryUseCase - поиск и ранжирование садовых магазинов в регионе
type DiscoveryUseCase struct {
	source     repository.POISourceRepository
	cacheRepo  repository.CacheRepository
	classifier *Classifier
	logger     *zap.Logger
	cacheTTL   time.Duration
}

// NewDiscoveryUseCase - создание нового DiscoveryUseCase.
// cacheRepo может быть nil - тогда результаты не кешируются между процессами.
func NewDiscoveryUseCase(
	source repository.POISourceRepository,
	cacheRepo repository.CacheRepository,
	classifier *Classifier,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *DiscoveryUseCase {
	return &DiscoveryUseCase{
		source:     source,
		cacheRepo:  cacheRepo,
		classifier: classifier,
		logger:     logger,
		cacheTTL:   cacheTTL,
	}
}

// Categories - категории, по которым ведётся поиск
func (uc *DiscoveryUseCase) Categories() []domain.ShopCategory {
	return uc.classifier.Categories()
}

// Discover - получение точек интереса, классификация и ранжирование по категориям
func (uc *DiscoveryUseCase) Discover(ctx context.Context, region domain.SearchRegion) (*domain.DiscoveryResult, error) {
	if uc.cacheRepo != nil {
		cached, err := uc.cacheRepo.GetDiscovery(ctx, region)
		if err != nil {
			uc.logger.Warn("Failed to read discovery cache", zap.String("key", region.CacheKey()), zap.Error(err))
		} else if cached != nil {
			uc.logger.Debug("Discovery cache hit", zap.String("key", region.CacheKey()))
			return cached, nil
		}
	}

	elements, err := uc.source.FetchPointsOfInterest(ctx, region)
	if err != nil {
		uc.logger.Error("Failed to fetch points of interest",
			zap.String("key", region.CacheKey()),
			zap.Error(err))
		return nil, fmt.Errorf("fetch points of interest: %w", err)
	}

	result := uc.classify(region, elements)

	uc.logger.Info("Discovery completed",
		zap.String("key", region.CacheKey()),
		zap.Int("elements", len(elements)),
		zap.Int("shops", len(result.Combined)))

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetDiscovery(ctx, region, result, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache discovery result", zap.String("key", region.CacheKey()), zap.Error(err))
		}
	}

	return result, nil
}

func (uc *DiscoveryUseCase) classify(region domain.SearchRegion, elements []domain.OSMElement) *domain.DiscoveryResult {
	categories := uc.classifier.Categories()

	byCategory := make(map[string][]domain.ClassifiedShop, len(categories))
	seen := make(map[string]map[string]struct{}, len(categories))
	for _, category := range categories {
		byCategory[category.ID] = []domain.ClassifiedShop{}
		seen[category.ID] = make(map[string]struct{})
	}

	for _, el := range elements {
		name, ok := DisplayName(el)
		if !ok {
			continue
		}

		location, ok := el.Coordinate()
		if !ok {
			continue
		}

		distance := utils.DistanceKm(region.Center, location)
		matches := uc.classifier.Classify(el, distance)

		for _, match := range matches {
			ids, known := seen[match.CategoryID]
			if !known {
				continue
			}
			key := el.Key()
			if _, dup := ids[key]; dup {
				continue
			}
			ids[key] = struct{}{}

			d := distance
			byCategory[match.CategoryID] = append(byCategory[match.CategoryID], domain.ClassifiedShop{
				ID:             key,
				Name:           name,
				Location:       location,
				Address:        el.AddressHint(),
				DistanceKm:     &d,
				CategoryID:     match.CategoryID,
				RelevanceScore: match.Score,
			})
		}
	}

	for id := range byCategory {
		sortByRelevance(byCategory[id])
	}

	return &domain.DiscoveryResult{
		ByCategory: byCategory,
		Combined:   combineCategories(byCategory, categoryOrder(categories)),
	}
}

func categoryOrder(categories []domain.ShopCategory) []string {
	ids := make([]string, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// combineCategories объединяет списки категорий без повторов по id.
// Запись сохраняет наибольший балл (при равенстве - первую категорию) и список всех своих категорий.
func combineCategories(byCategory map[string][]domain.ClassifiedShop, order []string) []domain.ClassifiedShop {
	index := make(map[string]int)
	combined := make([]domain.ClassifiedShop, 0)

	for _, categoryID := range order {
		for _, shop := range byCategory[categoryID] {
			if i, ok := index[shop.ID]; ok {
				existing := &combined[i]
				existing.CategoryIDs = append(existing.CategoryIDs, categoryID)
				if shop.RelevanceScore > existing.RelevanceScore {
					existing.RelevanceScore = shop.RelevanceScore
					existing.CategoryID = shop.CategoryID
				}
				continue
			}

			shop.CategoryIDs = []string{categoryID}
			index[shop.ID] = len(combined)
			combined = append(combined, shop)
		}
	}

	sortByRelevance(combined)
	return combined
}

func sortByRelevance(shops []domain.ClassifiedShop) {
	sort.SliceStable(shops, func(i, j int) bool {
		if shops[i].RelevanceScore != shops[j].RelevanceScore {
			return shops[i].RelevanceScore > shops[j].RelevanceScore
		}
		return shops[i].ID < shops[j].ID
	})
}

func sortByDistance(shops []domain.ClassifiedShop) {
	sort.SliceStable(shops, func(i, j int) bool {
		di, dj := shops[i].DistanceKm, shops[j].DistanceKm
		switch {
		case di == nil && dj == nil:
			return shops[i].ID < shops[j].ID
		case di == nil:
			return false
		case dj == nil:
			return true
		case *di != *dj:
			return *di < *dj
		}
		return shops[i].ID < shops[j].ID
	})
}
