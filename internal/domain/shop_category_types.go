package domain

// Shop category ids
const (
	ShopCategoryPlants      = "plants"
	ShopCategoryTools       = "tools"
	ShopCategoryCare        = "care"
	ShopCategoryLandscaping = "landscaping"
)

// Confidence thresholds
const (
	CategoryConfidenceThreshold    = 5.0
	LandscapingConfidenceThreshold = 6.0 // office-теги часто совпадают с обычными конторами
	GlobalConfidenceThreshold      = 7.0
)

// ShopCategories - статический набор категорий садовых магазинов.
// Порядок значим: он задаёт порядок категорий в ответах и при объединении.
var ShopCategories = []ShopCategory{
	{
		ID:    ShopCategoryPlants,
		Label: "Plant Shops",
		Include: []CategoryRule{
			{Key: "shop", Values: []string{"garden_centre", "florist", "plant_nursery"}, Weight: 6},
			{Key: "landuse", Values: []string{"plant_nursery"}, Weight: 3},
		},
		Exclude: []CategoryRule{
			{Key: "amenity", Values: []string{"grave_yard"}, Weight: 10},
		},
		Threshold: CategoryConfidenceThreshold,
	},
	{
		ID:    ShopCategoryTools,
		Label: "Garden Tools",
		Include: []CategoryRule{
			{Key: "shop", Values: []string{"hardware", "doityourself", "tools"}, Weight: 6},
			{Key: "shop", Values: []string{"trade", "rental"}, Weight: 3},
		},
		Threshold: CategoryConfidenceThreshold,
	},
	{
		ID:    ShopCategoryCare,
		Label: "Plant Care",
		Include: []CategoryRule{
			{Key: "shop", Values: []string{"agrarian", "farm"}, Weight: 6},
			{Key: "product", Values: []string{"fertilizer", "pesticide"}, Weight: 4},
		},
		Threshold: CategoryConfidenceThreshold,
	},
	{
		ID:    ShopCategoryLandscaping,
		Label: "Landscaping",
		Include: []CategoryRule{
			{Key: "craft", Values: []string{"gardener", "landscaper", "tree_surgeon"}, Weight: 7},
			{Key: "office", Values: []string{"landscape_architect"}, Weight: 5},
			{Key: "service", Values: []string{"landscaper", "gardener"}, Weight: 6},
			{Key: "trade", Values: []string{"landscaping", "horticulture"}, Weight: 6},
		},
		Threshold:          LandscapingConfidenceThreshold,
		OfficeNeedsContact: true,
	},
}

// ShopCategoryIDs возвращает id категорий в порядке объявления
func ShopCategoryIDs() []string {
	ids := make([]string, 0, len(ShopCategories))
	for _, c := range ShopCategories {
		ids = append(ids, c.ID)
	}
	return ids
}

// IsValidShopCategory checks if category id is known
func IsValidShopCategory(id string) bool {
	for _, c := range ShopCategories {
		if c.ID == id {
			return true
		}
	}
	return false
}
