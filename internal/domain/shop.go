package domain

// CategoryRule - правило сопоставления тега: key=value (любое из Values) даёт Weight
type CategoryRule struct {
	Key    string   `json:"key"`
	Values []string `json:"values"`
	Weight float64  `json:"weight"`
}

// ShopCategory - категория магазинов с весовыми правилами включения/исключения
type ShopCategory struct {
	ID      string         `json:"id"`
	Label   string         `json:"label"`
	Include []CategoryRule `json:"include"`
	Exclude []CategoryRule `json:"exclude,omitempty"`

	// Threshold - минимальный балл категории (только правила, без бизнес-сигналов)
	Threshold float64 `json:"threshold"`

	// OfficeNeedsContact - запись, опознанная только по тегу office (без shop/craft),
	// принимается лишь при наличии контактов
	OfficeNeedsContact bool `json:"office_needs_contact,omitempty"`
}

// CategoryMatch - результат классификации записи в одной категории
type CategoryMatch struct {
	CategoryID string  `json:"category_id"`
	Score      float64 `json:"score"`
}

// ClassifiedShop - магазин, отнесённый к категории
type ClassifiedShop struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Location       Coordinate `json:"location"`
	Address        string     `json:"address,omitempty"`
	DistanceKm     *float64   `json:"distance_km,omitempty"`
	CategoryID     string     `json:"category_id"`
	RelevanceScore float64    `json:"relevance_score"`

	// CategoryIDs заполняется только в объединённом списке
	CategoryIDs []string `json:"category_ids,omitempty"`
}

// DiscoveryResult - результат поиска: магазины по категориям и объединённый список
type DiscoveryResult struct {
	ByCategory map[string][]ClassifiedShop `json:"by_category"`
	Combined   []ClassifiedShop            `json:"combined"`
}

// IsEmpty - ни в одной категории нет магазинов
func (r *DiscoveryResult) IsEmpty() bool {
	for _, shops := range r.ByCategory {
		if len(shops) > 0 {
			return false
		}
	}
	return true
}
