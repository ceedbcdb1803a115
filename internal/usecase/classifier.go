package usecase

import (
	"math"
	"strings"

	"github.com/garden-shops-service/internal/domain"
)

const (
	maxPenaltyDistanceKm = 20.0
	distancePenaltyPerKm = 0.25
)

var (
	lifecycleKeys       = []string{"disused", "abandoned", "demolished", "razed", "removed", "construction", "proposed"}
	lifecycleKeyPrefix  = []string{"disused:", "abandoned:", "demolished:"}
	closedOpeningHours  = map[string]struct{}{"closed": {}, "off": {}, "unknown": {}}
	dwellingBuildings   = map[string]struct{}{"house": {}, "residential": {}, "apartments": {}, "detached": {}, "hut": {}}
	businessIdentityTag = []string{"shop", "craft", "office", "service", "trade"}
	displayNameTags     = []string{"name", "name:en", "official_name", "short_name", "brand", "operator"}
)

// Classifier относит запись OSM к категориям магазинов по весовым правилам.
// Не хранит состояния: результат зависит только от записи, расстояния и набора категорий.
type Classifier struct {
	categories      []domain.ShopCategory
	globalThreshold float64
}

// NewClassifier создает классификатор; пустой набор категорий означает domain.ShopCategories
func NewClassifier(categories []domain.ShopCategory, globalThreshold float64) *Classifier {
	if len(categories) == 0 {
		categories = domain.ShopCategories
	}
	if globalThreshold == 0 {
		globalThreshold = domain.GlobalConfidenceThreshold
	}
	return &Classifier{
		categories:      categories,
		globalThreshold: globalThreshold,
	}
}

// Classify возвращает категории, к которым уверенно относится запись.
// Пустой результат - обычный исход "не магазин", не ошибка.
func (c *Classifier) Classify(el domain.OSMElement, distanceKm float64) []domain.CategoryMatch {
	if isLifecycleClosed(el) || isResidentialOrPrivate(el) {
		return nil
	}

	// Запись без имени отбрасывается; контакты без имени не спасают
	if _, ok := DisplayName(el); !ok {
		return nil
	}

	signals := businessSignalsScore(el)
	hasContact := hasContactSignals(el)
	penalty := math.Min(distanceKm, maxPenaltyDistanceKm) * distancePenaltyPerKm

	var matches []domain.CategoryMatch
	for _, category := range c.categories {
		score := categoryScore(category, el)
		if score < category.Threshold {
			continue
		}

		if category.OfficeNeedsContact && isOfficeOnly(el) && !hasContact {
			continue
		}

		final := score + signals - penalty
		if final >= c.globalThreshold {
			matches = append(matches, domain.CategoryMatch{CategoryID: category.ID, Score: final})
		}
	}

	return matches
}

// DisplayName - первое непустое (длиннее одного символа) имя из name, name:en,
// official_name, short_name, brand, operator
func DisplayName(el domain.OSMElement) (string, bool) {
	for _, key := range displayNameTags {
		if v := strings.TrimSpace(el.Tag(key)); len(v) > 1 {
			return v, true
		}
	}
	return "", false
}

func matchesRule(el domain.OSMElement, rule domain.CategoryRule) bool {
	tokens := el.TagTokens(rule.Key)
	if len(tokens) == 0 {
		return false
	}
	for _, value := range rule.Values {
		want := strings.ToLower(value)
		for _, token := range tokens {
			if token == want {
				return true
			}
		}
	}
	return false
}

func categoryScore(category domain.ShopCategory, el domain.OSMElement) float64 {
	var score float64
	for _, rule := range category.Include {
		if matchesRule(el, rule) {
			score += rule.Weight
		}
	}
	for _, rule := range category.Exclude {
		if matchesRule(el, rule) {
			score -= rule.Weight
		}
	}
	return score
}

func businessSignalsScore(el domain.OSMElement) float64 {
	var score float64
	if el.HasTag("name") {
		score += 2
	}
	if el.HasTag("brand") || el.HasTag("operator") {
		score += 2
	}
	if el.HasTag("website") || el.HasTag("contact:website") {
		score++
	}
	if el.HasTag("phone") || el.HasTag("contact:phone") {
		score++
	}
	if el.HasTag("opening_hours") {
		score++
	}
	return score
}

func hasContactSignals(el domain.OSMElement) bool {
	return el.HasTag("website") || el.HasTag("contact:website") ||
		el.HasTag("phone") || el.HasTag("contact:phone") ||
		el.HasTag("opening_hours")
}

func isLifecycleClosed(el domain.OSMElement) bool {
	for _, key := range lifecycleKeys {
		switch strings.ToLower(el.Tag(key)) {
		case "yes", "true":
			return true
		}
	}

	for key := range el.Tags {
		for _, prefix := range lifecycleKeyPrefix {
			if strings.HasPrefix(key, prefix) {
				return true
			}
		}
	}

	_, closed := closedOpeningHours[strings.ToLower(el.Tag("opening_hours"))]
	return closed
}

func isResidentialOrPrivate(el domain.OSMElement) bool {
	hasBusinessTag := false
	for _, key := range businessIdentityTag {
		if el.HasTag(key) {
			hasBusinessTag = true
			break
		}
	}

	switch strings.ToLower(el.Tag("access")) {
	case "private", "no":
		if !hasBusinessTag {
			return true
		}
	}

	if _, dwelling := dwellingBuildings[strings.ToLower(el.Tag("building"))]; dwelling && !hasBusinessTag {
		return true
	}

	return strings.ToLower(el.Tag("landuse")) == "residential" &&
		!el.HasTag("shop") && !el.HasTag("craft") && !el.HasTag("amenity")
}

func isOfficeOnly(el domain.OSMElement) bool {
	return el.HasTag("office") && !el.HasTag("shop") && !el.HasTag("craft")
}

// Categories - набор категорий классификатора в порядке объявления
func (c *Classifier) Categories() []domain.ShopCategory {
	return c.categories
}
