package overpass

import (
	"strings"
	"testing"

	"github.com/garden-shops-service/internal/domain"
	"github.com/stretchr/testify/assert"
)

var testRegion = domain.SearchRegion{
	Center:  domain.Coordinate{Lat: 44.4268, Lon: 26.1025},
	RadiusM: 8000,
}

func TestBuildStrictQuery(t *testing.T) {
	q := BuildStrictQuery(domain.ShopCategories, testRegion, 25)
	text := q.String()

	assert.True(t, strings.HasPrefix(text, "[out:json][timeout:25];"))
	assert.Contains(t, text, `node(around:8000,44.4268,26.1025)[shop="garden_centre"];`)
	assert.Contains(t, text, `way(around:8000,44.4268,26.1025)[shop="garden_centre"];`)
	assert.Contains(t, text, `[product="fertilizer"]`)
	assert.Contains(t, text, `[office="landscape_architect"]`)
	assert.Contains(t, text, `[service="gardener"]`)
	assert.NotContains(t, text, "relation(")
	assert.NotContains(t, text, "~")
	assert.True(t, strings.HasSuffix(text, "out center tags;\n"))

	// Каждое значение правила даёт ровно пару node/way
	assert.Equal(t, 2, strings.Count(text, `[craft="gardener"]`))
}

func TestBuildStrictQuery_DeduplicatesFilters(t *testing.T) {
	categories := []domain.ShopCategory{
		{ID: "a", Include: []domain.CategoryRule{{Key: "shop", Values: []string{"florist"}, Weight: 6}}},
		{ID: "b", Include: []domain.CategoryRule{{Key: "shop", Values: []string{"florist", "farm"}, Weight: 3}}},
	}

	q := BuildStrictQuery(categories, testRegion, 25)
	assert.Len(t, q.Statements, 4)
}

func TestBuildBroadQuery(t *testing.T) {
	region := domain.SearchRegion{Center: testRegion.Center, RadiusM: 2500}
	q := BuildBroadQuery(region, 25)

	assert.Len(t, q.Statements, len(broadFilters)*3)
	text := q.String()
	assert.Contains(t, text, `relation(around:2500,44.4268,26.1025)[shop~"garden_centre|florist|hardware|doityourself|agrarian|farm|trade|tools|supermarket"];`)
	assert.Contains(t, text, `node(around:2500,44.4268,26.1025)[amenity~"marketplace|garden_centre"];`)
	assert.Contains(t, text, `way(around:2500,44.4268,26.1025)[office="landscape_architect"];`)
}

func TestQuery_WithSkeleton(t *testing.T) {
	q := Query{Timeout: 10, Statements: []string{`node(around:100,1,2)[shop="florist"];`}}
	text := q.withSkeleton()

	assert.Contains(t, text, "[timeout:10]")
	assert.True(t, strings.HasSuffix(text, "out body;\n>;\nout skel qt;\n"))
	assert.NotContains(t, text, "out center")
}
