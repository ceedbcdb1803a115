package overpass

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/garden-shops-service/internal/domain"
)

// broadFilters - фильтры широкого запроса: альтернативы по основным ключам тегов
var broadFilters = []string{
	`[shop~"garden_centre|florist|hardware|doityourself|agrarian|farm|trade|tools|supermarket"]`,
	`[amenity~"marketplace|garden_centre"]`,
	`[craft~"gardener|landscaper"]`,
	`[service~"landscaper|gardener"]`,
	`[trade~"landscaping|horticulture"]`,
	`[office="landscape_architect"]`,
}

// Query - Overpass QL запрос: набор операторов внутри union-блока
type Query struct {
	Timeout    int
	Statements []string
}

// String рендерит запрос с выводом центров для way/relation
func (q Query) String() string {
	return q.render("out center tags;")
}

// withSkeleton рендерит запрос с полным выводом и узлами way (для клиента go-overpass,
// который не разбирает center)
func (q Query) withSkeleton() string {
	return q.render("out body;\n>;\nout skel qt;")
}

func (q Query) render(out string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[out:json][timeout:%d];\n(\n", q.Timeout)
	for _, s := range q.Statements {
		b.WriteString("  ")
		b.WriteString(s)
		b.WriteString("\n")
	}
	b.WriteString(");\n")
	b.WriteString(out)
	b.WriteString("\n")
	return b.String()
}

// BuildStrictQuery строит точный запрос: каждое значение каждого include-правила
// всех категорий как key="value" для node и way
func BuildStrictQuery(categories []domain.ShopCategory, region domain.SearchRegion, timeout int) Query {
	around := aroundFilter(region)
	seen := make(map[string]struct{})
	var statements []string

	for _, category := range categories {
		for _, rule := range category.Include {
			for _, value := range rule.Values {
				filter := fmt.Sprintf(`[%s="%s"]`, rule.Key, value)
				if _, ok := seen[filter]; ok {
					continue
				}
				seen[filter] = struct{}{}
				statements = append(statements,
					fmt.Sprintf("node%s%s;", around, filter),
					fmt.Sprintf("way%s%s;", around, filter),
				)
			}
		}
	}

	return Query{Timeout: timeout, Statements: statements}
}

// BuildBroadQuery строит широкий запрос (больше полноты, меньше точности)
func BuildBroadQuery(region domain.SearchRegion, timeout int) Query {
	around := aroundFilter(region)
	statements := make([]string, 0, len(broadFilters)*3)

	for _, filter := range broadFilters {
		for _, elementType := range []string{domain.OSMTypeNode, domain.OSMTypeWay, domain.OSMTypeRelation} {
			statements = append(statements, fmt.Sprintf("%s%s%s;", elementType, around, filter))
		}
	}

	return Query{Timeout: timeout, Statements: statements}
}

func aroundFilter(region domain.SearchRegion) string {
	return fmt.Sprintf("(around:%d,%s,%s)",
		region.RadiusM,
		strconv.FormatFloat(region.Center.Lat, 'f', -1, 64),
		strconv.FormatFloat(region.Center.Lon, 'f', -1, 64),
	)
}
