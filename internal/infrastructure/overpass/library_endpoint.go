package overpass

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/garden-shops-service/internal/domain"
	"github.com/serjvanilla/go-overpass"
	"go.uber.org/zap"
)

type libraryEndpoint struct {
	url    string
	client *overpass.Client
	logger *zap.Logger
}

// NewLibraryEndpoint создает endpoint на основе клиента go-overpass.
// Клиент не принимает context, поэтому таймаут дублируется в http.Client.
func NewLibraryEndpoint(url string, timeout time.Duration, logger *zap.Logger) Endpoint {
	httpClient := &http.Client{
		Timeout: timeout,
	}
	client := overpass.NewWithSettings(url, 1, httpClient)
	return &libraryEndpoint{
		url:    url,
		client: &client,
		logger: logger,
	}
}

func (e *libraryEndpoint) Name() string {
	return e.url
}

func (e *libraryEndpoint) Fetch(ctx context.Context, q Query) ([]domain.OSMElement, error) {
	type outcome struct {
		result overpass.Result
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		result, err := e.client.Query(q.withSkeleton())
		done <- outcome{result: result, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case o := <-done:
		if o.err != nil {
			return nil, fmt.Errorf("overpass query failed: %w", o.err)
		}
		return convertResult(&o.result), nil
	}
}

// convertResult переводит результат go-overpass в элементы OSM.
// Узлы без тегов (скелет way) отбрасываются; координата way - центр bounds
// или среднее по узлам. Relations не поддерживаются.
func convertResult(result *overpass.Result) []domain.OSMElement {
	elements := make([]domain.OSMElement, 0, len(result.Nodes)+len(result.Ways))

	for _, node := range result.Nodes {
		if len(node.Tags) == 0 {
			continue
		}
		lat, lon := node.Lat, node.Lon
		elements = append(elements, domain.OSMElement{
			ID:   node.ID,
			Type: domain.OSMTypeNode,
			Lat:  &lat,
			Lon:  &lon,
			Tags: node.Tags,
		})
	}

	for _, way := range result.Ways {
		el := domain.OSMElement{
			ID:   way.ID,
			Type: domain.OSMTypeWay,
			Tags: way.Tags,
		}

		if way.Bounds != nil {
			el.Center = &domain.Coordinate{
				Lat: (way.Bounds.Min.Lat + way.Bounds.Max.Lat) / 2,
				Lon: (way.Bounds.Min.Lon + way.Bounds.Max.Lon) / 2,
			}
		} else if count := len(way.Nodes); count > 0 {
			var lat, lon float64
			for _, node := range way.Nodes {
				lat += node.Lat
				lon += node.Lon
			}
			el.Center = &domain.Coordinate{Lat: lat / float64(count), Lon: lon / float64(count)}
		}

		elements = append(elements, el)
	}

	// go-overpass хранит элементы в map - фиксируем порядок
	sort.Slice(elements, func(i, j int) bool {
		if elements[i].Type != elements[j].Type {
			return elements[i].Type < elements[j].Type
		}
		return elements[i].ID < elements[j].ID
	})

	return elements
}
