package overpass

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/garden-shops-service/internal/domain"
	"github.com/garden-shops-service/internal/domain/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrAllEndpointsFailed - ни один endpoint не ответил успешно
var ErrAllEndpointsFailed = errors.New("all overpass endpoints failed")

// GatewayOptions - параметры шлюза
type GatewayOptions struct {
	Categories       []domain.ShopCategory
	RequestTimeout   time.Duration
	QueryTimeout     int
	MinStrictResults int
}

// Gateway получает точки интереса из Overpass: сначала точный запрос,
// при недостатке результатов - широкий; каждый запрос гонится по всем endpoint'ам.
type Gateway struct {
	endpoints []Endpoint
	cache     *QueryCache
	opts      GatewayOptions
	group     singleflight.Group
	logger    *zap.Logger
}

// NewGateway создает шлюз Overpass
func NewGateway(endpoints []Endpoint, cache *QueryCache, opts GatewayOptions, logger *zap.Logger) *Gateway {
	if opts.Categories == nil {
		opts.Categories = domain.ShopCategories
	}
	if opts.RequestTimeout == 0 {
		opts.RequestTimeout = 9 * time.Second
	}
	if opts.QueryTimeout == 0 {
		opts.QueryTimeout = 25
	}
	if opts.MinStrictResults == 0 {
		opts.MinStrictResults = 4
	}
	return &Gateway{
		endpoints: endpoints,
		cache:     cache,
		opts:      opts,
		logger:    logger,
	}
}

var _ repository.POISourceRepository = (*Gateway)(nil)

// FetchPointsOfInterest возвращает элементы OSM для региона (с кешированием)
func (g *Gateway) FetchPointsOfInterest(ctx context.Context, region domain.SearchRegion) ([]domain.OSMElement, error) {
	key := region.CacheKey()
	if cached, ok := g.cache.Get(key); ok {
		g.logger.Debug("Overpass cache hit", zap.String("key", key), zap.Int("elements", len(cached)))
		return cached, nil
	}

	// Одновременные запросы одного региона выполняют одну сетевую последовательность.
	// Общая выборка не зависит от отмены контекста отдельного вызывающего:
	// её время ограничено таймаутами endpoint'ов.
	ch := g.group.DoChan(key, func() (interface{}, error) {
		if cached, ok := g.cache.Get(key); ok {
			return cached, nil
		}

		elements, err := g.fetchTiered(context.WithoutCancel(ctx), region)
		if err != nil {
			return nil, err
		}

		g.cache.Set(key, elements)
		return elements, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]domain.OSMElement), nil
	}
}

func (g *Gateway) fetchTiered(ctx context.Context, region domain.SearchRegion) ([]domain.OSMElement, error) {
	strict, err := g.race(ctx, BuildStrictQuery(g.opts.Categories, region, g.opts.QueryTimeout))
	if err != nil {
		return nil, fmt.Errorf("strict query: %w", err)
	}

	if len(strict) >= g.opts.MinStrictResults {
		g.logger.Debug("Strict query sufficient", zap.Int("elements", len(strict)))
		return strict, nil
	}

	g.logger.Info("Strict query returned too few elements, running broad query",
		zap.Int("elements", len(strict)),
		zap.Int("min_strict_results", g.opts.MinStrictResults))

	broad, err := g.race(ctx, BuildBroadQuery(region, g.opts.QueryTimeout))
	if err != nil {
		return nil, fmt.Errorf("broad query: %w", err)
	}

	return mergeElements(strict, broad), nil
}

// race запускает запрос на всех endpoint'ах параллельно; побеждает первый успешный.
// Каждая попытка ограничена собственным таймаутом.
func (g *Gateway) race(ctx context.Context, q Query) ([]domain.OSMElement, error) {
	if len(g.endpoints) == 0 {
		return nil, fmt.Errorf("%w: no endpoints configured", ErrAllEndpointsFailed)
	}

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type attempt struct {
		endpoint string
		elements []domain.OSMElement
		err      error
	}
	results := make(chan attempt, len(g.endpoints))

	for _, endpoint := range g.endpoints {
		go func(ep Endpoint) {
			attemptCtx, cancelAttempt := context.WithTimeout(raceCtx, g.opts.RequestTimeout)
			defer cancelAttempt()

			elements, err := ep.Fetch(attemptCtx, q)
			results <- attempt{endpoint: ep.Name(), elements: elements, err: err}
		}(endpoint)
	}

	errs := make([]error, 0, len(g.endpoints))
	for range g.endpoints {
		a := <-results
		if a.err == nil {
			g.logger.Debug("Overpass endpoint won race",
				zap.String("endpoint", a.endpoint),
				zap.Int("elements", len(a.elements)))
			return a.elements, nil
		}

		g.logger.Warn("Overpass endpoint failed",
			zap.String("endpoint", a.endpoint),
			zap.Error(a.err))
		errs = append(errs, fmt.Errorf("%s: %w", a.endpoint, a.err))
	}

	g.logger.Error("All Overpass endpoints failed", zap.Int("endpoints", len(g.endpoints)))
	return nil, fmt.Errorf("%w: %w", ErrAllEndpointsFailed, errors.Join(errs...))
}

// mergeElements объединяет результаты с дедупликацией по type+id.
// Позиция элемента - первое появление, данные - из последнего списка, где он встретился.
func mergeElements(lists ...[]domain.OSMElement) []domain.OSMElement {
	index := make(map[string]int)
	merged := make([]domain.OSMElement, 0)
	for _, list := range lists {
		for _, el := range list {
			key := el.Key()
			if i, ok := index[key]; ok {
				merged[i] = el
				continue
			}
			index[key] = len(merged)
			merged = append(merged, el)
		}
	}
	return merged
}
