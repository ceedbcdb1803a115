package overpass

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/garden-shops-service/internal/config"
	"github.com/garden-shops-service/internal/domain"
)

// New собирает шлюз из конфигурации: HTTP endpoint'ы и endpoint'ы go-overpass
// участвуют в одной гонке.
func New(cfg *config.OverpassConfig, categories []domain.ShopCategory, logger *zap.Logger) *Gateway {
	httpClient := &http.Client{}

	endpoints := make([]Endpoint, 0, len(cfg.Endpoints)+len(cfg.LibraryEndpoints))
	for _, url := range cfg.Endpoints {
		endpoints = append(endpoints, NewHTTPEndpoint(url, httpClient, logger))
	}
	for _, url := range cfg.LibraryEndpoints {
		endpoints = append(endpoints, NewLibraryEndpoint(url, cfg.RequestTimeout, logger))
	}

	return NewGateway(
		endpoints,
		NewQueryCache(cfg.CacheTTL, nil),
		GatewayOptions{
			Categories:       categories,
			RequestTimeout:   cfg.RequestTimeout,
			QueryTimeout:     cfg.QueryTimeout,
			MinStrictResults: cfg.MinStrictResults,
		},
		logger,
	)
}
