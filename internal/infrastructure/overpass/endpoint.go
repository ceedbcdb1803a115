package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/garden-shops-service/internal/domain"
	"go.uber.org/zap"
)

// Endpoint - один из взаимозаменяемых серверов Overpass API
type Endpoint interface {
	Name() string
	Fetch(ctx context.Context, q Query) ([]domain.OSMElement, error)
}

type overpassResponse struct {
	Elements []domain.OSMElement `json:"elements"`
}

type httpEndpoint struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPEndpoint создает endpoint, отправляющий запрос текстом в теле POST.
// Таймаут задаётся контекстом запроса.
func NewHTTPEndpoint(url string, httpClient *http.Client, logger *zap.Logger) Endpoint {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &httpEndpoint{
		url:        url,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (e *httpEndpoint) Name() string {
	return e.url
}

func (e *httpEndpoint) Fetch(ctx context.Context, q Query) ([]domain.OSMElement, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, strings.NewReader(q.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	e.logger.Debug("Calling Overpass API", zap.String("endpoint", e.url), zap.Int("statements", len(q.Statements)))

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("overpass API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var data overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return data.Elements, nil
}
