package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garden-shops-service/internal/delivery/http/handler"
	"github.com/garden-shops-service/internal/pkg/errors"
	"github.com/garden-shops-service/internal/usecase/dto"
)

type MockShopsUseCase struct {
	mock.Mock
}

func (m *MockShopsUseCase) Categories() []dto.ShopCategoryResponse {
	args := m.Called()
	return args.Get(0).([]dto.ShopCategoryResponse)
}

func (m *MockShopsUseCase) NearbyShops(ctx context.Context, req dto.NearbyShopsRequest) (*dto.NearbyShopsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.NearbyShopsResponse), args.Error(1)
}

func (m *MockShopsUseCase) NearbyShopsGeoJSON(ctx context.Context, req dto.NearbyShopsRequest) (*geojson.FeatureCollection, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geojson.FeatureCollection), args.Error(1)
}

type MockProductUseCase struct {
	mock.Mock
}

func (m *MockProductUseCase) List(ctx context.Context, req dto.ProductListRequest) (*dto.ProductListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProductListResponse), args.Error(1)
}

func (m *MockProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProductResponse), args.Error(1)
}

func newShopApp(uc handler.ShopsUseCase) *fiber.App {
	h := handler.NewShopHandler(uc, zap.NewNop())
	app := fiber.New()
	app.Get("/shops/categories", h.GetCategories)
	app.Post("/shops/nearby", h.NearbyShops)
	app.Post("/shops/nearby/geojson", h.NearbyShopsGeoJSON)
	return app
}

func newProductApp(uc handler.ProductUseCase) *fiber.App {
	h := handler.NewProductHandler(uc, zap.NewNop())
	app := fiber.New()
	app.Get("/products", h.ListProducts)
	app.Get("/products/:id", h.GetProduct)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func errorCode(body map[string]interface{}) string {
	e, ok := body["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := e["code"].(string)
	return code
}

func TestShopHandler_GetCategories(t *testing.T) {
	uc := new(MockShopsUseCase)
	uc.On("Categories").Return([]dto.ShopCategoryResponse{
		{ID: "plants", Label: "Plant Shops"},
		{ID: "tools", Label: "Garden Tools"},
	})

	resp, err := newShopApp(uc).Test(httptest.NewRequest(http.MethodGet, "/shops/categories", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].([]interface{})
	assert.Len(t, data, 2)
	assert.Equal(t, float64(2), body["meta"].(map[string]interface{})["total"])
}

func TestShopHandler_NearbyShops(t *testing.T) {
	t.Run("passes parsed request to use case", func(t *testing.T) {
		uc := new(MockShopsUseCase)
		want := dto.NearbyShopsRequest{
			Lat:        44.4268,
			Lon:        26.1025,
			RadiusM:    2500,
			Categories: []string{"plants"},
			Sort:       dto.SortByDistance,
		}
		uc.On("NearbyShops", mock.Anything, want).Return(&dto.NearbyShopsResponse{
			ByCategory:      map[string][]dto.ShopResponse{"plants": {{ID: "node-1", Name: "Green Point"}}},
			Combined:        []dto.ShopResponse{{ID: "node-1", Name: "Green Point"}},
			SearchedRadiusM: 8000,
		}, nil)

		resp := postJSON(t, newShopApp(uc), "/shops/nearby", want)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, false, data["no_results"])
		assert.Len(t, data["combined"], 1)
		uc.AssertExpectations(t)
	})

	t.Run("invalid latitude is rejected before use case", func(t *testing.T) {
		uc := new(MockShopsUseCase)

		resp := postJSON(t, newShopApp(uc), "/shops/nearby", map[string]interface{}{"lat": 91.0, "lon": 26.1})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_REQUEST", errorCode(decodeBody(t, resp)))
		uc.AssertNotCalled(t, "NearbyShops", mock.Anything, mock.Anything)
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		uc := new(MockShopsUseCase)

		resp := postJSON(t, newShopApp(uc), "/shops/nearby", map[string]interface{}{
			"lat": 44.4, "lon": 26.1, "categories": []string{"bakeries"},
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		uc.AssertNotCalled(t, "NearbyShops", mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		uc := new(MockShopsUseCase)

		req := httptest.NewRequest(http.MethodPost, "/shops/nearby", bytes.NewReader([]byte("{not json")))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := newShopApp(uc).Test(req, -1)
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_REQUEST", errorCode(decodeBody(t, resp)))
	})

	t.Run("unavailable sources map to 503", func(t *testing.T) {
		uc := new(MockShopsUseCase)
		uc.On("NearbyShops", mock.Anything, mock.Anything).Return(nil, errors.ErrShopsUnavailable)

		resp := postJSON(t, newShopApp(uc), "/shops/nearby", map[string]interface{}{"lat": 44.4, "lon": 26.1})
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SHOPS_UNAVAILABLE", errorCode(decodeBody(t, resp)))
	})
}

func TestShopHandler_NearbyShopsGeoJSON(t *testing.T) {
	uc := new(MockShopsUseCase)
	fc := geojson.NewFeatureCollection()
	f := geojson.NewFeature(orb.Point{26.1025, 44.4268})
	f.Properties["name"] = "Green Point"
	fc.Append(f)
	uc.On("NearbyShopsGeoJSON", mock.Anything, mock.Anything).Return(fc, nil)

	resp := postJSON(t, newShopApp(uc), "/shops/nearby/geojson", map[string]interface{}{"lat": 44.4268, "lon": 26.1025})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/geo+json", resp.Header.Get(fiber.HeaderContentType))

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	got, err := geojson.UnmarshalFeatureCollection(raw)
	require.NoError(t, err)
	require.Len(t, got.Features, 1)
	assert.Equal(t, orb.Point{26.1025, 44.4268}, got.Features[0].Geometry)
	assert.Equal(t, "Green Point", got.Features[0].Properties.MustString("name"))
}

func TestProductHandler_ListProducts(t *testing.T) {
	uc := new(MockProductUseCase)
	uc.On("List", mock.Anything, dto.ProductListRequest{Badge: "Starter", Limit: 10}).Return(&dto.ProductListResponse{
		Products: []dto.ProductResponse{{ID: 2, Name: "Herb Starter Kit"}},
		Total:    1,
	}, nil)

	resp, err := newProductApp(uc).Test(httptest.NewRequest(http.MethodGet, "/products?badge=Starter&limit=10", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])
	uc.AssertExpectations(t)
}

func TestProductHandler_ListProducts_InvalidLimit(t *testing.T) {
	uc := new(MockProductUseCase)

	resp, err := newProductApp(uc).Test(httptest.NewRequest(http.MethodGet, "/products?limit=1000", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	uc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestProductHandler_GetProduct(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		setup      func(uc *MockProductUseCase)
		wantStatus int
		wantCode   string
	}{
		{
			name: "found",
			path: "/products/3",
			setup: func(uc *MockProductUseCase) {
				uc.On("GetByID", mock.Anything, int64(3)).Return(&dto.ProductResponse{ID: 3, Name: "Pruning Shears"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "not found",
			path: "/products/99",
			setup: func(uc *MockProductUseCase) {
				uc.On("GetByID", mock.Anything, int64(99)).Return(nil, errors.ErrProductNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "PRODUCT_NOT_FOUND",
		},
		{
			name:       "non numeric id",
			path:       "/products/abc",
			setup:      func(uc *MockProductUseCase) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockProductUseCase)
			tt.setup(uc)

			resp, err := newProductApp(uc).Test(httptest.NewRequest(http.MethodGet, tt.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body := decodeBody(t, resp)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(body))
			}
			uc.AssertExpectations(t)
		})
	}
}
