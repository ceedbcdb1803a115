package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garden-shops-service/internal/domain"
	"github.com/garden-shops-service/internal/infrastructure/overpass"
	apperrors "github.com/garden-shops-service/internal/pkg/errors"
	"github.com/garden-shops-service/internal/usecase"
	"github.com/garden-shops-service/internal/usecase/dto"
)

var radiusOptions = []int{1000, 2500, 5000, 8000}

func newShopsUseCase(source *MockPOISource) *usecase.ShopsUseCase {
	logger := zap.NewNop()
	discovery := usecase.NewDiscoveryUseCase(source, nil, usecase.NewClassifier(nil, 0), logger, time.Minute)
	return usecase.NewShopsUseCase(discovery, radiusOptions, logger)
}

func TestShopsUseCase_NearbyShops(t *testing.T) {
	ctx := context.Background()
	maxRegion := domain.SearchRegion{Center: bucharest.Center, RadiusM: 8000}

	t.Run("searches at max radius and filters to requested radius", func(t *testing.T) {
		source := &MockPOISource{}
		source.On("FetchPointsOfInterest", ctx, maxRegion).Return(append(sixElements(),
			shopAt(30, 44.4800, 26.1025, map[string]string{"shop": "florist", "name": "Far Flowers", "brand": "FF", "website": "https://ff.example"}),
		), nil).Once()

		uc := newShopsUseCase(source)

		resp, err := uc.NearbyShops(ctx, dto.NearbyShopsRequest{Lat: 44.4268, Lon: 26.1025, RadiusM: 2500})
		require.NoError(t, err)

		assert.Equal(t, 8000, resp.SearchedRadiusM)
		assert.False(t, resp.NoResults)
		assert.Len(t, resp.Combined, 4)
		require.Len(t, resp.ByCategory[domain.ShopCategoryPlants], 2)
		assert.Equal(t,
			"https://www.google.com/maps/dir/?api=1&destination=44.427000,26.103000",
			resp.ByCategory[domain.ShopCategoryPlants][0].DirectionsURL)
		source.AssertExpectations(t)
	})

	t.Run("default radius is the largest option", func(t *testing.T) {
		source := &MockPOISource{}
		source.On("FetchPointsOfInterest", ctx, maxRegion).Return(append(sixElements(),
			shopAt(30, 44.4800, 26.1025, map[string]string{"shop": "florist", "name": "Far Flowers", "brand": "FF", "website": "https://ff.example"}),
		), nil)

		uc := newShopsUseCase(source)

		resp, err := uc.NearbyShops(ctx, dto.NearbyShopsRequest{Lat: 44.4268, Lon: 26.1025})
		require.NoError(t, err)
		assert.Contains(t, shopIDs2(resp.Combined), "node-30")
	})

	t.Run("category toggle and distance sort", func(t *testing.T) {
		source := &MockPOISource{}
		source.On("FetchPointsOfInterest", ctx, maxRegion).Return(sixElements(), nil)

		uc := newShopsUseCase(source)

		resp, err := uc.NearbyShops(ctx, dto.NearbyShopsRequest{
			Lat:        44.4268,
			Lon:        26.1025,
			Categories: []string{domain.ShopCategoryTools},
			Sort:       dto.SortByDistance,
		})
		require.NoError(t, err)
		assert.Empty(t, resp.ByCategory[domain.ShopCategoryPlants])
		assert.Equal(t, []string{"node-3", "way-4"}, shopIDs2(resp.Combined))
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		source := &MockPOISource{}
		source.On("FetchPointsOfInterest", ctx, maxRegion).Return([]domain.OSMElement{}, nil)

		uc := newShopsUseCase(source)

		resp, err := uc.NearbyShops(ctx, dto.NearbyShopsRequest{Lat: 44.4268, Lon: 26.1025})
		require.NoError(t, err)
		assert.True(t, resp.NoResults)
		assert.Empty(t, resp.Combined)
	})

	t.Run("total fetch failure is retrievable", func(t *testing.T) {
		source := &MockPOISource{}
		source.On("FetchPointsOfInterest", ctx, maxRegion).Return(nil, overpass.ErrAllEndpointsFailed)

		uc := newShopsUseCase(source)

		_, err := uc.NearbyShops(ctx, dto.NearbyShopsRequest{Lat: 44.4268, Lon: 26.1025})
		assert.Equal(t, apperrors.ErrShopsUnavailable, err)
	})

	t.Run("validation", func(t *testing.T) {
		source := &MockPOISource{}
		uc := newShopsUseCase(source)

		tests := []struct {
			name string
			req  dto.NearbyShopsRequest
			code string
		}{
			{"latitude out of range", dto.NearbyShopsRequest{Lat: 91, Lon: 0}, apperrors.ErrInvalidCoordinates.Code},
			{"radius not an option", dto.NearbyShopsRequest{Lat: 44, Lon: 26, RadiusM: 3000}, apperrors.ErrInvalidRadius.Code},
			{"unknown category", dto.NearbyShopsRequest{Lat: 44, Lon: 26, Categories: []string{"furniture"}}, apperrors.ErrInvalidCategory.Code},
			{"unknown sort", dto.NearbyShopsRequest{Lat: 44, Lon: 26, Sort: "rating"}, apperrors.ErrInvalidSortMode.Code},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := uc.NearbyShops(ctx, tt.req)

				var appErr *apperrors.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, tt.code, appErr.Code)
			})
		}

		source.AssertNotCalled(t, "FetchPointsOfInterest", mock.Anything, mock.Anything)
	})
}

func TestShopsUseCase_NearbyShopsGeoJSON(t *testing.T) {
	ctx := context.Background()
	source := &MockPOISource{}
	source.On("FetchPointsOfInterest", ctx, domain.SearchRegion{Center: bucharest.Center, RadiusM: 8000}).
		Return(sixElements(), nil)

	uc := newShopsUseCase(source)

	fc, err := uc.NearbyShopsGeoJSON(ctx, dto.NearbyShopsRequest{Lat: 44.4268, Lon: 26.1025, RadiusM: 1000})
	require.NoError(t, err)
	require.Len(t, fc.Features, 3, "way-4 is farther than 1 km")

	raw, err := json.Marshal(fc)
	require.NoError(t, err)

	var decoded struct {
		Type     string `json:"type"`
		Features []struct {
			ID       string `json:"id"`
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "FeatureCollection", decoded.Type)
	first := decoded.Features[0]
	assert.Equal(t, "node-1", first.ID)
	assert.Equal(t, "Point", first.Geometry.Type)
	assert.Equal(t, []float64{26.1030, 44.4270}, first.Geometry.Coordinates, "GeoJSON is lon, lat")
	assert.Equal(t, "Green Corner", first.Properties["name"])
	assert.Contains(t, first.Properties, "distance_km")
	assert.Contains(t, first.Properties, "directions_url")
}

func TestShopsUseCase_Categories(t *testing.T) {
	uc := newShopsUseCase(&MockPOISource{})

	categories := uc.Categories()

	require.Len(t, categories, 4)
	assert.Equal(t, dto.ShopCategoryResponse{ID: domain.ShopCategoryPlants, Label: "Plant Shops"}, categories[0])
	assert.Equal(t, domain.ShopCategoryLandscaping, categories[3].ID)
}

func shopIDs2(shops []dto.ShopResponse) []string {
	ids := make([]string, 0, len(shops))
	for _, s := range shops {
		ids = append(ids, s.ID)
	}
	return ids
}
