package overpass

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const libraryResponse = `{
  "version": 0.6,
  "osm3s": {"timestamp_osm_base": "2025-05-01T12:00:00Z"},
  "elements": [
    {"type": "node", "id": 10, "lat": 44.43, "lon": 26.10, "tags": {"shop": "florist", "name": "Flori"}},
    {"type": "way", "id": 20, "nodes": [11, 12], "tags": {"shop": "garden_centre", "name": "Green"}},
    {"type": "node", "id": 11, "lat": 44.40, "lon": 26.00},
    {"type": "node", "id": 12, "lat": 44.50, "lon": 26.20}
  ]
}`

func TestLibraryEndpoint_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(libraryResponse))
	}))
	defer server.Close()

	endpoint := NewLibraryEndpoint(server.URL, 5*time.Second, zap.NewNop())
	assert.Equal(t, server.URL, endpoint.Name())

	elements, err := endpoint.Fetch(context.Background(), BuildStrictQuery(nil, testRegion, 25))
	require.NoError(t, err)
	require.Len(t, elements, 2, "untagged skeleton nodes are dropped")

	assert.Equal(t, "node-10", elements[0].Key())
	coord, ok := elements[0].Coordinate()
	require.True(t, ok)
	assert.InDelta(t, 44.43, coord.Lat, 1e-9)

	assert.Equal(t, "way-20", elements[1].Key())
	center, ok := elements[1].Coordinate()
	require.True(t, ok)
	assert.InDelta(t, 44.45, center.Lat, 1e-9)
	assert.InDelta(t, 26.10, center.Lon, 1e-9)
}

func TestLibraryEndpoint_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(libraryResponse))
	}))
	defer server.Close()

	endpoint := NewLibraryEndpoint(server.URL, 5*time.Second, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := endpoint.Fetch(ctx, BuildStrictQuery(nil, testRegion, 25))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
