package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, defaultCORSOrigins, cfg.Server.CORSOrigins)
	assert.Len(t, cfg.Overpass.Endpoints, 3)
	assert.Equal(t, 9*time.Second, cfg.Overpass.RequestTimeout)
	assert.Equal(t, 25, cfg.Overpass.QueryTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Overpass.CacheTTL)
	assert.Equal(t, 4, cfg.Overpass.MinStrictResults)
	assert.Equal(t, []int{1000, 2500, 5000, 8000}, cfg.Discovery.RadiusOptions)
	assert.Equal(t, 8000, cfg.Discovery.MaxRadius())
	assert.Equal(t, "shop-discovery-workers", cfg.Worker.ConsumerGroup)
}

func TestApplyDefaults_LibraryEndpointsOnly(t *testing.T) {
	cfg := &Config{Overpass: OverpassConfig{LibraryEndpoints: []string{"http://local/api/interpreter"}}}
	cfg.applyDefaults()

	assert.Empty(t, cfg.Overpass.Endpoints)
	assert.Equal(t, []string{"http://local/api/interpreter"}, cfg.Overpass.LibraryEndpoints)
}

func TestParseInts(t *testing.T) {
	got, err := parseInts(" 1000, 2500 ,8000")
	require.NoError(t, err)
	assert.Equal(t, []int{1000, 2500, 8000}, got)

	_, err = parseInts("1000,abc")
	assert.Error(t, err)

	_, err = parseInts("-5")
	assert.Error(t, err)

	got, err = parseInts("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseList(t *testing.T) {
	assert.Nil(t, parseList(""))
	assert.Equal(t, []string{"a", "b"}, parseList("a, ,b"))
}

func TestConnectionStrings(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "garden_shops", SSLMode: "disable"},
		Redis:    RedisConfig{Host: "cache", Port: 6379},
	}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=garden_shops sslmode=disable", cfg.GetDatabaseDSN())
	assert.Equal(t, "cache:6379", cfg.GetRedisAddr())
}
