package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Overpass  OverpassConfig
	Discovery DiscoveryConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string // через запятую, формат fiber cors.Config.AllowOrigins
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	DiscoveryCacheTTL time.Duration
	ProductsCacheTTL  time.Duration
}

type LogConfig struct {
	Level string
}

// OverpassConfig - настройки шлюза к Overpass API
type OverpassConfig struct {
	Endpoints        []string
	LibraryEndpoints []string // обслуживаются клиентом go-overpass
	RequestTimeout   time.Duration
	QueryTimeout     int // серверный [timeout:N], секунды
	CacheTTL         time.Duration
	MinStrictResults int
}

type DiscoveryConfig struct {
	RadiusOptions []int // метры
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	MaxRetries    int
}

// dev-сервер Expo (web) и Vite
const defaultCORSOrigins = "http://localhost:8081,http://localhost:19006,http://localhost:5173"

var defaultOverpassEndpoints = []string{
	"https://overpass-api.de/api/interpreter",
	"https://overpass.kumi.systems/api/interpreter",
	"https://overpass.private.coffee/api/interpreter",
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	radiusOptions, err := parseInts(viper.GetString("DISCOVERY_RADIUS_OPTIONS"))
	if err != nil {
		return nil, fmt.Errorf("invalid DISCOVERY_RADIUS_OPTIONS: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        viper.GetString("API_HOST"),
			Port:        viper.GetInt("API_PORT"),
			Env:         viper.GetString("API_ENV"),
			CORSOrigins: viper.GetString("API_CORS_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			DiscoveryCacheTTL: time.Duration(viper.GetInt("DISCOVERY_CACHE_TTL")) * time.Second,
			ProductsCacheTTL:  time.Duration(viper.GetInt("PRODUCTS_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Overpass: OverpassConfig{
			Endpoints:        parseList(viper.GetString("OVERPASS_ENDPOINTS")),
			LibraryEndpoints: parseList(viper.GetString("OVERPASS_LIBRARY_ENDPOINTS")),
			RequestTimeout:   time.Duration(viper.GetInt("OVERPASS_REQUEST_TIMEOUT")) * time.Millisecond,
			QueryTimeout:     viper.GetInt("OVERPASS_QUERY_TIMEOUT"),
			CacheTTL:         time.Duration(viper.GetInt("OVERPASS_CACHE_TTL")) * time.Second,
			MinStrictResults: viper.GetInt("OVERPASS_MIN_STRICT_RESULTS"),
		},
		Discovery: DiscoveryConfig{
			RadiusOptions: radiusOptions,
		},
		Worker: WorkerConfig{
			Enabled:       viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup: viper.GetString("WORKER_CONSUMER_GROUP"),
			MaxRetries:    viper.GetInt("WORKER_MAX_RETRIES"),
		},
	}

	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults - значения по умолчанию для незаданных параметров
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.CORSOrigins == "" {
		c.Server.CORSOrigins = defaultCORSOrigins
	}
	if c.Cache.DiscoveryCacheTTL == 0 {
		c.Cache.DiscoveryCacheTTL = 5 * time.Minute
	}
	if c.Cache.ProductsCacheTTL == 0 {
		c.Cache.ProductsCacheTTL = 10 * time.Minute
	}
	if len(c.Overpass.Endpoints) == 0 && len(c.Overpass.LibraryEndpoints) == 0 {
		c.Overpass.Endpoints = append([]string(nil), defaultOverpassEndpoints...)
	}
	if c.Overpass.RequestTimeout == 0 {
		c.Overpass.RequestTimeout = 9 * time.Second
	}
	if c.Overpass.QueryTimeout == 0 {
		c.Overpass.QueryTimeout = 25
	}
	if c.Overpass.CacheTTL == 0 {
		c.Overpass.CacheTTL = 5 * time.Minute
	}
	if c.Overpass.MinStrictResults == 0 {
		c.Overpass.MinStrictResults = 4
	}
	if len(c.Discovery.RadiusOptions) == 0 {
		c.Discovery.RadiusOptions = []int{1000, 2500, 5000, 8000}
	}
	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "shop-discovery-workers"
	}
	if c.Worker.MaxRetries == 0 {
		c.Worker.MaxRetries = 3
	}
}

// MaxRadius - наибольший радиус из доступных; поиск всегда идёт по нему
func (d DiscoveryConfig) MaxRadius() int {
	largest := 0
	for _, r := range d.RadiusOptions {
		if r > largest {
			largest = r
		}
	}
	return largest
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func parseInts(s string) ([]int, error) {
	parts := parseList(s)
	result := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		if v <= 0 {
			return nil, fmt.Errorf("radius must be positive: %d", v)
		}
		result = append(result, v)
	}
	return result, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return c.Database.DSN()
}

func (c *Config) GetRedisAddr() string {
	return c.Redis.Addr()
}

// DSN - строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Addr - адрес Redis host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
