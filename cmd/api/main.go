package main

// @title Garden Shops Service API
// @version 1.0.0
// @description Сервис поиска садовых магазинов рядом с пользователем по данным OpenStreetMap.
// @description
// @description Основные возможности:
// @description - Поиск магазинов в радиусе с классификацией по категориям
// @description - Ранжирование по релевантности или расстоянию
// @description - GeoJSON для отображения на карте
// @description - Каталог садовых товаров

// @contact.name API Support
// @contact.email support@garden-shops.example

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/garden-shops-service/docs/swagger"
	"github.com/garden-shops-service/internal/config"
	httpDelivery "github.com/garden-shops-service/internal/delivery/http"
	"github.com/garden-shops-service/internal/delivery/http/handler"
	"github.com/garden-shops-service/internal/domain"
	"github.com/garden-shops-service/internal/infrastructure/overpass"
	"github.com/garden-shops-service/internal/pkg/logger"
	"github.com/garden-shops-service/internal/repository/cache"
	"github.com/garden-shops-service/internal/repository/postgres"
	"github.com/garden-shops-service/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Garden Shops Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Ints("radius_options", cfg.Discovery.RadiusOptions),
		zap.Strings("overpass_endpoints", cfg.Overpass.Endpoints),
		zap.Strings("overpass_library_endpoints", cfg.Overpass.LibraryEndpoints),
	)

	// 3. Connect to PostgreSQL (каталог товаров)
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	productRepo := postgres.NewProductRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	gateway := overpass.New(&cfg.Overpass, domain.ShopCategories, log)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	classifier := usecase.NewClassifier(domain.ShopCategories, domain.GlobalConfidenceThreshold)

	discoveryUC := usecase.NewDiscoveryUseCase(
		gateway,
		cacheRepo,
		classifier,
		log,
		cfg.Cache.DiscoveryCacheTTL,
	)

	shopsUC := usecase.NewShopsUseCase(discoveryUC, cfg.Discovery.RadiusOptions, log)

	productUC := usecase.NewProductUseCase(
		productRepo,
		cacheRepo,
		log,
		cfg.Cache.ProductsCacheTTL,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	shopHandler := handler.NewShopHandler(shopsUC, log)
	productHandler := handler.NewProductHandler(productUC, log)

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, shopHandler, productHandler)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := db.Close(); err != nil {
		log.Error("Failed to close PostgreSQL", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
