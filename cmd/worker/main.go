package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/garden-shops-service/internal/config"
	"github.com/garden-shops-service/internal/domain"
	"github.com/garden-shops-service/internal/infrastructure/overpass"
	"github.com/garden-shops-service/internal/pkg/logger"
	"github.com/garden-shops-service/internal/repository/cache"
	redisRepo "github.com/garden-shops-service/internal/repository/redis"
	"github.com/garden-shops-service/internal/usecase"
	"github.com/garden-shops-service/internal/worker"
	"github.com/garden-shops-service/internal/worker/discovery"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Shop Discovery Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Int("default_radius_m", cfg.Discovery.MaxRadius()))

	// 3. Connect to Redis (кеш и streams)
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Initialize repositories
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	gateway := overpass.New(&cfg.Overpass, domain.ShopCategories, log)

	// 5. Initialize use cases
	discoveryUC := usecase.NewDiscoveryUseCase(
		gateway,
		cacheRepo,
		usecase.NewClassifier(domain.ShopCategories, domain.GlobalConfidenceThreshold),
		log,
		cfg.Cache.DiscoveryCacheTTL,
	)

	// 6. Initialize workers
	discoveryWorker := discovery.NewShopDiscoveryWorker(
		streamRepo,
		discoveryUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		cfg.Discovery.RadiusOptions,
		log,
	)

	// 7. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log, worker.DefaultShutdownTimeout)
	workerManager.Register(discoveryWorker)

	// 8. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
