package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/garden-shops-service/internal/domain"
	"github.com/garden-shops-service/internal/domain/repository"
	"github.com/garden-shops-service/internal/pkg/utils"
	"github.com/garden-shops-service/internal/worker"
)

const retryBackoff = time.Second

// Discoverer - поиск магазинов в регионе
type Discoverer interface {
	Discover(ctx context.Context, region domain.SearchRegion) (*domain.DiscoveryResult, error)
}

// ShopDiscoveryWorker обрабатывает запросы на поиск магазинов из stream:shops:discover
// и публикует результаты в stream:shops:done
type ShopDiscoveryWorker struct {
	*worker.BaseWorker
	streamRepo    repository.StreamRepository
	discoverer    Discoverer
	consumerName  string
	maxRetries    int
	backoff       time.Duration
	radiusOptions []int
	defaultRadius int
}

// NewShopDiscoveryWorker создает новый ShopDiscoveryWorker.
// radius_m события должен быть одним из radiusOptions; без radius_m используется наибольший.
func NewShopDiscoveryWorker(
	streamRepo repository.StreamRepository,
	discoverer Discoverer,
	consumerGroup string,
	maxRetries int,
	radiusOptions []int,
	logger *zap.Logger,
) *ShopDiscoveryWorker {
	hostname, _ := os.Hostname()

	if maxRetries < 1 {
		maxRetries = 1
	}

	defaultRadius := 0
	for _, r := range radiusOptions {
		if r > defaultRadius {
			defaultRadius = r
		}
	}

	return &ShopDiscoveryWorker{
		BaseWorker:    worker.NewBaseWorker("shop-discovery", consumerGroup, logger),
		streamRepo:    streamRepo,
		discoverer:    discoverer,
		consumerName:  fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		maxRetries:    maxRetries,
		backoff:       retryBackoff,
		radiusOptions: radiusOptions,
		defaultRadius: defaultRadius,
	}
}

// Start читает события до остановки воркера или отмены контекста
func (w *ShopDiscoveryWorker) Start(ctx context.Context) error {
	logger := w.Logger()

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamShopsDiscover, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	ctx, cancel := w.WithStop(ctx)
	defer cancel()

	messages, err := w.streamRepo.ConsumeStream(ctx, domain.StreamShopsDiscover, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	logger.Info("Shop discovery worker started",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case msg, ok := <-messages:
			if !ok {
				if w.IsStopped() {
					return nil
				}
				return ctx.Err()
			}
			w.handleMessage(ctx, msg)
		}
	}
}

// handleMessage обрабатывает одно сообщение. Сообщение подтверждается
// только после публикации ответа; иначе оно будет перечитано.
func (w *ShopDiscoveryWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	var event domain.DiscoveryRequestEvent
	var done domain.DiscoveryDoneEvent

	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Invalid discovery event", zap.Error(err))
		done.Error = fmt.Sprintf("invalid payload: %v", err)
	} else {
		done.RequestID = event.RequestID
		region, err := w.region(event)
		if err != nil {
			done.Error = err.Error()
		} else {
			result, err := w.discoverWithRetry(ctx, region)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				done.Error = err.Error()
			} else {
				done.Result = result
			}
		}
	}

	if err := w.streamRepo.PublishToStream(ctx, domain.StreamShopsDone, &done); err != nil {
		logger.Error("Failed to publish discovery result", zap.Error(err))
		return
	}

	if err := w.streamRepo.AckMessage(ctx, domain.StreamShopsDiscover, w.ConsumerGroup(), msg.ID); err != nil {
		logger.Error("Failed to ack message", zap.Error(err))
	}
}

func (w *ShopDiscoveryWorker) region(event domain.DiscoveryRequestEvent) (domain.SearchRegion, error) {
	if !utils.ValidateCoordinates(event.Lat, event.Lon) {
		return domain.SearchRegion{}, fmt.Errorf("invalid coordinates: %f,%f", event.Lat, event.Lon)
	}

	radius := event.RadiusM
	if radius == 0 {
		radius = w.defaultRadius
	} else if !slices.Contains(w.radiusOptions, radius) {
		return domain.SearchRegion{}, fmt.Errorf("invalid radius: %d (allowed %v)", event.RadiusM, w.radiusOptions)
	}

	return domain.SearchRegion{
		Center:  domain.Coordinate{Lat: event.Lat, Lon: event.Lon},
		RadiusM: radius,
	}, nil
}

func (w *ShopDiscoveryWorker) discoverWithRetry(ctx context.Context, region domain.SearchRegion) (*domain.DiscoveryResult, error) {
	var lastErr error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		result, err := w.discoverer.Discover(ctx, region)
		if err == nil {
			return result, nil
		}
		lastErr = err

		w.Logger().Warn("Discovery attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", w.maxRetries),
			zap.Error(err))

		if attempt == w.maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(w.backoff * time.Duration(attempt)):
		}
	}
	return nil, lastErr
}
