//go:build ignore
// +build ignore

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/garden-shops-service/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6380", "Redis address for streams")
	lat := flag.Float64("lat", 44.4268, "Latitude")
	lon := flag.Float64("lon", 26.1025, "Longitude")
	radius := flag.Int("radius", 0, "Search radius in meters (0 = worker default)")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := domain.DiscoveryRequestEvent{
		RequestID: uuid.New(),
		Lat:       *lat,
		Lon:       *lon,
		RadiusM:   *radius,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamShopsDiscover,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamShopsDiscover)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Request ID: %s\n", event.RequestID)
	fmt.Printf("   Coordinates: %.6f, %.6f\n", event.Lat, event.Lon)

	fmt.Printf("\nWaiting for response in %s...\n", domain.StreamShopsDone)

	timeout := time.After(60 * time.Second)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout waiting for response")
			return
		case <-ticker.C:
			results, err := client.XRead(ctx, &redis.XReadArgs{
				Streams: []string{domain.StreamShopsDone, "0"},
				Count:   100,
				Block:   -1,
			}).Result()
			if err != nil && !errors.Is(err, redis.Nil) {
				continue
			}

			for _, stream := range results {
				for _, msg := range stream.Messages {
					dataStr, ok := msg.Values["data"].(string)
					if !ok {
						continue
					}

					var done domain.DiscoveryDoneEvent
					if err := json.Unmarshal([]byte(dataStr), &done); err != nil {
						continue
					}
					if done.RequestID != event.RequestID {
						continue
					}

					if done.Error != "" {
						fmt.Printf("\nDiscovery failed: %s\n", done.Error)
						return
					}

					fmt.Printf("\nResponse received: %d shops\n", len(done.Result.Combined))
					for id, shops := range done.Result.ByCategory {
						fmt.Printf("   %s: %d\n", id, len(shops))
					}
					pretty, _ := json.MarshalIndent(done.Result.Combined, "", "  ")
					fmt.Printf("%s\n", pretty)
					return
				}
			}
		}
	}
}
