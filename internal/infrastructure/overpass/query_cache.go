package overpass

import (
	"sync"
	"time"

	"github.com/garden-shops-service/internal/domain"
	"github.com/garden-shops-service/internal/pkg/clock"
)

type cacheEntry struct {
	storedAt time.Time
	elements []domain.OSMElement
}

// QueryCache - in-memory кеш ответов Overpass с TTL.
// Записи неизменяемы; срок жизни проверяется при чтении.
type QueryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	clock   clock.Clock
	entries map[string]cacheEntry
}

// NewQueryCache создает кеш; clk == nil означает системные часы
func NewQueryCache(ttl time.Duration, clk clock.Clock) *QueryCache {
	if clk == nil {
		clk = clock.Real()
	}
	return &QueryCache{
		ttl:     ttl,
		clock:   clk,
		entries: make(map[string]cacheEntry),
	}
}

// Get возвращает элементы, если запись моложе TTL
func (c *QueryCache) Get(key string) ([]domain.OSMElement, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.clock.Now().Sub(entry.storedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.elements, true
}

// Set сохраняет элементы под ключом
func (c *QueryCache) Set(key string, elements []domain.OSMElement) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		storedAt: c.clock.Now(),
		elements: elements,
	}
}
