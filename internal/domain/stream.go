package domain

import "github.com/google/uuid"

// Stream names
const (
	StreamShopsDiscover = "stream:shops:discover"
	StreamShopsDone     = "stream:shops:done"
)

// DiscoveryRequestEvent - входящее событие на поиск магазинов
type DiscoveryRequestEvent struct {
	RequestID uuid.UUID `json:"request_id"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	RadiusM   int       `json:"radius_m"`
}

// DiscoveryDoneEvent - результат поиска магазинов
type DiscoveryDoneEvent struct {
	RequestID uuid.UUID        `json:"request_id"`
	Result    *DiscoveryResult `json:"result,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
