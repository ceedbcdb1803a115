package domain

import (
	"fmt"
	"strings"
)

// OSM element types
const (
	OSMTypeNode     = "node"
	OSMTypeWay      = "way"
	OSMTypeRelation = "relation"
)

// OSMElement - сырая запись Overpass API
type OSMElement struct {
	ID     int64             `json:"id"`
	Type   string            `json:"type"`
	Lat    *float64          `json:"lat,omitempty"`
	Lon    *float64          `json:"lon,omitempty"`
	Center *Coordinate       `json:"center,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

// Key - уникальный идентификатор элемента вида "node-123"
func (e OSMElement) Key() string {
	return fmt.Sprintf("%s-%d", e.Type, e.ID)
}

// Coordinate возвращает координату элемента: собственную или center (для way/relation)
func (e OSMElement) Coordinate() (Coordinate, bool) {
	if e.Lat != nil && e.Lon != nil {
		return Coordinate{Lat: *e.Lat, Lon: *e.Lon}, true
	}
	if e.Center != nil {
		return *e.Center, true
	}
	return Coordinate{}, false
}

// Tag возвращает значение тега ("" если тега нет)
func (e OSMElement) Tag(key string) string {
	if e.Tags == nil {
		return ""
	}
	return e.Tags[key]
}

// HasTag - тег присутствует и не пустой
func (e OSMElement) HasTag(key string) bool {
	return e.Tag(key) != ""
}

// TagTokens разбивает значение тега по ";" (множественные значения OSM), в нижнем регистре
func (e OSMElement) TagTokens(key string) []string {
	raw := e.Tag(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(strings.ToLower(raw), ";")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// AddressHint - первая доступная часть адреса (улица, город, район)
func (e OSMElement) AddressHint() string {
	for _, key := range []string{"addr:street", "addr:city", "addr:suburb"} {
		if v := e.Tag(key); v != "" {
			return v
		}
	}
	return ""
}
