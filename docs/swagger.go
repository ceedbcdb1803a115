// Package docs Garden Shops Service API.
//
// Сервис поиска садовых магазинов рядом с пользователем по данным OpenStreetMap.
// Магазины классифицируются по категориям (растения, инструменты, уход, ландшафт),
// ранжируются по релевантности и расстоянию.
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//	- application/geo+json
//
// swagger:meta
package docs
