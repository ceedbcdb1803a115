package errors

import "net/http"

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidCategory = New(
		"INVALID_SHOP_CATEGORY",
		"Unknown shop category",
		http.StatusBadRequest,
	)

	ErrInvalidSortMode = New(
		"INVALID_SORT_MODE",
		"Sort mode must be relevance or distance",
		http.StatusBadRequest,
	)

	// ErrShopsUnavailable - все источники данных недоступны, клиент может повторить запрос
	ErrShopsUnavailable = New(
		"SHOPS_UNAVAILABLE",
		"We couldn't load nearby shops right now. Please try refreshing in a few moments.",
		http.StatusServiceUnavailable,
	)

	ErrProductNotFound = New(
		"PRODUCT_NOT_FOUND",
		"Product not found",
		http.StatusNotFound,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
