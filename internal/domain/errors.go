package domain

import "errors"

var (
	// ErrGoldAPIFailure is returned when the upstream gold price request fails
	ErrGoldAPIFailure = errors.New("gold price API request failed")

	// ErrCatalogUnavailable is returned when the static catalog cannot be loaded or parsed
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
