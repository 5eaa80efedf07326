package domain

import "errors"

var (
	// ErrConfiguration is returned when reference data is missing or unusable,
	// e.g. no reference for an age group or a zero reference target
	ErrConfiguration = errors.New("reference data configuration error")

	// ErrInvalidInput is returned when a request cannot be analyzed as given,
	// e.g. a non-positive quantity or reference portion, or an unknown age group
	ErrInvalidInput = errors.New("invalid input")

	// ErrFoodNotFound is returned when a food id is not in the catalog
	ErrFoodNotFound = errors.New("food not found in catalog")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrProductNotFound is returned when USDA has no record for a query or FDC id
	ErrProductNotFound = errors.New("product not found in USDA database")

	// ErrUSDAAPIFailure is returned when USDA API request fails
	ErrUSDAAPIFailure = errors.New("USDA API request failed")

	// ErrLowConfidence is returned when the best USDA match scores below the
	// matcher threshold
	ErrLowConfidence = errors.New("match confidence below threshold")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)
