package domain

import (
	"context"
	"time"
)

// FoodCatalog is read-only access to the loaded food catalog and reference table.
// Implementations must be safe for concurrent readers.
type FoodCatalog interface {
	Food(id string) (FoodEntry, bool)
	Foods() []FoodEntry
	References() ReferenceTable
}

// CacheRepository defines the interface for caching serialized values
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// USDAClient defines the interface for interacting with USDA FoodData Central API
type USDAClient interface {
	SearchFoods(ctx context.Context, query string) (*USDASearchResponse, error)
	GetFoodDetails(ctx context.Context, fdcID int) (*USDAFood, error)
}
