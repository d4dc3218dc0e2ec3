package storage

import (
	"context"
	"io"

	"github.com/aman-zulfiqar/sui-swap-engine/internal/models"
)

// SwapCache defines the interface for caching swap data
type SwapCache interface {
	// AddRecentSwap adds a swap to the recent swaps list
	AddRecentSwap(ctx context.Context, swap *models.SwapEvent) error

	// GetRecentSwaps retrieves the most recent swaps
	GetRecentSwaps(ctx context.Context, limit int64) ([]*models.SwapEvent, error)

	// UpdatePrice updates the cached spot price for an asset
	UpdatePrice(ctx context.Context, asset string, price float64) error

	// GetPrice retrieves the cached spot price for an asset
	GetPrice(ctx context.Context, asset string) (float64, error)

	// PublishSwap publishes a swap event to the Pub/Sub channel
	PublishSwap(ctx context.Context, swap *models.SwapEvent) error

	// SubscribeSwaps subscribes to real-time swap events
	SubscribeSwaps(ctx context.Context) (<-chan *models.SwapEvent, error)

	// Ping checks if the cache is reachable
	Ping(ctx context.Context) error

	// Close closes the cache connection
	io.Closer
}

// SwapStore defines the interface for persistent swap storage
type SwapStore interface {
	// InsertSwap inserts a swap event into the store
	InsertSwap(ctx context.Context, swap *models.SwapEvent) error

	// Ping checks if the store is reachable
	Ping(ctx context.Context) error

	// Close closes the store connection
	io.Closer
}
