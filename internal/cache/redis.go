package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aman-zulfiqar/sui-swap-engine/internal/constants"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Addr   string
	DB     int
	Logger *logrus.Logger
}

// RedisCache keeps the recent-swap list, cached prices and the live swap
// Pub/Sub channel.
type RedisCache struct {
	client *redis.Client
	logger *logrus.Logger
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewRedisCacheFromClient(client, cfg.Logger), nil
}

// NewRedisCacheFromClient wraps an existing client (shared with other
// stores in the same process).
func NewRedisCacheFromClient(client *redis.Client, logger *logrus.Logger) *RedisCache {
	if logger == nil {
		logger = logrus.New()
	}
	return &RedisCache{client: client, logger: logger}
}

// AddRecentSwap pushes a swap onto the capped recent list.
func (r *RedisCache) AddRecentSwap(ctx context.Context, swap *models.SwapEvent) error {
	data, err := json.Marshal(swap)
	if err != nil {
		return fmt.Errorf("marshal swap: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, constants.RedisKeyRecentSwaps, data)
	pipe.LTrim(ctx, constants.RedisKeyRecentSwaps, 0, constants.MaxRecentSwaps-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("add recent swap: %w", err)
	}
	return nil
}

// GetRecentSwaps returns up to limit most recent swaps, newest first.
func (r *RedisCache) GetRecentSwaps(ctx context.Context, limit int64) ([]*models.SwapEvent, error) {
	if limit <= 0 || limit > constants.MaxRecentSwaps {
		limit = constants.MaxRecentSwaps
	}

	vals, err := r.client.LRange(ctx, constants.RedisKeyRecentSwaps, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("get recent swaps: %w", err)
	}

	out := make([]*models.SwapEvent, 0, len(vals))
	for _, v := range vals {
		var ev models.SwapEvent
		if err := json.Unmarshal([]byte(v), &ev); err != nil {
			r.logger.WithError(err).Warn("skipping unreadable cached swap")
			continue
		}
		out = append(out, &ev)
	}
	return out, nil
}

// UpdatePrice caches the latest spot price for an asset.
func (r *RedisCache) UpdatePrice(ctx context.Context, asset string, price float64) error {
	if err := r.client.Set(ctx, constants.RedisKeyPricePrefix+asset, price, 0).Err(); err != nil {
		return fmt.Errorf("update price: %w", err)
	}
	return nil
}

// GetPrice returns the cached spot price for an asset.
func (r *RedisCache) GetPrice(ctx context.Context, asset string) (float64, error) {
	v, err := r.client.Get(ctx, constants.RedisKeyPricePrefix+asset).Float64()
	if err == redis.Nil {
		return 0, fmt.Errorf("no cached price for %s", asset)
	}
	if err != nil {
		return 0, fmt.Errorf("get price: %w", err)
	}
	return v, nil
}

// PublishSwap publishes a swap event on the live channel.
func (r *RedisCache) PublishSwap(ctx context.Context, swap *models.SwapEvent) error {
	data, err := json.Marshal(swap)
	if err != nil {
		return fmt.Errorf("marshal swap: %w", err)
	}
	if err := r.client.Publish(ctx, constants.PubSubChannelSwaps, data).Err(); err != nil {
		return fmt.Errorf("publish swap: %w", err)
	}
	return nil
}

// SubscribeSwaps streams live swap events until the context is canceled.
func (r *RedisCache) SubscribeSwaps(ctx context.Context) (<-chan *models.SwapEvent, error) {
	pubsub := r.client.Subscribe(ctx, constants.PubSubChannelSwaps)

	// Fail fast if the subscription could not be established.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe swaps: %w", err)
	}

	out := make(chan *models.SwapEvent)
	go func() {
		defer close(out)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev models.SwapEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					r.logger.WithError(err).Warn("skipping unreadable swap message")
					continue
				}
				select {
				case out <- &ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Ping checks the connection.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
