package constants

// Redis keys
const (
	RedisKeyRecentSwaps = "swaps:recent"
	RedisKeyPricePrefix = "price:"
)

// Redis Pub/Sub channels
const (
	PubSubChannelSwaps = "swaps:live"
)

// Limits
const (
	MaxRecentSwaps = 100
)
