package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Sui RPC settings
	SuiRPCURL string
	GasBudget uint64

	// Wallet settings
	WalletPrivateKey string

	// DeepBook settings
	DeepBookIndexerURL string

	// Price oracle settings
	BirdEyeBaseURL string
	BirdEyeAPIKey  string
	BirdEyeNetwork string

	// Redis settings
	RedisAddr string

	// ClickHouse settings
	ClickHouseAddr     string
	ClickHouseDatabase string
	ClickHouseUsername string
	ClickHousePassword string

	// HTTP client settings
	HTTPTimeout  time.Duration
	MaxRetries   int
	RetryBackoff time.Duration

	// API server settings
	APIAddr string
	APIKey  string
	DevMode bool

	// AI settings
	OpenRouterAPIKey string
}

func Load() *Config {
	return &Config{
		// Sui
		SuiRPCURL: getEnv("SUI_RPC_URL", "https://fullnode.mainnet.sui.io:443"),
		GasBudget: getUint64Env("GAS_BUDGET", 10_000_000),

		// Wallet
		WalletPrivateKey: getEnv("WALLET_PRIVATE_KEY", ""),

		// DeepBook
		DeepBookIndexerURL: getEnv("DEEPBOOK_INDEXER_URL", "https://deepbook-indexer.mainnet.mystenlabs.com"),

		// BirdEye
		BirdEyeBaseURL: getEnv("BIRDEYE_BASE_URL", "https://public-api.birdeye.so"),
		BirdEyeAPIKey:  getEnv("BIRDEYE_API_KEY", ""),
		BirdEyeNetwork: getEnv("BIRDEYE_NETWORK", "sui"),

		// Redis
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),

		// ClickHouse
		ClickHouseAddr:     getEnv("CLICKHOUSE_ADDR", "localhost:9000"),
		ClickHouseDatabase: getEnv("CLICKHOUSE_DATABASE", "sui"),
		ClickHouseUsername: getEnv("CLICKHOUSE_USERNAME", "default"),
		ClickHousePassword: getEnv("CLICKHOUSE_PASSWORD", ""),

		// HTTP
		HTTPTimeout:  getDurationEnv("HTTP_TIMEOUT", 30*time.Second),
		MaxRetries:   getIntEnv("MAX_RETRIES", 5),
		RetryBackoff: getDurationEnv("RETRY_BACKOFF", 2*time.Second),

		// API server
		APIAddr: getEnv("API_ADDR", ":8080"),
		APIKey:  getEnv("API_KEY", ""),
		DevMode: getBoolEnv("DEV_MODE", false),

		// AI
		OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
	}
}

// Validate checks the settings a swap-executing process cannot run without.
// Read-only processes (the API without execution) may skip it.
func (c *Config) Validate() error {
	if c.SuiRPCURL == "" {
		return fmt.Errorf("SUI_RPC_URL is required")
	}
	if c.WalletPrivateKey == "" {
		return fmt.Errorf("WALLET_PRIVATE_KEY is required")
	}
	if c.GasBudget == 0 {
		return fmt.Errorf("GAS_BUDGET must be positive")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getUint64Env(key string, defaultVal uint64) uint64 {
	if val := os.Getenv(key); val != "" {
		if u, err := strconv.ParseUint(val, 10, 64); err == nil {
			return u
		}
	}
	return defaultVal
}

func getBoolEnv(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
