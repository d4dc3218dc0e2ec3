package swapengine

import (
	"context"
	"fmt"
	"time"

	"github.com/aman-zulfiqar/sui-swap-engine/internal/cache"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/catalog"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/config"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/deepbook"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/oracle"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/storage"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/wallet"
	"github.com/sirupsen/logrus"
)

// Engine is the main orchestrator for swap operations.
type Engine struct {
	catalog  *catalog.Client
	quotes   *QuoteEngine
	wallet   *wallet.Wallet
	executor *Executor
	session  *Session
	cache    *cache.RedisCache
	history  *cache.ClickHouseStore
	logger   *logrus.Logger
}

// NewEngine wires all collaborators from configuration. Redis and ClickHouse
// are optional; when absent, executed swaps simply are not recorded.
func NewEngine(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Engine, error) {
	if logger == nil {
		logger = logrus.New()
	}

	w, err := wallet.NewWallet(wallet.Config{
		RPCURL:       cfg.SuiRPCURL,
		PrivateKey:   cfg.WalletPrivateKey,
		GasBudget:    cfg.GasBudget,
		Timeout:      cfg.HTTPTimeout,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	var redisCache *cache.RedisCache
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.RedisAddr, Logger: logger})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		redisCache = rc
	}

	var history *cache.ClickHouseStore
	if cfg.ClickHouseAddr != "" && cfg.ClickHouseDatabase != "" {
		ch, err := cache.NewClickHouseStore(ctx, cache.ClickHouseConfig{
			Addr:     cfg.ClickHouseAddr,
			Database: cfg.ClickHouseDatabase,
			Username: cfg.ClickHouseUsername,
			Password: cfg.ClickHousePassword,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
		}
		history = ch
	}

	oracleClient := oracle.NewClient(cfg.BirdEyeBaseURL, cfg.BirdEyeAPIKey, cfg.BirdEyeNetwork)

	// Avoid typed-nil interfaces reaching the executor's nil checks.
	var swapCache storage.SwapCache
	if redisCache != nil {
		swapCache = redisCache
	}
	var swapStore storage.SwapStore
	if history != nil {
		swapStore = history
	}

	return &Engine{
		catalog:  catalog.NewClient(cfg.DeepBookIndexerURL, logger),
		quotes:   NewQuoteEngine(oracleClient, logger),
		wallet:   w,
		executor: NewExecutor(w, w, swapCache, swapStore, logger),
		session:  NewSession(),
		cache:    redisCache,
		history:  history,
		logger:   logger,
	}, nil
}

// Pools returns the tradeable pool catalog.
func (e *Engine) Pools(ctx context.Context) ([]deepbook.Pool, error) {
	return e.catalog.Pools(ctx)
}

// FindPool resolves a pool id against the catalog.
func (e *Engine) FindPool(ctx context.Context, poolID string) (*deepbook.Pool, error) {
	return e.catalog.FindPool(ctx, poolID)
}

// GetQuote runs the quoting phase for an intent and applies the result to
// the session under its generation token.
func (e *Engine) GetQuote(ctx context.Context, intent *SwapIntent) (*deepbook.Quote, error) {
	if err := intent.Validate(); err != nil {
		return nil, err
	}

	gen, err := e.session.Edit(intent)
	if err != nil {
		return nil, err
	}

	quote, qerr := e.quotes.Quote(ctx, intent.Pool, intent.Direction, intent.Amount)
	if !e.session.ApplyQuote(gen, quote, qerr) {
		// Superseded while the lookup was outstanding.
		return nil, ErrNoQuote
	}
	if qerr != nil {
		return nil, qerr
	}
	return quote, nil
}

// ExecuteSwap quotes (if needed) and runs the attempt to completion.
func (e *Engine) ExecuteSwap(ctx context.Context, intent *SwapIntent) (*SwapResult, error) {
	if _, err := e.GetQuote(ctx, intent); err != nil {
		return nil, err
	}

	current, quote, err := e.session.BeginAttempt()
	if err != nil {
		return nil, err
	}

	e.session.MarkSubmitted()
	result, err := e.executor.Execute(ctx, current, quote)
	e.session.Finish(err)
	e.session.Reset()

	if err != nil {
		return result, fmt.Errorf("execution failed: %w", err)
	}
	return result, nil
}

// WalletAddress returns the connected account's address.
func (e *Engine) WalletAddress() string {
	return e.wallet.Address()
}

// Session exposes the attempt state machine, mainly for status surfaces.
func (e *Engine) Session() *Session {
	return e.session
}

// Close releases cache and store connections.
func (e *Engine) Close() error {
	var errs []error
	if e.cache != nil {
		if err := e.cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}
	if e.history != nil {
		if err := e.history.Close(); err != nil {
			errs = append(errs, fmt.Errorf("clickhouse close: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// QuoteWithTimeout is a convenience wrapper bounding the quoting phase.
func (e *Engine) QuoteWithTimeout(ctx context.Context, intent *SwapIntent, d time.Duration) (*deepbook.Quote, error) {
	if d <= 0 {
		d = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	return e.GetQuote(ctx, intent)
}
