package swapengine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/aman-zulfiqar/sui-swap-engine/internal/deepbook"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/models"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/storage"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/wallet"
	"github.com/sirupsen/logrus"
)

// Submitter signs and broadcasts a built order. Implemented by the wallet.
type Submitter interface {
	SignAndExecute(ctx context.Context, order *deepbook.Order) (*wallet.Receipt, error)
}

// Executor runs one swap attempt end to end:
// funding selection → order build → sign-and-execute → receipt.
type Executor struct {
	coins     CoinLister
	submitter Submitter
	cache     storage.SwapCache
	store     storage.SwapStore
	logger    *logrus.Logger
}

func NewExecutor(coins CoinLister, submitter Submitter, cache storage.SwapCache, store storage.SwapStore, logger *logrus.Logger) *Executor {
	if logger == nil {
		logger = logrus.New()
	}
	return &Executor{
		coins:     coins,
		submitter: submitter,
		cache:     cache,
		store:     store,
		logger:    logger,
	}
}

// Execute performs the attempt described by intent against the given quote.
// Every failure is terminal for the attempt; nothing partial survives.
func (ex *Executor) Execute(ctx context.Context, intent *SwapIntent, quote *deepbook.Quote) (*SwapResult, error) {
	start := time.Now()

	if err := intent.Validate(); err != nil {
		return failed(quote, start, err), err
	}

	pool := intent.Pool
	requiredAtomic, err := deepbook.ToAtomic(intent.Amount, intent.Direction.FromDecimals(pool))
	if err != nil {
		return failed(quote, start, err), err
	}

	funding, err := SelectFunding(ctx, ex.coins, intent.Direction.FromAsset(pool), deepbook.FeeCoinType, requiredAtomic)
	if err != nil {
		return failed(quote, start, err), err
	}

	if funding.InputBalance < requiredAtomic {
		ex.logger.WithFields(logrus.Fields{
			"pool":     pool.PoolID,
			"balance":  funding.InputBalance,
			"required": requiredAtomic,
		}).Warn("selected funding object does not cover the full input amount")
	}

	order, err := deepbook.BuildOrder(pool, intent.Direction, intent.Amount, intent.SlippagePct, quote, funding)
	if err != nil {
		return failed(quote, start, err), err
	}

	receipt, err := ex.submitter.SignAndExecute(ctx, order)
	if err != nil {
		res := failed(quote, start, err)
		res.Order = order
		return res, err
	}

	ex.record(ctx, intent, quote, order, receipt)

	return &SwapResult{
		Digest:   receipt.Digest,
		Success:  true,
		Quote:    quote,
		Order:    order,
		Duration: time.Since(start),
	}, nil
}

// record persists the executed swap to the cache and history store,
// best-effort.
func (ex *Executor) record(ctx context.Context, intent *SwapIntent, quote *deepbook.Quote, order *deepbook.Order, receipt *wallet.Receipt) {
	amountRat, err := deepbook.ParseAmount(intent.Amount)
	if err != nil {
		return
	}
	amountIn, _ := amountRat.Float64()

	// MinAmountOut is atomic; scale back to display units like the other
	// amounts in the event.
	minOut := float64(order.MinAmountOut) / math.Pow10(intent.Direction.ToDecimals(intent.Pool))

	ev := &models.SwapEvent{
		Digest:    receipt.Digest,
		Timestamp: receipt.Timestamp,
		Pair:      intent.Pool.PoolName,
		AssetIn:   intent.Direction.FromAsset(intent.Pool),
		AssetOut:  intent.Direction.ToAsset(intent.Pool),
		AmountIn:  amountIn,
		AmountOut: quote.EstimatedOut,
		Price:     quote.Rate,
		MinOut:    minOut,
		Pool:      intent.Pool.PoolID,
		Venue:     "DeepBook",
	}

	if ex.cache != nil {
		if err := ex.cache.AddRecentSwap(ctx, ev); err != nil {
			ex.logger.WithError(err).Warn("failed to cache swap event")
		}
		if err := ex.cache.PublishSwap(ctx, ev); err != nil {
			ex.logger.WithError(err).Warn("failed to publish swap event")
		}
	}
	if ex.store != nil {
		if err := ex.store.InsertSwap(ctx, ev); err != nil {
			ex.logger.WithError(err).Warn("failed to persist swap event")
		}
	}
}

func failed(quote *deepbook.Quote, start time.Time, err error) *SwapResult {
	return &SwapResult{
		Success:  false,
		Error:    fmt.Sprintf("%v", err),
		Quote:    quote,
		Duration: time.Since(start),
	}
}
