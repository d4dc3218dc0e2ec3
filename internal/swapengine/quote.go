package swapengine

import (
	"context"
	"time"

	"github.com/aman-zulfiqar/sui-swap-engine/internal/deepbook"
	"github.com/sirupsen/logrus"
)

// PriceSource is the oracle collaborator. ok is false when no price exists
// for the asset.
type PriceSource interface {
	Price(ctx context.Context, assetID string) (price float64, ok bool, err error)
}

// QuoteEngine estimates swap output from two spot prices. It is a pure
// value producer: results are returned to the caller, never applied to
// shared state, so superseded requests can simply be dropped.
type QuoteEngine struct {
	oracle PriceSource
	logger *logrus.Logger
}

func NewQuoteEngine(oracle PriceSource, logger *logrus.Logger) *QuoteEngine {
	if logger == nil {
		logger = logrus.New()
	}
	return &QuoteEngine{oracle: oracle, logger: logger}
}

type priceResult struct {
	price float64
	ok    bool
	err   error
}

// Quote produces an output estimate for (pool, direction, amount).
//
// A malformed or non-positive amount fails validation before any network
// call. The two price lookups run concurrently and are joined; if either
// price is unavailable the result is ErrNoQuote.
func (e *QuoteEngine) Quote(ctx context.Context, pool *deepbook.Pool, dir deepbook.Direction, amount string) (*deepbook.Quote, error) {
	if pool == nil {
		return nil, &deepbook.ValidationError{Field: "pool", Reason: "required"}
	}
	if !dir.Valid() {
		return nil, &deepbook.ValidationError{Field: "direction", Reason: "must be baseToQuote or quoteToBase"}
	}

	amountRat, err := deepbook.ParseAmount(amount)
	if err != nil {
		return nil, err
	}
	amountFloat, _ := amountRat.Float64()

	fromAsset := dir.FromAsset(pool)
	toAsset := dir.ToAsset(pool)

	fromCh := make(chan priceResult, 1)
	toCh := make(chan priceResult, 1)

	go func() {
		p, ok, err := e.oracle.Price(ctx, fromAsset)
		fromCh <- priceResult{price: p, ok: ok, err: err}
	}()
	go func() {
		p, ok, err := e.oracle.Price(ctx, toAsset)
		toCh <- priceResult{price: p, ok: ok, err: err}
	}()

	from := <-fromCh
	to := <-toCh

	if from.err != nil || to.err != nil {
		e.logger.WithFields(logrus.Fields{
			"pool":      pool.PoolID,
			"direction": dir,
		}).WithError(firstErr(from.err, to.err)).Debug("price lookup failed")
		return nil, ErrNoQuote
	}
	if !from.ok || !to.ok || from.price <= 0 || to.price <= 0 {
		return nil, ErrNoQuote
	}

	rate := from.price / to.price

	return &deepbook.Quote{
		PoolID:       pool.PoolID,
		Direction:    dir,
		InputAmount:  amount,
		EstimatedOut: amountFloat * rate,
		Rate:         rate,
		QuotedAt:     time.Now().UTC(),
	}, nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
