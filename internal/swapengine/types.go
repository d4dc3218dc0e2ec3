package swapengine

import (
	"errors"
	"fmt"
	"time"

	"github.com/aman-zulfiqar/sui-swap-engine/internal/deepbook"
)

// ErrNoQuote means the oracle had no price or the lookup failed. The caller
// clears the displayed estimate; a zero or stale rate is never substituted.
var ErrNoQuote = errors.New("no quote available")

// ErrAttemptInFlight means a swap attempt is already in its Building or
// Submitted phase; it must run to completion before a new one starts.
var ErrAttemptInFlight = errors.New("swap attempt already in flight")

// InsufficientFundsError means the account owns no usable object of the
// required asset type. Surfaced before any signing request.
type InsufficientFundsError struct {
	AssetType string
	Fee       bool
}

func (e *InsufficientFundsError) Error() string {
	if e.Fee {
		return fmt.Sprintf("no fee coins of type %s available", e.AssetType)
	}
	return fmt.Sprintf("no coins of type %s available", e.AssetType)
}

// SwapIntent captures the user's current inputs. It is recreated on every
// relevant change and superseded, never mutated.
type SwapIntent struct {
	Pool        *deepbook.Pool
	Direction   deepbook.Direction
	Amount      string // human-entered decimal string
	SlippagePct float64
	RequestedAt time.Time
}

// Validate checks the intent's static fields. Amount parsing happens in the
// quote and order paths, which own the ValidationError semantics.
func (i *SwapIntent) Validate() error {
	if i == nil || i.Pool == nil {
		return &deepbook.ValidationError{Field: "pool", Reason: "required"}
	}
	if err := i.Pool.Validate(); err != nil {
		return err
	}
	if !i.Direction.Valid() {
		return &deepbook.ValidationError{Field: "direction", Reason: "must be baseToQuote or quoteToBase"}
	}
	return deepbook.ValidateSlippage(i.SlippagePct)
}

// SwapResult is the final outcome of one attempt.
type SwapResult struct {
	Digest   string
	Success  bool
	Error    string
	Quote    *deepbook.Quote
	Order    *deepbook.Order
	Duration time.Duration
}
