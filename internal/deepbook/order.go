package deepbook

import (
	"time"
)

// DeepBook protocol constants.
const (
	// ClockObjectID is the shared on-chain clock every swap call references
	// for time-bounded execution.
	ClockObjectID = "0x6"

	// FeeCoinType is the DEEP token used to pay protocol fees.
	FeeCoinType = "0xf4f3d60d5b8e88b3a0f72b2d8b5c1a73de73c45a"

	// FeeAmount is the fixed protocol fee in atomic DEEP units. Not
	// user-configurable.
	FeeAmount = uint64(10000)
)

// Quote is an ephemeral output estimate. It is only valid for the exact
// (pool, direction, input amount) triple that produced it.
type Quote struct {
	PoolID       string    `json:"pool_id"`
	Direction    Direction `json:"direction"`
	InputAmount  string    `json:"input_amount"`
	EstimatedOut float64   `json:"estimated_out"`
	Rate         float64   `json:"rate"`
	QuotedAt     time.Time `json:"quoted_at"`
}

// Matches reports whether the quote was produced for the given triple.
func (q *Quote) Matches(pool *Pool, dir Direction, amount string) bool {
	return q != nil && pool != nil &&
		q.PoolID == pool.PoolID &&
		q.Direction == dir &&
		q.InputAmount == amount
}

// Funding references the owned coin objects that supply the swap input and
// the protocol fee. Both must belong to the connected account.
type Funding struct {
	InputCoinID  string `json:"input_coin_id"`
	InputBalance uint64 `json:"input_balance"`
	FeeCoinID    string `json:"fee_coin_id"`
}

// Order is the final immutable swap instruction. Type arguments are always
// [base, quote]; direction lives only in the target function name.
type Order struct {
	Target        string    `json:"target"`
	TypeArguments [2]string `json:"type_arguments"`
	PoolObject    string    `json:"pool_object"`
	InputCoin     string    `json:"input_coin"`
	FeeCoin       string    `json:"fee_coin"`
	AmountIn      uint64    `json:"amount_in"`
	MinAmountOut  uint64    `json:"min_amount_out"`
	ClockObject   string    `json:"clock_object"`
}

// BuildOrder assembles a validated, slippage-protected swap order.
//
// The atomic input amount uses the decimals of the direction's "from" asset,
// the minimum output those of the "to" asset. A quote that does not match the
// current (pool, direction, amount) triple is stale and rejected.
func BuildOrder(pool *Pool, dir Direction, amount string, slippagePct float64, quote *Quote, funding *Funding) (*Order, error) {
	if pool == nil {
		return nil, &ValidationError{Field: "pool", Reason: "required"}
	}
	if !dir.Valid() {
		return nil, &ValidationError{Field: "direction", Reason: "must be baseToQuote or quoteToBase"}
	}
	if err := ValidateSlippage(slippagePct); err != nil {
		return nil, err
	}
	if !quote.Matches(pool, dir, amount) {
		return nil, &ValidationError{Field: "quote", Reason: "missing or stale for the current pool/direction/amount"}
	}
	if funding == nil || funding.InputCoinID == "" || funding.FeeCoinID == "" {
		return nil, &ValidationError{Field: "funding", Reason: "input and fee coin objects are required"}
	}

	amountIn, err := ToAtomic(amount, dir.FromDecimals(pool))
	if err != nil {
		return nil, err
	}
	if amountIn == 0 {
		return nil, &ValidationError{Field: "amount", Reason: "rounds to zero atomic units"}
	}

	minOut, err := MinOutput(quote.EstimatedOut, slippagePct, dir.ToDecimals(pool))
	if err != nil {
		return nil, err
	}

	return &Order{
		Target:        dir.Target(pool.PoolID),
		TypeArguments: [2]string{pool.BaseAssetID, pool.QuoteAssetID},
		PoolObject:    pool.PoolID,
		InputCoin:     funding.InputCoinID,
		FeeCoin:       funding.FeeCoinID,
		AmountIn:      amountIn,
		MinAmountOut:  minOut,
		ClockObject:   ClockObjectID,
	}, nil
}
