package deepbook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPool() *Pool {
	return &Pool{
		PoolID:             "0xabc123",
		PoolName:           "SUI_USDC",
		BaseAssetID:        "0x2::sui::SUI",
		QuoteAssetID:       "0x5d::usdc::USDC",
		BaseAssetDecimals:  9,
		QuoteAssetDecimals: 6,
	}
}

func testQuote(p *Pool, dir Direction, amount string, out float64) *Quote {
	return &Quote{
		PoolID:       p.PoolID,
		Direction:    dir,
		InputAmount:  amount,
		EstimatedOut: out,
		Rate:         2.0,
		QuotedAt:     time.Now(),
	}
}

func testFunding() *Funding {
	return &Funding{InputCoinID: "0xcoin1", InputBalance: 10_000_000_000, FeeCoinID: "0xfee1"}
}

func TestDirection_ToggleIsInvolution(t *testing.T) {
	p := testPool()

	for _, dir := range []Direction{BaseToQuote, QuoteToBase} {
		back := dir.Toggle().Toggle()
		assert.Equal(t, dir, back)
		assert.Equal(t, dir.FromAsset(p), back.FromAsset(p))
		assert.Equal(t, dir.ToAsset(p), back.ToAsset(p))
	}

	assert.Equal(t, p.BaseAssetID, BaseToQuote.FromAsset(p))
	assert.Equal(t, p.QuoteAssetID, BaseToQuote.ToAsset(p))
	assert.Equal(t, p.QuoteAssetID, QuoteToBase.FromAsset(p))
	assert.Equal(t, p.BaseAssetID, QuoteToBase.ToAsset(p))
}

func TestDirection_Target(t *testing.T) {
	assert.Equal(t, "0xabc123::pool::swap_exact_base_for_quote", BaseToQuote.Target("0xabc123"))
	assert.Equal(t, "0xabc123::pool::swap_exact_quote_for_base", QuoteToBase.Target("0xabc123"))
}

func TestBuildOrder_ReferenceScenario(t *testing.T) {
	// base decimals 9, quote decimals 6, input 2.5 base, rate 2.0 -> out 5.0,
	// slippage 1% -> minOut floor(5.0*0.99*10^6).
	p := testPool()
	q := testQuote(p, BaseToQuote, "2.5", 5.0)

	order, err := BuildOrder(p, BaseToQuote, "2.5", 1, q, testFunding())
	require.NoError(t, err)

	assert.Equal(t, "0xabc123::pool::swap_exact_base_for_quote", order.Target)
	assert.Equal(t, uint64(2_500_000_000), order.AmountIn)
	assert.Equal(t, uint64(4_950_000), order.MinAmountOut)
	assert.Equal(t, [2]string{p.BaseAssetID, p.QuoteAssetID}, order.TypeArguments)
	assert.Equal(t, p.PoolID, order.PoolObject)
	assert.Equal(t, "0xcoin1", order.InputCoin)
	assert.Equal(t, "0xfee1", order.FeeCoin)
	assert.Equal(t, ClockObjectID, order.ClockObject)
}

func TestBuildOrder_TypeArgumentOrderIsDirectionIndependent(t *testing.T) {
	p := testPool()

	base, err := BuildOrder(p, BaseToQuote, "2.5", 1, testQuote(p, BaseToQuote, "2.5", 5.0), testFunding())
	require.NoError(t, err)

	quote, err := BuildOrder(p, QuoteToBase, "5", 1, testQuote(p, QuoteToBase, "5", 2.5), testFunding())
	require.NoError(t, err)

	// Direction is encoded only in the target; type args stay [base, quote].
	assert.Equal(t, base.TypeArguments, quote.TypeArguments)
	assert.NotEqual(t, base.Target, quote.Target)

	// Input decimals follow the "from" asset: 5 quote units at 6 decimals.
	assert.Equal(t, uint64(5_000_000), quote.AmountIn)
	// Output decimals follow the "to" asset: 2.5 base units at 9 decimals.
	assert.Equal(t, uint64(2_475_000_000), quote.MinAmountOut)
}

func TestBuildOrder_Rejections(t *testing.T) {
	p := testPool()
	q := testQuote(p, BaseToQuote, "2.5", 5.0)
	f := testFunding()

	_, err := BuildOrder(p, BaseToQuote, "abc", 1, q, f)
	assert.Error(t, err, "non-numeric amount")

	_, err = BuildOrder(p, BaseToQuote, "0", 1, testQuote(p, BaseToQuote, "0", 0), f)
	assert.Error(t, err, "zero amount")

	_, err = BuildOrder(p, BaseToQuote, "2.5", 150, q, f)
	assert.Error(t, err, "slippage out of range")

	_, err = BuildOrder(p, BaseToQuote, "2.5", 1, nil, f)
	assert.Error(t, err, "missing quote")

	// Quote produced for a different amount is stale.
	_, err = BuildOrder(p, BaseToQuote, "3.0", 1, q, f)
	assert.Error(t, err, "stale quote")

	// Quote produced for the other direction is stale too.
	_, err = BuildOrder(p, QuoteToBase, "2.5", 1, q, f)
	assert.Error(t, err, "direction mismatch")

	_, err = BuildOrder(p, BaseToQuote, "2.5", 1, q, nil)
	assert.Error(t, err, "missing funding")
}

func TestPool_Validate(t *testing.T) {
	p := testPool()
	require.NoError(t, p.Validate())

	bad := *p
	bad.PoolID = ""
	assert.Error(t, bad.Validate())

	bad = *p
	bad.BaseAssetID = ""
	assert.Error(t, bad.Validate())

	bad = *p
	bad.QuoteAssetDecimals = -1
	assert.Error(t, bad.Validate())
}
