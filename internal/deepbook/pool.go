package deepbook

import "fmt"

// Pool describes a DeepBook trading venue as served by the indexer.
// Decimals are fixed per asset for the lifetime of the pool.
type Pool struct {
	PoolID             string `json:"pool_id"`
	PoolName           string `json:"pool_name"`
	BaseAssetID        string `json:"base_asset_id"`
	QuoteAssetID       string `json:"quote_asset_id"`
	BaseAssetDecimals  int    `json:"base_asset_decimals"`
	QuoteAssetDecimals int    `json:"quote_asset_decimals"`
}

// Validate rejects malformed catalog entries before they reach any arithmetic.
func (p *Pool) Validate() error {
	if p.PoolID == "" {
		return fmt.Errorf("pool_id is required")
	}
	if p.BaseAssetID == "" || p.QuoteAssetID == "" {
		return fmt.Errorf("pool %s: base and quote asset ids are required", p.PoolID)
	}
	if p.BaseAssetDecimals < 0 || p.QuoteAssetDecimals < 0 {
		return fmt.Errorf("pool %s: decimals must be >= 0", p.PoolID)
	}
	return nil
}

// Direction encodes which way a swap converts the pool's pair.
type Direction string

const (
	BaseToQuote Direction = "baseToQuote"
	QuoteToBase Direction = "quoteToBase"
)

// Valid reports whether d is one of the two known directions.
func (d Direction) Valid() bool {
	return d == BaseToQuote || d == QuoteToBase
}

// Toggle flips the direction. Toggling twice is the identity.
func (d Direction) Toggle() Direction {
	if d == BaseToQuote {
		return QuoteToBase
	}
	return BaseToQuote
}

// FromAsset returns the asset being sold for this direction.
func (d Direction) FromAsset(p *Pool) string {
	if d == BaseToQuote {
		return p.BaseAssetID
	}
	return p.QuoteAssetID
}

// ToAsset returns the asset being bought for this direction.
func (d Direction) ToAsset(p *Pool) string {
	if d == BaseToQuote {
		return p.QuoteAssetID
	}
	return p.BaseAssetID
}

// FromDecimals returns the decimals of the input asset for this direction.
func (d Direction) FromDecimals(p *Pool) int {
	if d == BaseToQuote {
		return p.BaseAssetDecimals
	}
	return p.QuoteAssetDecimals
}

// ToDecimals returns the decimals of the output asset for this direction.
func (d Direction) ToDecimals(p *Pool) int {
	if d == BaseToQuote {
		return p.QuoteAssetDecimals
	}
	return p.BaseAssetDecimals
}

// Target derives the Move call target for this direction. Direction is encoded
// only in the function name; type arguments stay [base, quote] either way.
func (d Direction) Target(poolID string) string {
	if d == BaseToQuote {
		return fmt.Sprintf("%s::pool::swap_exact_base_for_quote", poolID)
	}
	return fmt.Sprintf("%s::pool::swap_exact_quote_for_base", poolID)
}
