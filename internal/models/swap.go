package models

import "time"

// SwapEvent is one executed swap, as cached and persisted for the history
// and analytics surfaces.
type SwapEvent struct {
	Digest    string    `json:"digest"`
	Timestamp time.Time `json:"timestamp"`
	Pair      string    `json:"pair"`
	AssetIn   string    `json:"asset_in"`
	AssetOut  string    `json:"asset_out"`
	AmountIn  float64   `json:"amount_in"`
	AmountOut float64   `json:"amount_out"`
	Price     float64   `json:"price"`
	MinOut    float64   `json:"min_out"`
	Pool      string    `json:"pool"`
	Venue     string    `json:"venue"` // e.g. "DeepBook"
}
