package server

import (
	"time"

	"github.com/aman-zulfiqar/sui-swap-engine/internal/deepbook"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/oracle"
)

// ErrorResponse represents a standardized error response format
type ErrorResponse struct {
	Error   string `json:"error"`             // Human-readable error message
	Code    int    `json:"code"`              // HTTP status code
	Details any    `json:"details,omitempty"` // Additional error details (dev mode only)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	OK bool `json:"ok"` // Service health status
}

// PoolsResponse lists the tradeable pools from the catalog
type PoolsResponse struct {
	Items []deepbook.Pool `json:"items"`
}

// PriceResponse represents asset price information
type PriceResponse struct {
	Asset string  `json:"asset"` // Asset coin type
	Price float64 `json:"price"` // Current spot price
}

// QuoteResponse is a priced swap estimate plus the order parameters that a
// submission with these inputs would carry
type QuoteResponse struct {
	PoolID        string    `json:"pool_id"`
	Direction     string    `json:"direction"`
	AmountIn      string    `json:"amount_in"`       // Display units, as requested
	AmountInRaw   uint64    `json:"amount_in_raw"`   // Atomic units of the input asset
	EstimatedOut  float64   `json:"estimated_out"`   // Display units of the output asset
	MinOutRaw     uint64    `json:"min_out_raw"`     // Atomic slippage-protected minimum
	Rate          float64   `json:"rate"`            // Output per unit of input
	SlippagePct   float64   `json:"slippage_pct"`    // Tolerance the minimum was derived from
	Target        string    `json:"target"`          // Move call target for this pool and direction
	TypeArguments [2]string `json:"type_arguments"`  // Always [base, quote]
	QuotedAt      time.Time `json:"quoted_at"`
}

// OHLCVResponse carries candle data for an asset
type OHLCVResponse struct {
	Asset     string          `json:"asset"`
	Timeframe string          `json:"timeframe"`
	Items     []oracle.Candle `json:"items"`
}

// AIAskRequest represents a natural language query request
type AIAskRequest struct {
	Question string `json:"question"` // Natural language question about swap data
	Model    string `json:"model"`    // Optional AI model override
}

// AIAskResponse represents the response from an AI query
type AIAskResponse struct {
	SQL    string `json:"sql"`     // Generated SQL query
	Answer string `json:"answer"`  // Natural language answer
	TookMs int64  `json:"took_ms"` // Execution time in milliseconds
}
