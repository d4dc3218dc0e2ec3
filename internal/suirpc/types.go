package suirpc

import (
	"fmt"
	"strconv"
)

// RPCError represents a JSON-RPC error response
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Coin is an owned coin object as reported by suix_getCoins.
type Coin struct {
	CoinType     string `json:"coinType"`
	CoinObjectID string `json:"coinObjectId"`
	Version      string `json:"version"`
	Digest       string `json:"digest"`
	Balance      string `json:"balance"`
}

// BalanceUint64 parses the coin balance; malformed balances count as zero so
// a single bad object cannot block funding selection.
func (c *Coin) BalanceUint64() uint64 {
	n, err := strconv.ParseUint(c.Balance, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// CoinPage is one page of a suix_getCoins result.
type CoinPage struct {
	Data        []Coin  `json:"data"`
	HasNextPage bool    `json:"hasNextPage"`
	NextCursor  *string `json:"nextCursor"`
}

// MoveCallParams are the inputs to unsafe_moveCall.
type MoveCallParams struct {
	Signer          string
	PackageObjectID string
	Module          string
	Function        string
	TypeArguments   []string
	Arguments       []interface{}
	Gas             *string // nil lets the node pick a gas object
	GasBudget       string
}

// TransactionBytes is the node-assembled transaction, base64 encoded.
type TransactionBytes struct {
	TxBytes string `json:"txBytes"`
}

// ExecuteResult is the relevant subset of a transaction block response.
type ExecuteResult struct {
	Digest  string   `json:"digest"`
	Effects *Effects `json:"effects"`
}

// Effects carries the execution status of a transaction block.
type Effects struct {
	Status ExecutionStatus `json:"status"`
}

type ExecutionStatus struct {
	Status string `json:"status"` // "success" | "failure"
	Error  string `json:"error,omitempty"`
}

func (s ExecutionStatus) Succeeded() bool {
	return s.Status == "success"
}
