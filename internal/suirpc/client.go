package suirpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Client is an HTTP client with retry and timeout support for Sui fullnode RPC
type Client struct {
	httpClient   *http.Client
	baseURL      string
	maxRetries   int
	retryBackoff time.Duration
	logger       *logrus.Logger
}

// ClientConfig holds configuration for the RPC client
type ClientConfig struct {
	BaseURL      string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	Logger       *logrus.Logger
}

// NewClient creates a new RPC client with retry support
func NewClient(cfg ClientConfig) *Client {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL:      cfg.BaseURL,
		maxRetries:   cfg.MaxRetries,
		retryBackoff: cfg.RetryBackoff,
		logger:       cfg.Logger,
	}
}

// Call makes a JSON-RPC call with retry logic
func (c *Client) Call(ctx context.Context, method string, params interface{}, result interface{}) error {
	body := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	}

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	backoff := c.retryBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.WithFields(logrus.Fields{
				"attempt": attempt,
				"backoff": backoff,
				"method":  method,
			}).Debug("retrying RPC call")

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2 // exponential backoff
		}

		resp, err := c.doRequest(ctx, data)
		if err != nil {
			lastErr = err
			continue
		}

		if err := json.Unmarshal(resp, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}

		return nil
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *Client) doRequest(ctx context.Context, data []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("rate limited (429)")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return body, nil
}

// GetCoins enumerates coin objects of the given type owned by an address.
// Pages through suix_getCoins until the node reports no further pages.
func (c *Client) GetCoins(ctx context.Context, owner, coinType string) ([]Coin, error) {
	var (
		coins  []Coin
		cursor *string
	)

	for {
		var resp struct {
			Result *CoinPage `json:"result"`
			Error  *RPCError `json:"error"`
		}

		params := []interface{}{owner, coinType, cursor, nil}
		if err := c.Call(ctx, "suix_getCoins", params, &resp); err != nil {
			return nil, err
		}
		if resp.Error != nil {
			return nil, resp.Error
		}
		if resp.Result == nil {
			return nil, fmt.Errorf("suix_getCoins returned no result")
		}

		coins = append(coins, resp.Result.Data...)
		if !resp.Result.HasNextPage || resp.Result.NextCursor == nil {
			return coins, nil
		}
		cursor = resp.Result.NextCursor
	}
}

// MoveCall asks the node to assemble transaction bytes for a single Move call
// (unsafe_moveCall). The caller signs and submits the returned bytes.
func (c *Client) MoveCall(ctx context.Context, p MoveCallParams) (*TransactionBytes, error) {
	var resp struct {
		Result *TransactionBytes `json:"result"`
		Error  *RPCError         `json:"error"`
	}

	params := []interface{}{
		p.Signer,
		p.PackageObjectID,
		p.Module,
		p.Function,
		p.TypeArguments,
		p.Arguments,
		p.Gas,
		p.GasBudget,
	}
	if err := c.Call(ctx, "unsafe_moveCall", params, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	if resp.Result == nil || resp.Result.TxBytes == "" {
		return nil, fmt.Errorf("unsafe_moveCall returned no transaction bytes")
	}
	return resp.Result, nil
}

// ExecuteTransactionBlock submits a signed transaction and waits for effects.
func (c *Client) ExecuteTransactionBlock(ctx context.Context, txBytesB64 string, signatures []string) (*ExecuteResult, error) {
	var resp struct {
		Result *ExecuteResult `json:"result"`
		Error  *RPCError      `json:"error"`
	}

	params := []interface{}{
		txBytesB64,
		signatures,
		map[string]interface{}{"showEffects": true},
		"WaitForLocalExecution",
	}
	if err := c.Call(ctx, "sui_executeTransactionBlock", params, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	if resp.Result == nil {
		return nil, fmt.Errorf("sui_executeTransactionBlock returned no result")
	}
	return resp.Result, nil
}
