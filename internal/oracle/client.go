package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to the BirdEye public API for spot prices and OHLCV history.
type Client struct {
	BaseURL string
	APIKey  string
	Network string
	HTTP    *http.Client
}

func NewClient(baseURL, apiKey, network string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://public-api.birdeye.so"
	}
	network = strings.TrimSpace(network)
	if network == "" {
		network = "sui"
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  strings.TrimSpace(apiKey),
		Network: network,
		HTTP: &http.Client{
			Timeout: 12 * time.Second,
		},
	}
}

type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	b := strings.TrimSpace(string(e.Body))
	if b == "" {
		return fmt.Sprintf("birdeye http %d", e.StatusCode)
	}
	return fmt.Sprintf("birdeye http %d: %s", e.StatusCode, b)
}

// Price returns the spot price for an asset. ok is false when the oracle has
// no value for the asset; that is not an error.
func (c *Client) Price(ctx context.Context, assetID string) (float64, bool, error) {
	if strings.TrimSpace(assetID) == "" {
		return 0, false, fmt.Errorf("asset id is required")
	}

	q := url.Values{}
	q.Set("address", assetID)
	q.Set("include_liquidity", "false")
	q.Set("check_liquidity", "0")

	body, err := c.get(ctx, "/defi/price?"+q.Encode())
	if err != nil {
		return 0, false, err
	}

	var out priceResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, false, fmt.Errorf("failed to decode birdeye price response: %w", err)
	}
	if out.Data == nil || out.Data.Value == nil {
		return 0, false, nil
	}
	return *out.Data.Value, true, nil
}

// OHLCV returns time-ranged candle history for an asset. Consumed only for
// display by the chart collaborator.
func (c *Client) OHLCV(ctx context.Context, assetID, timeframe string, from, to time.Time) ([]Candle, error) {
	if strings.TrimSpace(assetID) == "" {
		return nil, fmt.Errorf("asset id is required")
	}
	if timeframe == "" {
		timeframe = "15m"
	}
	if !to.After(from) {
		return nil, fmt.Errorf("invalid time range: from must precede to")
	}

	q := url.Values{}
	q.Set("address", assetID)
	q.Set("type", timeframe)
	q.Set("time_from", strconv.FormatInt(from.Unix(), 10))
	q.Set("time_to", strconv.FormatInt(to.Unix(), 10))

	body, err := c.get(ctx, "/defi/ohlcv?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var out ohlcvResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode birdeye ohlcv response: %w", err)
	}
	return out.Data.Items, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("x-chain", c.Network)
	if c.APIKey != "" {
		req.Header.Set("X-API-KEY", c.APIKey)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: res.StatusCode, Body: body}
	}
	return body, nil
}
