package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aman-zulfiqar/sui-swap-engine/internal/deepbook"
	"github.com/sirupsen/logrus"
)

// Client fetches the tradeable pool list from the DeepBook indexer. The
// catalog is consumed read-only; pool discovery itself lives upstream.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	logger  *logrus.Logger
}

func NewClient(baseURL string, logger *logrus.Logger) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://deepbook-indexer.mainnet.mystenlabs.com"
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// Pools returns the validated pool list. Malformed entries are dropped rather
// than propagated into amount arithmetic.
func (c *Client) Pools(ctx context.Context) ([]deepbook.Pool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/get_pools", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pool catalog request failed: %w", err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pool catalog http %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var raw []deepbook.Pool
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unexpected pool catalog payload: %w", err)
	}

	pools := make([]deepbook.Pool, 0, len(raw))
	for _, p := range raw {
		if err := p.Validate(); err != nil {
			c.logger.WithError(err).WithField("pool_id", p.PoolID).Warn("dropping malformed pool entry")
			continue
		}
		pools = append(pools, p)
	}
	return pools, nil
}

// FindPool returns the catalog entry for a pool id.
func (c *Client) FindPool(ctx context.Context, poolID string) (*deepbook.Pool, error) {
	pools, err := c.Pools(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pools {
		if pools[i].PoolID == poolID {
			return &pools[i], nil
		}
	}
	return nil, fmt.Errorf("pool not found: %s", poolID)
}
