package cache

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/models"
)

// ClickHouseConfig holds ClickHouse connection settings
type ClickHouseConfig struct {
	Addr     string
	Database string
	Username string
	Password string
}

// ClickHouseStore persists executed swaps for history and analytics.
type ClickHouseStore struct {
	conn driver.Conn
}

func NewClickHouseStore(ctx context.Context, cfg ClickHouseConfig) (*ClickHouseStore, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.Addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &ClickHouseStore{conn: conn}, nil
}

// InsertSwap writes one executed swap into the swaps table.
func (c *ClickHouseStore) InsertSwap(ctx context.Context, swap *models.SwapEvent) error {
	query := `
		INSERT INTO swaps (
			digest, timestamp, pair, asset_in, asset_out,
			amount_in, amount_out, price, min_out, pool, venue
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	err := c.conn.Exec(ctx, query,
		swap.Digest,
		swap.Timestamp,
		swap.Pair,
		swap.AssetIn,
		swap.AssetOut,
		swap.AmountIn,
		swap.AmountOut,
		swap.Price,
		swap.MinOut,
		swap.Pool,
		swap.Venue,
	)
	if err != nil {
		return fmt.Errorf("failed to insert swap: %w", err)
	}
	return nil
}

// Ping checks the connection.
func (c *ClickHouseStore) Ping(ctx context.Context) error {
	return c.conn.Ping(ctx)
}

// Close closes the connection.
func (c *ClickHouseStore) Close() error {
	return c.conn.Close()
}
