package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aman-zulfiqar/sui-swap-engine/internal/ai"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/catalog"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/oracle"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/storage"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/swapengine"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Handlers contains all dependencies for API endpoint handlers
type Handlers struct {
	Catalog      *catalog.Client         // DeepBook pool catalog client
	Oracle       *oracle.Client          // BirdEye price oracle client
	Quotes       *swapengine.QuoteEngine // Swap output estimator
	Cache        storage.SwapCache       // Redis-backed swap data cache (optional)
	AI           *ai.Agent               // AI agent for natural language queries
	AIBaseConfig ai.AgentConfig          // Base configuration for AI agents
	DevMode      bool                    // Enable detailed error responses in development
	Logger       *logrus.Logger          // Structured logger
}

// err returns a standardized JSON error response
// In dev mode, includes additional error details for debugging
func (h *Handlers) err(c echo.Context, code int, msg string, details any) error {
	resp := ErrorResponse{Error: msg, Code: code}
	if h.DevMode && details != nil {
		resp.Details = details
	}
	return c.JSON(code, resp)
}

// withTimeout creates a context with timeout, defaulting to 10 seconds if duration <= 0
func (h *Handlers) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = 10 * time.Second
	}
	return context.WithTimeout(ctx, d)
}

// Health returns a simple health check endpoint
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{OK: true})
}

// Pools returns the tradeable pool catalog
func (h *Handlers) Pools(c echo.Context) error {
	ctx, cancel := h.withTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	pools, err := h.Catalog.Pools(ctx)
	if err != nil {
		h.Logger.WithError(err).Error("pool catalog fetch failed")
		return h.err(c, http.StatusBadGateway, "failed to get pools", map[string]any{"err": err.Error()})
	}
	return c.JSON(http.StatusOK, PoolsResponse{Items: pools})
}

// RecentSwaps returns the most recent executed swaps with optional limit parameter
// Accepts limit query parameter (default: 100, range: 1-200)
func (h *Handlers) RecentSwaps(c echo.Context) error {
	if h.Cache == nil {
		return h.err(c, http.StatusBadRequest, "cache is not configured", nil)
	}

	limitStr := c.QueryParam("limit")
	limit := 100
	if limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil {
			return h.err(c, http.StatusBadRequest, "invalid limit", map[string]any{"limit": "must be an integer"})
		}
		limit = n
	}
	if limit < 1 || limit > 200 {
		return h.err(c, http.StatusBadRequest, "invalid limit", map[string]any{"limit": "min 1 max 200"})
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Cache.GetRecentSwaps(ctx, int64(limit))
	if err != nil {
		return h.err(c, http.StatusInternalServerError, "failed to get swaps", nil)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// Price returns the current spot price for an asset coin type. The oracle is
// consulted live; the cache is updated best-effort for downstream readers.
func (h *Handlers) Price(c echo.Context) error {
	asset := strings.TrimSpace(c.Param("asset"))
	if asset == "" {
		return h.err(c, http.StatusBadRequest, "invalid asset", nil)
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	price, ok, err := h.Oracle.Price(ctx, asset)
	if err != nil {
		return h.err(c, http.StatusBadGateway, "failed to get price", map[string]any{"err": err.Error()})
	}
	if !ok {
		return h.err(c, http.StatusNotFound, "no price for asset", nil)
	}

	if h.Cache != nil {
		if err := h.Cache.UpdatePrice(ctx, asset, price); err != nil {
			h.Logger.WithError(err).Debug("price cache update failed")
		}
	}
	return c.JSON(http.StatusOK, PriceResponse{Asset: asset, Price: price})
}

// OHLCV returns candle data for an asset
// Accepts asset (required), timeframe (default 15m), from/to unix seconds
// (default: the last 24 hours)
func (h *Handlers) OHLCV(c echo.Context) error {
	asset := strings.TrimSpace(c.QueryParam("asset"))
	if asset == "" {
		return h.err(c, http.StatusBadRequest, "invalid asset", map[string]any{"asset": "required"})
	}

	timeframe := strings.TrimSpace(c.QueryParam("timeframe"))
	if timeframe == "" {
		timeframe = "15m"
	}

	now := time.Now().UTC()
	from := now.Add(-24 * time.Hour)
	to := now
	if v := strings.TrimSpace(c.QueryParam("from")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return h.err(c, http.StatusBadRequest, "invalid from", map[string]any{"from": "must be unix seconds"})
		}
		from = time.Unix(n, 0).UTC()
	}
	if v := strings.TrimSpace(c.QueryParam("to")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return h.err(c, http.StatusBadRequest, "invalid to", map[string]any{"to": "must be unix seconds"})
		}
		to = time.Unix(n, 0).UTC()
	}
	if !from.Before(to) {
		return h.err(c, http.StatusBadRequest, "invalid range", map[string]any{"range": "from must be before to"})
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	items, err := h.Oracle.OHLCV(ctx, asset, timeframe, from, to)
	if err != nil {
		return h.err(c, http.StatusBadGateway, "failed to get ohlcv", map[string]any{"err": err.Error()})
	}
	return c.JSON(http.StatusOK, OHLCVResponse{Asset: asset, Timeframe: timeframe, Items: items})
}

// AIAsk processes natural language questions about swap data using AI
// Supports optional model override for one-off requests
// Returns SQL query and answer with execution time
func (h *Handlers) AIAsk(c echo.Context) error {
	if h.AI == nil {
		return h.err(c, http.StatusBadRequest, "ai is not configured", nil)
	}

	var req AIAskRequest
	if err := c.Bind(&req); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid json", nil)
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		return h.err(c, http.StatusBadRequest, "question is required", map[string]any{"question": "required"})
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), 45*time.Second)
	defer cancel()

	start := time.Now()

	// Use default AI agent or create temporary one with custom model
	agent := h.AI
	if m := strings.TrimSpace(req.Model); m != "" {
		cfg := h.AIBaseConfig
		cfg.Model = m
		tmp, err := ai.NewAgent(ctx, cfg)
		if err != nil {
			return h.err(c, http.StatusInternalServerError, "failed to create ai agent", nil)
		}
		defer func() {
			_ = tmp.Close() // Clean up temporary agent
		}()
		agent = tmp
	}

	res, err := agent.Ask(ctx, req.Question)
	if err != nil {
		return h.err(c, http.StatusInternalServerError, "ai ask failed", map[string]any{"err": err.Error()})
	}

	return c.JSON(http.StatusOK, AIAskResponse{SQL: res.SQL, Answer: res.Answer, TookMs: time.Since(start).Milliseconds()})
}
