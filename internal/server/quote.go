package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aman-zulfiqar/sui-swap-engine/internal/deepbook"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/swapengine"
	"github.com/labstack/echo/v4"
)

// Quote prices a prospective swap and returns the order parameters a
// submission with the same inputs would carry. Nothing is signed or sent.
func (h *Handlers) Quote(c echo.Context) error {
	poolID := strings.TrimSpace(c.QueryParam("pool_id"))
	if poolID == "" {
		return h.err(c, http.StatusBadRequest, "invalid pool_id", map[string]any{"pool_id": "required"})
	}

	dir := deepbook.Direction(strings.TrimSpace(c.QueryParam("direction")))
	if !dir.Valid() {
		return h.err(c, http.StatusBadRequest, "invalid direction", map[string]any{"direction": "must be baseToQuote or quoteToBase"})
	}

	amount := strings.TrimSpace(c.QueryParam("amount"))
	if amount == "" {
		return h.err(c, http.StatusBadRequest, "invalid amount", map[string]any{"amount": "required"})
	}

	slippage := 1.0
	if v := strings.TrimSpace(c.QueryParam("slippage")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return h.err(c, http.StatusBadRequest, "invalid slippage", map[string]any{"slippage": "must be a number"})
		}
		slippage = f
	}
	if err := deepbook.ValidateSlippage(slippage); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid slippage", map[string]any{"slippage": "must be between 0 and 100"})
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	pool, err := h.Catalog.FindPool(ctx, poolID)
	if err != nil {
		return h.err(c, http.StatusNotFound, "pool not found", map[string]any{"pool_id": poolID})
	}

	quote, err := h.Quotes.Quote(ctx, pool, dir, amount)
	if err != nil {
		var verr *deepbook.ValidationError
		if errors.As(err, &verr) {
			return h.err(c, http.StatusBadRequest, "invalid amount", map[string]any{verr.Field: verr.Reason})
		}
		if errors.Is(err, swapengine.ErrNoQuote) {
			return h.err(c, http.StatusNotFound, "no quote available", nil)
		}
		return h.err(c, http.StatusBadGateway, "quote failed", map[string]any{"err": err.Error()})
	}

	amountInRaw, err := deepbook.ToAtomic(amount, dir.FromDecimals(pool))
	if err != nil {
		return h.err(c, http.StatusBadRequest, "invalid amount", map[string]any{"amount": err.Error()})
	}
	minOutRaw, err := deepbook.MinOutput(quote.EstimatedOut, slippage, dir.ToDecimals(pool))
	if err != nil {
		return h.err(c, http.StatusBadRequest, "invalid slippage", map[string]any{"slippage": err.Error()})
	}

	return c.JSON(http.StatusOK, QuoteResponse{
		PoolID:        pool.PoolID,
		Direction:     string(dir),
		AmountIn:      amount,
		AmountInRaw:   amountInRaw,
		EstimatedOut:  quote.EstimatedOut,
		MinOutRaw:     minOutRaw,
		Rate:          quote.Rate,
		SlippagePct:   slippage,
		Target:        dir.Target(pool.PoolID),
		TypeArguments: [2]string{pool.BaseAssetID, pool.QuoteAssetID},
		QuotedAt:      quote.QuotedAt,
	})
}
