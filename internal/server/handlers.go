package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/clawswap/clawswap-api/internal/chains"
	"github.com/clawswap/clawswap-api/internal/mayan"
	"github.com/clawswap/clawswap-api/internal/quote"
	"github.com/clawswap/clawswap-api/internal/ticket"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const serviceName = "ClawSwap API"

// TicketReader is the read side of the ticket store used by the swap
// handoff and status endpoints. Reads never mutate or extend a ticket.
type TicketReader interface {
	Get(id string) (*ticket.Ticket, bool)
}

// Handlers contains all dependencies for API endpoint handlers
type Handlers struct {
	Quotes    *quote.Service // quote orchestration (validate, fee, fetch, reserve)
	Tickets   TicketReader   // ticket lookups for handoff and status
	Referrers chains.Referrers
	Version   string
	DevMode   bool // Enable detailed error responses in development
	Logger    *logrus.Logger
}

// err returns a standardized JSON error response. In dev mode, includes
// additional error details for debugging.
func (h *Handlers) err(c echo.Context, status int, resp ErrorResponse, details any) error {
	if h.DevMode && details != nil {
		resp.Details = details
	}
	return c.JSON(status, resp)
}

// withTimeout creates a context with timeout, defaulting to 10 seconds if duration <= 0
func (h *Handlers) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = 10 * time.Second
	}
	return context.WithTimeout(ctx, d)
}

// Health reports liveness and which referral addresses are configured.
// No side effects, no auth.
func (h *Handlers) Health(c echo.Context) error {
	mark := func(addr string) string {
		if addr != "" {
			return "✓"
		}
		return "✗"
	}
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   serviceName,
		Version:   h.Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Referrers: map[string]string{
			"solana": mark(h.Referrers.Solana),
			"evm":    mark(h.Referrers.EVM),
			"sui":    mark(h.Referrers.Sui),
		},
	})
}

// Quote validates the swap request, fetches a priced route and reserves it
// under a fresh quote id. The only endpoint that talks to the provider.
func (h *Handlers) Quote(c echo.Context) error {
	var req QuoteRequest
	if err := c.Bind(&req); err != nil {
		return h.err(c, http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Message: "request body must be valid JSON",
		}, nil)
	}

	raw := quote.Request{
		FromChain: strings.TrimSpace(req.FromChain),
		ToChain:   strings.TrimSpace(req.ToChain),
		FromToken: req.FromToken,
		ToToken:   req.ToToken,
		Amount:    req.Amount.String(),
	}
	if req.SlippageBps != nil {
		raw.SlippageBps = req.SlippageBps.String()
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	res, err := h.Quotes.Quote(ctx, raw)
	if err != nil {
		var verr *quote.ValidationError
		switch {
		case errors.As(err, &verr):
			return h.err(c, http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid request",
				Message: verr.Error(),
				Code:    string(verr.Kind),
			}, nil)
		case errors.Is(err, quote.ErrNoRoute):
			return h.err(c, http.StatusNotFound, ErrorResponse{
				Error:   "No routes found",
				Message: "No swap route available for this pair",
			}, nil)
		default:
			h.Logger.WithError(err).Error("quote generation failed")
			return h.err(c, http.StatusInternalServerError, ErrorResponse{
				Error:   "Quote generation failed",
				Message: "Unable to fetch quote. Please try again.",
				Code:    "E001",
			}, map[string]any{"err": err.Error()})
		}
	}

	intent := res.Intent
	route := res.Route

	fromToken := intent.FromToken
	if route.FromToken != nil {
		if route.FromToken.Mint != "" {
			fromToken = route.FromToken.Mint
		} else if route.FromToken.Contract != "" {
			fromToken = route.FromToken.Contract
		}
	}
	toToken := intent.ToToken
	if route.ToToken != nil {
		if route.ToToken.Mint != "" {
			toToken = route.ToToken.Mint
		} else if route.ToToken.Contract != "" {
			toToken = route.ToToken.Contract
		}
	}

	return c.JSON(http.StatusOK, QuoteResponse{
		QuoteID:           res.TicketID,
		FromChain:         intent.FromChain,
		ToChain:           intent.ToChain,
		FromToken:         fromToken,
		ToToken:           toToken,
		FromAmount:        intent.Amount.String(),
		ToAmountMin:       route.MinAmountOut,
		EstimatedToAmount: route.BestAmountOut(),
		PriceImpact:       route.PriceImpact,
		EstimatedDuration: route.EstimatedDuration(),
		Fee:               feePercent(res.FeeBps),
		ExpiresAt:         res.ExpiresAt.UTC(),
		Route:             fmt.Sprintf("%s → %s", intent.FromChain, intent.ToChain),
		RawQuote:          rawRoute(route),
	})
}

// SwapHandoff returns the cached route for a quote id so the caller can sign
// and broadcast it themselves. Read-only: it never executes anything and
// never extends the ticket's lifetime.
func (h *Handlers) SwapHandoff(c echo.Context) error {
	var req SwapRequest
	if err := c.Bind(&req); err != nil {
		return h.err(c, http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Message: "request body must be valid JSON",
		}, nil)
	}
	if req.QuoteID == "" {
		return h.err(c, http.StatusBadRequest, ErrorResponse{
			Error:   "Missing quoteId",
			Message: "quoteId is required",
		}, nil)
	}

	// cheap syntax check before touching the store; uuid.Parse also accepts
	// non-canonical forms, so pin the length to the hyphenated encoding
	if u, err := uuid.Parse(req.QuoteID); err != nil || u.Version() != 4 || len(req.QuoteID) != 36 {
		return h.err(c, http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid quoteId",
			Message: "quoteId must be a valid UUID",
		}, nil)
	}

	t, ok := h.Tickets.Get(req.QuoteID)
	if !ok {
		return h.err(c, http.StatusNotFound, ErrorResponse{
			Error:   "Quote not found or expired",
			Message: "Please request a new quote",
		}, nil)
	}

	h.Logger.WithFields(logrus.Fields{
		"fromChain": t.Intent.FromChain,
		"toChain":   t.Intent.ToChain,
	}).Info("swap handoff")

	return c.JSON(http.StatusOK, SwapResponse{
		Message: "Quote ready for execution",
		SwapID:  t.ID,
		Quote:   rawRoute(t.Route),
		Params:  SwapParams{SwapIntent: t.Intent, ReferrerBps: t.FeeBps},
		Instructions: SwapInstructions{
			Step1: "Sign the transaction with your wallet",
			Step2: "Broadcast the transaction to the blockchain",
			Step3: "Track status via swap explorer or your wallet",
		},
		Note: "ClawSwap does not execute swaps. Your agent must sign and broadcast.",
	})
}

// SwapStatus reports cache presence and age for a ticket. Settlement state
// lives on chain; the caller tracks it through the explorer, not here.
func (h *Handlers) SwapStatus(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))

	t, ok := h.Tickets.Get(id)
	if !ok {
		return h.err(c, http.StatusNotFound, ErrorResponse{
			Error:   "Swap not found",
			Message: "Quote ID not found or expired",
		}, nil)
	}

	return c.JSON(http.StatusOK, StatusResponse{
		SwapID:      t.ID,
		Status:      "pending",
		Timestamp:   t.CreatedAt.UTC().Format(time.RFC3339),
		Params:      SwapParams{SwapIntent: t.Intent, ReferrerBps: t.FeeBps},
		ExplorerURL: "https://explorer.mayan.finance/swap/" + t.ID,
		Note:        "Track actual swap status on blockchain explorer",
	})
}

// feePercent renders basis points as the human-facing percentage string,
// e.g. 100 -> "1%", 50 -> "0.5%".
func feePercent(bps int) string {
	return strconv.FormatFloat(float64(bps)/100, 'f', -1, 64) + "%"
}

// rawRoute prefers the verbatim provider payload; routes built without one
// fall back to the typed representation.
func rawRoute(r mayan.Route) json.RawMessage {
	if len(r.Raw) > 0 {
		return r.Raw
	}
	b, err := json.Marshal(r)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return b
}
