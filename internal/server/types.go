package server

import (
	"encoding/json"
	"time"

	"github.com/clawswap/clawswap-api/internal/quote"
)

// ErrorResponse is the standardized error shape for every failure the API
// reports. Code is a stable machine-readable identifier; internal detail
// never leaks into Message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"` // dev mode only
}

// HealthResponse reports service liveness plus which referral addresses are
// configured (presence only, never the addresses themselves).
type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Timestamp string            `json:"timestamp"`
	Referrers map[string]string `json:"referrers"`
}

// QuoteRequest is the POST /v1/quote body. Amount and SlippageBps are
// json.Number so callers may send either JSON numbers or strings; all
// parsing and range checking happens in the validator.
type QuoteRequest struct {
	FromChain   string       `json:"fromChain"`
	ToChain     string       `json:"toChain"`
	FromToken   string       `json:"fromToken"`
	ToToken     string       `json:"toToken"`
	Amount      json.Number  `json:"amount"`
	SlippageBps *json.Number `json:"slippageBps,omitempty"`
}

// QuoteResponse flattens the best route's economics next to the reservation
// id. RawQuote carries the untouched provider payload the client needs to
// build the transaction.
type QuoteResponse struct {
	QuoteID           string          `json:"quoteId"`
	FromChain         string          `json:"fromChain"`
	ToChain           string          `json:"toChain"`
	FromToken         string          `json:"fromToken"`
	ToToken           string          `json:"toToken"`
	FromAmount        string          `json:"fromAmount"`
	ToAmountMin       float64         `json:"toAmountMin"`
	EstimatedToAmount float64         `json:"estimatedToAmount"`
	PriceImpact       float64         `json:"priceImpact"`
	EstimatedDuration float64         `json:"estimatedDuration"`
	Fee               string          `json:"fee"`
	ExpiresAt         time.Time       `json:"expiresAt"`
	Route             string          `json:"route"`
	RawQuote          json.RawMessage `json:"rawQuote"`
}

// SwapRequest is the POST /v1/swap body.
type SwapRequest struct {
	QuoteID string `json:"quoteId"`
}

// SwapParams echoes the originating intent plus the fee that was applied.
type SwapParams struct {
	quote.SwapIntent
	ReferrerBps int `json:"referrerBps"`
}

// SwapInstructions spells out the client-side execution steps. The service
// never performs any of them.
type SwapInstructions struct {
	Step1 string `json:"step1"`
	Step2 string `json:"step2"`
	Step3 string `json:"step3"`
}

// SwapResponse is the handoff payload: everything the client needs to sign
// and broadcast the swap itself.
type SwapResponse struct {
	Message      string           `json:"message"`
	SwapID       string           `json:"swapId"`
	Quote        json.RawMessage  `json:"quote"`
	Params       SwapParams       `json:"params"`
	Instructions SwapInstructions `json:"instructions"`
	Note         string           `json:"note"`
}

// StatusResponse reports cache presence and age for a ticket. It never
// claims on-chain finality; ExplorerURL points the caller at the venue that
// can.
type StatusResponse struct {
	SwapID      string     `json:"swapId"`
	Status      string     `json:"status"`
	Timestamp   string     `json:"timestamp"`
	Params      SwapParams `json:"params"`
	ExplorerURL string     `json:"explorerUrl"`
	Note        string     `json:"note"`
}
