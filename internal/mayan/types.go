package mayan

import "encoding/json"

// QuoteRequest describes a single priced-route lookup against the Mayan
// price API. Amount is the human-readable decimal amount of the source
// token, not a raw base-unit integer.
type QuoteRequest struct {
	Amount    string
	FromToken string
	FromChain string
	ToToken   string
	ToChain   string

	SlippageBps *int // omitted -> provider picks "auto"

	Referrer    string
	ReferrerBps int
}

// Token is the provider's token metadata, trimmed to what the API surfaces
// back to callers.
type Token struct {
	Name     string `json:"name,omitempty"`
	Symbol   string `json:"symbol,omitempty"`
	Mint     string `json:"mint,omitempty"`
	Contract string `json:"contract,omitempty"`
	Chain    string `json:"wChainId,omitempty"`
	Decimals uint8  `json:"decimals,omitempty"`
}

// Route is one priced candidate returned by the provider, ranked by the
// provider itself (first element is best). Raw preserves the complete
// provider payload; clients need it verbatim to assemble the transaction.
type Route struct {
	Type string `json:"type"`

	FromToken *Token `json:"fromToken,omitempty"`
	ToToken   *Token `json:"toToken,omitempty"`

	FromAmount         string  `json:"effectiveAmountIn64,omitempty"`
	EffectiveAmountIn  float64 `json:"effectiveAmountIn,omitempty"`
	ExpectedAmountOut  float64 `json:"expectedAmountOut"`
	EffectiveAmountOut float64 `json:"effectiveAmountOut,omitempty"`
	MinAmountOut       float64 `json:"minAmountOut"`
	PriceImpact        float64 `json:"priceImpact,omitempty"`

	// ETASeconds is the provider's settlement estimate; Duration mirrors the
	// coarser minute-level field some route types report instead.
	ETASeconds float64 `json:"etaSeconds,omitempty"`
	Duration   float64 `json:"eta,omitempty"`

	SlippageBps    int     `json:"slippageBps,omitempty"`
	ReferrerBps    int     `json:"referrerBps,omitempty"`
	ReferrerFeeUSD float64 `json:"referrerFeeUsd,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// EstimatedDuration returns the best settlement estimate the route carries,
// in seconds.
func (r Route) EstimatedDuration() float64 {
	if r.ETASeconds > 0 {
		return r.ETASeconds
	}
	return r.Duration * 60
}

// BestAmountOut prefers the fee-adjusted effective output when the provider
// reports one.
func (r Route) BestAmountOut() float64 {
	if r.EffectiveAmountOut > 0 {
		return r.EffectiveAmountOut
	}
	return r.ExpectedAmountOut
}

type quoteEnvelope struct {
	Quotes []json.RawMessage `json:"quotes"`
}
