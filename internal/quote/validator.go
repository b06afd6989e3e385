package quote

import (
	"strconv"
	"strings"

	"github.com/clawswap/clawswap-api/internal/chains"
	"github.com/shopspring/decimal"
)

// maxAmount caps the human-readable amount at 1e15 to keep downstream
// float handling out of precision-loss territory.
var maxAmount = decimal.New(1, 15)

// Request is the raw, untrusted quote request as received at the boundary.
// Amount and SlippageBps are kept as text so the validator owns all parsing.
type Request struct {
	FromChain   string
	ToChain     string
	FromToken   string
	ToToken     string
	Amount      string
	SlippageBps string
}

// SwapIntent is a validated swap request. Chains are normalized to their
// lowercase canonical form; Amount is the human-readable decimal quantity of
// the source token (never a raw base-unit integer).
type SwapIntent struct {
	FromChain   string          `json:"fromChain"`
	ToChain     string          `json:"toChain"`
	FromToken   string          `json:"fromToken"`
	ToToken     string          `json:"toToken"`
	Amount      decimal.Decimal `json:"amount"`
	SlippageBps *int            `json:"slippageBps,omitempty"`
}

// Validate checks req in order, short-circuiting on the first failure:
// required fields, supported chains, amount bounds, slippage bounds, token
// syntax. Pure: no state, no network.
func Validate(req Request) (SwapIntent, error) {
	if req.FromChain == "" || req.ToChain == "" || req.FromToken == "" || req.ToToken == "" || req.Amount == "" {
		return SwapIntent{}, &ValidationError{
			Kind:   KindMissingField,
			Reason: "fromChain, toChain, fromToken, toToken and amount are required",
		}
	}

	if !chains.IsSupported(req.FromChain) {
		return SwapIntent{}, &ValidationError{
			Kind:   KindUnsupportedChain,
			Field:  "fromChain",
			Reason: "unsupported chain " + req.FromChain,
		}
	}
	if !chains.IsSupported(req.ToChain) {
		return SwapIntent{}, &ValidationError{
			Kind:   KindUnsupportedChain,
			Field:  "toChain",
			Reason: "unsupported chain " + req.ToChain,
		}
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		return SwapIntent{}, &ValidationError{
			Kind:   KindInvalidAmount,
			Field:  "amount",
			Reason: "amount must be a positive number",
		}
	}
	if amount.Sign() <= 0 {
		return SwapIntent{}, &ValidationError{
			Kind:   KindInvalidAmount,
			Field:  "amount",
			Reason: "amount must be a positive number",
		}
	}
	if amount.GreaterThan(maxAmount) {
		return SwapIntent{}, &ValidationError{
			Kind:   KindInvalidAmount,
			Field:  "amount",
			Reason: "amount exceeds maximum",
		}
	}

	var slippageBps *int
	if s := strings.TrimSpace(req.SlippageBps); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 5000 {
			return SwapIntent{}, &ValidationError{
				Kind:   KindInvalidSlippage,
				Field:  "slippageBps",
				Reason: "slippageBps must be between 1 and 5000",
			}
		}
		slippageBps = &n
	}

	fromToken := strings.TrimSpace(req.FromToken)
	toToken := strings.TrimSpace(req.ToToken)
	if fromToken == "" {
		return SwapIntent{}, &ValidationError{Kind: KindInvalidToken, Field: "fromToken", Reason: "invalid fromToken"}
	}
	if toToken == "" {
		return SwapIntent{}, &ValidationError{Kind: KindInvalidToken, Field: "toToken", Reason: "invalid toToken"}
	}

	return SwapIntent{
		FromChain:   chains.Normalize(req.FromChain),
		ToChain:     chains.Normalize(req.ToChain),
		FromToken:   fromToken,
		ToToken:     toToken,
		Amount:      amount,
		SlippageBps: slippageBps,
	}, nil
}
