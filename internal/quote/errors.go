package quote

import (
	"errors"
	"fmt"
)

// ErrNoRoute means the request was valid but the provider has no path for
// the pair. A legitimate negative result, not a fault.
var ErrNoRoute = errors.New("no routes found")

// ValidationKind identifies which validation check rejected a request.
type ValidationKind string

const (
	KindMissingField     ValidationKind = "missing_field"
	KindUnsupportedChain ValidationKind = "unsupported_chain"
	KindInvalidAmount    ValidationKind = "invalid_amount"
	KindInvalidSlippage  ValidationKind = "invalid_slippage"
	KindInvalidToken     ValidationKind = "invalid_token"
)

// ValidationError is a caller fault: a missing, malformed, or out-of-range
// request field.
type ValidationError struct {
	Kind   ValidationKind
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return e.Reason
}

// ProviderError wraps an upstream pricing-service failure: timeout, bad
// gateway, malformed response. Transient; the caller decides whether to
// retry with a fresh quote request.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("route provider: %v", e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
