package quote

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/clawswap/clawswap-api/internal/chains"
	"github.com/clawswap/clawswap-api/internal/mayan"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	routes  []mayan.Route
	err     error
	lastReq mayan.QuoteRequest
	calls   int
}

func (p *stubProvider) Quote(_ context.Context, req mayan.QuoteRequest) ([]mayan.Route, error) {
	p.lastReq = req
	p.calls++
	return p.routes, p.err
}

type stubTickets struct {
	mu      sync.Mutex
	inserts int
	last    struct {
		route  mayan.Route
		intent SwapIntent
		feeBps int
	}
}

func (s *stubTickets) Put(route mayan.Route, intent SwapIntent, feeBps int) (string, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserts++
	s.last.route = route
	s.last.intent = intent
	s.last.feeBps = feeBps
	return uuid.NewString(), time.Now().Add(5 * time.Minute)
}

func testService(p RouteProvider, t TicketStore) *Service {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewService(p, t, chains.Referrers{Solana: "sol-ref", EVM: "evm-ref"}, log)
}

func TestQuoteHappyPath(t *testing.T) {
	provider := &stubProvider{routes: []mayan.Route{
		{Type: "SWIFT", ExpectedAmountOut: 7.91, MinAmountOut: 7.85},
		{Type: "MCTP", ExpectedAmountOut: 7.80, MinAmountOut: 7.70},
	}}
	tickets := &stubTickets{}
	svc := testService(provider, tickets)

	res, err := svc.Quote(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, res.TicketID)
	assert.Equal(t, 100, res.FeeBps, "solana-originated swaps carry 100 bps")
	assert.Equal(t, "SWIFT", res.Route.Type, "first provider route is best; no local re-ranking")
	assert.False(t, res.ExpiresAt.IsZero())

	// the gateway call carries the fee annotation and the family referrer
	assert.Equal(t, "0.05", provider.lastReq.Amount)
	assert.Equal(t, "solana", provider.lastReq.FromChain)
	assert.Equal(t, 100, provider.lastReq.ReferrerBps)
	assert.Equal(t, "sol-ref", provider.lastReq.Referrer)

	assert.Equal(t, 1, tickets.inserts)
	assert.Equal(t, "SWIFT", tickets.last.route.Type)
	assert.Equal(t, 100, tickets.last.feeBps)
}

func TestQuoteEVMFeeAndReferrer(t *testing.T) {
	provider := &stubProvider{routes: []mayan.Route{{Type: "MCTP", ExpectedAmountOut: 1}}}
	svc := testService(provider, &stubTickets{})

	req := validRequest()
	req.FromChain = "ethereum"
	req.ToChain = "solana"

	res, err := svc.Quote(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 50, res.FeeBps)
	assert.Equal(t, 50, provider.lastReq.ReferrerBps)
	assert.Equal(t, "evm-ref", provider.lastReq.Referrer)
}

func TestQuoteValidationFailureSkipsProvider(t *testing.T) {
	provider := &stubProvider{}
	tickets := &stubTickets{}
	svc := testService(provider, tickets)

	req := validRequest()
	req.Amount = "-3"

	_, err := svc.Quote(context.Background(), req)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, KindInvalidAmount, verr.Kind)
	assert.Zero(t, provider.calls, "invalid requests must not reach the provider")
	assert.Zero(t, tickets.inserts)
}

func TestQuoteNoRoute(t *testing.T) {
	provider := &stubProvider{routes: []mayan.Route{}}
	tickets := &stubTickets{}
	svc := testService(provider, tickets)

	_, err := svc.Quote(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNoRoute)
	assert.Zero(t, tickets.inserts, "no ticket without a route")
}

func TestQuoteProviderFault(t *testing.T) {
	cause := errors.New("connection refused")
	provider := &stubProvider{err: cause}
	tickets := &stubTickets{}
	svc := testService(provider, tickets)

	_, err := svc.Quote(context.Background(), validRequest())
	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.ErrorIs(t, err, cause, "provider faults must stay unwrappable")
	assert.Zero(t, tickets.inserts, "a failed fetch never leaves a ticket behind")
}

func TestQuoteNotIdempotent(t *testing.T) {
	provider := &stubProvider{routes: []mayan.Route{{Type: "SWIFT", ExpectedAmountOut: 1}}}
	tickets := &stubTickets{}
	svc := testService(provider, tickets)

	a, err := svc.Quote(context.Background(), validRequest())
	require.NoError(t, err)
	b, err := svc.Quote(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEqual(t, a.TicketID, b.TicketID, "identical requests yield distinct tickets")
	assert.Equal(t, 2, tickets.inserts)
}
