package quote

import (
	"context"
	"time"

	"github.com/clawswap/clawswap-api/internal/chains"
	"github.com/clawswap/clawswap-api/internal/mayan"
	"github.com/sirupsen/logrus"
)

// RouteProvider prices swap intents. Implemented by *mayan.Client.
// An empty slice with a nil error means no route exists for the pair.
type RouteProvider interface {
	Quote(ctx context.Context, req mayan.QuoteRequest) ([]mayan.Route, error)
}

// TicketStore issues short-lived reservations for priced routes.
// Implemented by *ticket.Store.
type TicketStore interface {
	Put(route mayan.Route, intent SwapIntent, feeBps int) (id string, expiresAt time.Time)
}

// Result is a freshly issued quote: the reservation id, the validated
// intent, the provider's best route and the applied referral fee.
type Result struct {
	TicketID  string
	Intent    SwapIntent
	Route     mayan.Route
	FeeBps    int
	ExpiresAt time.Time
}

// Service orchestrates validation, fee policy, route fetching and ticket
// issuance. It owns the best-route rule: the provider pre-ranks candidates,
// so the first element is taken as best and never re-ranked locally.
type Service struct {
	provider  RouteProvider
	tickets   TicketStore
	referrers chains.Referrers
	log       *logrus.Logger
}

func NewService(provider RouteProvider, tickets TicketStore, referrers chains.Referrers, log *logrus.Logger) *Service {
	return &Service{
		provider:  provider,
		tickets:   tickets,
		referrers: referrers,
		log:       log,
	}
}

// Quote validates req, annotates it with the referral fee for its source
// chain, fetches ranked routes and reserves the best one under a fresh
// ticket. Two identical requests produce two distinct tickets: prices move,
// so quotes are never deduplicated by intent.
func (s *Service) Quote(ctx context.Context, req Request) (*Result, error) {
	intent, err := Validate(req)
	if err != nil {
		return nil, err
	}

	feeBps := chains.FeeBps(intent.FromChain)

	s.log.WithFields(logrus.Fields{
		"fromChain": intent.FromChain,
		"toChain":   intent.ToChain,
		"amount":    intent.Amount.String(),
		"feeBps":    feeBps,
	}).Info("fetching quote")

	routes, err := s.provider.Quote(ctx, mayan.QuoteRequest{
		Amount:      intent.Amount.String(),
		FromToken:   intent.FromToken,
		FromChain:   intent.FromChain,
		ToToken:     intent.ToToken,
		ToChain:     intent.ToChain,
		SlippageBps: intent.SlippageBps,
		Referrer:    s.referrers.For(intent.FromChain),
		ReferrerBps: feeBps,
	})
	if err != nil {
		return nil, &ProviderError{Err: err}
	}
	if len(routes) == 0 {
		return nil, ErrNoRoute
	}

	// Ticket insertion happens strictly after a successful fetch; a
	// cancelled or failed provider call never leaves a ticket behind.
	best := routes[0]
	id, expiresAt := s.tickets.Put(best, intent, feeBps)

	return &Result{
		TicketID:  id,
		Intent:    intent,
		Route:     best,
		FeeBps:    feeBps,
		ExpiresAt: expiresAt,
	}, nil
}
