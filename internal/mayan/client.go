package mayan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the Mayan price API. It only prices routes; assembling and
// submitting the resulting transaction is the caller's business.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://price-api.mayan.finance/v3"
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  strings.TrimSpace(apiKey),
		HTTP: &http.Client{
			Timeout: 12 * time.Second,
		},
	}
}

type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	b := strings.TrimSpace(string(e.Body))
	if b == "" {
		return fmt.Sprintf("mayan http %d", e.StatusCode)
	}
	return fmt.Sprintf("mayan http %d: %s", e.StatusCode, b)
}

// Quote fetches the ranked list of priced routes for req. A nil error with
// an empty slice means the provider found no route for the pair; that is a
// legitimate negative result, not a fault. The provider signals "no route"
// with HTTP 404, which is mapped to the empty slice here.
func (c *Client) Quote(ctx context.Context, req QuoteRequest) ([]Route, error) {
	if strings.TrimSpace(req.FromToken) == "" {
		return nil, fmt.Errorf("fromToken is required")
	}
	if strings.TrimSpace(req.ToToken) == "" {
		return nil, fmt.Errorf("toToken is required")
	}
	if strings.TrimSpace(req.Amount) == "" {
		return nil, fmt.Errorf("amount is required")
	}

	q := url.Values{}
	q.Set("amountIn", req.Amount)
	q.Set("fromToken", req.FromToken)
	q.Set("fromChain", req.FromChain)
	q.Set("toToken", req.ToToken)
	q.Set("toChain", req.ToChain)

	if req.SlippageBps != nil {
		q.Set("slippageBps", fmt.Sprintf("%d", *req.SlippageBps))
	} else {
		q.Set("slippageBps", "auto")
	}
	if req.Referrer != "" {
		q.Set("referrer", req.Referrer)
	}
	if req.ReferrerBps > 0 {
		q.Set("referrerBps", fmt.Sprintf("%d", req.ReferrerBps))
	}

	u := c.BaseURL + "/quote?" + q.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("accept", "application/json")
	if c.APIKey != "" {
		httpReq.Header.Set("x-api-key", c.APIKey)
	}

	res, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode == http.StatusNotFound {
		return []Route{}, nil
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: res.StatusCode, Body: body}
	}

	var env quoteEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode mayan quote response: %w", err)
	}

	out := make([]Route, 0, len(env.Quotes))
	for _, raw := range env.Quotes {
		var r Route
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("failed to decode mayan route: %w", err)
		}
		r.Raw = raw
		out = append(out, r)
	}
	return out, nil
}
