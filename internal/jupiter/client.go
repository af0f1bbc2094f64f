// Package jupiter implements the price/token-list service client.
// It satisfies the pricing.PriceSource and pricing.TokenListSource contracts.
package jupiter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"solana-wallet-audit/internal/observability"
	"solana-wallet-audit/internal/pricing"
)

// Default endpoints and timeout.
const (
	DefaultPriceURL  = "https://price.jup.ag/v4/price"
	DefaultTokensURL = "https://tokens.jup.ag/tokens?tags=verified"
	DefaultTimeout   = 10 * time.Second
)

// Client talks to the Jupiter price and token-list endpoints.
type Client struct {
	priceURL  string
	tokensURL string
	client    *http.Client
}

// Option configures Client.
type Option func(*Client)

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithEndpoints overrides the price and token-list URLs.
func WithEndpoints(priceURL, tokensURL string) Option {
	return func(c *Client) {
		c.priceURL = priceURL
		c.tokensURL = tokensURL
	}
}

// NewClient creates a Jupiter client with default endpoints.
func NewClient(opts ...Option) *Client {
	c := &Client{
		priceURL:  DefaultPriceURL,
		tokensURL: DefaultTokensURL,
		client:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// priceResponse is the raw batch price payload.
type priceResponse struct {
	Data map[string]struct {
		Price float64 `json:"price"`
	} `json:"data"`
}

// PricesByMint returns unit prices for the given mints. The result may be
// partial: mints unknown to Jupiter are simply absent.
func (c *Client) PricesByMint(ctx context.Context, mints []string) (map[string]float64, error) {
	if len(mints) == 0 {
		return map[string]float64{}, nil
	}

	u := c.priceURL + "?ids=" + url.QueryEscape(strings.Join(mints, ","))
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var resp priceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal prices: %w", err)
	}

	prices := make(map[string]float64, len(resp.Data))
	for mint, entry := range resp.Data {
		prices[mint] = entry.Price
	}
	return prices, nil
}

// VerifiedTokens returns the verified token list with per-mint metadata.
func (c *Client) VerifiedTokens(ctx context.Context) ([]pricing.TokenMeta, error) {
	body, err := c.get(ctx, c.tokensURL)
	if err != nil {
		return nil, err
	}

	var tokens []pricing.TokenMeta
	if err := json.Unmarshal(body, &tokens); err != nil {
		return nil, fmt.Errorf("unmarshal token list: %w", err)
	}
	return tokens, nil
}

func (c *Client) get(ctx context.Context, u string) (_ []byte, err error) {
	start := time.Now()
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		observability.RecordUpstreamRequest("jupiter", status, time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

var (
	_ pricing.PriceSource     = (*Client)(nil)
	_ pricing.TokenListSource = (*Client)(nil)
)
