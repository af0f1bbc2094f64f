// Package magiceden implements the NFT marketplace stats client.
package magiceden

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"solana-wallet-audit/internal/observability"
	"solana-wallet-audit/internal/solana"
)

// Defaults. The short timeout is deliberate: floor-price lookups run once per
// collection and a slow marketplace must not stall the whole aggregation.
const (
	DefaultBaseURL   = "https://api-mainnet.magiceden.dev/v2"
	DefaultTimeout   = 5 * time.Second
	defaultUserAgent = "Mozilla/5.0 (compatible; NFT-Portfolio-Tool/1.0)"
)

// CollectionStats holds floor-price statistics for a collection.
// All values are converted from lamports to SOL.
type CollectionStats struct {
	FloorPrice   *float64
	ListedCount  *int
	AvgPrice24hr *float64
	VolumeAll    *float64
}

// Client talks to the Magic Eden public API.
type Client struct {
	baseURL string
	client  *http.Client
}

// Option configures Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// NewClient creates a marketplace client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// tokenResponse is the raw token lookup payload.
type tokenResponse struct {
	Collection string `json:"collection"`
}

// TokenCollection resolves the marketplace collection identifier for an NFT
// mint. Empty string when the token is unknown to the marketplace.
func (c *Client) TokenCollection(ctx context.Context, nftMint string) (string, error) {
	body, err := c.get(ctx, c.baseURL+"/tokens/"+nftMint)
	if err != nil {
		return "", err
	}

	var resp tokenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshal token: %w", err)
	}
	return resp.Collection, nil
}

// statsResponse is the raw collection stats payload, lamport-denominated.
type statsResponse struct {
	FloorPrice   *float64 `json:"floorPrice"`
	ListedCount  *int     `json:"listedCount"`
	AvgPrice24hr *float64 `json:"avgPrice24hr"`
	VolumeAll    *float64 `json:"volumeAll"`
}

// CollectionStats fetches floor-price statistics for a collection identifier.
// A missing floor price yields a stats value with FloorPrice nil; zero and
// unknown are distinct states.
func (c *Client) CollectionStats(ctx context.Context, slug string) (*CollectionStats, error) {
	body, err := c.get(ctx, c.baseURL+"/collections/"+slug+"/stats")
	if err != nil {
		return nil, err
	}

	var resp statsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal stats: %w", err)
	}

	stats := &CollectionStats{ListedCount: resp.ListedCount}
	if resp.FloorPrice != nil {
		sol := *resp.FloorPrice / solana.LamportsPerSOL
		stats.FloorPrice = &sol
	}
	if resp.AvgPrice24hr != nil {
		sol := *resp.AvgPrice24hr / solana.LamportsPerSOL
		stats.AvgPrice24hr = &sol
	}
	if resp.VolumeAll != nil {
		sol := *resp.VolumeAll / solana.LamportsPerSOL
		stats.VolumeAll = &sol
	}
	return stats, nil
}

func (c *Client) get(ctx context.Context, u string) (_ []byte, err error) {
	start := time.Now()
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		observability.RecordUpstreamRequest("magiceden", status, time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

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
