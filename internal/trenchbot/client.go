// Package trenchbot implements the bundle-detection service client.
package trenchbot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"solana-wallet-audit/internal/observability"
)

// Defaults for the bundle-detection API.
const (
	DefaultBaseURL = "https://trench.bot/api/bundle/bundle_advanced"
	DefaultTimeout = 15 * time.Second
)

// Client fetches cluster-analysis payloads per mint.
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

// NewClient creates a bundle-detection client.
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

// BundleAdvanced retrieves the cluster-analysis payload for a mint.
// A 404 means the mint has no analysis and returns (nil, nil).
func (c *Client) BundleAdvanced(ctx context.Context, mint string) (_ *BundleAdvancedResponse, err error) {
	start := time.Now()
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		observability.RecordUpstreamRequest("trenchbot", status, time.Since(start).Seconds())
	}()

	u := c.baseURL + "/" + mint
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var analysis BundleAdvancedResponse
	if err := json.Unmarshal(body, &analysis); err != nil {
		return nil, fmt.Errorf("unmarshal bundle analysis: %w", err)
	}
	return &analysis, nil
}
