// Package helius implements the asset/balance indexer client over the
// Helius DAS JSON-RPC API.
package helius

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"solana-wallet-audit/internal/observability"
)

// Default configuration values. The asset search ceiling matches the
// documented 30-second upper bound for DAS searches.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 2
	DefaultRetryDelay = 500 * time.Millisecond
)

// Client is an HTTP JSON-RPC 2.0 client for the Helius DAS API.
type Client struct {
	endpoint   string
	client     *http.Client
	maxRetries int
	retryDelay time.Duration
	requestID  atomic.Uint64
}

// Option configures Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithMaxRetries sets maximum transport-level retry attempts.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// NewClient creates a new Helius DAS client.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		client:     &http.Client{Timeout: DefaultTimeout},
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// rpcRequest represents a JSON-RPC 2.0 request. DAS methods take a single
// named-parameter object.
type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      uint64      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// rpcResponse represents a JSON-RPC 2.0 response.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

// rpcError represents a JSON-RPC 2.0 error.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// call performs a JSON-RPC call with flat-delay transport retries.
func (c *Client) call(ctx context.Context, method string, params interface{}, result interface{}) (err error) {
	start := time.Now()
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		observability.RecordUpstreamRequest("helius", status, time.Since(start).Seconds())
	}()

	reqID := c.requestID.Add(1)
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      reqID,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("http request: %w", err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limited (429)")
			continue
		}
		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
			continue
		}

		var rpcResp rpcResponse
		if err := json.Unmarshal(respBody, &rpcResp); err != nil {
			lastErr = fmt.Errorf("unmarshal response: %w", err)
			continue
		}

		if rpcResp.Error != nil {
			// RPC errors are not retried
			return rpcResp.Error
		}

		if result != nil && rpcResp.Result != nil {
			if err := json.Unmarshal(rpcResp.Result, result); err != nil {
				return fmt.Errorf("unmarshal result: %w", err)
			}
		}
		return nil
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// searchAssetsParams is the named-parameter object for searchAssets.
type searchAssetsParams struct {
	OwnerAddress   string         `json:"ownerAddress"`
	TokenType      string         `json:"tokenType"`
	DisplayOptions displayOptions `json:"displayOptions"`
}

type displayOptions struct {
	ShowNativeBalance      bool `json:"showNativeBalance"`
	ShowInscription        bool `json:"showInscription"`
	ShowCollectionMetadata bool `json:"showCollectionMetadata"`
}

// FungibleAssets retrieves all owned assets plus the native balance in one
// indexed call.
func (c *Client) FungibleAssets(ctx context.Context, wallet string) (*SearchAssetsResult, error) {
	params := searchAssetsParams{
		OwnerAddress: wallet,
		TokenType:    "all",
		DisplayOptions: displayOptions{
			ShowNativeBalance: true,
		},
	}

	var result SearchAssetsResult
	if err := c.call(ctx, "searchAssets", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// NonFungibleAssets retrieves owned NFTs with collection metadata attached.
func (c *Client) NonFungibleAssets(ctx context.Context, wallet string) (*SearchAssetsResult, error) {
	params := searchAssetsParams{
		OwnerAddress: wallet,
		TokenType:    "nonFungible",
		DisplayOptions: displayOptions{
			ShowCollectionMetadata: true,
		},
	}

	var result SearchAssetsResult
	if err := c.call(ctx, "searchAssets", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// getAccountInfoResult is the raw jsonParsed getAccountInfo response.
type getAccountInfoResult struct {
	Value *struct {
		Data struct {
			Parsed struct {
				Info struct {
					Decimals *int   `json:"decimals"`
					Supply   string `json:"supply"`
				} `json:"info"`
			} `json:"parsed"`
		} `json:"data"`
	} `json:"value"`
}

// MintInfo retrieves parsed mint account data for decimal adjustment.
// Returns nil if the account does not exist or is not a parsed mint.
func (c *Client) MintInfo(ctx context.Context, mint string) (*MintInfo, error) {
	params := []interface{}{
		mint,
		map[string]interface{}{"encoding": "jsonParsed"},
	}

	var result getAccountInfoResult
	if err := c.call(ctx, "getAccountInfo", params, &result); err != nil {
		return nil, err
	}

	if result.Value == nil || result.Value.Data.Parsed.Info.Decimals == nil {
		return nil, nil
	}

	return &MintInfo{
		Decimals: *result.Value.Data.Parsed.Info.Decimals,
		Supply:   result.Value.Data.Parsed.Info.Supply,
	}, nil
}
