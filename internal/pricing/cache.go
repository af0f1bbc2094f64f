package pricing

import (
	"context"
	"sync"
	"time"

	"solana-wallet-audit/internal/observability"
)

// DefaultTokenListTTL is how long a fetched token list stays fresh.
const DefaultTokenListTTL = 5 * time.Minute

// TokenListCache holds one upstream token list with an explicit
// (value, fetchedAt, ttl) triple, refreshed lazily on expiry.
//
// The cache is read-mostly and safe for concurrent use. A redundant refresh
// under a race is harmless: the list is idempotent and overwriting it has no
// side effects.
type TokenListCache struct {
	source TokenListSource
	ttl    time.Duration
	clock  func() time.Time

	mu        sync.RWMutex
	tokens    []TokenMeta
	fetchedAt time.Time
}

// NewTokenListCache creates a cache over the given source with the default
// 5-minute TTL.
func NewTokenListCache(source TokenListSource) *TokenListCache {
	return &TokenListCache{
		source: source,
		ttl:    DefaultTokenListTTL,
		clock:  time.Now,
	}
}

// WithTTL overrides the cache TTL.
func (c *TokenListCache) WithTTL(ttl time.Duration) *TokenListCache {
	c.ttl = ttl
	return c
}

// WithClock sets a custom clock for deterministic tests.
func (c *TokenListCache) WithClock(clock func() time.Time) *TokenListCache {
	c.clock = clock
	return c
}

// Get returns the cached token list, refreshing it first if the TTL has
// elapsed. If a refresh fails but a stale list exists, the stale list is
// returned rather than an error.
func (c *TokenListCache) Get(ctx context.Context) ([]TokenMeta, error) {
	c.mu.RLock()
	tokens, fetchedAt := c.tokens, c.fetchedAt
	c.mu.RUnlock()

	if len(tokens) > 0 && c.clock().Sub(fetchedAt) < c.ttl {
		observability.RecordTokenListCache(true)
		return tokens, nil
	}
	observability.RecordTokenListCache(false)

	fresh, err := c.source.VerifiedTokens(ctx)
	if err != nil {
		if len(tokens) > 0 {
			return tokens, nil
		}
		return nil, err
	}

	c.mu.Lock()
	c.tokens = fresh
	c.fetchedAt = c.clock()
	c.mu.Unlock()

	return fresh, nil
}
