// Package pricing attaches USD valuations to holdings and serves verified
// token metadata through an explicit time-bounded cache.
package pricing

import "context"

// TokenMeta is one entry of the verified token list.
type TokenMeta struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
	LogoURI  string `json:"logoURI,omitempty"`
}

// PriceSource returns unit prices for a set of mints. The returned map may be
// partial; callers treat missing mints as price 0.
type PriceSource interface {
	PricesByMint(ctx context.Context, mints []string) (map[string]float64, error)
}

// TokenListSource returns the verified token list.
type TokenListSource interface {
	VerifiedTokens(ctx context.Context) ([]TokenMeta, error)
}

// Enricher resolves prices and token metadata for the portfolio pipeline.
// Failures degrade to empty results; a missing price never fails the caller.
type Enricher struct {
	prices PriceSource
	cache  *TokenListCache
}

// NewEnricher creates an Enricher over a price source and a token-list cache.
func NewEnricher(prices PriceSource, cache *TokenListCache) *Enricher {
	return &Enricher{prices: prices, cache: cache}
}

// Prices returns unit prices for the given mints. On upstream failure it
// returns an empty map: every affected holding values at 0 instead of the
// lookup failing the portfolio.
func (e *Enricher) Prices(ctx context.Context, mints []string) map[string]float64 {
	if e.prices == nil || len(mints) == 0 {
		return map[string]float64{}
	}
	prices, err := e.prices.PricesByMint(ctx, mints)
	if err != nil || prices == nil {
		return map[string]float64{}
	}
	return prices
}

// Metadata returns the verified token list keyed by mint address.
// Empty on upstream failure.
func (e *Enricher) Metadata(ctx context.Context) map[string]TokenMeta {
	if e.cache == nil {
		return map[string]TokenMeta{}
	}
	tokens, err := e.cache.Get(ctx)
	if err != nil {
		return map[string]TokenMeta{}
	}
	byMint := make(map[string]TokenMeta, len(tokens))
	for _, tok := range tokens {
		byMint[tok.Address] = tok
	}
	return byMint
}
