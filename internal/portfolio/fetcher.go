// Package portfolio produces a normalized, valued view of a wallet's
// fungible holdings, the native balance included.
package portfolio

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"solana-wallet-audit/internal/domain"
	"solana-wallet-audit/internal/helius"
	"solana-wallet-audit/internal/normalization"
	"solana-wallet-audit/internal/pricing"
	"solana-wallet-audit/internal/solana"
	"solana-wallet-audit/internal/storage"
)

// AssetSource is the indexed asset/balance lookup used by the fetcher.
type AssetSource interface {
	// FungibleAssets returns all owned assets plus the native balance for a
	// wallet in one call.
	FungibleAssets(ctx context.Context, wallet string) (*helius.SearchAssetsResult, error)
}

// Fetcher builds wallet portfolios.
type Fetcher struct {
	assets   AssetSource
	enricher *pricing.Enricher
}

// NewFetcher creates a portfolio fetcher.
func NewFetcher(assets AssetSource, enricher *pricing.Enricher) *Fetcher {
	return &Fetcher{assets: assets, enricher: enricher}
}

// entry is one candidate holding before normalization and enrichment.
// The native balance is injected as a synthetic entry so every position runs
// through the same path.
type entry struct {
	mint         string
	rawAmount    string
	decimals     *int
	indexerPrice float64
	name         string
	symbol       string
	logo         string
	native       bool
}

// Fetch assembles the portfolio for one wallet.
//
// A total failure of the indexed fetch degrades to a zero-valued portfolio
// with an explanatory summary; the only hard error is an invalid wallet
// identifier.
func (f *Fetcher) Fetch(ctx context.Context, wallet string) (*domain.Portfolio, error) {
	if !solana.ValidLength(wallet) {
		return nil, fmt.Errorf("%w: wallet address must be %d-%d characters",
			storage.ErrInvalidInput, solana.MinAddressLen, solana.MaxAddressLen)
	}

	result, err := f.assets.FungibleAssets(ctx, wallet)
	if err != nil {
		return &domain.Portfolio{
			Wallet:  wallet,
			Summary: fmt.Sprintf("Error fetching wallet data: %v", err),
		}, nil
	}

	entries := collectEntries(result)

	mints := make([]string, 0, len(entries))
	for _, e := range entries {
		mints = append(mints, e.mint)
	}
	prices := f.enricher.Prices(ctx, mints)
	metadata := f.enricher.Metadata(ctx)

	p := &domain.Portfolio{Wallet: wallet}
	for _, e := range entries {
		holding, warn := f.buildHolding(e, prices, metadata)
		if warn != "" {
			p.Warnings = append(p.Warnings, warn)
		}
		if holding == nil {
			continue
		}

		if e.native {
			lamports, _ := strconv.ParseUint(e.rawAmount, 10, 64)
			p.Native = domain.NativeBalance{
				Lamports: lamports,
				SOL:      holding.UIAmount,
				USD:      holding.USDValue,
			}
			continue
		}

		// Dust filter, boundary inclusive.
		if holding.USDValue < domain.DustThresholdUSD {
			continue
		}
		p.Holdings = append(p.Holdings, *holding)
	}

	// Rank by USD value descending; ties keep fetch order.
	sort.SliceStable(p.Holdings, func(i, j int) bool {
		return p.Holdings[i].USDValue > p.Holdings[j].USDValue
	})

	p.TopHoldings = p.Holdings
	if len(p.TopHoldings) > domain.TopHoldingsLimit {
		p.TopHoldings = p.TopHoldings[:domain.TopHoldingsLimit]
	}

	// The total sums the uncapped non-dust list plus the native balance.
	p.TotalUSD = p.Native.USD
	for _, h := range p.Holdings {
		p.TotalUSD += h.USDValue
	}

	p.Summary = renderSummary(p)
	return p, nil
}

// collectEntries filters fungible assets and injects the native balance as a
// synthetic entry.
func collectEntries(result *helius.SearchAssetsResult) []entry {
	var entries []entry
	for _, item := range result.Items {
		if item.Interface != helius.InterfaceFungibleToken && item.Interface != helius.InterfaceFungibleAsset {
			continue
		}

		e := entry{mint: item.ID, rawAmount: "0"}
		if item.TokenInfo != nil {
			if s := item.TokenInfo.Balance.String(); s != "" {
				e.rawAmount = s
			}
			e.decimals = item.TokenInfo.Decimals
			if item.TokenInfo.PriceInfo != nil {
				e.indexerPrice = item.TokenInfo.PriceInfo.PricePerToken
			}
		}
		if item.Content != nil {
			e.name = item.Content.Metadata.Name
			e.symbol = item.Content.Metadata.Symbol
			e.logo = item.Content.Links.Image
		}
		entries = append(entries, e)
	}

	native := entry{
		mint:      solana.NativeMint,
		rawAmount: "0",
		name:      "Solana",
		symbol:    "SOL",
		native:    true,
	}
	nine := 9
	native.decimals = &nine
	if nb := result.NativeBalance; nb != nil {
		native.rawAmount = strconv.FormatUint(nb.Lamports, 10)
		native.indexerPrice = nb.PricePerSOL
	}
	entries = append(entries, native)

	return entries
}

// buildHolding normalizes and enriches one entry. The returned warning is
// non-empty when a decimals fallback was applied.
func (f *Fetcher) buildHolding(e entry, prices map[string]float64, metadata map[string]pricing.TokenMeta) (*domain.TokenHolding, string) {
	meta, hasMeta := metadata[e.mint]

	var warn string
	decimals := 0
	assumed := false
	switch {
	case e.decimals != nil:
		decimals = *e.decimals
	case hasMeta:
		decimals = meta.Decimals
	default:
		decimals = normalization.DefaultDecimals(e.mint)
		assumed = true
		warn = fmt.Sprintf("decimals unknown for %s, assumed %d", e.mint, decimals)
	}

	ui, err := normalization.UIAmount(e.rawAmount, decimals)
	if err != nil {
		return nil, fmt.Sprintf("skipping %s: %v", e.mint, err)
	}

	// The native asset keeps the indexer-reported price; everything else
	// prefers the batch source and falls back to the indexer figure.
	price := e.indexerPrice
	if !e.native {
		if batch, ok := prices[e.mint]; ok && batch > 0 {
			price = batch
		}
	}

	holding := &domain.TokenHolding{
		Mint:            e.mint,
		RawAmount:       e.rawAmount,
		Decimals:        decimals,
		UIAmount:        ui.InexactFloat64(),
		Name:            e.name,
		Symbol:          e.symbol,
		Logo:            e.logo,
		USDValue:        ui.InexactFloat64() * price,
		DecimalsAssumed: assumed,
	}
	if hasMeta {
		if meta.Name != "" {
			holding.Name = meta.Name
		}
		if meta.Symbol != "" {
			holding.Symbol = meta.Symbol
		}
		if meta.LogoURI != "" {
			holding.Logo = meta.LogoURI
		}
	}
	return holding, warn
}
