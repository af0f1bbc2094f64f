// Package nft aggregates a wallet's regular NFTs into per-collection groups
// with marketplace floor prices.
package nft

import (
	"context"
	"fmt"

	"solana-wallet-audit/internal/domain"
	"solana-wallet-audit/internal/helius"
	"solana-wallet-audit/internal/magiceden"
	"solana-wallet-audit/internal/solana"
	"solana-wallet-audit/internal/storage"
)

// UncategorizedCollection is the group for NFTs without collection metadata.
const UncategorizedCollection = "Uncategorized"

// NFTSource is the indexed non-fungible asset lookup.
type NFTSource interface {
	NonFungibleAssets(ctx context.Context, wallet string) (*helius.SearchAssetsResult, error)
}

// MarketSource resolves collection identifiers and floor-price stats.
type MarketSource interface {
	TokenCollection(ctx context.Context, nftMint string) (string, error)
	CollectionStats(ctx context.Context, slug string) (*magiceden.CollectionStats, error)
}

// Aggregator builds NFT portfolios.
type Aggregator struct {
	assets NFTSource
	market MarketSource
}

// NewAggregator creates an NFT aggregator.
func NewAggregator(assets NFTSource, market MarketSource) *Aggregator {
	return &Aggregator{assets: assets, market: market}
}

// Aggregate assembles the non-fungible portfolio for one wallet.
//
// Compressed NFTs and non-NFT interfaces are excluded. Marketplace lookups
// run one collection at a time; a failed lookup leaves that collection's
// floor unknown without affecting the others. A total failure of the indexed
// fetch degrades to an empty portfolio with an explanatory text.
func (a *Aggregator) Aggregate(ctx context.Context, wallet string) (*domain.NFTPortfolio, error) {
	if !solana.ValidLength(wallet) {
		return nil, fmt.Errorf("%w: wallet address must be %d-%d characters",
			storage.ErrInvalidInput, solana.MinAddressLen, solana.MaxAddressLen)
	}

	result, err := a.assets.NonFungibleAssets(ctx, wallet)
	if err != nil {
		return &domain.NFTPortfolio{
			Wallet: wallet,
			Text:   fmt.Sprintf("Error fetching NFT portfolio: %v", err),
		}, nil
	}

	groups := groupByCollection(result.Items)

	p := &domain.NFTPortfolio{Wallet: wallet}
	for _, g := range groups {
		collection := domain.NFTCollection{
			Name:      g.name,
			Symbol:    g.symbol,
			ItemCount: len(g.items),
		}
		p.TotalNFTs += len(g.items)

		stats := a.collectionStats(ctx, g.items[0].ID)
		if stats != nil && stats.FloorPrice != nil {
			collection.FloorPrice = stats.FloorPrice
			collection.ListedCount = stats.ListedCount
			if est := *stats.FloorPrice * float64(len(g.items)); est > 0 {
				collection.EstimatedValue = &est
				p.EstimatedValueSOL += est
			}
		}

		collection.Items = g.items
		if len(collection.Items) > domain.CollectionSampleLimit {
			collection.Items = collection.Items[:domain.CollectionSampleLimit]
		}
		p.Collections = append(p.Collections, collection)
	}

	rankCollections(p.Collections)
	p.TotalCollections = len(p.Collections)
	p.Text = renderText(p)
	return p, nil
}

// collectionStats resolves the marketplace slug from a representative mint and
// fetches its stats. Any failure along the way means "unknown", never an
// error.
func (a *Aggregator) collectionStats(ctx context.Context, mint string) *magiceden.CollectionStats {
	slug, err := a.market.TokenCollection(ctx, mint)
	if err != nil || slug == "" {
		return nil
	}
	stats, err := a.market.CollectionStats(ctx, slug)
	if err != nil {
		return nil
	}
	return stats
}

// group is one collection bucket during aggregation.
type group struct {
	name   string
	symbol string
	items  []domain.NFTItem
}

// groupByCollection filters regular NFTs and buckets them by collection
// display name, preserving first-seen order.
func groupByCollection(items []helius.Asset) []*group {
	var groups []*group
	index := make(map[string]*group)

	for _, item := range items {
		if item.Interface != helius.InterfaceV1NFT && item.Interface != helius.InterfaceProgrammableNFT {
			continue
		}
		if item.Compression != nil && item.Compression.Compressed {
			continue
		}

		name, symbol := collectionIdentity(item)
		g, ok := index[name]
		if !ok {
			g = &group{name: name, symbol: symbol}
			index[name] = g
			groups = append(groups, g)
		}
		g.items = append(g.items, toItem(item))
	}
	return groups
}

// collectionIdentity extracts the collection display name and symbol from an
// asset's first grouping entry.
func collectionIdentity(item helius.Asset) (name, symbol string) {
	name = UncategorizedCollection
	if len(item.Grouping) > 0 && item.Grouping[0].CollectionMetadata != nil {
		cm := item.Grouping[0].CollectionMetadata
		if cm.Name != "" {
			name = cm.Name
		}
		symbol = cm.Symbol
	}
	return name, symbol
}

func toItem(item helius.Asset) domain.NFTItem {
	out := domain.NFTItem{ID: item.ID, Name: "Unnamed NFT"}
	if item.Content != nil {
		if item.Content.Metadata.Name != "" {
			out.Name = item.Content.Metadata.Name
		}
		out.Symbol = item.Content.Metadata.Symbol
		out.Description = item.Content.Metadata.Description
		out.Image = item.Content.Links.Image
		out.ExternalURL = item.Content.Links.ExternalURL
	}
	return out
}
