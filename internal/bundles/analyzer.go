// Package bundles analyzes coordinated-acquisition clusters for a token mint
// and derives a risk verdict with a fixed-structure Markdown breakdown.
package bundles

import (
	"context"
	"fmt"
	"math"
	"sort"

	"solana-wallet-audit/internal/domain"
	"solana-wallet-audit/internal/helius"
	"solana-wallet-audit/internal/solana"
	"solana-wallet-audit/internal/storage"
	"solana-wallet-audit/internal/trenchbot"
)

// BundleListLimit caps the detailed per-bundle listing.
const BundleListLimit = 25

// BundleSource fetches the cluster-analysis payload for a mint.
// A (nil, nil) return means no analysis exists for the mint.
type BundleSource interface {
	BundleAdvanced(ctx context.Context, mint string) (*trenchbot.BundleAdvancedResponse, error)
}

// MintSource resolves mint account info for decimal adjustment.
type MintSource interface {
	MintInfo(ctx context.Context, mint string) (*helius.MintInfo, error)
}

// Analyzer derives bundle risk verdicts.
type Analyzer struct {
	bundles BundleSource
	mints   MintSource
}

// NewAnalyzer creates a bundle analyzer.
func NewAnalyzer(bundles BundleSource, mints MintSource) *Analyzer {
	return &Analyzer{bundles: bundles, mints: mints}
}

// Analyze produces the bundle report for one mint.
//
// Every upstream failure degrades to a clean/unknown sentinel report with the
// explanation embedded in the formatted summary. The only hard error is an
// invalid mint identifier.
func (a *Analyzer) Analyze(ctx context.Context, mint string) (*domain.BundleReport, error) {
	if !solana.ValidLength(mint) {
		return nil, fmt.Errorf("%w: mint address must be %d-%d characters",
			storage.ErrInvalidInput, solana.MinAddressLen, solana.MaxAddressLen)
	}

	analysis, err := a.bundles.BundleAdvanced(ctx, mint)
	if err != nil {
		return sentinelReport(mint, fmt.Sprintf("Error analyzing bundles: %v", err)), nil
	}
	if analysis == nil {
		return sentinelReport(mint, "Unable to fetch bundle data. Please make sure this is a pump.fun token."), nil
	}

	adjustDecimals(analysis, a.mintDecimals(ctx, mint))

	// Both gates are required: detected clusters with zero supply impact do
	// not count as bundled.
	isBundled := analysis.TotalBundles > 0 && analysis.TotalPercentageBundled > 0

	report := &domain.BundleReport{
		Mint:                   mint,
		IsBundled:              isBundled,
		Ticker:                 analysis.Ticker,
		TotalBundles:           analysis.TotalBundles,
		TotalPercentageBundled: analysis.TotalPercentageBundled,
		TotalHoldingPercentage: analysis.TotalHoldingPercentage,
		TotalHoldingAmount:     analysis.TotalHoldingAmount,
		Bonded:                 analysis.Bonded,
		CreatorRiskLevel:       "Unknown",
		Summary:                renderMarkdown(mint, analysis, isBundled),
	}
	if report.Ticker == "" {
		report.Ticker = "Unknown"
	}
	if creator := analysis.CreatorAnalysis; creator != nil {
		if creator.RiskLevel != "" {
			report.CreatorRiskLevel = creator.RiskLevel
		}
		if creator.History != nil {
			report.RugCount = creator.History.RugCount
		}
	}
	return report, nil
}

// mintDecimals resolves the mint's decimals, defaulting to 9 when the lookup
// fails or the account is missing.
func (a *Analyzer) mintDecimals(ctx context.Context, mint string) int {
	info, err := a.mints.MintInfo(ctx, mint)
	if err != nil || info == nil {
		return 9
	}
	return info.Decimals
}

// adjustDecimals rescales the fields that carry raw token quantities by
// 10^decimals. The set is a fixed allow-list applied by explicit field
// access: total_tokens_bundled, distributed_amount, total_holding_amount,
// per-bundle total_tokens and holding_amount, and per-wallet tokens.
// Percentages and counts are never rescaled.
func adjustDecimals(analysis *trenchbot.BundleAdvancedResponse, decimals int) {
	scale := math.Pow(10, float64(decimals))
	if scale == 0 {
		return
	}

	analysis.TotalTokensBundled /= scale
	analysis.DistributedAmount /= scale
	analysis.TotalHoldingAmount /= scale

	for id, bundle := range analysis.Bundles {
		bundle.TotalTokens /= scale
		bundle.HoldingAmount /= scale
		for addr, wallet := range bundle.WalletInfo {
			wallet.Tokens /= scale
			bundle.WalletInfo[addr] = wallet
		}
		analysis.Bundles[id] = bundle
	}
}

// sentinelReport is the degraded "clean, unknown" result used whenever the
// analysis cannot be performed.
func sentinelReport(mint, reason string) *domain.BundleReport {
	return &domain.BundleReport{
		Mint:             mint,
		Ticker:           "Unknown",
		CreatorRiskLevel: "Unknown",
		Summary:          reason,
	}
}

// rankedBundle pairs a bundle with its identifier for deterministic ranking.
type rankedBundle struct {
	ID     string
	Bundle trenchbot.BundleDetails
}

// rankBundles orders clusters by SOL spent descending (ties by ID) and caps
// the listing.
func rankBundles(bundles map[string]trenchbot.BundleDetails, limit int) []rankedBundle {
	ranked := make([]rankedBundle, 0, len(bundles))
	for id, b := range bundles {
		ranked = append(ranked, rankedBundle{ID: id, Bundle: b})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Bundle.TotalSOL != ranked[j].Bundle.TotalSOL {
			return ranked[i].Bundle.TotalSOL > ranked[j].Bundle.TotalSOL
		}
		return ranked[i].ID < ranked[j].ID
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// rankedWallet pairs a wallet address with its breakdown.
type rankedWallet struct {
	Address string
	Info    trenchbot.WalletInfo
}

// rankWallets orders a cluster's wallets by SOL spent descending.
func rankWallets(wallets map[string]trenchbot.WalletInfo) []rankedWallet {
	ranked := make([]rankedWallet, 0, len(wallets))
	for addr, info := range wallets {
		ranked = append(ranked, rankedWallet{Address: addr, Info: info})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Info.SOL != ranked[j].Info.SOL {
			return ranked[i].Info.SOL > ranked[j].Info.SOL
		}
		return ranked[i].Address < ranked[j].Address
	})
	return ranked
}
