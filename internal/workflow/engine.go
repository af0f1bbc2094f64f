// Package workflow executes the wallet analysis step graph.
//
// The graph is fixed: get-portfolio, then a parallel stage running
// analyze-bundles and get-nfts, then combine-results and generate-report.
// Branches never share mutable state and a degraded branch never blocks the
// join.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"solana-wallet-audit/internal/domain"
	"solana-wallet-audit/internal/observability"
	"solana-wallet-audit/internal/solana"
	"solana-wallet-audit/internal/storage"
)

// BundleAnalysisLimit bounds bundle analysis to the top holdings to limit
// external calls.
const BundleAnalysisLimit = 3

// Context carries the original request inputs across the step graph. Steps
// that need the wallet address after the fan-out read it from here, never
// from another step's output.
type Context struct {
	WalletAddress string
}

// Step is one named unit of the graph with a typed input/output contract.
type Step[I, O any] struct {
	ID  string
	Run func(ctx context.Context, wf Context, in I) (O, error)
}

// Execute runs the step and records its duration.
func (s Step[I, O]) Execute(ctx context.Context, wf Context, in I) (O, error) {
	start := time.Now()
	out, err := s.Run(ctx, wf, in)
	observability.RecordStep(s.ID, time.Since(start).Seconds())
	return out, err
}

// PortfolioFetcher is the fungible-portfolio branch dependency.
type PortfolioFetcher interface {
	Fetch(ctx context.Context, wallet string) (*domain.Portfolio, error)
}

// BundleAnalyzer is the per-mint bundle analysis dependency.
type BundleAnalyzer interface {
	Analyze(ctx context.Context, mint string) (*domain.BundleReport, error)
}

// NFTAggregator is the non-fungible branch dependency.
type NFTAggregator interface {
	Aggregate(ctx context.Context, wallet string) (*domain.NFTPortfolio, error)
}

// ReportSynthesizer combines the joined results into the final report.
type ReportSynthesizer interface {
	Synthesize(wallet string, p *domain.Portfolio, findings []domain.BundleFinding, bundleSummary string, nfts *domain.NFTPortfolio) *domain.PortfolioReport
}

// Engine wires the analysis steps.
type Engine struct {
	portfolio   PortfolioFetcher
	bundles     BundleAnalyzer
	nfts        NFTAggregator
	synthesizer ReportSynthesizer
	logger      *slog.Logger
}

// NewEngine creates an analysis engine.
func NewEngine(portfolio PortfolioFetcher, bundles BundleAnalyzer, nfts NFTAggregator, synthesizer ReportSynthesizer, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		portfolio:   portfolio,
		bundles:     bundles,
		nfts:        nfts,
		synthesizer: synthesizer,
		logger:      logger,
	}
}

// bundleResult is the analyze-bundles branch output.
type bundleResult struct {
	Findings []domain.BundleFinding
	Summary  string
}

// joined is the combine-results output feeding report generation.
type joined struct {
	Portfolio *domain.Portfolio
	Bundles   bundleResult
	NFTs      *domain.NFTPortfolio
}

// Run executes the full graph for one wallet.
//
// The only hard error is an invalid wallet address. Every upstream failure
// has already been converted to a degraded sentinel by the owning component,
// so the join always proceeds.
func (e *Engine) Run(ctx context.Context, wallet string) (*domain.PortfolioReport, error) {
	if !solana.ValidLength(wallet) {
		return nil, fmt.Errorf("%w: wallet address must be %d-%d characters",
			storage.ErrInvalidInput, solana.MinAddressLen, solana.MaxAddressLen)
	}

	wf := Context{WalletAddress: wallet}
	start := time.Now()
	e.logger.Info("analysis started", "wallet", wallet)

	portfolio, err := e.getPortfolioStep().Execute(ctx, wf, wallet)
	if err != nil {
		observability.RecordAnalysis("invalid_input", time.Since(start).Seconds())
		return nil, err
	}

	// Parallel stage. The NFT branch takes the wallet from the workflow
	// context, not from the portfolio output; the bundle branch sees only the
	// top holdings.
	var (
		wg      sync.WaitGroup
		bundles bundleResult
		nftView *domain.NFTPortfolio
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		bundles, _ = e.analyzeBundlesStep().Execute(ctx, wf, portfolio.TopHoldings)
	}()
	go func() {
		defer wg.Done()
		nftView, _ = e.getNFTsStep().Execute(ctx, wf, struct{}{})
	}()
	wg.Wait()

	combined, _ := e.combineStep().Execute(ctx, wf, joined{
		Portfolio: portfolio,
		Bundles:   bundles,
		NFTs:      nftView,
	})

	report, _ := e.generateReportStep().Execute(ctx, wf, combined)

	observability.RecordAnalysis("ok", time.Since(start).Seconds())
	observability.RecordRiskScore(report.RiskScore)
	e.logger.Info("analysis completed",
		"wallet", wallet,
		"risk_score", report.RiskScore,
		"holdings", len(portfolio.Holdings),
		"nfts", report.NFTs.TotalNFTs,
		"duration", time.Since(start))
	return report, nil
}

func (e *Engine) getPortfolioStep() Step[string, *domain.Portfolio] {
	return Step[string, *domain.Portfolio]{
		ID: "get-portfolio",
		Run: func(ctx context.Context, _ Context, wallet string) (*domain.Portfolio, error) {
			return e.portfolio.Fetch(ctx, wallet)
		},
	}
}

// analyzeBundlesStep checks the top holdings for bundle activity, one mint at
// a time. A failed analysis of one mint degrades that finding only.
func (e *Engine) analyzeBundlesStep() Step[[]domain.TokenHolding, bundleResult] {
	return Step[[]domain.TokenHolding, bundleResult]{
		ID: "analyze-bundles",
		Run: func(ctx context.Context, _ Context, holdings []domain.TokenHolding) (bundleResult, error) {
			if len(holdings) > BundleAnalysisLimit {
				holdings = holdings[:BundleAnalysisLimit]
			}

			result := bundleResult{Summary: "Bundle Analysis Summary:\n\n"}
			for _, h := range holdings {
				symbol := h.Symbol
				if symbol == "" {
					symbol = "Unknown"
				}

				report, err := e.bundles.Analyze(ctx, h.Mint)
				if err != nil {
					e.logger.Warn("bundle analysis failed", "mint", h.Mint, "error", err)
					observability.RecordBranchFailure("bundles")
					result.Findings = append(result.Findings, domain.BundleFinding{
						Mint:      h.Mint,
						Symbol:    symbol,
						USDValue:  h.USDValue,
						RiskLevel: "Unknown",
					})
					result.Summary += fmt.Sprintf("%s: ❌ Analysis failed\n", symbol)
					continue
				}

				result.Findings = append(result.Findings, domain.BundleFinding{
					Mint:        h.Mint,
					Symbol:      symbol,
					USDValue:    h.USDValue,
					IsBundled:   report.IsBundled,
					BundleCount: report.TotalBundles,
					RiskLevel:   report.CreatorRiskLevel,
				})
				verdict := "✅ Clean"
				if report.IsBundled {
					verdict = "🚨 BUNDLED"
				}
				result.Summary += fmt.Sprintf("%s: %s (%d bundles)\n", symbol, verdict, report.TotalBundles)
			}
			return result, nil
		},
	}
}

// getNFTsStep aggregates the NFT portfolio. The wallet comes from the
// workflow context so the step works past the fan-out without reading sibling
// outputs.
func (e *Engine) getNFTsStep() Step[struct{}, *domain.NFTPortfolio] {
	return Step[struct{}, *domain.NFTPortfolio]{
		ID: "get-nfts",
		Run: func(ctx context.Context, wf Context, _ struct{}) (*domain.NFTPortfolio, error) {
			view, err := e.nfts.Aggregate(ctx, wf.WalletAddress)
			if err != nil {
				e.logger.Warn("nft aggregation failed", "wallet", wf.WalletAddress, "error", err)
				observability.RecordBranchFailure("nfts")
				return &domain.NFTPortfolio{
					Wallet: wf.WalletAddress,
					Text:   fmt.Sprintf("Error fetching NFT portfolio: %v", err),
				}, nil
			}
			return view, nil
		},
	}
}

func (e *Engine) combineStep() Step[joined, joined] {
	return Step[joined, joined]{
		ID: "combine-results",
		Run: func(_ context.Context, _ Context, in joined) (joined, error) {
			return in, nil
		},
	}
}

func (e *Engine) generateReportStep() Step[joined, *domain.PortfolioReport] {
	return Step[joined, *domain.PortfolioReport]{
		ID: "generate-report",
		Run: func(_ context.Context, wf Context, in joined) (*domain.PortfolioReport, error) {
			return e.synthesizer.Synthesize(wf.WalletAddress, in.Portfolio, in.Bundles.Findings, in.Bundles.Summary, in.NFTs), nil
		},
	}
}
