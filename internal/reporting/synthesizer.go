// Package reporting synthesizes the final wallet analysis from the portfolio,
// bundle, and NFT results.
package reporting

import (
	"fmt"
	"strings"
	"time"

	"solana-wallet-audit/internal/domain"
)

// BundledTokenPoints is the risk-score weight of each bundled token among the
// analyzed top holdings.
const BundledTokenPoints = 25

// Synthesizer combines branch results into a PortfolioReport.
type Synthesizer struct {
	now func() time.Time // Injectable clock for deterministic output
}

// NewSynthesizer creates a report synthesizer.
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (s *Synthesizer) WithClock(now func() time.Time) *Synthesizer {
	s.now = now
	return s
}

// Synthesize builds the final report.
//
// The risk score counts bundled tokens among the analyzed holdings at
// BundledTokenPoints each, clamped to 100. Recommendations are emitted in a
// fixed order so repeated runs over the same data produce identical output.
func (s *Synthesizer) Synthesize(wallet string, p *domain.Portfolio, findings []domain.BundleFinding, bundleSummary string, nfts *domain.NFTPortfolio) *domain.PortfolioReport {
	bundled := 0
	for _, f := range findings {
		if f.IsBundled {
			bundled++
		}
	}

	riskScore := bundled * BundledTokenPoints
	if riskScore > 100 {
		riskScore = 100
	}

	var recommendations []string
	if bundled > 0 {
		recommendations = append(recommendations, "⚠️ Consider reviewing bundled tokens for potential risks")
	}
	if p.Native.USD > 1000 {
		recommendations = append(recommendations, "💰 Consider diversifying large SOL holdings")
	}
	if nfts.TotalNFTs > 50 {
		recommendations = append(recommendations, "🎨 Large NFT collection - consider floor price monitoring")
	}
	if len(recommendations) == 0 {
		recommendations = append(recommendations, "✅ Portfolio looks healthy - continue monitoring")
	}

	report := &domain.PortfolioReport{
		Wallet:          wallet,
		GeneratedAt:     s.now(),
		RiskScore:       riskScore,
		Recommendations: recommendations,
		Portfolio:       p,
		BundleFindings:  findings,
		BundleSummary:   bundleSummary,
		NFTs:            nfts,
	}
	report.Markdown = renderReport(report, bundled)
	return report
}

// renderReport produces the final Markdown document. The section layout is
// part of the contract.
func renderReport(r *domain.PortfolioReport, bundled int) string {
	var sb strings.Builder

	sb.WriteString("# 📊 Comprehensive Portfolio Analysis\n\n")
	sb.WriteString(fmt.Sprintf("**Wallet:** `%s`\n\n", r.Wallet))

	sb.WriteString("## 💰 Token Holdings\n")
	sb.WriteString(fmt.Sprintf("- **SOL Balance:** %.4f SOL ($%.2f)\n", r.Portfolio.Native.SOL, r.Portfolio.Native.USD))
	plural := "s"
	if len(r.Portfolio.Holdings) == 1 {
		plural = ""
	}
	sb.WriteString(fmt.Sprintf("- **Token Count:** %d token%s\n", len(r.Portfolio.Holdings), plural))
	sb.WriteString(fmt.Sprintf("- **Total Portfolio Value:** $%.2f\n\n", r.Portfolio.TotalUSD))

	sb.WriteString("## 🚨 Risk Analysis\n")
	sb.WriteString(fmt.Sprintf("- **Risk Score:** %d/100\n", r.RiskScore))
	sb.WriteString(fmt.Sprintf("- **Bundled Tokens:** %d/%d analyzed\n\n", bundled, len(r.BundleFindings)))

	if r.BundleSummary != "" {
		sb.WriteString(r.BundleSummary)
		sb.WriteString("\n")
	}

	sb.WriteString("## 🎨 NFT Collection\n")
	sb.WriteString(fmt.Sprintf("- **Total NFTs:** %d\n", r.NFTs.TotalNFTs))
	sb.WriteString(fmt.Sprintf("- **Collections:** %d\n", r.NFTs.TotalCollections))
	sb.WriteString(fmt.Sprintf("- **Estimated NFT Value:** %.2f SOL\n\n", r.NFTs.EstimatedValueSOL))

	sb.WriteString("## 📋 Recommendations\n")
	for _, rec := range r.Recommendations {
		sb.WriteString(fmt.Sprintf("- %s\n", rec))
	}

	sb.WriteString("\n---\n")
	sb.WriteString(fmt.Sprintf("*Analysis completed at %s*", r.GeneratedAt.Format(time.RFC3339)))

	return sb.String()
}
