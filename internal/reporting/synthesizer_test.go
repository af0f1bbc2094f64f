package reporting

import (
	"strings"
	"testing"
	"time"

	"solana-wallet-audit/internal/domain"
)

const testWallet = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"

func fixedClock() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func finding(mint string, bundled bool) domain.BundleFinding {
	return domain.BundleFinding{Mint: mint, Symbol: "TKN", IsBundled: bundled, RiskLevel: "Unknown"}
}

func emptyInputs() (*domain.Portfolio, *domain.NFTPortfolio) {
	return &domain.Portfolio{Wallet: testWallet}, &domain.NFTPortfolio{Wallet: testWallet}
}

func TestSynthesize_RiskScore(t *testing.T) {
	cases := []struct {
		name     string
		findings []domain.BundleFinding
		want     int
	}{
		{"no findings", nil, 0},
		{"one clean", []domain.BundleFinding{finding("a", false)}, 0},
		{"one bundled", []domain.BundleFinding{finding("a", true)}, 25},
		{"three bundled", []domain.BundleFinding{finding("a", true), finding("b", true), finding("c", true)}, 75},
		{"clamped at 100", []domain.BundleFinding{
			finding("a", true), finding("b", true), finding("c", true),
			finding("d", true), finding("e", true),
		}, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, nfts := emptyInputs()
			r := NewSynthesizer().WithClock(fixedClock).Synthesize(testWallet, p, tc.findings, "", nfts)
			if r.RiskScore != tc.want {
				t.Errorf("expected risk score %d, got %d", tc.want, r.RiskScore)
			}
		})
	}
}

func TestSynthesize_RecommendationsFixedOrder(t *testing.T) {
	p := &domain.Portfolio{
		Wallet: testWallet,
		Native: domain.NativeBalance{SOL: 20, USD: 2500},
	}
	nfts := &domain.NFTPortfolio{Wallet: testWallet, TotalNFTs: 60}
	findings := []domain.BundleFinding{finding("a", true)}

	r := NewSynthesizer().WithClock(fixedClock).Synthesize(testWallet, p, findings, "", nfts)

	want := []string{
		"⚠️ Consider reviewing bundled tokens for potential risks",
		"💰 Consider diversifying large SOL holdings",
		"🎨 Large NFT collection - consider floor price monitoring",
	}
	if len(r.Recommendations) != len(want) {
		t.Fatalf("expected %d recommendations, got %v", len(want), r.Recommendations)
	}
	for i := range want {
		if r.Recommendations[i] != want[i] {
			t.Errorf("recommendation %d: expected %q, got %q", i, want[i], r.Recommendations[i])
		}
	}
}

func TestSynthesize_HealthyFallback(t *testing.T) {
	p, nfts := emptyInputs()
	r := NewSynthesizer().WithClock(fixedClock).Synthesize(testWallet, p, nil, "", nfts)

	if len(r.Recommendations) != 1 || !strings.Contains(r.Recommendations[0], "Portfolio looks healthy") {
		t.Errorf("expected healthy fallback, got %v", r.Recommendations)
	}
}

func TestSynthesize_SOLThresholdExclusive(t *testing.T) {
	p := &domain.Portfolio{Wallet: testWallet, Native: domain.NativeBalance{USD: 1000}}
	nfts := &domain.NFTPortfolio{Wallet: testWallet}

	r := NewSynthesizer().WithClock(fixedClock).Synthesize(testWallet, p, nil, "", nfts)
	for _, rec := range r.Recommendations {
		if strings.Contains(rec, "diversifying") {
			t.Errorf("$1000 exactly must not trigger the diversification hint")
		}
	}
}

func TestSynthesize_MarkdownSections(t *testing.T) {
	p := &domain.Portfolio{
		Wallet:   testWallet,
		Native:   domain.NativeBalance{SOL: 1.5, USD: 150},
		Holdings: []domain.TokenHolding{{Mint: "a", USDValue: 10}},
		TotalUSD: 160,
	}
	nfts := &domain.NFTPortfolio{Wallet: testWallet, TotalNFTs: 2, TotalCollections: 1, EstimatedValueSOL: 3.5}
	findings := []domain.BundleFinding{finding("a", true), finding("b", false)}

	r := NewSynthesizer().WithClock(fixedClock).Synthesize(testWallet, p, findings, "Bundle Analysis Summary:\n\nTKN: 🚨 BUNDLED (4 bundles)\n", nfts)

	for _, want := range []string{
		"# 📊 Comprehensive Portfolio Analysis",
		"**Wallet:** `" + testWallet + "`",
		"- **SOL Balance:** 1.5000 SOL ($150.00)",
		"- **Token Count:** 1 token\n",
		"- **Total Portfolio Value:** $160.00",
		"- **Risk Score:** 25/100",
		"- **Bundled Tokens:** 1/2 analyzed",
		"TKN: 🚨 BUNDLED (4 bundles)",
		"- **Total NFTs:** 2",
		"- **Estimated NFT Value:** 3.50 SOL",
		"## 📋 Recommendations",
		"*Analysis completed at 2025-06-15T12:00:00Z*",
	} {
		if !strings.Contains(r.Markdown, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if r.GeneratedAt != fixedClock() {
		t.Errorf("expected injected clock timestamp, got %v", r.GeneratedAt)
	}
}
