package bundles

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"solana-wallet-audit/internal/helius"
	"solana-wallet-audit/internal/storage"
	"solana-wallet-audit/internal/trenchbot"
)

const testMint = "6p6xgHyF7AeE6TZkSmFsko444wqoP15icUSqi2jfGiPN"

type stubBundles struct {
	analysis *trenchbot.BundleAdvancedResponse
	err      error
}

func (s *stubBundles) BundleAdvanced(_ context.Context, _ string) (*trenchbot.BundleAdvancedResponse, error) {
	return s.analysis, s.err
}

type stubMints struct {
	info *helius.MintInfo
	err  error
}

func (s *stubMints) MintInfo(_ context.Context, _ string) (*helius.MintInfo, error) {
	return s.info, s.err
}

func newAnalyzer(analysis *trenchbot.BundleAdvancedResponse, decimals int) *Analyzer {
	return NewAnalyzer(
		&stubBundles{analysis: analysis},
		&stubMints{info: &helius.MintInfo{Decimals: decimals}},
	)
}

func TestAnalyze_ClassificationGates(t *testing.T) {
	cases := []struct {
		name    string
		bundles int
		pct     float64
		want    bool
	}{
		{"no bundles with supply impact", 0, 5.0, false},
		{"bundles without supply impact", 3, 0, false},
		{"bundles with supply impact", 3, 12.5, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			analysis := &trenchbot.BundleAdvancedResponse{
				Ticker:                 "TEST",
				TotalBundles:           tc.bundles,
				TotalPercentageBundled: tc.pct,
			}
			report, err := newAnalyzer(analysis, 6).Analyze(context.Background(), testMint)
			if err != nil {
				t.Fatalf("Analyze failed: %v", err)
			}
			if report.IsBundled != tc.want {
				t.Errorf("expected IsBundled=%v for bundles=%d pct=%f", tc.want, tc.bundles, tc.pct)
			}
		})
	}
}

func TestAnalyze_DecimalAdjustmentAllowList(t *testing.T) {
	slot := int64(250000000)
	analysis := &trenchbot.BundleAdvancedResponse{
		Ticker:                 "ADJ",
		TotalBundles:           1,
		TotalPercentageBundled: 40.0,
		TotalTokensBundled:     400_000_000_000_000, // raw, 6 decimals
		DistributedAmount:      100_000_000_000_000,
		TotalHoldingAmount:     50_000_000_000_000,
		TotalHoldingPercentage: 5.0,
		Bundles: map[string]trenchbot.BundleDetails{
			"b1": {
				Slot:            &slot,
				TotalTokens:     400_000_000_000_000,
				HoldingAmount:   50_000_000_000_000,
				TokenPercentage: 40.0,
				HoldingPct:      5.0,
				TotalSOL:        120,
				UniqueWallets:   4,
				WalletInfo: map[string]trenchbot.WalletInfo{
					"wallet-a": {Tokens: 400_000_000_000_000, TokenPercentage: 40.0, SOL: 120, SOLPercentage: 100},
				},
			},
		},
	}

	report, err := newAnalyzer(analysis, 6).Analyze(context.Background(), testMint)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if math.Abs(analysis.TotalTokensBundled-400_000_000) > 1e-6 {
		t.Errorf("total_tokens_bundled not rescaled: %f", analysis.TotalTokensBundled)
	}
	if math.Abs(analysis.DistributedAmount-100_000_000) > 1e-6 {
		t.Errorf("distributed_amount not rescaled: %f", analysis.DistributedAmount)
	}
	if math.Abs(analysis.TotalHoldingAmount-50_000_000) > 1e-6 {
		t.Errorf("total_holding_amount not rescaled: %f", analysis.TotalHoldingAmount)
	}
	b := analysis.Bundles["b1"]
	if math.Abs(b.TotalTokens-400_000_000) > 1e-6 || math.Abs(b.HoldingAmount-50_000_000) > 1e-6 {
		t.Errorf("per-bundle amounts not rescaled: %+v", b)
	}
	if math.Abs(b.WalletInfo["wallet-a"].Tokens-400_000_000) > 1e-6 {
		t.Errorf("per-wallet tokens not rescaled: %f", b.WalletInfo["wallet-a"].Tokens)
	}

	// Percentages and SOL figures must come through untouched.
	if analysis.TotalPercentageBundled != 40.0 || b.TokenPercentage != 40.0 || b.TotalSOL != 120 {
		t.Errorf("percentage or SOL fields were rescaled")
	}
	if report.TotalHoldingAmount != 50_000_000 {
		t.Errorf("report should carry adjusted holding amount, got %f", report.TotalHoldingAmount)
	}
}

func TestAnalyze_MintLookupFailureDefaultsToNine(t *testing.T) {
	analysis := &trenchbot.BundleAdvancedResponse{
		TotalBundles:           1,
		TotalPercentageBundled: 10,
		TotalHoldingAmount:     5_000_000_000,
	}
	a := NewAnalyzer(&stubBundles{analysis: analysis}, &stubMints{err: errors.New("rpc down")})

	if _, err := a.Analyze(context.Background(), testMint); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if math.Abs(analysis.TotalHoldingAmount-5.0) > 1e-9 {
		t.Errorf("expected default 9-decimal rescale, got %f", analysis.TotalHoldingAmount)
	}
}

func TestAnalyze_BundleListCapAndOrder(t *testing.T) {
	bundles := make(map[string]trenchbot.BundleDetails, 30)
	for i := 0; i < 30; i++ {
		bundles[fmt.Sprintf("bundle-%02d", i)] = trenchbot.BundleDetails{
			TotalSOL:      float64(i),
			UniqueWallets: 2,
		}
	}
	analysis := &trenchbot.BundleAdvancedResponse{
		Ticker:                 "CAP",
		TotalBundles:           30,
		TotalPercentageBundled: 60,
		Bundles:                bundles,
	}

	report, err := newAnalyzer(analysis, 0).Analyze(context.Background(), testMint)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if !strings.Contains(report.Summary, "Found **25** bundles (showing top 25)") {
		t.Errorf("per-bundle listing should cap at %d", BundleListLimit)
	}
	if strings.Contains(report.Summary, "### **Bundle 26**") {
		t.Errorf("listing exceeded the cap")
	}
	// Highest-SOL bundle leads the listing.
	first := strings.Index(report.Summary, "| **Total SOL Spent** | 29.00 SOL |")
	if first < 0 {
		t.Fatalf("top bundle missing from listing")
	}
}

func TestAnalyze_FetchErrorDegrades(t *testing.T) {
	a := NewAnalyzer(&stubBundles{err: errors.New("502 from upstream")}, &stubMints{})

	report, err := a.Analyze(context.Background(), testMint)
	if err != nil {
		t.Fatalf("upstream failure must not propagate: %v", err)
	}
	if report.IsBundled || report.TotalBundles != 0 {
		t.Errorf("expected clean sentinel, got %+v", report)
	}
	if report.Ticker != "Unknown" || report.CreatorRiskLevel != "Unknown" {
		t.Errorf("sentinel should use Unknown placeholders, got %+v", report)
	}
	if !strings.Contains(report.Summary, "Error analyzing bundles") {
		t.Errorf("summary should explain the failure, got %q", report.Summary)
	}
}

func TestAnalyze_MissingAnalysisDegrades(t *testing.T) {
	a := NewAnalyzer(&stubBundles{}, &stubMints{})

	report, err := a.Analyze(context.Background(), testMint)
	if err != nil {
		t.Fatalf("missing analysis must not propagate: %v", err)
	}
	if !strings.Contains(report.Summary, "pump.fun") {
		t.Errorf("expected pump.fun guidance, got %q", report.Summary)
	}
}

func TestAnalyze_InvalidMint(t *testing.T) {
	a := NewAnalyzer(&stubBundles{}, &stubMints{})
	if _, err := a.Analyze(context.Background(), "nope"); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRenderMarkdown_SlotRowPresence(t *testing.T) {
	slot := int64(123456789)
	withSlot := &trenchbot.BundleAdvancedResponse{
		Ticker:       "slt",
		TotalBundles: 1,
		Bundles: map[string]trenchbot.BundleDetails{
			"b1": {Slot: &slot, TotalSOL: 1, UniqueWallets: 2},
		},
	}
	md := renderMarkdown(testMint, withSlot, true)
	if !strings.Contains(md, "| **Slot** | 123456789 |") {
		t.Errorf("slot row missing when slot is present")
	}

	withSlot.Bundles["b1"] = trenchbot.BundleDetails{TotalSOL: 1, UniqueWallets: 2}
	md = renderMarkdown(testMint, withSlot, true)
	if strings.Contains(md, "**Slot**") {
		t.Errorf("slot row must be omitted when slot is absent")
	}
}

func TestRenderMarkdown_Sections(t *testing.T) {
	trust := 80.0
	cex := 25.0
	analysis := &trenchbot.BundleAdvancedResponse{
		Ticker:                 "full",
		TotalBundles:           1,
		TotalPercentageBundled: 35.5,
		TotalHoldingAmount:     1_500_000,
		DistributedWallets:     12,
		DistributedAmount:      900_000,
		Bundles: map[string]trenchbot.BundleDetails{
			"b1": {
				TotalSOL:      42,
				UniqueWallets: 5,
				BundleAnalysis: &trenchbot.BundleAnalysis{
					PrimaryCategory: "sniper",
					IsLikelyBundle:  true,
				},
				FundingAnalysis: &trenchbot.FundingAnalysis{
					FundingTrustScore:   &trust,
					CEXFundedPercentage: &cex,
				},
				WalletInfo: map[string]trenchbot.WalletInfo{
					"4Nd1mYbMP3sLt1BkGq9p4BkTtXEsmVcqiBrfQeKgeevC": {Tokens: 1000, SOL: 42},
				},
			},
		},
		CreatorAnalysis: &trenchbot.CreatorAnalysis{
			Address:   "5qB4bXcQtNzYc8pViLEqDDuTqoynBnSRCqDL5zmSU7rj",
			RiskLevel: "LOW",
			History:   &trenchbot.CreatorHistory{TotalCoinsCreated: 3, RugCount: 1},
		},
	}

	md := renderMarkdown(testMint, analysis, true)

	for _, section := range []string{
		"# 🔍 Bundle Analysis: FULL",
		"## 📊 **Bundle Detection Summary**",
		"## 👤 **Creator Analysis**",
		"## 🎯 **Individual Bundle Analysis**",
		"## 📈 **Distribution Statistics**",
		"## 🔍 **Bundle Characteristics**",
		"## 🎯 **Final Assessment**",
		"🚨 **BUNDLED**",
		"Trust Score: 80/100",
		"4Nd1mYbM...QeKgeevC",
		"**Mint Address:** `" + testMint + "`",
	} {
		if !strings.Contains(md, section) {
			t.Errorf("rendered report missing %q", section)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{999, "999.00"},
		{1_500, "1.50K"},
		{2_340_000, "2.34M"},
		{7_100_000_000, "7.10B"},
	}
	for _, tc := range cases {
		if got := formatNumber(tc.in); got != tc.want {
			t.Errorf("formatNumber(%f) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
