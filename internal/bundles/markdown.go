package bundles

import (
	"fmt"
	"strings"

	"solana-wallet-audit/internal/solana"
	"solana-wallet-audit/internal/trenchbot"
)

// renderMarkdown renders the fixed-structure bundle report. Consumers
// pattern-match on the section layout and row order, so both are part of the
// contract; the Slot row is omitted when the bundle has no slot.
func renderMarkdown(mint string, analysis *trenchbot.BundleAdvancedResponse, isBundled bool) string {
	var sb strings.Builder

	ticker := strings.ToUpper(analysis.Ticker)
	if ticker == "" {
		ticker = "Token"
	}
	sb.WriteString(fmt.Sprintf("# 🔍 Bundle Analysis: %s\n\n", ticker))

	writeSummaryTable(&sb, mint, analysis, isBundled)
	writeCreatorTable(&sb, analysis.CreatorAnalysis)
	writeBundleDetails(&sb, analysis)
	writeDistributionStats(&sb, analysis)
	writeCharacteristics(&sb, analysis)
	writeFinalAssessment(&sb, analysis, isBundled)

	sb.WriteString(fmt.Sprintf("**Mint Address:** `%s`\n", mint))
	sb.WriteString(fmt.Sprintf("**Analysis Source:** [TrenchRadar Bundle Analysis](https://trench.bot/bundles/%s?all=true)", mint))

	return sb.String()
}

func writeSummaryTable(sb *strings.Builder, mint string, analysis *trenchbot.BundleAdvancedResponse, isBundled bool) {
	status := "✅ **Clean**"
	if isBundled {
		status = "🚨 **BUNDLED**"
	}
	ticker := analysis.Ticker
	if ticker == "" {
		ticker = "N/A"
	}
	heldTokens := "N/A"
	if analysis.TotalHoldingAmount > 0 {
		heldTokens = formatNumber(analysis.TotalHoldingAmount)
	}
	bonded := "No"
	if analysis.Bonded {
		bonded = "Yes"
	}

	sb.WriteString("## 📊 **Bundle Detection Summary**\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| **Bundle Status** | %s |\n", status))
	sb.WriteString(fmt.Sprintf("| **Ticker** | %s |\n", ticker))
	sb.WriteString(fmt.Sprintf("| **Total Bundles** | %d |\n", analysis.TotalBundles))
	sb.WriteString(fmt.Sprintf("| **Total SOL Spent** | %.2f SOL |\n", analysis.TotalSOLSpent))
	sb.WriteString(fmt.Sprintf("| **Bundled Total** | %.2f%% |\n", analysis.TotalPercentageBundled))
	sb.WriteString(fmt.Sprintf("| **Held Percentage** | %.2f%% |\n", analysis.TotalHoldingPercentage))
	sb.WriteString(fmt.Sprintf("| **Held Tokens** | %s |\n", heldTokens))
	sb.WriteString(fmt.Sprintf("| **Bonded** | %s |\n", bonded))
	sb.WriteString(fmt.Sprintf("| **Source** | [TrenchRadar](https://trench.bot/bundles/%s?all=true) |\n\n", mint))
}

func writeCreatorTable(sb *strings.Builder, creator *trenchbot.CreatorAnalysis) {
	if creator == nil {
		return
	}

	riskLevel := creator.RiskLevel
	if riskLevel == "" {
		riskLevel = "Unknown"
	}

	sb.WriteString("## 👤 **Creator Analysis**\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| **Creator Address** | `%s` |\n", creator.Address))
	sb.WriteString(fmt.Sprintf("| **Risk Level** | %s |\n", riskLevel))
	sb.WriteString(fmt.Sprintf("| **Current Holdings** | %g tokens |\n", creator.CurrentHoldings))
	if creator.History != nil {
		sb.WriteString(fmt.Sprintf("| **Previous Coins Created** | %d |\n", creator.History.TotalCoinsCreated))
		sb.WriteString(fmt.Sprintf("| **Rug History** | %d rugs |\n", creator.History.RugCount))
		sb.WriteString(fmt.Sprintf("| **Current Holdings** | %.2f%% |\n", creator.HoldingPercentage))
	}
	sb.WriteString("\n")
}

func writeBundleDetails(sb *strings.Builder, analysis *trenchbot.BundleAdvancedResponse) {
	if len(analysis.Bundles) == 0 {
		return
	}

	ranked := rankBundles(analysis.Bundles, BundleListLimit)

	plural := ""
	if len(ranked) > 1 {
		plural = "s"
	}
	sb.WriteString("## 🎯 **Individual Bundle Analysis**\n\n")
	sb.WriteString(fmt.Sprintf("Found **%d** bundle%s (showing top %d):\n\n", len(ranked), plural, len(ranked)))

	for i, rb := range ranked {
		bundle := rb.Bundle

		sb.WriteString(fmt.Sprintf("### **Bundle %d**\n\n", i+1))
		sb.WriteString("| Metric | Value |\n")
		sb.WriteString("|--------|-------|\n")
		sb.WriteString(fmt.Sprintf("| **Unique Wallets** | %d |\n", bundle.UniqueWallets))
		sb.WriteString(fmt.Sprintf("| **Total Tokens Bought** | %s |\n", formatNumber(bundle.TotalTokens)))
		sb.WriteString(fmt.Sprintf("| **Total SOL Spent** | %.2f SOL |\n", bundle.TotalSOL))
		sb.WriteString(fmt.Sprintf("| **Token Percentage** | %.2f%% |\n", bundle.TokenPercentage))
		sb.WriteString(fmt.Sprintf("| **Holding Percentage** | %.2f%% |\n", bundle.HoldingPct))
		sb.WriteString(fmt.Sprintf("| **Holding Amount** | %s |\n", formatNumber(bundle.HoldingAmount)))
		if bundle.Slot != nil {
			sb.WriteString(fmt.Sprintf("| **Slot** | %d |\n", *bundle.Slot))
		}
		sb.WriteString("\n")

		if ba := bundle.BundleAnalysis; ba != nil {
			category := ba.PrimaryCategory
			if category == "" {
				category = "N/A"
			}
			likely := "No"
			if ba.IsLikelyBundle {
				likely = "Yes"
			}
			sb.WriteString("**Bundle Analysis:**\n")
			sb.WriteString(fmt.Sprintf("- **Primary Category:** %s\n", category))
			sb.WriteString(fmt.Sprintf("- **Likely Team Bundle:** %s\n\n", likely))
		}

		if fa := bundle.FundingAnalysis; fa != nil {
			sb.WriteString("**Funding Analysis:** ")
			if fa.FundingTrustScore != nil {
				sb.WriteString(fmt.Sprintf("Trust Score: %g/100, ", *fa.FundingTrustScore))
			} else {
				sb.WriteString("Trust Score: N/A/100, ")
			}
			sb.WriteString(fmt.Sprintf("CEX: %.2f%%, ", floatOrZero(fa.CEXFundedPercentage)))
			sb.WriteString(fmt.Sprintf("Mixer: %.2f%%\n\n", floatOrZero(fa.MixerFundedPercentage)))
		}

		if len(bundle.WalletInfo) > 0 {
			sb.WriteString("**Wallet Information:**\n\n")
			for _, rw := range rankWallets(bundle.WalletInfo) {
				sb.WriteString(fmt.Sprintf("**%s** [📊](https://solscan.io/account/%s)\n", solana.ShortenAddress(rw.Address), rw.Address))
				sb.WriteString(fmt.Sprintf("- **Tokens Bought:** %s (%.2f%%)\n", formatNumber(rw.Info.Tokens), rw.Info.TokenPercentage))
				sb.WriteString(fmt.Sprintf("- **SOL Spent:** %.2f SOL (%.2f%%)\n\n", rw.Info.SOL, rw.Info.SOLPercentage))
			}
		}

		sb.WriteString("---\n\n")
	}
}

func writeDistributionStats(sb *strings.Builder, analysis *trenchbot.BundleAdvancedResponse) {
	if analysis.DistributedWallets <= 0 {
		return
	}

	sb.WriteString("## 📈 **Distribution Statistics**\n\n")
	sb.WriteString(fmt.Sprintf("- **Distributed Amount:** %s tokens (%.2f%% of supply)\n",
		formatNumber(analysis.DistributedAmount), analysis.DistributedPercentage))
	sb.WriteString(fmt.Sprintf("- **Distributed to:** %d wallets\n", analysis.DistributedWallets))
	sb.WriteString(fmt.Sprintf("- **Current Holdings in Bundles:** %s tokens (%.2f%% of supply)\n\n",
		formatNumber(analysis.TotalHoldingAmount), analysis.TotalHoldingPercentage))
}

func writeCharacteristics(sb *strings.Builder, analysis *trenchbot.BundleAdvancedResponse) {
	if len(analysis.Bundles) == 0 {
		return
	}

	ranked := rankBundles(analysis.Bundles, len(analysis.Bundles))

	primary := "new wallet"
	if ba := ranked[0].Bundle.BundleAnalysis; ba != nil && ba.PrimaryCategory != "" {
		primary = ba.PrimaryCategory
	}

	maxWallets := 0
	minPct, maxPct := ranked[0].Bundle.TokenPercentage, ranked[0].Bundle.TokenPercentage
	for _, rb := range ranked {
		if rb.Bundle.UniqueWallets > maxWallets {
			maxWallets = rb.Bundle.UniqueWallets
		}
		if rb.Bundle.TokenPercentage < minPct {
			minPct = rb.Bundle.TokenPercentage
		}
		if rb.Bundle.TokenPercentage > maxPct {
			maxPct = rb.Bundle.TokenPercentage
		}
	}

	sb.WriteString("## 🔍 **Bundle Characteristics**\n\n")
	sb.WriteString(fmt.Sprintf("- **Most bundles are characterized by:** \"%s\" categories\n", primary))
	sb.WriteString(fmt.Sprintf("- **Bundle sizes vary from:** 2-%d wallets per bundle\n", maxWallets))
	sb.WriteString(fmt.Sprintf("- **Individual bundle percentages range from:** ~%.2f%% to ~%.2f%% of total supply\n\n", minPct, maxPct))
}

func writeFinalAssessment(sb *strings.Builder, analysis *trenchbot.BundleAdvancedResponse, isBundled bool) {
	sb.WriteString("## 🎯 **Final Assessment**\n\n")
	if isBundled {
		sb.WriteString(fmt.Sprintf("⚠️ **This token shows clear signs of coordinated buying through multiple bundles, with over %.2f%% of the tokens being involved in bundle transactions.** ",
			analysis.TotalPercentageBundled))
		if creator := analysis.CreatorAnalysis; creator != nil && creator.History != nil && creator.History.RugCount > 0 {
			sb.WriteString("While the creator's history shows low risk, the high percentage of bundled tokens suggests potential price manipulation risk. ")
		}
		sb.WriteString("Users should exercise caution when trading this token.\n\n")
	} else {
		sb.WriteString("✅ **Good News:** No significant bundling activity detected for this token.\n\n")
	}
}

// formatNumber renders large token quantities as K/M/B figures.
func formatNumber(n float64) string {
	switch {
	case n >= 1e9:
		return fmt.Sprintf("%.2fB", n/1e9)
	case n >= 1e6:
		return fmt.Sprintf("%.2fM", n/1e6)
	case n >= 1e3:
		return fmt.Sprintf("%.2fK", n/1e3)
	default:
		return fmt.Sprintf("%.2f", n)
	}
}

func floatOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
