package portfolio

import (
	"fmt"
	"strings"

	"solana-wallet-audit/internal/domain"
)

// renderSummary produces the Markdown wallet summary. Consumers render this
// text verbatim, so the structure is part of the contract.
func renderSummary(p *domain.Portfolio) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Here is the summary of wallet `%s`:\n\n", p.Wallet))
	sb.WriteString("💰 **Wallet Portfolio Summary**\n\n")
	sb.WriteString(fmt.Sprintf("The current portfolio value of the wallet is **$%.2f**.\n\n", p.TotalUSD))
	sb.WriteString(fmt.Sprintf("🌞 **SOL Balance:** %.9g SOL ($%.2f)\n\n", p.Native.SOL, p.Native.USD))

	if len(p.TopHoldings) > 0 {
		sb.WriteString("Here are the top holdings:\n\n")
		sb.WriteString("| # | Token | Symbol | Amount | Value (USD) |\n")
		sb.WriteString("|---|-------|--------|--------|-------------|\n")
		for i, h := range p.TopHoldings {
			name := h.Name
			if name == "" {
				name = h.Symbol
			}
			if name == "" {
				name = h.Mint
			}
			sb.WriteString(fmt.Sprintf("| %d | %s | %s | %g | $%.2f |\n",
				i+1, name, h.Symbol, h.UIAmount, h.USDValue))
		}
		plural := ""
		if len(p.TopHoldings) > 1 {
			plural = "s"
		}
		sb.WriteString(fmt.Sprintf("\nThe wallet holds a total of %d token%s.\n", len(p.TopHoldings), plural))
	} else {
		sb.WriteString("No nonzero token holdings found.\n")
	}

	if len(p.Warnings) > 0 {
		sb.WriteString("\n")
		for _, w := range p.Warnings {
			sb.WriteString(fmt.Sprintf("⚠️ %s\n", w))
		}
	}

	return sb.String()
}
