package nft

import (
	"fmt"
	"sort"
	"strings"

	"solana-wallet-audit/internal/domain"
)

// rankCollections orders collections by estimated value descending, ties by
// item count descending. Remaining ties keep first-seen order.
func rankCollections(collections []domain.NFTCollection) {
	value := func(c domain.NFTCollection) float64 {
		if c.EstimatedValue == nil {
			return 0
		}
		return *c.EstimatedValue
	}
	sort.SliceStable(collections, func(i, j int) bool {
		vi, vj := value(collections[i]), value(collections[j])
		if vi != vj {
			return vi > vj
		}
		return collections[i].ItemCount > collections[j].ItemCount
	})
}

// renderText produces the Markdown NFT summary. Consumers render this text
// verbatim, so the structure is part of the contract.
func renderText(p *domain.NFTPortfolio) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Here is the NFT portfolio for wallet `%s`:\n\n", p.Wallet))

	if len(p.Collections) == 0 {
		sb.WriteString("🎨 **No regular NFTs found in this wallet.**\n\n")
		sb.WriteString("This wallet either has no NFTs, or only contains compressed NFTs (cNFTs) which are typically spam/airdrops.")
		return sb.String()
	}

	sb.WriteString("🎨 **NFT Portfolio Summary**\n\n")
	sb.WriteString(fmt.Sprintf("**Total Collections:** %d\n", p.TotalCollections))
	sb.WriteString(fmt.Sprintf("**Total NFTs:** %d\n", p.TotalNFTs))
	if p.EstimatedValueSOL > 0 {
		sb.WriteString(fmt.Sprintf("**Estimated Portfolio Value:** %.2f SOL\n", p.EstimatedValueSOL))
	}
	sb.WriteString("\n---\n\n")

	for i, c := range p.Collections {
		sb.WriteString(fmt.Sprintf("### %d. 📁 %s\n", i+1, c.Name))
		plural := ""
		if c.ItemCount > 1 {
			plural = "s"
		}
		sb.WriteString(fmt.Sprintf("**Count:** %d NFT%s\n", c.ItemCount, plural))

		if c.FloorPrice != nil {
			sb.WriteString(fmt.Sprintf("**Floor Price:** %.3f SOL\n", *c.FloorPrice))
		} else {
			sb.WriteString("**Floor Price:** Not available\n")
		}
		if c.EstimatedValue != nil {
			sb.WriteString(fmt.Sprintf("**Estimated Value:** %.2f SOL\n", *c.EstimatedValue))
		}
		if c.ListedCount != nil {
			sb.WriteString(fmt.Sprintf("**Listed:** %d items\n", *c.ListedCount))
		}

		sb.WriteString("\n**Sample NFTs:**\n")
		samples := c.Items
		if len(samples) > domain.CollectionSampleTextLimit {
			samples = samples[:domain.CollectionSampleTextLimit]
		}
		for j, item := range samples {
			sb.WriteString(fmt.Sprintf("%d. **%s**\n", j+1, item.Name))
			if item.Description != "" && len(item.Description) < 80 {
				sb.WriteString(fmt.Sprintf("   *%s*\n", item.Description))
			}
			sb.WriteString(fmt.Sprintf("   ID: `%s`\n", item.ID))
		}
		if len(c.Items) > domain.CollectionSampleTextLimit {
			sb.WriteString(fmt.Sprintf("   *...and %d more*\n", len(c.Items)-domain.CollectionSampleTextLimit))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n💡 **Note:** Floor prices are fetched from Magic Eden using the proper token→collection→stats flow. Values are estimates based on current floor prices.")
	return sb.String()
}
