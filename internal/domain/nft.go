package domain

// NFTItem is a single non-fungible asset owned by the wallet.
type NFTItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	ExternalURL string `json:"externalUrl,omitempty"`
}

// NFTCollection groups a wallet's NFTs by collection display name.
//
// FloorPrice and EstimatedValue are nil when the marketplace lookup failed or
// returned nothing; nil means "unknown" and is distinct from zero. Unknown
// values never contribute to portfolio totals.
type NFTCollection struct {
	Name           string   `json:"name"`
	Symbol         string   `json:"symbol,omitempty"`
	ItemCount      int      `json:"count"`
	FloorPrice     *float64 `json:"floorPrice,omitempty"`     // SOL
	EstimatedValue *float64 `json:"estimatedValue,omitempty"` // SOL, floor * count
	ListedCount    *int     `json:"listedCount,omitempty"`
	Items          []NFTItem `json:"nfts"`
}

// NFTPortfolio is the aggregated non-fungible view of a wallet.
type NFTPortfolio struct {
	Wallet            string          `json:"wallet"`
	Collections       []NFTCollection `json:"collections"`
	TotalNFTs         int             `json:"totalNFTs"`
	TotalCollections  int             `json:"totalCollections"`
	EstimatedValueSOL float64         `json:"estimatedPortfolioValue"`
	Text              string          `json:"text"`
}

// Display caps for NFT collections.
const (
	CollectionSampleLimit     = 5 // structured output
	CollectionSampleTextLimit = 3 // rendered text
)
