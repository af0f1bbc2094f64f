package helius

import "encoding/json"

// Asset interface kinds returned by the DAS API.
const (
	InterfaceFungibleToken    = "FungibleToken"
	InterfaceFungibleAsset    = "FungibleAsset"
	InterfaceV1NFT            = "V1_NFT"
	InterfaceProgrammableNFT  = "ProgrammableNFT"
)

// Asset is one owned asset from a searchAssets response.
type Asset struct {
	ID          string       `json:"id"`
	Interface   string       `json:"interface"`
	Content     *Content     `json:"content"`
	TokenInfo   *TokenInfo   `json:"token_info"`
	Compression *Compression `json:"compression"`
	Grouping    []Grouping   `json:"grouping"`
}

// Content holds off-chain metadata and links for an asset.
type Content struct {
	Metadata Metadata `json:"metadata"`
	Links    Links    `json:"links"`
}

// Metadata is an asset's display metadata.
type Metadata struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
}

// Links holds asset URLs.
type Links struct {
	Image       string `json:"image"`
	ExternalURL string `json:"external_url"`
}

// TokenInfo carries fungible amount and price data.
// Balance stays a json.Number so raw amounts survive as integer strings.
type TokenInfo struct {
	Balance   json.Number `json:"balance"`
	Decimals  *int        `json:"decimals"`
	PriceInfo *PriceInfo  `json:"price_info"`
}

// PriceInfo is the indexer-reported price for a fungible asset.
type PriceInfo struct {
	PricePerToken float64 `json:"price_per_token"`
	TotalPrice    float64 `json:"total_price"`
}

// Compression marks compressed (cNFT) assets.
type Compression struct {
	Compressed bool `json:"compressed"`
}

// Grouping attaches an asset to a collection.
type Grouping struct {
	GroupKey           string              `json:"group_key"`
	GroupValue         string              `json:"group_value"`
	CollectionMetadata *CollectionMetadata `json:"collection_metadata"`
}

// CollectionMetadata is the collection-level display metadata.
type CollectionMetadata struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// NativeBalance is the wallet's native SOL balance as reported by the indexer.
type NativeBalance struct {
	Lamports    uint64  `json:"lamports"`
	PricePerSOL float64 `json:"price_per_sol"`
	TotalPrice  float64 `json:"total_price"`
}

// SearchAssetsResult is the payload of a searchAssets call.
type SearchAssetsResult struct {
	Items         []Asset        `json:"items"`
	NativeBalance *NativeBalance `json:"nativeBalance"`
}

// MintInfo is the parsed mint account data used for decimal adjustment.
type MintInfo struct {
	Decimals int
	Supply   string
}
