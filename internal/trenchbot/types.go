package trenchbot

// BundleAdvancedResponse is the cluster-analysis payload for one mint.
//
// Several fields carry raw token amounts that callers rescale by the mint's
// decimals; percentage fields and counts never need rescaling.
type BundleAdvancedResponse struct {
	Bonded                 bool                     `json:"bonded"`
	Bundles                map[string]BundleDetails `json:"bundles"`
	CreatorAnalysis        *CreatorAnalysis         `json:"creator_analysis"`
	DistributedAmount      float64                  `json:"distributed_amount"`
	DistributedPercentage  float64                  `json:"distributed_percentage"`
	DistributedWallets     int                      `json:"distributed_wallets"`
	Ticker                 string                   `json:"ticker"`
	TotalBundles           int                      `json:"total_bundles"`
	TotalHoldingAmount     float64                  `json:"total_holding_amount"`
	TotalHoldingPercentage float64                  `json:"total_holding_percentage"`
	TotalPercentageBundled float64                  `json:"total_percentage_bundled"`
	TotalSOLSpent          float64                  `json:"total_sol_spent"`
	TotalTokensBundled     float64                  `json:"total_tokens_bundled"`
}

// BundleDetails is one cluster of wallets suspected of coordinated buying.
type BundleDetails struct {
	BundleAnalysis   *BundleAnalysis       `json:"bundle_analysis"`
	FundingAnalysis  *FundingAnalysis      `json:"funding_analysis"`
	HoldingAmount    float64               `json:"holding_amount"`
	HoldingPct       float64               `json:"holding_percentage"`
	Slot             *int64                `json:"slot"`
	TokenPercentage  float64               `json:"token_percentage"`
	TotalSOL         float64               `json:"total_sol"`
	TotalTokens      float64               `json:"total_tokens"`
	UniqueWallets    int                   `json:"unique_wallets"`
	WalletCategories map[string]string     `json:"wallet_categories"`
	WalletInfo       map[string]WalletInfo `json:"wallet_info"`
}

// BundleAnalysis classifies a cluster.
type BundleAnalysis struct {
	CategoryBreakdown map[string]int    `json:"category_breakdown"`
	CopytradingGroups map[string]string `json:"copytrading_groups"`
	IsLikelyBundle    bool              `json:"is_likely_bundle"`
	PrimaryCategory   string            `json:"primary_category"`
}

// FundingAnalysis carries funding-risk signals for a cluster.
type FundingAnalysis struct {
	CEXFundedPercentage   *float64 `json:"cex_funded_percentage"`
	FundingTrustScore     *float64 `json:"funding_trust_score"`
	MixerFundedPercentage *float64 `json:"mixer_funded_percentage"`
}

// WalletInfo is a per-wallet breakdown within a cluster.
type WalletInfo struct {
	SOL             float64 `json:"sol"`
	SOLPercentage   float64 `json:"sol_percentage"`
	TokenPercentage float64 `json:"token_percentage"`
	Tokens          float64 `json:"tokens"`
}

// CreatorAnalysis describes the token creator and their history.
type CreatorAnalysis struct {
	Address           string          `json:"address"`
	CurrentHoldings   float64         `json:"current_holdings"`
	History           *CreatorHistory `json:"history"`
	HoldingPercentage float64         `json:"holding_percentage"`
	RiskLevel         string          `json:"risk_level"`
	WarningFlags      []string        `json:"warning_flags"`
}

// CreatorHistory summarizes the creator's prior launches.
type CreatorHistory struct {
	AverageMarketCap  float64        `json:"average_market_cap"`
	HighRisk          bool           `json:"high_risk"`
	PreviousCoins     []PreviousCoin `json:"previous_coins"`
	RecentRugs        int            `json:"recent_rugs"`
	RugCount          int            `json:"rug_count"`
	RugPercentage     float64        `json:"rug_percentage"`
	TotalCoinsCreated int            `json:"total_coins_created"`
}

// PreviousCoin is one prior launch by the creator.
type PreviousCoin struct {
	CreatedAt int64   `json:"created_at"`
	IsRug     bool    `json:"is_rug"`
	MarketCap float64 `json:"market_cap"`
	Mint      string  `json:"mint"`
	Symbol    string  `json:"symbol"`
}
