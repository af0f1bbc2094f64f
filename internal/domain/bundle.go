package domain

// BundleReport is the outcome of bundle analysis for a single mint.
// It is always a value, never an error: upstream failures degrade to a
// clean/unknown sentinel with an explanation embedded in Summary.
type BundleReport struct {
	Mint                   string  `json:"mint"`
	IsBundled              bool    `json:"isBundled"`
	Ticker                 string  `json:"ticker"`
	TotalBundles           int     `json:"totalBundles"`
	TotalPercentageBundled float64 `json:"totalPercentageBundled"`
	TotalHoldingPercentage float64 `json:"totalHoldingPercentage"`
	TotalHoldingAmount     float64 `json:"totalHoldingAmount"`
	Bonded                 bool    `json:"bonded"`
	CreatorRiskLevel       string  `json:"creatorRiskLevel"`
	RugCount               int     `json:"rugCount"`
	Summary                string  `json:"summary"`
}

// BundleFinding is the per-token row produced by the bundle-analysis branch
// of the workflow, one per analyzed top holding.
type BundleFinding struct {
	Mint        string  `json:"mint"`
	Symbol      string  `json:"symbol"`
	USDValue    float64 `json:"usdValue"`
	IsBundled   bool    `json:"isBundled"`
	BundleCount int     `json:"bundleCount"`
	RiskLevel   string  `json:"riskLevel"`
}

// CreatorProfile describes the token creator attached to a bundle report.
// Read-only once fetched.
type CreatorProfile struct {
	Address            string  `json:"address"`
	RiskLevel          string  `json:"riskLevel"`
	CurrentHoldingsPct float64 `json:"currentHoldingsPct"`
	PriorTokensCreated int     `json:"priorTokensCreated"`
	RugCount           int     `json:"rugCount"`
}
