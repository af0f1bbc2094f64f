package domain

import "time"

// PortfolioReport is the final synthesized analysis for one wallet.
// Immutable after synthesis; persistence is the caller's concern.
type PortfolioReport struct {
	Wallet          string          `json:"wallet"`
	GeneratedAt     time.Time       `json:"generatedAt"`
	RiskScore       int             `json:"riskScore"` // 0-100
	Recommendations []string        `json:"recommendations"`
	Markdown        string          `json:"report"`
	Portfolio       *Portfolio      `json:"portfolioData"`
	BundleFindings  []BundleFinding `json:"bundleAnalysis"`
	BundleSummary   string          `json:"bundleSummary"`
	NFTs            *NFTPortfolio   `json:"nftData"`
}

// AnalysisRun is the archived record of one completed analysis.
// Corresponds to the analysis_runs table in PostgreSQL.
type AnalysisRun struct {
	RunID     string // PRIMARY KEY
	Wallet    string
	RiskScore int
	Report    string // rendered Markdown
	CreatedAt int64  // Unix timestamp in milliseconds
}
