package domain

// TokenHolding is one fungible position in a wallet. The native asset is
// carried through the same type as a synthetic entry so normalization and
// enrichment treat it uniformly.
//
// RawAmount keeps the ledger amount as a decimal integer string; it is never
// coerced to a float before the final division. UIAmount and USDValue are
// derived for display only.
type TokenHolding struct {
	Mint            string  `json:"mint"`
	RawAmount       string  `json:"amount"`
	Decimals        int     `json:"decimals"`
	UIAmount        float64 `json:"uiAmount"`
	Name            string  `json:"tokenName,omitempty"`
	Symbol          string  `json:"tokenSymbol,omitempty"`
	Logo            string  `json:"logo,omitempty"`
	USDValue        float64 `json:"usd"`
	DecimalsAssumed bool    `json:"-"` // decimals metadata was missing, fallback applied
}

// NativeBalance is the wallet's native SOL position.
type NativeBalance struct {
	Lamports uint64  `json:"lamports"`
	SOL      float64 `json:"sol"`
	USD      float64 `json:"usd"`
}

// Portfolio is the normalized, valued view of a wallet's fungible holdings.
//
// Holdings contains every non-dust token (native excluded), sorted by USD
// value descending with ties kept in fetch order. TopHoldings is the capped
// display view of the same list; TotalUSD always sums the uncapped list plus
// the native balance.
type Portfolio struct {
	Wallet      string         `json:"wallet"`
	Native      NativeBalance  `json:"sol"`
	Holdings    []TokenHolding `json:"-"`
	TopHoldings []TokenHolding `json:"tokens"`
	TotalUSD    float64        `json:"totalUsd"`
	Warnings    []string       `json:"warnings,omitempty"`
	Summary     string         `json:"text"`
}

// DustThresholdUSD is the minimum USD value for a holding to appear in
// ranked views. The boundary is inclusive: exactly 0.01 is kept.
const DustThresholdUSD = 0.01

// TopHoldingsLimit caps the ranked display view of token holdings.
const TopHoldingsLimit = 10
