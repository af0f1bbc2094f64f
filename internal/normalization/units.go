// Package normalization converts raw integer token amounts into human units
// using per-mint decimal metadata. All arithmetic is exact: raw amounts enter
// as strings and are only divided once, at full precision.
package normalization

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"solana-wallet-audit/internal/solana"
)

// MaxDecimals is the largest decimals value accepted for a mint.
const MaxDecimals = 18

// UIAmount converts a raw integer amount string to human units:
// raw / 10^decimals, computed exactly.
//
// raw must be a non-negative decimal integer (amounts up to 2^64-1 and
// beyond are handled without precision loss). decimals must be in
// [0, MaxDecimals].
func UIAmount(raw string, decimals int) (decimal.Decimal, error) {
	if decimals < 0 || decimals > MaxDecimals {
		return decimal.Zero, fmt.Errorf("decimals %d out of range [0, %d]", decimals, MaxDecimals)
	}

	n, ok := new(big.Int).SetString(raw, 10)
	if !ok || n.Sign() < 0 {
		return decimal.Zero, fmt.Errorf("raw amount %q is not a non-negative integer", raw)
	}

	return decimal.NewFromBigInt(n, -int32(decimals)), nil
}

// DefaultDecimals returns the fallback decimals for a mint whose metadata is
// unavailable: 9 for the native asset, 0 otherwise. Callers surface the
// fallback as a warning in the consuming report.
func DefaultDecimals(mint string) int {
	if mint == solana.NativeMint {
		return 9
	}
	return 0
}
