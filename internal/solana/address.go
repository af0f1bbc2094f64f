// Package solana provides chain-level helpers shared across components:
// well-known mints and address validation.
package solana

import (
	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// NativeMint is the wrapped-SOL mint used to represent the native asset.
const NativeMint = "So11111111111111111111111111111111111111112"

// LamportsPerSOL is the native asset's smallest-unit scale (decimals 9).
const LamportsPerSOL = 1e9

// Address length bounds for base58-encoded Solana addresses.
const (
	MinAddressLen = 32
	MaxAddressLen = 44
)

// ValidLength reports whether addr is within Solana address length bounds.
// This is the only validation the core pipeline performs.
func ValidLength(addr string) bool {
	return len(addr) >= MinAddressLen && len(addr) <= MaxAddressLen
}

// ValidAddress reports whether addr is a base58 string decoding to 32 bytes.
// Used at the outer request boundary for friendlier errors; the pipeline
// itself only checks length.
func ValidAddress(addr string) bool {
	if !ValidLength(addr) {
		return false
	}
	raw, err := base58.Decode(addr)
	if err != nil {
		return false
	}
	return len(raw) == 32
}

// IsOnCurve reports whether addr decodes to a point on the ed25519 curve.
// Wallet addresses are on-curve; program derived addresses are not.
func IsOnCurve(addr string) bool {
	raw, err := base58.Decode(addr)
	if err != nil || len(raw) != 32 {
		return false
	}
	_, err = new(edwards25519.Point).SetBytes(raw)
	return err == nil
}

// ShortenAddress renders an address as "12345678...87654321" for display.
func ShortenAddress(addr string) string {
	if len(addr) <= 16 {
		return addr
	}
	return addr[:8] + "..." + addr[len(addr)-8:]
}
