// Package idhash computes deterministic identifiers for archived records.
package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComputeRunID computes a deterministic run_id using SHA256.
// Formula: SHA256(wallet|created_at_ms)
// Returns hex-encoded hash (64 characters).
func ComputeRunID(wallet string, createdAtMs int64) string {
	data := fmt.Sprintf("%s|%d", wallet, createdAtMs)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
