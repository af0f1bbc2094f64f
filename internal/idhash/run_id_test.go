package idhash

import "testing"

func TestComputeRunID(t *testing.T) {
	id := ComputeRunID("9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM", 1704067200000)

	if len(id) != 64 {
		t.Errorf("expected 64-character hash, got %d", len(id))
	}

	// Deterministic for identical inputs.
	if id != ComputeRunID("9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM", 1704067200000) {
		t.Error("same inputs must produce the same run_id")
	}
}

func TestComputeRunID_Distinct(t *testing.T) {
	base := ComputeRunID("walletA", 1000)

	if base == ComputeRunID("walletB", 1000) {
		t.Error("different wallets must produce different run_ids")
	}
	if base == ComputeRunID("walletA", 1001) {
		t.Error("different timestamps must produce different run_ids")
	}
}
