package normalization

import (
	"math/big"
	"testing"

	"solana-wallet-audit/internal/solana"
)

func TestUIAmount_ExactForAllDecimals(t *testing.T) {
	// For every decimals d in [0,18], UIAmount(r, d) * 10^d must equal r
	// exactly. Compared via big integers, not floating point.
	raws := []string{
		"0",
		"1",
		"1500000000",
		"18446744073709551615",                   // 2^64 - 1
		"340282366920938463463374607431768211455", // 2^128 - 1, beyond uint64
	}

	for _, raw := range raws {
		for d := 0; d <= MaxDecimals; d++ {
			ui, err := UIAmount(raw, d)
			if err != nil {
				t.Fatalf("UIAmount(%s, %d) failed: %v", raw, d, err)
			}

			// Scale back up and compare as integers.
			back := ui.Shift(int32(d))
			if !back.IsInteger() {
				t.Fatalf("UIAmount(%s, %d) scaled back is not integer: %s", raw, d, back)
			}

			want, _ := new(big.Int).SetString(raw, 10)
			if back.BigInt().Cmp(want) != 0 {
				t.Errorf("UIAmount(%s, %d) round-trip = %s, want %s", raw, d, back.BigInt(), want)
			}
		}
	}
}

func TestUIAmount_KnownValues(t *testing.T) {
	tests := []struct {
		raw      string
		decimals int
		want     string
	}{
		{"2500000000", 9, "2.5"},
		{"1", 18, "0.000000000000000001"},
		{"42", 0, "42"},
		{"1000000", 6, "1"},
	}

	for _, tt := range tests {
		got, err := UIAmount(tt.raw, tt.decimals)
		if err != nil {
			t.Fatalf("UIAmount(%s, %d) failed: %v", tt.raw, tt.decimals, err)
		}
		if got.String() != tt.want {
			t.Errorf("UIAmount(%s, %d) = %s, want %s", tt.raw, tt.decimals, got, tt.want)
		}
	}
}

func TestUIAmount_RejectsBadInput(t *testing.T) {
	if _, err := UIAmount("100", -1); err == nil {
		t.Errorf("negative decimals should be rejected")
	}
	if _, err := UIAmount("100", 19); err == nil {
		t.Errorf("decimals above %d should be rejected", MaxDecimals)
	}
	if _, err := UIAmount("1.5", 2); err == nil {
		t.Errorf("fractional raw amount should be rejected")
	}
	if _, err := UIAmount("-5", 2); err == nil {
		t.Errorf("negative raw amount should be rejected")
	}
	if _, err := UIAmount("abc", 2); err == nil {
		t.Errorf("non-numeric raw amount should be rejected")
	}
}

func TestDefaultDecimals(t *testing.T) {
	if got := DefaultDecimals(solana.NativeMint); got != 9 {
		t.Errorf("native mint default decimals = %d, want 9", got)
	}
	if got := DefaultDecimals("SomeOtherMint1111111111111111111111111111111"); got != 0 {
		t.Errorf("unknown mint default decimals = %d, want 0", got)
	}
}
