package helius

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFungibleAssets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Method != "searchAssets" {
			t.Errorf("expected method searchAssets, got %s", req.Method)
		}

		resp := map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result": map[string]interface{}{
				"items": []map[string]interface{}{
					{
						"id":        "mint-A",
						"interface": "FungibleToken",
						"token_info": map[string]interface{}{
							"balance":  1500000000,
							"decimals": 9,
						},
					},
				},
				"nativeBalance": map[string]interface{}{
					"lamports":      2500000000,
					"price_per_sol": 100.0,
					"total_price":   250.0,
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.FungibleAssets(context.Background(), "wallet-1")
	if err != nil {
		t.Fatalf("FungibleAssets failed: %v", err)
	}

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	if result.Items[0].TokenInfo.Balance.String() != "1500000000" {
		t.Errorf("balance should survive as integer string, got %q", result.Items[0].TokenInfo.Balance.String())
	}
	if result.NativeBalance == nil || result.NativeBalance.Lamports != 2500000000 {
		t.Errorf("unexpected native balance: %+v", result.NativeBalance)
	}
}

func TestMintInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      1,
			"result": map[string]interface{}{
				"value": map[string]interface{}{
					"data": map[string]interface{}{
						"parsed": map[string]interface{}{
							"info": map[string]interface{}{
								"decimals": 6,
								"supply":   "1000000000000",
							},
						},
					},
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	info, err := client.MintInfo(context.Background(), "mint-A")
	if err != nil {
		t.Fatalf("MintInfo failed: %v", err)
	}
	if info == nil || info.Decimals != 6 {
		t.Fatalf("expected decimals 6, got %+v", info)
	}
}

func TestMintInfo_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      1,
			"result":  map[string]interface{}{"value": nil},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	info, err := client.MintInfo(context.Background(), "missing")
	if err != nil {
		t.Fatalf("MintInfo failed: %v", err)
	}
	if info != nil {
		t.Errorf("expected nil for missing mint, got %+v", info)
	}
}

func TestCall_RPCErrorNotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		resp := map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      1,
			"error":   map[string]interface{}{"code": -32602, "message": "invalid params"},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.FungibleAssets(context.Background(), "wallet-1"); err == nil {
		t.Fatal("expected RPC error")
	}
	if calls != 1 {
		t.Errorf("RPC errors must not be retried, got %d calls", calls)
	}
}
