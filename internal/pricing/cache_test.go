package pricing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// stubTokenList counts calls and can be set to fail.
type stubTokenList struct {
	mu     sync.Mutex
	tokens []TokenMeta
	err    error
	calls  int
}

func (s *stubTokenList) VerifiedTokens(_ context.Context) ([]TokenMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.tokens, nil
}

func (s *stubTokenList) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestTokenListCache_RefreshOnlyAfterTTL(t *testing.T) {
	src := &stubTokenList{tokens: []TokenMeta{{Address: "mint-A", Name: "Alpha", Symbol: "ALP"}}}

	now := time.Unix(1700000000, 0)
	cache := NewTokenListCache(src).WithClock(func() time.Time { return now })

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		tokens, err := cache.Get(ctx)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(tokens) != 1 {
			t.Fatalf("expected 1 token, got %d", len(tokens))
		}
	}
	if src.callCount() != 1 {
		t.Errorf("expected 1 upstream call within TTL, got %d", src.callCount())
	}

	// Advance past the TTL: next Get refetches.
	now = now.Add(DefaultTokenListTTL + time.Second)
	if _, err := cache.Get(ctx); err != nil {
		t.Fatalf("Get after TTL failed: %v", err)
	}
	if src.callCount() != 2 {
		t.Errorf("expected refresh after TTL, got %d calls", src.callCount())
	}
}

func TestTokenListCache_StaleOnRefreshFailure(t *testing.T) {
	src := &stubTokenList{tokens: []TokenMeta{{Address: "mint-A", Name: "Alpha", Symbol: "ALP"}}}

	now := time.Unix(1700000000, 0)
	cache := NewTokenListCache(src).WithClock(func() time.Time { return now })

	ctx := context.Background()
	if _, err := cache.Get(ctx); err != nil {
		t.Fatalf("initial Get failed: %v", err)
	}

	// Expire and make upstream fail: the stale list should be served.
	now = now.Add(DefaultTokenListTTL + time.Second)
	src.mu.Lock()
	src.err = errors.New("rate limited")
	src.mu.Unlock()

	tokens, err := cache.Get(ctx)
	if err != nil {
		t.Fatalf("Get with stale data should not fail: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Address != "mint-A" {
		t.Errorf("expected stale token list, got %v", tokens)
	}
}

func TestTokenListCache_ErrorWhenEmptyAndFailing(t *testing.T) {
	src := &stubTokenList{err: errors.New("unavailable")}
	cache := NewTokenListCache(src)

	if _, err := cache.Get(context.Background()); err == nil {
		t.Errorf("expected error when no cached value exists")
	}
}

func TestTokenListCache_ConcurrentGet(t *testing.T) {
	src := &stubTokenList{tokens: []TokenMeta{{Address: "mint-A", Name: "Alpha", Symbol: "ALP"}}}
	cache := NewTokenListCache(src)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Get(context.Background()); err != nil {
				t.Errorf("concurrent Get failed: %v", err)
			}
		}()
	}
	wg.Wait()
}
