package pricing

import (
	"context"
	"sort"
	"strings"
)

// SearchTokens looks up verified tokens whose name or symbol contains the
// query, or whose address matches it exactly. A leading "$" is stripped.
// Exact matches rank first; entries without both name and symbol are dropped.
func (e *Enricher) SearchTokens(ctx context.Context, query string) ([]TokenMeta, error) {
	if e.cache == nil {
		return nil, nil
	}
	tokens, err := e.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(query), "$"))
	if term == "" {
		return nil, nil
	}

	var results []TokenMeta
	for _, tok := range tokens {
		if tok.Name == "" || tok.Symbol == "" {
			continue
		}
		if strings.Contains(strings.ToLower(tok.Name), term) ||
			strings.Contains(strings.ToLower(tok.Symbol), term) ||
			strings.ToLower(tok.Address) == term {
			results = append(results, tok)
		}
	}

	exact := func(tok TokenMeta) bool {
		return strings.ToLower(tok.Symbol) == term ||
			strings.ToLower(tok.Name) == term ||
			strings.ToLower(tok.Address) == term
	}
	sort.SliceStable(results, func(i, j int) bool {
		return exact(results[i]) && !exact(results[j])
	})

	return results, nil
}
