// Package memory provides in-memory store implementations for tests and
// single-process runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"solana-wallet-audit/internal/domain"
	"solana-wallet-audit/internal/storage"
)

// ReportStore is an in-memory implementation of storage.ReportStore.
type ReportStore struct {
	mu       sync.RWMutex
	byID     map[string]*domain.AnalysisRun
	byWallet map[string][]*domain.AnalysisRun
}

// NewReportStore creates a new in-memory report store.
func NewReportStore() *ReportStore {
	return &ReportStore{
		byID:     make(map[string]*domain.AnalysisRun),
		byWallet: make(map[string][]*domain.AnalysisRun),
	}
}

// Insert archives a completed run. Returns ErrDuplicateKey if run_id exists.
func (s *ReportStore) Insert(_ context.Context, run *domain.AnalysisRun) error {
	if run == nil || run.RunID == "" || run.Wallet == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[run.RunID]; exists {
		return storage.ErrDuplicateKey
	}

	runCopy := *run
	s.byID[run.RunID] = &runCopy
	s.byWallet[run.Wallet] = append(s.byWallet[run.Wallet], &runCopy)
	return nil
}

// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
func (s *ReportStore) GetByID(_ context.Context, runID string) (*domain.AnalysisRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, exists := s.byID[runID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	runCopy := *run
	return &runCopy, nil
}

// GetByWallet retrieves all runs for a wallet, newest first.
func (s *ReportStore) GetByWallet(_ context.Context, wallet string) ([]*domain.AnalysisRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := s.byWallet[wallet]
	result := make([]*domain.AnalysisRun, 0, len(runs))
	for _, run := range runs {
		runCopy := *run
		result = append(result, &runCopy)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt > result[j].CreatedAt
	})
	return result, nil
}

var _ storage.ReportStore = (*ReportStore)(nil)
