package storage

import (
	"context"

	"solana-wallet-audit/internal/domain"
)

// ReportStore provides access to analysis_runs storage.
// Runs are append-only; a completed analysis is never rewritten.
type ReportStore interface {
	// Insert archives a completed run. Returns ErrDuplicateKey if run_id exists.
	Insert(ctx context.Context, run *domain.AnalysisRun) error

	// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, runID string) (*domain.AnalysisRun, error)

	// GetByWallet retrieves all runs for a wallet, newest first.
	GetByWallet(ctx context.Context, wallet string) ([]*domain.AnalysisRun, error)
}
