package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"solana-wallet-audit/internal/domain"
	"solana-wallet-audit/internal/storage"
)

// ReportStore implements storage.ReportStore using PostgreSQL.
type ReportStore struct {
	pool *Pool
}

// NewReportStore creates a new ReportStore.
func NewReportStore(pool *Pool) *ReportStore {
	return &ReportStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ReportStore = (*ReportStore)(nil)

// Insert archives a completed run. Returns ErrDuplicateKey if run_id exists.
func (s *ReportStore) Insert(ctx context.Context, run *domain.AnalysisRun) error {
	if run == nil || run.RunID == "" || run.Wallet == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO analysis_runs (
			run_id, wallet, risk_score, report, created_at
		) VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.pool.Exec(ctx, query,
		run.RunID,
		run.Wallet,
		run.RiskScore,
		run.Report,
		run.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert analysis run: %w", err)
	}
	return nil
}

// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
func (s *ReportStore) GetByID(ctx context.Context, runID string) (*domain.AnalysisRun, error) {
	query := `
		SELECT run_id, wallet, risk_score, report, created_at
		FROM analysis_runs
		WHERE run_id = $1
	`

	row := s.pool.QueryRow(ctx, query, runID)
	run, err := scanAnalysisRun(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get analysis run by id: %w", err)
	}
	return run, nil
}

// GetByWallet retrieves all runs for a wallet, newest first.
func (s *ReportStore) GetByWallet(ctx context.Context, wallet string) ([]*domain.AnalysisRun, error) {
	query := `
		SELECT run_id, wallet, risk_score, report, created_at
		FROM analysis_runs
		WHERE wallet = $1
		ORDER BY created_at DESC
	`

	rows, err := s.pool.Query(ctx, query, wallet)
	if err != nil {
		return nil, fmt.Errorf("get analysis runs by wallet: %w", err)
	}
	defer rows.Close()

	var runs []*domain.AnalysisRun
	for rows.Next() {
		run, err := scanAnalysisRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan analysis run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analysis runs: %w", err)
	}
	return runs, nil
}

// scanAnalysisRun scans a single row into AnalysisRun.
func scanAnalysisRun(row pgx.Row) (*domain.AnalysisRun, error) {
	var run domain.AnalysisRun

	err := row.Scan(
		&run.RunID,
		&run.Wallet,
		&run.RiskScore,
		&run.Report,
		&run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &run, nil
}
