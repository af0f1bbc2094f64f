// Package main provides a one-shot wallet analysis CLI.
// It runs the full pipeline for a single wallet, prints the Markdown report,
// and optionally archives the run in PostgreSQL.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"solana-wallet-audit/internal/bundles"
	"solana-wallet-audit/internal/domain"
	"solana-wallet-audit/internal/helius"
	"solana-wallet-audit/internal/idhash"
	"solana-wallet-audit/internal/jupiter"
	"solana-wallet-audit/internal/magiceden"
	"solana-wallet-audit/internal/nft"
	"solana-wallet-audit/internal/observability"
	"solana-wallet-audit/internal/portfolio"
	"solana-wallet-audit/internal/pricing"
	"solana-wallet-audit/internal/reporting"
	"solana-wallet-audit/internal/storage/migrations"
	"solana-wallet-audit/internal/storage/postgres"
	"solana-wallet-audit/internal/trenchbot"
	"solana-wallet-audit/internal/workflow"
)

func main() {
	// Load .env if present; system env vars take precedence.
	_ = godotenv.Load()

	wallet := flag.String("wallet", "", "Solana wallet address to analyze")
	heliusRPC := flag.String("helius-rpc", os.Getenv("HELIUS_RPC"), "Helius RPC endpoint (DAS API)")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string for archiving runs (optional)")
	timeout := flag.Duration("timeout", 2*time.Minute, "Overall analysis timeout")
	asJSON := flag.Bool("json", false, "Print the structured report as JSON instead of Markdown")
	flag.Parse()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo}))

	if *wallet == "" {
		logger.Error("--wallet is required")
		os.Exit(1)
	}
	if *heliusRPC == "" {
		logger.Error("--helius-rpc or HELIUS_RPC is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	engine := buildEngine(*heliusRPC, logger)

	report, err := engine.Run(ctx, *wallet)
	if err != nil {
		logger.Error("analysis failed", "wallet", *wallet, "error", err)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			logger.Error("encode report", "error", err)
			os.Exit(1)
		}
	} else {
		fmt.Println(report.Markdown)
	}

	if *postgresDSN != "" {
		if err := archiveRun(ctx, *postgresDSN, report); err != nil {
			logger.Error("archive run", "error", err)
			os.Exit(1)
		}
		logger.Info("run archived", "wallet", report.Wallet, "risk_score", report.RiskScore)
	}
}

// buildEngine wires the full pipeline against the live upstreams.
func buildEngine(heliusRPC string, logger *slog.Logger) *workflow.Engine {
	das := helius.NewClient(heliusRPC)
	jup := jupiter.NewClient()
	enricher := pricing.NewEnricher(jup, pricing.NewTokenListCache(jup))

	return workflow.NewEngine(
		portfolio.NewFetcher(das, enricher),
		bundles.NewAnalyzer(trenchbot.NewClient(), das),
		nft.NewAggregator(das, magiceden.NewClient()),
		reporting.NewSynthesizer(),
		logger,
	)
}

func archiveRun(ctx context.Context, dsn string, report *domain.PortfolioReport) error {
	pool, err := postgres.NewPool(ctx, dsn)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		return err
	}

	createdAt := report.GeneratedAt.UnixMilli()
	run := &domain.AnalysisRun{
		RunID:     idhash.ComputeRunID(report.Wallet, createdAt),
		Wallet:    report.Wallet,
		RiskScore: report.RiskScore,
		Report:    report.Markdown,
		CreatedAt: createdAt,
	}
	err = postgres.NewReportStore(pool).Insert(ctx, run)
	observability.RecordRunArchived(err)
	return err
}
