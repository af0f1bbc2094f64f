// Package main provides the wallet analysis HTTP service:
// - POST /analyze runs the full pipeline and returns the structured report
// - GET /reports/{wallet} lists archived runs (when PostgreSQL is configured)
// - GET /healthz and GET /metrics for operations
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
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
	"solana-wallet-audit/internal/solana"
	"solana-wallet-audit/internal/storage"
	"solana-wallet-audit/internal/storage/memory"
	"solana-wallet-audit/internal/storage/migrations"
	"solana-wallet-audit/internal/storage/postgres"
	"solana-wallet-audit/internal/trenchbot"
	"solana-wallet-audit/internal/workflow"
)

// Server holds the analysis engine and its collaborators.
type Server struct {
	engine  *workflow.Engine
	tokens  *pricing.Enricher
	reports storage.ReportStore
	logger  *slog.Logger
	timeout time.Duration
}

func main() {
	// Load .env if present; system env vars take precedence.
	_ = godotenv.Load()

	addr := flag.String("addr", ":8080", "HTTP listen address")
	heliusRPC := flag.String("helius-rpc", os.Getenv("HELIUS_RPC"), "Helius RPC endpoint (DAS API)")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string for the run archive")
	useMemory := flag.Bool("use-memory", false, "Use in-memory archive instead of PostgreSQL")
	timeout := flag.Duration("analysis-timeout", 2*time.Minute, "Per-request analysis timeout")
	flag.Parse()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo}))

	if *heliusRPC == "" {
		logger.Error("--helius-rpc or HELIUS_RPC is required")
		os.Exit(1)
	}
	if !*useMemory && *postgresDSN == "" {
		logger.Error("--postgres-dsn is required unless --use-memory is set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var reports storage.ReportStore
	if *useMemory {
		reports = memory.NewReportStore()
	} else {
		pool, err := postgres.NewPool(ctx, *postgresDSN)
		if err != nil {
			logger.Error("connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			logger.Error("apply migrations", "error", err)
			os.Exit(1)
		}
		reports = postgres.NewReportStore(pool)
	}

	das := helius.NewClient(*heliusRPC)
	jup := jupiter.NewClient()
	enricher := pricing.NewEnricher(jup, pricing.NewTokenListCache(jup))

	srv := &Server{
		engine: workflow.NewEngine(
			portfolio.NewFetcher(das, enricher),
			bundles.NewAnalyzer(trenchbot.NewClient(), das),
			nft.NewAggregator(das, magiceden.NewClient()),
			reporting.NewSynthesizer(),
			logger,
		),
		tokens:  enricher,
		reports: reports,
		logger:  logger,
		timeout: *timeout,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/analyze", srv.handleAnalyze)
	mux.HandleFunc("/reports/", srv.handleReports)
	mux.HandleFunc("/tokens/search", srv.handleTokenSearch)

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	logger.Info("server listening", "addr", *addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server", "error", err)
		os.Exit(1)
	}
}

// analyzeRequest is the POST /analyze body.
type analyzeRequest struct {
	WalletAddress string `json:"walletAddress"`
}

// analyzeResponse wraps the report with its archive identifier.
type analyzeResponse struct {
	RunID  string                  `json:"runId"`
	Report *domain.PortfolioReport `json:"result"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !solana.ValidAddress(req.WalletAddress) {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("walletAddress must be a base58 Solana address (%d-%d characters)",
				solana.MinAddressLen, solana.MaxAddressLen))
		return
	}
	if !solana.IsOnCurve(req.WalletAddress) {
		writeError(w, http.StatusBadRequest,
			"walletAddress is not an ed25519 public key; program derived addresses are not wallets")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	report, err := s.engine.Run(ctx, req.WalletAddress)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("analysis failed", "wallet", req.WalletAddress, "error", err)
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	createdAt := report.GeneratedAt.UnixMilli()
	run := &domain.AnalysisRun{
		RunID:     idhash.ComputeRunID(report.Wallet, createdAt),
		Wallet:    report.Wallet,
		RiskScore: report.RiskScore,
		Report:    report.Markdown,
		CreatedAt: createdAt,
	}
	insertErr := s.reports.Insert(ctx, run)
	if insertErr != nil && !errors.Is(insertErr, storage.ErrDuplicateKey) {
		// The analysis succeeded; a failed archive write is logged, not fatal.
		s.logger.Error("archive run", "run_id", run.RunID, "error", insertErr)
	}
	observability.RecordRunArchived(insertErr)

	writeJSON(w, http.StatusOK, analyzeResponse{RunID: run.RunID, Report: report})
}

// handleReports serves GET /reports/{wallet}: the archived runs for a wallet,
// newest first.
func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}

	wallet := strings.TrimPrefix(r.URL.Path, "/reports/")
	if !solana.ValidAddress(wallet) {
		writeError(w, http.StatusBadRequest, "invalid wallet address")
		return
	}

	runs, err := s.reports.GetByWallet(r.Context(), wallet)
	if err != nil {
		s.logger.Error("list runs", "wallet", wallet, "error", err)
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// handleTokenSearch serves GET /tokens/search?q=: verified tokens matching the
// query by name, symbol, or exact address, exact matches first.
func (s *Server) handleTokenSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}

	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		writeError(w, http.StatusBadRequest, "q parameter is required")
		return
	}

	results, err := s.tokens.SearchTokens(r.Context(), query)
	if err != nil {
		s.logger.Error("token search", "query", query, "error", err)
		writeError(w, http.StatusBadGateway, "token list unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tokens": results})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
