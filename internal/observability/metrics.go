// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Analysis metrics
	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
	StepDuration     *prometheus.HistogramVec
	BranchFailures   *prometheus.CounterVec
	RiskScore        prometheus.Histogram

	// Upstream metrics
	UpstreamRequests *prometheus.CounterVec
	UpstreamLatency  *prometheus.HistogramVec

	// Cache metrics
	TokenListCacheHits   prometheus.Counter
	TokenListCacheMisses prometheus.Counter

	// Archive metrics
	RunsArchived  prometheus.Counter
	ArchiveErrors prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "wallet_audit"
	}

	return &Metrics{
		AnalysesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "runs_total",
			Help:      "Total number of wallet analyses by status",
		}, []string{"status"}),
		AnalysisDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "End-to-end wallet analysis duration in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		StepDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "step_duration_seconds",
			Help:      "Per-step execution duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"step"}),
		BranchFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "branch_failures_total",
			Help:      "Total number of degraded branch outcomes by branch",
		}, []string{"branch"}),
		RiskScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "risk_score",
			Help:      "Distribution of synthesized risk scores",
			Buckets:   []float64{0, 25, 50, 75, 100},
		}),

		UpstreamRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total number of upstream requests by service and status",
		}, []string{"service", "status"}),
		UpstreamLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "latency_seconds",
			Help:      "Upstream request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service"}),

		TokenListCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "token_list_hits_total",
			Help:      "Total number of token list cache hits",
		}),
		TokenListCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "token_list_misses_total",
			Help:      "Total number of token list cache refreshes",
		}),

		RunsArchived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "archive",
			Name:      "runs_stored_total",
			Help:      "Total number of analysis runs archived",
		}),
		ArchiveErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "archive",
			Name:      "errors_total",
			Help:      "Total number of archive write errors",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordAnalysis records a completed analysis.
func RecordAnalysis(status string, durationSeconds float64) {
	DefaultMetrics.AnalysesTotal.WithLabelValues(status).Inc()
	DefaultMetrics.AnalysisDuration.Observe(durationSeconds)
}

// RecordStep records a step execution.
func RecordStep(step string, durationSeconds float64) {
	DefaultMetrics.StepDuration.WithLabelValues(step).Observe(durationSeconds)
}

// RecordBranchFailure records a degraded branch outcome.
func RecordBranchFailure(branch string) {
	DefaultMetrics.BranchFailures.WithLabelValues(branch).Inc()
}

// RecordRiskScore records a synthesized risk score.
func RecordRiskScore(score int) {
	DefaultMetrics.RiskScore.Observe(float64(score))
}

// RecordUpstreamRequest records one upstream call.
func RecordUpstreamRequest(service, status string, seconds float64) {
	DefaultMetrics.UpstreamRequests.WithLabelValues(service, status).Inc()
	DefaultMetrics.UpstreamLatency.WithLabelValues(service).Observe(seconds)
}

// RecordTokenListCache records a cache lookup outcome.
func RecordTokenListCache(hit bool) {
	if hit {
		DefaultMetrics.TokenListCacheHits.Inc()
		return
	}
	DefaultMetrics.TokenListCacheMisses.Inc()
}

// RecordRunArchived records an archive write.
func RecordRunArchived(err error) {
	if err != nil {
		DefaultMetrics.ArchiveErrors.Inc()
		return
	}
	DefaultMetrics.RunsArchived.Inc()
}
