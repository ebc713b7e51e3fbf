package api

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	statementsAnalyzed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statements_analyzed_total",
			Help: "Statements processed, by outcome",
		},
		[]string{"outcome"},
	)

	transactionsExtracted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "transactions_extracted_total",
			Help: "Transactions extracted from statements",
		},
	)

	rowsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statement_rows_skipped_total",
			Help: "Statement rows dropped during extraction, by reason",
		},
		[]string{"reason"},
	)

	analyzeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "statement_analyze_duration_seconds",
			Help:    "End-to-end extraction and derivation duration",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)

// httpMetrics records per-request counters.
func httpMetrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		httpRequestsTotal.WithLabelValues(
			c.Method(),
			c.Route().Path,
			strconv.Itoa(c.Response().StatusCode()),
		).Inc()
		return err
	}
}

// observeAnalysis records pipeline metrics for one processed statement.
func observeAnalysis(outcome string, txnCount int, started time.Time) {
	statementsAnalyzed.WithLabelValues(outcome).Inc()
	transactionsExtracted.Add(float64(txnCount))
	analyzeDuration.Observe(time.Since(started).Seconds())
}
