package verify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline metrics, registered on the default registry. A batch invocation
// exposes them only if the embedding process serves them; long-running
// services embedding the pipeline get scrape-ready series for free.
var (
	metricChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foliocheck_checks_total",
		Help: "Verification checks executed, by check name and resulting status.",
	}, []string{"check", "status"})

	metricPagesFlagged = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foliocheck_pages_flagged_total",
		Help: "Pages flagged by each verification check.",
	}, []string{"check"})

	metricCheckDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "foliocheck_check_duration_seconds",
		Help:    "Wall time spent in each verification check.",
		Buckets: prometheus.DefBuckets,
	}, []string{"check"})

	metricDocumentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foliocheck_documents_total",
		Help: "Documents verified, by global admissibility status.",
	}, []string{"status"})
)

// observeCheck records the metrics for one completed check.
func observeCheck(result *CheckResult, seconds float64) {
	metricChecksTotal.WithLabelValues(result.Name, string(result.Status)).Inc()
	metricPagesFlagged.WithLabelValues(result.Name).Add(float64(len(result.AffectedPages)))
	metricCheckDuration.WithLabelValues(result.Name).Observe(seconds)
}
