package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pipeline Prometheus metrics.
var (
	// LeakViolationsTotal counts candidates the leak guard stripped after
	// the scoped fetch. Any increase is an operator-page signal: it means
	// the structural scoping at the data source is broken.
	LeakViolationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "atlas",
			Name:      "leak_violations_total",
			Help:      "Ineligible candidates stripped by the leak guard",
		},
		[]string{"tenant", "cause"},
	)

	// FallbacksTotal counts fallback responses per reason code.
	FallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "atlas",
			Name:      "fallback_responses_total",
			Help:      "Fallback responses produced, by reason code",
		},
		[]string{"reason"},
	)

	// ModelRequestsTotal counts language model calls by outcome.
	ModelRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "atlas",
			Name:      "model_requests_total",
			Help:      "Total language model requests",
		},
		[]string{"model", "status"},
	)

	// ModelRequestDuration observes language model call latency.
	ModelRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "atlas",
			Name:      "model_request_duration_seconds",
			Help:      "Language model request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"model"},
	)

	// EmbeddingRequestsTotal counts embedding requests by outcome.
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "atlas",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"provider", "model", "status"},
	)

	// EmbeddingRequestDuration observes embedding request latency.
	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "atlas",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(LeakViolationsTotal)
	prometheus.MustRegister(FallbacksTotal)
	prometheus.MustRegister(ModelRequestsTotal)
	prometheus.MustRegister(ModelRequestDuration)
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	pipelineMetricsRegistered = true
}
