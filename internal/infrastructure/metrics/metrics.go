package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Translator client metrics
var (
	ClientRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "translator_client",
			Name:      "requests_total",
			Help:      "Total number of backend API calls issued by the client",
		},
		[]string{"operation", "status"},
	)

	ClientRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jan",
			Subsystem: "translator_client",
			Name:      "request_duration_seconds",
			Help:      "Backend API call latency as observed by the client",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	OptimisticSendsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "translator_client",
			Name:      "optimistic_sends_total",
			Help:      "Optimistic message sends by final outcome",
		},
		[]string{"outcome"},
	)

	TranscriptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "translator_client",
			Name:      "transcriptions_total",
			Help:      "Voice capture and upload transcriptions by source and outcome",
		},
		[]string{"source", "outcome"},
	)
)

// Sandbox backend metrics
var (
	SandboxRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "translator_sandbox",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests served by the sandbox backend",
		},
		[]string{"method", "endpoint", "status"},
	)

	SandboxRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jan",
			Subsystem: "translator_sandbox",
			Name:      "request_duration_seconds",
			Help:      "Sandbox backend request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// RecordClientCall records one backend call. status is the HTTP status code,
// or 0 when the call failed before a response arrived.
func RecordClientCall(operation string, status int, seconds float64) {
	label := "transport_error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	ClientRequestsTotal.WithLabelValues(operation, label).Inc()
	ClientRequestDuration.WithLabelValues(operation).Observe(seconds)
}

// RecordSend records the settlement of an optimistic send.
func RecordSend(outcome string) {
	OptimisticSendsTotal.WithLabelValues(outcome).Inc()
}

// RecordTranscription records a transcription attempt.
func RecordTranscription(source, outcome string) {
	TranscriptionsTotal.WithLabelValues(source, outcome).Inc()
}

// RecordSandboxRequest records one request served by the sandbox backend.
func RecordSandboxRequest(method, endpoint, status string, seconds float64) {
	SandboxRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	SandboxRequestDuration.WithLabelValues(method, endpoint).Observe(seconds)
}
