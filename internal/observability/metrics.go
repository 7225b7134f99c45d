package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Analysis request metrics
	analysisRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analysis_gateway_requests_total",
		Help: "Total number of analysis requests",
	}, []string{"exercise", "status"})

	analysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "analysis_gateway_request_duration_seconds",
		Help:    "End-to-end analysis latency in seconds",
		Buckets: []float64{0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
	}, []string{"exercise"})

	verdicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analysis_gateway_verdicts_total",
		Help: "Pass/fail verdicts produced per exercise",
	}, []string{"exercise", "verdict"})

	// Upload validation metrics
	uploadRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analysis_gateway_upload_rejections_total",
		Help: "Uploads rejected before analysis",
	}, []string{"code"})

	// Classifier sidecar metrics
	classifierRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analysis_gateway_classifier_requests_total",
		Help: "Total number of classifier inference calls",
	}, []string{"status"})

	classifierLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "analysis_gateway_classifier_latency_seconds",
		Help:    "Classifier inference latency in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
	})

	// Transcription service metrics
	transcriptionRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analysis_gateway_transcription_requests_total",
		Help: "Total number of transcription calls",
	}, []string{"status"})

	transcriptionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "analysis_gateway_transcription_latency_seconds",
		Help:    "Transcription latency in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
	})

	// Error metrics
	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analysis_gateway_errors_total",
		Help: "Total number of errors",
	}, []string{"type", "component"})

	// Circuit breaker metrics
	circuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "analysis_gateway_circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
	}, []string{"service"})

	circuitBreakerFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analysis_gateway_circuit_breaker_failures_total",
		Help: "Total circuit breaker failures",
	}, []string{"service"})
)

// RecordAnalysis records one completed analysis request
func RecordAnalysis(exercise string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	analysisRequests.WithLabelValues(exercise, status).Inc()
	analysisDuration.WithLabelValues(exercise).Observe(time.Since(start).Seconds())
}

// RecordVerdict records a pass/fail verdict
func RecordVerdict(exercise string, pass bool) {
	verdict := "fail"
	if pass {
		verdict = "pass"
	}
	verdicts.WithLabelValues(exercise, verdict).Inc()
}

// RecordUploadRejection records an upload rejected by validation
func RecordUploadRejection(code string) {
	uploadRejections.WithLabelValues(code).Inc()
}

// RecordClassifierCall records one classifier inference call
func RecordClassifierCall(start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	classifierRequests.WithLabelValues(status).Inc()
	classifierLatency.Observe(time.Since(start).Seconds())
}

// RecordTranscriptionCall records one transcription call
func RecordTranscriptionCall(start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	transcriptionRequests.WithLabelValues(status).Inc()
	transcriptionLatency.Observe(time.Since(start).Seconds())
}

// RecordError records an error
func RecordError(errorType, component string) {
	errorsTotal.WithLabelValues(errorType, component).Inc()
}

// UpdateCircuitBreakerState updates circuit breaker state metric
func UpdateCircuitBreakerState(service string, state int) {
	circuitBreakerState.WithLabelValues(service).Set(float64(state))
}

// IncrementCircuitBreakerFailures increments circuit breaker failure counter
func IncrementCircuitBreakerFailures(service string) {
	circuitBreakerFailures.WithLabelValues(service).Inc()
}
