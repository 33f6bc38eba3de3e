// Package metrics provides Prometheus metrics for the submission pipeline
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "murmur"

// Metrics holds all Prometheus metrics for the service
type Metrics struct {
	// Submission pipeline
	SubmissionsTotal  *prometheus.CounterVec
	SubmissionLatency prometheus.Histogram
	ModerationFlags   *prometheus.CounterVec
	EscalationsTotal  prometheus.Counter
	TranscribeLatency prometheus.Histogram
	TranscribeErrors  prometheus.Counter
	ClassifierLatency prometheus.Histogram
	ClassifierErrors  *prometheus.CounterVec
	ClassifierSkipped prometheus.Counter

	// Prompt lifecycle
	PromptsCreated prometheus.Counter
	SweepDeleted   *prometheus.CounterVec

	// Event publishing
	EventsPublished *prometheus.CounterVec
	EventsDropped   prometheus.Counter
}

// Default is the global metrics instance
var Default = New()

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		SubmissionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Submissions by outcome (accepted, rejected, error)",
		}, []string{"outcome"}),
		SubmissionLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "submission_latency_seconds",
			Help:      "End to end submission pipeline latency in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		ModerationFlags: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moderation_flags_total",
			Help:      "Moderation flags raised by the decision engine",
		}, []string{"flag"}),
		EscalationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "escalations_total",
			Help:      "Submissions escalated for self-harm review",
		}),
		TranscribeLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transcribe_latency_seconds",
			Help:      "Speech to text latency in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20},
		}),
		TranscribeErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcribe_errors_total",
			Help:      "Transcription attempts that degraded to an empty transcript",
		}),
		ClassifierLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classifier_latency_seconds",
			Help:      "External classifier latency in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}),
		ClassifierErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifier_errors_total",
			Help:      "Classifier calls that produced no signal",
		}, []string{"kind"}),
		ClassifierSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifier_skipped_total",
			Help:      "Classifier calls skipped because no key is configured",
		}),
		PromptsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prompts_created_total",
			Help:      "Daily prompts created",
		}),
		SweepDeleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_deleted_total",
			Help:      "Rows removed by the expiry sweep",
		}, []string{"table"}),
		EventsPublished: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Events published to the bus and mirror",
		}, []string{"sink"}),
		EventsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dropped_total",
			Help:      "Events lost because the bus was closed",
		}),
	}
}

// RecordSubmission records one finished pipeline run
func (m *Metrics) RecordSubmission(outcome string, latencySeconds float64) {
	m.SubmissionsTotal.WithLabelValues(outcome).Inc()
	m.SubmissionLatency.Observe(latencySeconds)
}

// RecordFlags records the flags of a verdict
func (m *Metrics) RecordFlags(flags []string) {
	for _, f := range flags {
		m.ModerationFlags.WithLabelValues(f).Inc()
	}
}

// RecordTranscribe records one transcription attempt
func (m *Metrics) RecordTranscribe(err error, latencySeconds float64) {
	m.TranscribeLatency.Observe(latencySeconds)
	if err != nil {
		m.TranscribeErrors.Inc()
	}
}

// RecordClassify records one classifier attempt
func (m *Metrics) RecordClassify(kind string, latencySeconds float64) {
	m.ClassifierLatency.Observe(latencySeconds)
	if kind != "" {
		m.ClassifierErrors.WithLabelValues(kind).Inc()
	}
}
