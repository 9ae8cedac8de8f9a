package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the transcription pipeline
// and the QA engine.
type Metrics struct {
	TranscriptionsStarted   prometheus.Counter
	TranscriptionsCompleted prometheus.Counter
	TranscriptionsFailed    prometheus.Counter
	TranscriptionDuration   prometheus.Histogram

	QuestionsAnswered  prometheus.Counter
	QuestionsFailed    prometheus.Counter
	GenerationAttempts prometheus.Histogram
}

// New registers all instruments on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TranscriptionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "healthvoice_transcriptions_started_total",
			Help: "Transcription jobs claimed by the background worker.",
		}),
		TranscriptionsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "healthvoice_transcriptions_completed_total",
			Help: "Transcription jobs that produced text.",
		}),
		TranscriptionsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "healthvoice_transcriptions_failed_total",
			Help: "Transcription jobs that ended in the failed state.",
		}),
		TranscriptionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "healthvoice_transcription_duration_seconds",
			Help:    "Wall time of speech-to-text invocations.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		QuestionsAnswered: factory.NewCounter(prometheus.CounterOpts{
			Name: "healthvoice_questions_answered_total",
			Help: "Questions answered with generated text.",
		}),
		QuestionsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "healthvoice_questions_failed_total",
			Help: "Questions persisted with a failure answer.",
		}),
		GenerationAttempts: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "healthvoice_generation_attempts",
			Help:    "Generation attempts per question, including overflow retries.",
			Buckets: []float64{1, 2, 3, 4, 5},
		}),
	}
}

// NewNop returns metrics bound to a throwaway registry, for tests and the
// offline converter.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
